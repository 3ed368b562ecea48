package api

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/tinybbs/bbs/app/server/internal"
)

// postForm is the validated post part of a thread or post form.
type postForm struct {
	Name     string
	Body     string
	file     multipart.File
	filename string // sanitized upload name, empty without image
}

func (p postForm) hasImage() bool { return p.filename != "" }

// parseForm parses multipart forms and falls back to urlencoded ones.
func (h *Handler) parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(h.cfg.MaxFormMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		return fmt.Errorf("parse form: %w", err)
	}
	return nil
}

// postInput reads name, body and the optional image of a parsed form.
// The name falls back to the remembered one, then to the anonymous name.
func (h *Handler) postInput(r *http.Request) (postForm, error) {
	var res postForm
	var err error

	if res.Body, err = h.validator.Body(r.FormValue("body")); err != nil {
		return postForm{}, err //nolint:wrapcheck // validator errors are user-facing
	}
	if res.Name, err = h.validator.PosterName(r.FormValue("name")); err != nil {
		return postForm{}, err //nolint:wrapcheck // validator errors are user-facing
	}
	if res.Name == "" {
		if remembered, vErr := h.validator.PosterName(internal.CookieValue(r, internal.UsernameCookie)); vErr == nil {
			res.Name = remembered
		}
	}
	if res.Name == "" {
		res.Name = h.cfg.AnonName
	}

	if r.MultipartForm == nil {
		return res, nil
	}
	file, hdr, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return res, nil
	}
	if err != nil {
		return postForm{}, fmt.Errorf("read image: %w", err)
	}
	if hdr.Filename == "" {
		_ = file.Close()
		return res, nil
	}
	if res.filename, err = h.validator.UploadName(hdr.Filename); err != nil {
		_ = file.Close()
		return postForm{}, err //nolint:wrapcheck // validator errors are user-facing
	}
	res.file = file
	return res, nil
}

// saveUpload stores the image of the form, if any, and returns the stored name.
func (h *Handler) saveUpload(p postForm) (string, error) {
	if !p.hasImage() {
		return "", nil
	}
	defer p.file.Close()
	name, err := h.files.Save(p.filename, p.file)
	if err != nil {
		return "", fmt.Errorf("save %s: %w", p.filename, err)
	}
	return name, nil
}
