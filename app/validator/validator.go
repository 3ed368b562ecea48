// Package validator checks and normalizes user input of boards, threads and posts.
package validator

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// allowedExtensions lists upload file extensions accepted for post attachments.
var allowedExtensions = []string{"png", "jpg", "jpeg", "gif", "mp4", "webm"}

// limits in runes
const (
	maxBoardName = 80
	maxTitle     = 200
	maxName      = 80
	maxBody      = 10000
)

// ErrEmpty is returned for required values that are blank after trimming.
var ErrEmpty = errors.New("value is required")

// Service validates board input.
type Service struct{}

// NewService creates a new validation service.
func NewService() *Service {
	return &Service{}
}

// AllowedExtensions returns the accepted upload extensions.
func (s *Service) AllowedExtensions() []string {
	return allowedExtensions
}

// BoardName trims and checks a board name.
func (s *Service) BoardName(name string) (string, error) {
	return required("board name", name, maxBoardName)
}

// ThreadTitle trims and checks a thread title.
func (s *Service) ThreadTitle(title string) (string, error) {
	return required("title", title, maxTitle)
}

// PosterName trims and checks a poster name. Empty is allowed, the caller picks a default.
func (s *Service) PosterName(name string) (string, error) {
	return limited("name", strings.TrimSpace(name), maxName)
}

// Body trims and checks a post body. Empty is allowed.
func (s *Service) Body(body string) (string, error) {
	return limited("body", strings.TrimSpace(body), maxBody)
}

// IsAllowedFile reports whether the file name has an accepted extension, case-insensitive.
func (s *Service) IsAllowedFile(filename string) bool {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	return ext != "" && slices.Contains(s.AllowedExtensions(), strings.ToLower(ext))
}

// UploadName returns a safe file name for an accepted upload.
// Non-ASCII characters are decomposed and dropped, path separators become underscores,
// anything outside [A-Za-z0-9_.-] is removed. The lower-cased extension is always kept.
func (s *Service) UploadName(filename string) (string, error) {
	if !s.IsAllowedFile(filename) {
		return "", fmt.Errorf("file type of %q is not allowed, use one of %s", filename, strings.Join(s.AllowedExtensions(), ", "))
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))

	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	base = norm.NFKD.String(base)
	base = strings.NewReplacer("/", " ", "\\", " ").Replace(base)
	base = strings.Join(strings.FieldsFunc(base, unicode.IsSpace), "_")

	var sb strings.Builder
	for _, r := range base {
		if r < utf8.RuneSelf && (r == '_' || r == '.' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)) {
			sb.WriteRune(r)
		}
	}
	clean := strings.Trim(sb.String(), "._")
	if clean == "" {
		clean = "file"
	}
	return clean + "." + ext, nil
}

func required(field, value string, maxLen int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%s: %w", field, ErrEmpty)
	}
	return limited(field, value, maxLen)
}

func limited(field, value string, maxLen int) (string, error) {
	if n := utf8.RuneCountInString(value); n > maxLen {
		return "", fmt.Errorf("%s is too long: %d characters, max %d", field, n, maxLen)
	}
	return value, nil
}
