// Package api provides HTTP handlers for the board API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"

	"github.com/tinybbs/bbs/app/server/internal"
	"github.com/tinybbs/bbs/app/store"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/uploader.go -pkg mocks -skip-ensure -fmt goimports . Uploader

// Store defines the interface for board storage operations.
type Store interface {
	ListBoards(ctx context.Context) ([]store.Board, error)
	GetBoard(ctx context.Context, id int64) (store.Board, error)
	CreateBoard(ctx context.Context, name string) (store.Board, error)
	DeleteBoard(ctx context.Context, id int64) ([]string, error)
	ListThreads(ctx context.Context, boardID int64) ([]store.Thread, error)
	GetThread(ctx context.Context, id int64) (store.Thread, error)
	CreateThread(ctx context.Context, boardID int64, title string, first *store.Post) (store.Thread, error)
	DeleteThread(ctx context.Context, id int64) ([]string, error)
	ListPosts(ctx context.Context, threadID int64) ([]store.Post, error)
	CreatePost(ctx context.Context, p store.Post) (store.Post, error)
	DeletePost(ctx context.Context, id int64) (string, error)
}

// Uploader stores and removes uploaded files.
type Uploader interface {
	Save(name string, src io.Reader) (string, error)
	Remove(name string) error
}

// Validator defines the interface for input validation.
type Validator interface {
	BoardName(name string) (string, error)
	ThreadTitle(title string) (string, error)
	PosterName(name string) (string, error)
	Body(body string) (string, error)
	UploadName(filename string) (string, error)
}

// Config holds api handler configuration.
type Config struct {
	AnonName      string // poster name used when none is given or remembered
	CookiePath    string
	MaxFormMemory int64 // multipart bytes kept in memory, the rest spills to temp files
}

// Handler handles API requests for boards, threads and posts.
type Handler struct {
	store     Store
	files     Uploader
	validator Validator
	cfg       Config
}

// New creates a new API handler.
func New(st Store, files Uploader, val Validator, cfg Config) *Handler {
	if cfg.AnonName == "" {
		cfg.AnonName = "名無しさん"
	}
	if cfg.MaxFormMemory <= 0 {
		cfg.MaxFormMemory = 32 << 20
	}
	return &Handler{store: st, files: files, validator: val, cfg: cfg}
}

// Register registers public API routes on the given router.
func (h *Handler) Register(r *routegroup.Bundle) {
	r.HandleFunc("GET /boards", h.handleBoardList)
	r.HandleFunc("POST /boards", h.handleBoardCreate)
	r.HandleFunc("GET /boards/{id}", h.handleBoardView)
	r.HandleFunc("POST /boards/{id}/threads", h.handleThreadCreate)
	r.HandleFunc("GET /threads/{id}", h.handleThreadView)
	r.HandleFunc("POST /threads/{id}/posts", h.handlePostCreate)
}

// RegisterAdmin registers moderation routes, the caller protects them.
func (h *Handler) RegisterAdmin(r *routegroup.Bundle) {
	r.HandleFunc("DELETE /boards/{id}", h.handleBoardDelete)
	r.HandleFunc("DELETE /threads/{id}", h.handleThreadDelete)
	r.HandleFunc("DELETE /posts/{id}", h.handlePostDelete)
}

// handleBoardList returns all boards ordered by name.
// GET /boards
func (h *Handler) handleBoardList(w http.ResponseWriter, r *http.Request) {
	boards, err := h.store.ListBoards(r.Context())
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to list boards")
		return
	}
	rest.RenderJSON(w, boards)
}

// handleBoardCreate adds a board. Accepts {"name": "..."} JSON or a name form field.
// POST /boards
func (h *Handler) handleBoardCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mt == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "invalid json")
			return
		}
	} else {
		req.Name = r.FormValue("name")
	}

	name, err := h.validator.BoardName(req.Name)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, err.Error())
		return
	}

	board, err := h.store.CreateBoard(r.Context(), name)
	if err != nil {
		h.sendStoreError(w, r, err, "failed to create board")
		return
	}

	log.Printf("[INFO] board %d %q created", board.ID, board.Name)
	renderCreated(w, board)
}

// handleBoardView returns a board with its threads, newest first.
// GET /boards/{id}
func (h *Handler) handleBoardView(w http.ResponseWriter, r *http.Request) {
	id := internal.PathID(r, "id")
	if id == 0 {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, nil, "invalid board id")
		return
	}

	board, err := h.store.GetBoard(r.Context(), id)
	if err != nil {
		h.sendStoreError(w, r, err, "failed to get board")
		return
	}
	threads, err := h.store.ListThreads(r.Context(), id)
	if err != nil {
		h.sendStoreError(w, r, err, "failed to list threads")
		return
	}

	rest.RenderJSON(w, boardView{Board: board, Threads: threads})
}

// handleThreadCreate starts a thread on a board.
// The first post is created only when a body or an image is given.
// POST /boards/{id}/threads, multipart or urlencoded form: title, name, body, image
func (h *Handler) handleThreadCreate(w http.ResponseWriter, r *http.Request) {
	boardID := internal.PathID(r, "id")
	if boardID == 0 {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, nil, "invalid board id")
		return
	}
	if err := h.parseForm(r); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "invalid form")
		return
	}

	title, err := h.validator.ThreadTitle(r.FormValue("title"))
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, err.Error())
		return
	}
	in, err := h.postInput(r)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, err.Error())
		return
	}

	var first *store.Post
	if in.Body != "" || in.hasImage() {
		image, saveErr := h.saveUpload(in)
		if saveErr != nil {
			rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, saveErr, "failed to save upload")
			return
		}
		first = &store.Post{Name: in.Name, Body: in.Body, Image: image}
	}

	thread, err := h.store.CreateThread(r.Context(), boardID, title, first)
	if err != nil {
		if first != nil {
			h.removeUploads(first.Image)
		}
		h.sendStoreError(w, r, err, "failed to create thread")
		return
	}

	log.Printf("[INFO] thread %d %q created on board %d by %q", thread.ID, thread.Title, boardID, in.Name)
	internal.SetCookie(w, internal.UsernameCookie, in.Name, h.cfg.CookiePath)
	renderCreated(w, threadCreated{Thread: thread, Post: first})
}

// handleThreadView returns a thread with its board and posts, oldest first.
// GET /threads/{id}
func (h *Handler) handleThreadView(w http.ResponseWriter, r *http.Request) {
	id := internal.PathID(r, "id")
	if id == 0 {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, nil, "invalid thread id")
		return
	}

	thread, err := h.store.GetThread(r.Context(), id)
	if err != nil {
		h.sendStoreError(w, r, err, "failed to get thread")
		return
	}
	board, err := h.store.GetBoard(r.Context(), thread.BoardID)
	if err != nil {
		h.sendStoreError(w, r, err, "failed to get board")
		return
	}
	posts, err := h.store.ListPosts(r.Context(), id)
	if err != nil {
		h.sendStoreError(w, r, err, "failed to list posts")
		return
	}

	rest.RenderJSON(w, threadView{Board: board, Thread: thread, Posts: posts})
}

// handlePostCreate adds a post to a thread. A post needs a body or an image.
// POST /threads/{id}/posts, multipart or urlencoded form: name, body, image
func (h *Handler) handlePostCreate(w http.ResponseWriter, r *http.Request) {
	threadID := internal.PathID(r, "id")
	if threadID == 0 {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, nil, "invalid thread id")
		return
	}
	if err := h.parseForm(r); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "invalid form")
		return
	}

	in, err := h.postInput(r)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, err.Error())
		return
	}
	if in.Body == "" && !in.hasImage() {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, nil, "body or image is required")
		return
	}

	image, err := h.saveUpload(in)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to save upload")
		return
	}

	post, err := h.store.CreatePost(r.Context(), store.Post{ThreadID: threadID, Name: in.Name, Body: in.Body, Image: image})
	if err != nil {
		h.removeUploads(image)
		h.sendStoreError(w, r, err, "failed to create post")
		return
	}

	log.Printf("[INFO] post %d added to thread %d by %q", post.ID, threadID, in.Name)
	internal.SetCookie(w, internal.UsernameCookie, in.Name, h.cfg.CookiePath)
	renderCreated(w, post)
}

// handleBoardDelete removes a board with all threads, posts and their uploads.
// DELETE /boards/{id}
func (h *Handler) handleBoardDelete(w http.ResponseWriter, r *http.Request) {
	h.deleteWith(w, r, "board", func(ctx context.Context, id int64) ([]string, error) {
		return h.store.DeleteBoard(ctx, id)
	})
}

// handleThreadDelete removes a thread with its posts and their uploads.
// DELETE /threads/{id}
func (h *Handler) handleThreadDelete(w http.ResponseWriter, r *http.Request) {
	h.deleteWith(w, r, "thread", func(ctx context.Context, id int64) ([]string, error) {
		return h.store.DeleteThread(ctx, id)
	})
}

// handlePostDelete removes a post and its upload.
// DELETE /posts/{id}
func (h *Handler) handlePostDelete(w http.ResponseWriter, r *http.Request) {
	h.deleteWith(w, r, "post", func(ctx context.Context, id int64) ([]string, error) {
		image, err := h.store.DeletePost(ctx, id)
		return []string{image}, err
	})
}

func (h *Handler) deleteWith(w http.ResponseWriter, r *http.Request, kind string, del func(ctx context.Context, id int64) ([]string, error)) {
	id := internal.PathID(r, "id")
	if id == 0 {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, nil, "invalid "+kind+" id")
		return
	}

	images, err := del(r.Context(), id)
	if err != nil {
		h.sendStoreError(w, r, err, "failed to delete "+kind)
		return
	}
	h.removeUploads(images...)

	log.Printf("[INFO] %s %d deleted, %d upload(s) removed", kind, id, countNonEmpty(images))
	w.WriteHeader(http.StatusNoContent)
}

// sendStoreError maps store errors to HTTP status codes.
func (h *Handler) sendStoreError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		rest.SendErrorJSON(w, r, log.Default(), http.StatusNotFound, err, "not found")
	case errors.Is(err, store.ErrDuplicate):
		rest.SendErrorJSON(w, r, log.Default(), http.StatusConflict, err, "already exists")
	default:
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, msg)
	}
}

func (h *Handler) removeUploads(names ...string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		if err := h.files.Remove(name); err != nil {
			log.Printf("[WARN] failed to remove upload %s: %v", name, err)
		}
	}
}

func countNonEmpty(ss []string) int {
	n := 0
	for _, s := range ss {
		if s != "" {
			n++
		}
	}
	return n
}

type boardView struct {
	Board   store.Board    `json:"board"`
	Threads []store.Thread `json:"threads"`
}

type threadView struct {
	Board  store.Board  `json:"board"`
	Thread store.Thread `json:"thread"`
	Posts  []store.Post `json:"posts"`
}

type threadCreated struct {
	Thread store.Thread `json:"thread"`
	Post   *store.Post  `json:"post,omitempty"`
}

// renderCreated sends data as JSON with 201 status.
func renderCreated(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	rest.RenderJSON(w, data)
}
