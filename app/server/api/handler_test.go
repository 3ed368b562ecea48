package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinybbs/bbs/app/server/api/mocks"
	"github.com/tinybbs/bbs/app/server/internal"
	"github.com/tinybbs/bbs/app/store"
	"github.com/tinybbs/bbs/app/validator"
)

func TestHandler_HandleBoardList(t *testing.T) {
	t.Run("returns boards", func(t *testing.T) {
		h, st, _ := newTestHandler(t)
		_, err := st.CreateBoard(context.Background(), "tech")
		require.NoError(t, err)
		_, err = st.CreateBoard(context.Background(), "anime")
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		h.handleBoardList(rec, httptest.NewRequest(http.MethodGet, "/boards", http.NoBody))

		require.Equal(t, http.StatusOK, rec.Code)
		var boards []store.Board
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &boards))
		require.Len(t, boards, 2)
		assert.Equal(t, "anime", boards[0].Name)
		assert.Equal(t, "tech", boards[1].Name)
	})

	t.Run("store error", func(t *testing.T) {
		st := &mocks.StoreMock{
			ListBoardsFunc: func(context.Context) ([]store.Board, error) { return nil, errors.New("db error") },
		}
		h := New(st, &mocks.UploaderMock{}, validator.NewService(), Config{})

		rec := httptest.NewRecorder()
		h.handleBoardList(rec, httptest.NewRequest(http.MethodGet, "/boards", http.NoBody))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHandler_HandleBoardCreate(t *testing.T) {
	t.Run("json body", func(t *testing.T) {
		h, _, _ := newTestHandler(t)
		req := httptest.NewRequest(http.MethodPost, "/boards", strings.NewReader(`{"name":" news "}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.handleBoardCreate(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var b store.Board
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
		assert.Equal(t, "news", b.Name)
		assert.Positive(t, b.ID)
	})

	t.Run("form body", func(t *testing.T) {
		h, _, _ := newTestHandler(t)
		req := formRequest(http.MethodPost, "/boards", url.Values{"name": {"music"}})
		rec := httptest.NewRecorder()
		h.handleBoardCreate(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"music"`)
	})

	t.Run("duplicate returns conflict", func(t *testing.T) {
		h, st, _ := newTestHandler(t)
		_, err := st.CreateBoard(context.Background(), "dup")
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		h.handleBoardCreate(rec, formRequest(http.MethodPost, "/boards", url.Values{"name": {"dup"}}))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("empty name", func(t *testing.T) {
		h, _, _ := newTestHandler(t)
		rec := httptest.NewRecorder()
		h.handleBoardCreate(rec, formRequest(http.MethodPost, "/boards", url.Values{"name": {"   "}}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid json", func(t *testing.T) {
		h, _, _ := newTestHandler(t)
		req := httptest.NewRequest(http.MethodPost, "/boards", strings.NewReader(`{"name":`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.handleBoardCreate(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_HandleBoardView(t *testing.T) {
	h, st, _ := newTestHandler(t)
	ctx := context.Background()
	b, err := st.CreateBoard(ctx, "general")
	require.NoError(t, err)
	_, err = st.CreateThread(ctx, b.ID, "older", nil)
	require.NoError(t, err)
	_, err = st.CreateThread(ctx, b.ID, "newer", nil)
	require.NoError(t, err)

	t.Run("board with threads", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.handleBoardView(rec, pathRequest(http.MethodGet, "/boards/", b.ID, http.NoBody))

		require.Equal(t, http.StatusOK, rec.Code)
		var view boardView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, "general", view.Board.Name)
		require.Len(t, view.Threads, 2)
		assert.Equal(t, "newer", view.Threads[0].Title)
	})

	t.Run("unknown board", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.handleBoardView(rec, pathRequest(http.MethodGet, "/boards/", 9999, http.NoBody))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/boards/abc", http.NoBody)
		req.SetPathValue("id", "abc")
		rec := httptest.NewRecorder()
		h.handleBoardView(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_HandleThreadCreate(t *testing.T) {
	t.Run("with first post", func(t *testing.T) {
		h, st, _ := newTestHandler(t)
		b, err := st.CreateBoard(context.Background(), "b")
		require.NoError(t, err)

		req := pathFormRequest("/boards/", b.ID, url.Values{"title": {"hello"}, "name": {"taro"}, "body": {"first!"}})
		rec := httptest.NewRecorder()
		h.handleThreadCreate(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var res threadCreated
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "hello", res.Thread.Title)
		require.NotNil(t, res.Post)
		assert.Equal(t, "taro", res.Post.Name)
		assert.Equal(t, "first!", res.Post.Body)
		assert.Equal(t, "taro", cookieFrom(t, rec, internal.UsernameCookie))
	})

	t.Run("title only", func(t *testing.T) {
		h, st, _ := newTestHandler(t)
		b, err := st.CreateBoard(context.Background(), "b")
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		h.handleThreadCreate(rec, pathFormRequest("/boards/", b.ID, url.Values{"title": {"quiet"}}))

		require.Equal(t, http.StatusCreated, rec.Code)
		var res threadCreated
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Nil(t, res.Post)

		posts, err := st.ListPosts(context.Background(), res.Thread.ID)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("with image", func(t *testing.T) {
		h, st, files := newTestHandler(t)
		b, err := st.CreateBoard(context.Background(), "b")
		require.NoError(t, err)

		req := multipartRequest(t, "/boards/", b.ID, map[string]string{"title": "pics"}, "My Cat.PNG", []byte("png-data"))
		rec := httptest.NewRecorder()
		h.handleThreadCreate(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var res threadCreated
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		require.NotNil(t, res.Post)
		assert.True(t, strings.HasSuffix(res.Post.Image, "_My_Cat.png"), res.Post.Image)
		assert.Equal(t, "名無しさん", res.Post.Name)

		data, err := os.ReadFile(filepath.Join(files.Dir(), res.Post.Image))
		require.NoError(t, err)
		assert.Equal(t, "png-data", string(data))
	})

	t.Run("disallowed upload type", func(t *testing.T) {
		h, st, files := newTestHandler(t)
		b, err := st.CreateBoard(context.Background(), "b")
		require.NoError(t, err)

		req := multipartRequest(t, "/boards/", b.ID, map[string]string{"title": "bad"}, "evil.exe", []byte("MZ"))
		rec := httptest.NewRecorder()
		h.handleThreadCreate(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		entries, err := os.ReadDir(files.Dir())
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("missing title", func(t *testing.T) {
		h, st, _ := newTestHandler(t)
		b, err := st.CreateBoard(context.Background(), "b")
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		h.handleThreadCreate(rec, pathFormRequest("/boards/", b.ID, url.Values{"body": {"x"}}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown board removes upload", func(t *testing.T) {
		up := &mocks.UploaderMock{
			SaveFunc:   func(name string, _ io.Reader) (string, error) { return "id_" + name, nil },
			RemoveFunc: func(string) error { return nil },
		}
		st := &mocks.StoreMock{
			CreateThreadFunc: func(context.Context, int64, string, *store.Post) (store.Thread, error) {
				return store.Thread{}, store.ErrNotFound
			},
		}
		h := New(st, up, validator.NewService(), Config{})

		req := multipartRequest(t, "/boards/", 42, map[string]string{"title": "t"}, "a.gif", []byte("gif"))
		rec := httptest.NewRecorder()
		h.handleThreadCreate(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		require.Len(t, up.SaveCalls(), 1)
		assert.Equal(t, "a.gif", up.SaveCalls()[0].Name)
		require.Len(t, up.RemoveCalls(), 1)
		assert.Equal(t, "id_a.gif", up.RemoveCalls()[0].Name)
	})

	t.Run("upload failure", func(t *testing.T) {
		up := &mocks.UploaderMock{
			SaveFunc: func(string, io.Reader) (string, error) { return "", errors.New("disk full") },
		}
		h := New(&mocks.StoreMock{}, up, validator.NewService(), Config{})

		req := multipartRequest(t, "/boards/", 1, map[string]string{"title": "t"}, "a.jpg", []byte("jpg"))
		rec := httptest.NewRecorder()
		h.handleThreadCreate(rec, req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHandler_HandleThreadView(t *testing.T) {
	h, st, _ := newTestHandler(t)
	ctx := context.Background()
	b, err := st.CreateBoard(ctx, "general")
	require.NoError(t, err)
	th, err := st.CreateThread(ctx, b.ID, "topic", &store.Post{Name: "a", Body: "one"})
	require.NoError(t, err)
	_, err = st.CreatePost(ctx, store.Post{ThreadID: th.ID, Name: "b", Body: "two"})
	require.NoError(t, err)

	t.Run("thread with posts", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.handleThreadView(rec, pathRequest(http.MethodGet, "/threads/", th.ID, http.NoBody))

		require.Equal(t, http.StatusOK, rec.Code)
		var view threadView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, "general", view.Board.Name)
		assert.Equal(t, "topic", view.Thread.Title)
		require.Len(t, view.Posts, 2)
		assert.Equal(t, "one", view.Posts[0].Body)
		assert.Equal(t, "two", view.Posts[1].Body)
	})

	t.Run("unknown thread", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.handleThreadView(rec, pathRequest(http.MethodGet, "/threads/", 9999, http.NoBody))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_HandlePostCreate(t *testing.T) {
	h, st, _ := newTestHandler(t)
	ctx := context.Background()
	b, err := st.CreateBoard(ctx, "b")
	require.NoError(t, err)
	th, err := st.CreateThread(ctx, b.ID, "t", nil)
	require.NoError(t, err)

	t.Run("uses remembered name", func(t *testing.T) {
		req := pathFormRequest("/threads/", th.ID, url.Values{"body": {"hi"}})
		req.AddCookie(&http.Cookie{Name: internal.UsernameCookie, Value: url.QueryEscape("花子")})
		rec := httptest.NewRecorder()
		h.handlePostCreate(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var p store.Post
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
		assert.Equal(t, "花子", p.Name)
		assert.Equal(t, th.ID, p.ThreadID)
		assert.Equal(t, "花子", cookieFrom(t, rec, internal.UsernameCookie))
	})

	t.Run("form name wins over cookie", func(t *testing.T) {
		req := pathFormRequest("/threads/", th.ID, url.Values{"body": {"hi"}, "name": {"jiro"}})
		req.AddCookie(&http.Cookie{Name: internal.UsernameCookie, Value: "taro"})
		rec := httptest.NewRecorder()
		h.handlePostCreate(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"name":"jiro"`)
	})

	t.Run("anonymous default", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.handlePostCreate(rec, pathFormRequest("/threads/", th.ID, url.Values{"body": {"hi"}}))
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "名無しさん")
	})

	t.Run("image only", func(t *testing.T) {
		req := multipartRequest(t, "/threads/", th.ID, nil, "clip.webm", []byte("webm"))
		rec := httptest.NewRecorder()
		h.handlePostCreate(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var p store.Post
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
		assert.Empty(t, p.Body)
		assert.True(t, strings.HasSuffix(p.Image, "_clip.webm"))
	})

	t.Run("empty post", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.handlePostCreate(rec, pathFormRequest("/threads/", th.ID, url.Values{"body": {"  "}}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("body too long", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.handlePostCreate(rec, pathFormRequest("/threads/", th.ID, url.Values{"body": {strings.Repeat("x", 10001)}}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown thread", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.handlePostCreate(rec, pathFormRequest("/threads/", 9999, url.Values{"body": {"lost"}}))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_Delete(t *testing.T) {
	t.Run("board removes uploads", func(t *testing.T) {
		up := &mocks.UploaderMock{RemoveFunc: func(string) error { return nil }}
		st := &mocks.StoreMock{
			DeleteBoardFunc: func(_ context.Context, id int64) ([]string, error) {
				assert.Equal(t, int64(5), id)
				return []string{"1_a.png", "2_b.mp4"}, nil
			},
		}
		h := New(st, up, validator.NewService(), Config{})

		rec := httptest.NewRecorder()
		h.handleBoardDelete(rec, pathRequest(http.MethodDelete, "/boards/", 5, http.NoBody))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		require.Len(t, up.RemoveCalls(), 2)
		assert.Equal(t, "1_a.png", up.RemoveCalls()[0].Name)
		assert.Equal(t, "2_b.mp4", up.RemoveCalls()[1].Name)
	})

	t.Run("thread not found", func(t *testing.T) {
		st := &mocks.StoreMock{
			DeleteThreadFunc: func(context.Context, int64) ([]string, error) { return nil, store.ErrNotFound },
		}
		h := New(st, &mocks.UploaderMock{}, validator.NewService(), Config{})

		rec := httptest.NewRecorder()
		h.handleThreadDelete(rec, pathRequest(http.MethodDelete, "/threads/", 7, http.NoBody))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("post without image", func(t *testing.T) {
		up := &mocks.UploaderMock{}
		st := &mocks.StoreMock{
			DeletePostFunc: func(context.Context, int64) (string, error) { return "", nil },
		}
		h := New(st, up, validator.NewService(), Config{})

		rec := httptest.NewRecorder()
		h.handlePostDelete(rec, pathRequest(http.MethodDelete, "/posts/", 3, http.NoBody))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, up.RemoveCalls())
	})

	t.Run("remove failure is not fatal", func(t *testing.T) {
		up := &mocks.UploaderMock{RemoveFunc: func(string) error { return errors.New("busy") }}
		st := &mocks.StoreMock{
			DeletePostFunc: func(context.Context, int64) (string, error) { return "1_x.gif", nil },
		}
		h := New(st, up, validator.NewService(), Config{})

		rec := httptest.NewRecorder()
		h.handlePostDelete(rec, pathRequest(http.MethodDelete, "/posts/", 3, http.NoBody))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Len(t, up.RemoveCalls(), 1)
	})

	t.Run("invalid id", func(t *testing.T) {
		h := New(&mocks.StoreMock{}, &mocks.UploaderMock{}, validator.NewService(), Config{})
		req := httptest.NewRequest(http.MethodDelete, "/posts/0", http.NoBody)
		req.SetPathValue("id", "0")
		rec := httptest.NewRecorder()
		h.handlePostDelete(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

// newTestHandler creates a handler backed by a temporary sqlite store and upload dir.
func newTestHandler(t *testing.T) (*Handler, *store.Store, *store.Files) {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	files, err := store.NewFiles(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	return New(st, files, validator.NewService(), Config{}), st, files
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func pathRequest(method, prefix string, id int64, body io.Reader) *http.Request {
	sid := strconv.FormatInt(id, 10)
	req := httptest.NewRequest(method, prefix+sid, body)
	req.SetPathValue("id", sid)
	return req
}

func pathFormRequest(prefix string, id int64, form url.Values) *http.Request {
	req := pathRequest(http.MethodPost, prefix, id, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func multipartRequest(t *testing.T, prefix string, id int64, fields map[string]string, filename string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := pathRequest(http.MethodPost, prefix, id, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func cookieFrom(t *testing.T, rec *httptest.ResponseRecorder, name string) string {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			v, err := url.QueryUnescape(c.Value)
			require.NoError(t, err)
			return v
		}
	}
	t.Fatalf("cookie %s not set", name)
	return ""
}
