// Package store provides persistence for boards, threads, posts and uploaded files.
package store

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrNotFound is returned when a board, thread or post does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a board with the same name already exists.
	ErrDuplicate = errors.New("already exists")
)

// DBType is the database backend.
type DBType int

// supported backends
const (
	DBTypeSQLite DBType = iota
	DBTypePostgres
)

// Board is a named collection of threads.
type Board struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Thread is a titled discussion on a board.
type Thread struct {
	ID        int64     `db:"id" json:"id"`
	BoardID   int64     `db:"board_id" json:"board_id"`
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Post is a message in a thread. Image is the stored upload name, empty if none.
type Post struct {
	ID        int64     `db:"id" json:"id"`
	ThreadID  int64     `db:"thread_id" json:"thread_id"`
	Name      string    `db:"name" json:"name"`
	Body      string    `db:"body" json:"body"`
	Image     string    `db:"image" json:"image,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Interface is the board storage contract, implemented by Store and Cached.
type Interface interface {
	ListBoards(ctx context.Context) ([]Board, error)
	GetBoard(ctx context.Context, id int64) (Board, error)
	CreateBoard(ctx context.Context, name string) (Board, error)
	DeleteBoard(ctx context.Context, id int64) ([]string, error)
	ListThreads(ctx context.Context, boardID int64) ([]Thread, error)
	GetThread(ctx context.Context, id int64) (Thread, error)
	CreateThread(ctx context.Context, boardID int64, title string, first *Post) (Thread, error)
	DeleteThread(ctx context.Context, id int64) ([]string, error)
	ListPosts(ctx context.Context, threadID int64) ([]Post, error)
	CreatePost(ctx context.Context, p Post) (Post, error)
	DeletePost(ctx context.Context, id int64) (string, error)
	Close() error
}

// RWLocker is satisfied by sync.RWMutex.
type RWLocker interface {
	sync.Locker
	RLock()
	RUnlock()
}

// noopLocker is used for postgres, which handles its own concurrency.
type noopLocker struct{}

func (noopLocker) Lock()    {}
func (noopLocker) Unlock()  {}
func (noopLocker) RLock()   {}
func (noopLocker) RUnlock() {}
