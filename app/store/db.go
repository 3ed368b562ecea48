package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // postgresql driver
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // sqlite driver
)

// Store implements board storage using SQLite or PostgreSQL.
type Store struct {
	db     *sqlx.DB
	dbType DBType
	mu     RWLocker
}

// New creates a new Store with the given database URL.
// Automatically detects database type from URL:
// - postgres:// or postgresql:// -> PostgreSQL
// - everything else -> SQLite
func New(dbURL string) (*Store, error) {
	dbType := detectDBType(dbURL)

	var db *sqlx.DB
	var err error
	var locker RWLocker

	switch dbType {
	case DBTypePostgres:
		db, err = connectPostgres(dbURL)
		locker = noopLocker{}
	default:
		db, err = connectSQLite(dbURL)
		locker = &sync.RWMutex{}
	}

	if err != nil {
		return nil, err
	}

	s := &Store{db: db, dbType: dbType, mu: locker}

	if err := s.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	log.Printf("[DEBUG] initialized %s store", s.dbTypeName())
	return s, nil
}

// detectDBType determines database type from URL.
func detectDBType(url string) DBType {
	lower := strings.ToLower(url)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DBTypePostgres
	}
	return DBTypeSQLite
}

// connectSQLite establishes SQLite connection with pragmas.
// foreign_keys goes into the DSN so every pooled connection enforces the cascading deletes.
func connectSQLite(dbPath string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
	}

	// set pragmas for performance and reliability
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA cache_size=1000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil { //nolint:noctx // init-time, no context available
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	// limit connections for SQLite (single writer)
	db.SetMaxOpenConns(1)

	return db, nil
}

// sqliteDSN appends the foreign_keys pragma to the sqlite path, keeping any query already there.
func sqliteDSN(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + "_pragma=foreign_keys(1)"
}

// connectPostgres establishes PostgreSQL connection.
func connectPostgres(dbURL string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// createSchema creates boards, threads and posts tables if they don't exist.
func (s *Store) createSchema() error {
	var stmts []string
	switch s.dbType {
	case DBTypePostgres:
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS boards (
				id BIGSERIAL PRIMARY KEY,
				name TEXT NOT NULL UNIQUE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE TABLE IF NOT EXISTS threads (
				id BIGSERIAL PRIMARY KEY,
				board_id BIGINT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
				title TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE TABLE IF NOT EXISTS posts (
				id BIGSERIAL PRIMARY KEY,
				thread_id BIGINT NOT NULL REFERENCES threads(id) ON DELETE CASCADE,
				name TEXT NOT NULL,
				body TEXT NOT NULL DEFAULT '',
				image TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
		}
	default:
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS boards (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL UNIQUE,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS threads (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				board_id INTEGER NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
				title TEXT NOT NULL,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS posts (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				thread_id INTEGER NOT NULL REFERENCES threads(id) ON DELETE CASCADE,
				name TEXT NOT NULL,
				body TEXT NOT NULL DEFAULT '',
				image TEXT NOT NULL DEFAULT '',
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
		}
	}
	stmts = append(stmts,
		`CREATE INDEX IF NOT EXISTS idx_threads_board ON threads(board_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_thread ON posts(thread_id, created_at)`,
	)

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil { //nolint:noctx // init-time, no context available
			return fmt.Errorf("failed to execute schema: %w", err)
		}
	}
	return nil
}

// dbTypeName returns human-readable database type name.
func (s *Store) dbTypeName() string {
	switch s.dbType {
	case DBTypePostgres:
		return "postgres"
	default:
		return "sqlite"
	}
}

// ListBoards returns all boards ordered by name.
func (s *Store) ListBoards(ctx context.Context) ([]Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	boards := []Board{}
	if err := s.db.SelectContext(ctx, &boards, "SELECT id, name, created_at FROM boards ORDER BY name"); err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return boards, nil
}

// GetBoard returns the board by id, ErrNotFound if it does not exist.
func (s *Store) GetBoard(ctx context.Context, id int64) (Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b Board
	err := s.db.GetContext(ctx, &b, s.adoptQuery("SELECT id, name, created_at FROM boards WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return Board{}, ErrNotFound
	}
	if err != nil {
		return Board{}, fmt.Errorf("failed to get board %d: %w", id, err)
	}
	return b, nil
}

// CreateBoard adds a board. Returns ErrDuplicate if the name is taken.
func (s *Store) CreateBoard(ctx context.Context, name string) (Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := Board{Name: name, CreatedAt: time.Now().UTC()}
	query := s.adoptQuery("INSERT INTO boards (name, created_at) VALUES (?, ?) RETURNING id")
	if err := s.db.GetContext(ctx, &b.ID, query, b.Name, b.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return Board{}, ErrDuplicate
		}
		return Board{}, fmt.Errorf("failed to create board %q: %w", name, err)
	}
	return b, nil
}

// DeleteBoard removes the board with its threads and posts.
// Returns the image names of the removed posts.
func (s *Store) DeleteBoard(ctx context.Context, id int64) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var images []string
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		query := s.adoptQuery(`SELECT p.image FROM posts p JOIN threads t ON t.id = p.thread_id
			WHERE t.board_id = ? AND p.image <> ''`)
		if err := tx.SelectContext(ctx, &images, query, id); err != nil {
			return fmt.Errorf("failed to collect images: %w", err)
		}
		return s.deleteRow(ctx, tx, "boards", id)
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

// ListThreads returns the threads of a board, newest first.
func (s *Store) ListThreads(ctx context.Context, boardID int64) ([]Thread, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	threads := []Thread{}
	query := s.adoptQuery(`SELECT id, board_id, title, created_at FROM threads
		WHERE board_id = ? ORDER BY created_at DESC, id DESC`)
	if err := s.db.SelectContext(ctx, &threads, query, boardID); err != nil {
		return nil, fmt.Errorf("failed to list threads of board %d: %w", boardID, err)
	}
	return threads, nil
}

// GetThread returns the thread by id, ErrNotFound if it does not exist.
func (s *Store) GetThread(ctx context.Context, id int64) (Thread, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var t Thread
	query := s.adoptQuery("SELECT id, board_id, title, created_at FROM threads WHERE id = ?")
	err := s.db.GetContext(ctx, &t, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Thread{}, ErrNotFound
	}
	if err != nil {
		return Thread{}, fmt.Errorf("failed to get thread %d: %w", id, err)
	}
	return t, nil
}

// CreateThread adds a thread to the board, with an optional first post, in one transaction.
// Returns ErrNotFound if the board does not exist.
func (s *Store) CreateThread(ctx context.Context, boardID int64, title string, first *Post) (Thread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := Thread{BoardID: boardID, Title: title, CreatedAt: time.Now().UTC()}
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.mustExist(ctx, tx, "boards", boardID); err != nil {
			return err
		}
		query := s.adoptQuery("INSERT INTO threads (board_id, title, created_at) VALUES (?, ?, ?) RETURNING id")
		if err := tx.GetContext(ctx, &t.ID, query, t.BoardID, t.Title, t.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert thread: %w", err)
		}
		if first == nil {
			return nil
		}
		first.ThreadID = t.ID
		first.CreatedAt = t.CreatedAt
		return s.insertPost(ctx, tx, first)
	})
	if err != nil {
		return Thread{}, err
	}
	return t, nil
}

// DeleteThread removes the thread with its posts. Returns the image names of the removed posts.
func (s *Store) DeleteThread(ctx context.Context, id int64) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var images []string
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		query := s.adoptQuery("SELECT image FROM posts WHERE thread_id = ? AND image <> ''")
		if err := tx.SelectContext(ctx, &images, query, id); err != nil {
			return fmt.Errorf("failed to collect images: %w", err)
		}
		return s.deleteRow(ctx, tx, "threads", id)
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

// ListPosts returns the posts of a thread, oldest first.
func (s *Store) ListPosts(ctx context.Context, threadID int64) ([]Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := []Post{}
	query := s.adoptQuery(`SELECT id, thread_id, name, body, image, created_at FROM posts
		WHERE thread_id = ? ORDER BY created_at ASC, id ASC`)
	if err := s.db.SelectContext(ctx, &posts, query, threadID); err != nil {
		return nil, fmt.Errorf("failed to list posts of thread %d: %w", threadID, err)
	}
	return posts, nil
}

// CreatePost adds a post to its thread. Returns ErrNotFound if the thread does not exist.
func (s *Store) CreatePost(ctx context.Context, p Post) (Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.CreatedAt = time.Now().UTC()
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.mustExist(ctx, tx, "threads", p.ThreadID); err != nil {
			return err
		}
		return s.insertPost(ctx, tx, &p)
	})
	if err != nil {
		return Post{}, err
	}
	return p, nil
}

// DeletePost removes a post. Returns its image name, empty if it had none.
func (s *Store) DeletePost(ctx context.Context, id int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var image string
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &image, s.adoptQuery("SELECT image FROM posts WHERE id = ?"), id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get post %d: %w", id, err)
		}
		return s.deleteRow(ctx, tx, "posts", id)
	})
	if err != nil {
		return "", err
	}
	return image, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// insertPost writes the post and sets its id. Must be called inside a transaction.
func (s *Store) insertPost(ctx context.Context, tx *sqlx.Tx, p *Post) error {
	query := s.adoptQuery(`INSERT INTO posts (thread_id, name, body, image, created_at)
		VALUES (?, ?, ?, ?, ?) RETURNING id`)
	if err := tx.GetContext(ctx, &p.ID, query, p.ThreadID, p.Name, p.Body, p.Image, p.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// mustExist returns ErrNotFound if the table has no row with the id.
// table is always one of the package constants, never user input.
func (s *Store) mustExist(ctx context.Context, tx *sqlx.Tx, table string, id int64) error {
	var n int
	if err := tx.GetContext(ctx, &n, s.adoptQuery("SELECT COUNT(*) FROM "+table+" WHERE id = ?"), id); err != nil {
		return fmt.Errorf("failed to check %s %d: %w", table, id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// deleteRow deletes by id, ErrNotFound if nothing was deleted.
func (s *Store) deleteRow(ctx context.Context, tx *sqlx.Tx, table string, id int64) error {
	result, err := tx.ExecContext(ctx, s.adoptQuery("DELETE FROM "+table+" WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s %d: %w", table, id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// inTx runs fn in a transaction, committed if fn returns nil.
func (s *Store) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// isUniqueViolation detects unique constraint errors of both drivers.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// adoptQuery converts SQLite query syntax to PostgreSQL placeholders: ? → $1, $2, ...
func (s *Store) adoptQuery(query string) string {
	if s.dbType != DBTypePostgres {
		return query
	}

	result := make([]byte, 0, len(query)+10)
	paramNum := 1
	for i := range len(query) {
		if query[i] != '?' {
			result = append(result, query[i])
			continue
		}
		result = append(result, '$')
		result = append(result, strconv.Itoa(paramNum)...)
		paramNum++
	}
	return string(result)
}
