package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/tinybbs/bbs/app/server"
	"github.com/tinybbs/bbs/app/store"
	"github.com/tinybbs/bbs/app/validator"
)

var opts struct {
	DB string `short:"d" long:"db" env:"BBS_DB" default:"bbs.db" description:"database URL (sqlite file or postgres://...)"`

	Server struct {
		Address         string        `long:"address" env:"ADDRESS" default:":5000" description:"server listen address"`
		ReadTimeout     time.Duration `long:"read-timeout" env:"READ_TIMEOUT" default:"5s" description:"read header timeout"`
		WriteTimeout    time.Duration `long:"write-timeout" env:"WRITE_TIMEOUT" default:"60s" description:"write timeout, uploads included"`
		IdleTimeout     time.Duration `long:"idle-timeout" env:"IDLE_TIMEOUT" default:"30s" description:"idle timeout"`
		ShutdownTimeout time.Duration `long:"shutdown-timeout" env:"SHUTDOWN_TIMEOUT" default:"5s" description:"graceful shutdown timeout"`
		BaseURL         string        `long:"base-url" env:"BASE_URL" description:"base URL path for reverse proxy (e.g., /bbs)"`
		StaticDir       string        `long:"static" env:"STATIC" description:"directory served at /static/ (wasm theme controller)"`
		RequestsPerSec  int64         `long:"rps" env:"RPS" default:"1000" description:"max requests per second"`
	} `group:"server" namespace:"server" env-namespace:"BBS_SERVER"`

	Uploads struct {
		Dir     string `long:"dir" env:"DIR" default:"uploads" description:"upload directory"`
		MaxSize int64  `long:"max-size" env:"MAX_SIZE" default:"536870912000" description:"max request size in bytes, uploads included"`
	} `group:"uploads" namespace:"uploads" env-namespace:"BBS_UPLOADS"`

	Admin struct {
		PasswordHash string `long:"password-hash" env:"PASSWORD_HASH" description:"bcrypt hash of the admin password (enables moderation)"`
	} `group:"admin" namespace:"admin" env-namespace:"BBS_ADMIN"`

	AnonName  string `long:"anon-name" env:"BBS_ANON_NAME" default:"名無しさん" description:"poster name used when none is given"`
	CacheSize int    `long:"cache-size" env:"BBS_CACHE_SIZE" default:"1000" description:"max cached boards"`

	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `long:"version" description:"show version and exit"`
}

var revision = "unknown"

func main() {
	fmt.Printf("bbs %s\n", revision)

	p := flags.NewParser(&opts, flags.PassDoubleDash|flags.HelpFlag)
	if _, err := p.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			p.WriteHelp(os.Stderr)
			os.Exit(2)
		}
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}

	if opts.Version {
		os.Exit(0)
	}

	setupLogs(opts.Debug)

	defer func() {
		if x := recover(); x != nil {
			log.Printf("[WARN] run time panic:\n%v", x)
			panic(x)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	signals(cancel)

	if err := runServer(ctx); err != nil {
		log.Printf("[ERROR] failed: %v", err)
		os.Exit(1)
	}
}

func runServer(ctx context.Context) error {
	baseURL, err := validateBaseURL(opts.Server.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base url: %w", err)
	}
	log.Printf("[INFO] starting bbs server on %s%s", opts.Server.Address, baseURL)

	// initialize storage
	db, err := store.New(opts.DB)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	boards, err := store.NewCached(db, opts.CacheSize)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	defer boards.Close()

	files, err := store.NewFiles(opts.Uploads.Dir)
	if err != nil {
		return fmt.Errorf("failed to initialize uploads: %w", err)
	}

	// initialize and start HTTP server
	srv := server.New(boards, files, validator.NewService(), server.Config{
		Address:           opts.Server.Address,
		ReadTimeout:       opts.Server.ReadTimeout,
		WriteTimeout:      opts.Server.WriteTimeout,
		IdleTimeout:       opts.Server.IdleTimeout,
		ShutdownTimeout:   opts.Server.ShutdownTimeout,
		Version:           revision,
		BaseURL:           baseURL,
		StaticDir:         opts.Server.StaticDir,
		AdminPasswordHash: opts.Admin.PasswordHash,
		AnonName:          opts.AnonName,
		BodySizeLimit:     opts.Uploads.MaxSize,
		RequestsPerSec:    opts.Server.RequestsPerSec,
	})

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	stats := boards.Stats()
	log.Printf("[DEBUG] board cache hits %d, misses %d", stats.Hits, stats.Misses)
	return nil
}

// validateBaseURL normalizes the base URL, it must start with a slash and has no trailing one.
func validateBaseURL(u string) (string, error) {
	u = strings.TrimRight(u, "/")
	if u == "" {
		return "", nil
	}
	if !strings.HasPrefix(u, "/") {
		return "", fmt.Errorf("base url %q must start with /", u)
	}
	return u, nil
}

func setupLogs(dbg bool) io.Writer {
	log.Setup(log.Msec)
	if dbg {
		log.Setup(log.Debug, log.CallerFunc, log.CallerPkg, log.CallerFile)
	}
	return os.Stdout
}

func signals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	go func() {
		stacktrace := make([]byte, 8192)
		for sig := range sigChan {
			switch sig {
			case syscall.SIGQUIT:
				length := runtime.Stack(stacktrace, true)
				fmt.Println(string(stacktrace[:length]))
			case syscall.SIGTERM, syscall.SIGINT:
				cancel()
			}
		}
	}()
	signal.Notify(sigChan, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT)
}
