package repositories

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"postsapi/app/models"

	"github.com/dgraph-io/badger/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Supported store drivers.
const (
	DriverBadger = "badger"
	DriverSQLite = "sqlite"
)

// Options selects and configures the backend opened by Open.
type Options struct {
	Driver string
	// BadgerPath is the badger directory. Empty means an in-memory store.
	BadgerPath string
	// SQLiteDSN is the sqlite file or DSN, ":memory:" for a throwaway store.
	SQLiteDSN string
	Logger    *slog.Logger
}

// Store bundles the repositories of one backend with its lifecycle.
type Store struct {
	Posts    PostRepository
	Comments CommentRepository
	Driver   string

	closeFn func() error
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

// Open opens the datastore selected by opts.Driver.
func Open(opts Options) (*Store, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	switch opts.Driver {
	case DriverBadger, "":
		db, err := OpenBadger(opts.BadgerPath, opts.Logger)
		if err != nil {
			return nil, err
		}
		return NewBadgerStore(db), nil
	case DriverSQLite:
		db, err := OpenSQLite(opts.SQLiteDSN)
		if err != nil {
			return nil, err
		}
		return NewGormStore(db)
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}

// OpenBadger opens the badger database at path, or an in-memory one when
// path is empty. Badger's own log output is routed through logger.
func OpenBadger(path string, logger *slog.Logger) (*badger.DB, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		opts = badger.DefaultOptions(path)
	}
	opts = opts.
		WithLogger(&badgerLogger{logger: logger.With(slog.String("component", "badger"))}).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", path, err)
	}
	return db, nil
}

// NewBadgerStore wraps an open badger database. Closing the store closes db.
func NewBadgerStore(db *badger.DB) *Store {
	return &Store{
		Posts:    NewBadgerPostRepository(db),
		Comments: NewBadgerCommentRepository(db),
		Driver:   DriverBadger,
		closeFn:  db.Close,
	}
}

// OpenSQLite opens the sqlite database and migrates the schema.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("sqlite dsn is required")
	}
	if dsn != ":memory:" {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %q: %w", dsn, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite allows a single writer, and every ":memory:" connection is a
	// separate database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Post{}, &models.Comment{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return db, nil
}

// NewGormStore wraps an open gorm database. Closing the store closes db.
func NewGormStore(db *gorm.DB) (*Store, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return &Store{
		Posts:    NewGormPostRepository(db),
		Comments: NewGormCommentRepository(db),
		Driver:   DriverSQLite,
		closeFn:  sqlDB.Close,
	}, nil
}

// badgerLogger adapts slog to badger.Logger. Badger is chatty at info level,
// so its info messages are logged at debug.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.log(slog.LevelError, format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.log(slog.LevelWarn, format, args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.log(slog.LevelDebug, format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.log(slog.LevelDebug, format, args...)
}

func (l *badgerLogger) log(level slog.Level, format string, args ...interface{}) {
	ctx := context.Background()
	if !l.logger.Enabled(ctx, level) {
		return
	}
	l.logger.Log(ctx, level, strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}
