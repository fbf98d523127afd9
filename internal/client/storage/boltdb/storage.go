// Package boltdb keeps the client's credentials in a single bbolt file.
package boltdb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"
)

var (
	bucketCredentials = []byte("credentials")
	bucketMeta        = []byte("meta")

	schemaVersionKey = []byte("schema_version")
)

// schemaVersion версия формата файла; более новый формат не открываем
const schemaVersion = 1

// ErrUnsupportedSchema is returned when the file was written by a newer client.
var ErrUnsupportedSchema = errors.New("local database was created by a newer client")

// openTimeout ограничивает ожидание файловой блокировки,
// если БД уже открыта другим процессом клиента
const openTimeout = time.Second

// Storage is the bbolt-backed credential store.
type Storage struct {
	db   *bbolt.DB
	path string
}

// New opens or creates the database at dbPath. Missing parent directories
// are created with owner-only permissions.
func New(ctx context.Context, dbPath string) (*Storage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		if errors.Is(err, berrors.ErrTimeout) {
			return nil, fmt.Errorf("database %s is locked by another client process", dbPath)
		}
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{db: db, path: dbPath}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *Storage) Path() string {
	return s.path
}

// Close closes the database file.
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// migrate создает buckets и проверяет версию формата
func (s *Storage) migrate() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		meta, err := tx.CreateBucketIfNotExists(bucketMeta)
		if err != nil {
			return fmt.Errorf("failed to create meta bucket: %w", err)
		}

		if raw := meta.Get(schemaVersionKey); raw != nil {
			v, err := strconv.Atoi(string(raw))
			if err != nil {
				return fmt.Errorf("corrupted schema version %q", raw)
			}
			if v > schemaVersion {
				return fmt.Errorf("%w (version %d)", ErrUnsupportedSchema, v)
			}
		}

		if err := meta.Put(schemaVersionKey, []byte(strconv.Itoa(schemaVersion))); err != nil {
			return fmt.Errorf("failed to write schema version: %w", err)
		}

		if _, err := tx.CreateBucketIfNotExists(bucketCredentials); err != nil {
			return fmt.Errorf("failed to create credentials bucket: %w", err)
		}
		return nil
	})
}
