package boltdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"

	"github.com/iudanet/optimizeai/internal/client/storage"
)

var credentialsKey = []byte("current")

var _ storage.CredentialStore = (*Storage)(nil)

// SaveToken stores the bearer token, replacing any previous one
func (s *Storage) SaveToken(ctx context.Context, token string) error {
	creds := storage.Credentials{
		Token:   token,
		SavedAt: time.Now().UTC(),
	}

	return s.update(func(bucket *bbolt.Bucket) error {
		// Сериализуем данные в JSON
		data, err := json.Marshal(creds)
		if err != nil {
			return fmt.Errorf("failed to marshal credentials: %w", err)
		}

		if err := bucket.Put(credentialsKey, data); err != nil {
			return fmt.Errorf("failed to save credentials: %w", err)
		}

		return nil
	})
}

// GetToken returns the stored bearer token
func (s *Storage) GetToken(ctx context.Context) (string, error) {
	creds, err := s.GetCredentials(ctx)
	if err != nil {
		return "", err
	}
	return creds.Token, nil
}

// GetCredentials returns the stored record together with its save time
func (s *Storage) GetCredentials(ctx context.Context) (*storage.Credentials, error) {
	var creds *storage.Credentials

	err := s.view(func(bucket *bbolt.Bucket) error {
		data := bucket.Get(credentialsKey)
		if data == nil {
			return storage.ErrTokenNotFound
		}

		creds = &storage.Credentials{}
		if err := json.Unmarshal(data, creds); err != nil {
			return fmt.Errorf("failed to unmarshal credentials: %w", err)
		}

		// Пустой токен эквивалентен отсутствию токена
		if creds.Token == "" {
			return storage.ErrTokenNotFound
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return creds, nil
}

// DeleteToken removes the stored token. Deleting from an empty store is not an error
func (s *Storage) DeleteToken(ctx context.Context) error {
	return s.update(func(bucket *bbolt.Bucket) error {
		if err := bucket.Delete(credentialsKey); err != nil {
			return fmt.Errorf("failed to delete credentials: %w", err)
		}
		return nil
	})
}

func (s *Storage) update(fn func(bucket *bbolt.Bucket) error) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCredentials)
		if bucket == nil {
			return fmt.Errorf("credentials bucket not found")
		}
		return fn(bucket)
	})
	return translateErr(err)
}

func (s *Storage) view(fn func(bucket *bbolt.Bucket) error) error {
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCredentials)
		if bucket == nil {
			return fmt.Errorf("credentials bucket not found")
		}
		return fn(bucket)
	})
	return translateErr(err)
}

func translateErr(err error) error {
	if errors.Is(err, berrors.ErrDatabaseNotOpen) {
		return storage.ErrStorageClosed
	}
	return err
}
