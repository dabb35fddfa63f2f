package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Keys of the persisted records.
const (
	KeyProfile            = "profile"
	KeyMessages           = "messages"
	KeySettings           = "notification_settings"
	KeyOnboardingComplete = "onboarding_complete"
)

// ErrVersionConflict is returned by a compare-and-swap whose expected
// version no longer matches the stored one.
var ErrVersionConflict = errors.New("store: version conflict")

// get returns the raw value and its version. found is false when the key is
// absent, in which case version is 0.
func (s *Store) get(ctx context.Context, key string) (value []byte, version int64, found bool, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT value, version FROM kv WHERE key = ?`, key,
	).Scan(&value, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, version, true, nil
}

// put unconditionally writes value and bumps the version.
func (s *Store) put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, version, updated_at) VALUES (?, ?, 1, ?)
		 ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			version = kv.version + 1,
			updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// compareAndSwap writes value only if the stored version equals version.
// Version 0 means the key must not exist yet.
func (s *Store) compareAndSwap(ctx context.Context, key string, value []byte, version int64) error {
	var (
		res sql.Result
		err error
	)
	now := time.Now().UTC()
	if version == 0 {
		res, err = s.db.ExecContext(ctx,
			`INSERT INTO kv (key, value, version, updated_at) VALUES (?, ?, 1, ?)
			 ON CONFLICT(key) DO NOTHING`,
			key, value, now,
		)
	} else {
		res, err = s.db.ExecContext(ctx,
			`UPDATE kv SET value = ?, version = version + 1, updated_at = ?
			 WHERE key = ? AND version = ?`,
			value, now, key, version,
		)
	}
	if err != nil {
		return fmt.Errorf("cas %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("cas %s: %w", key, err)
	}
	if n != 1 {
		return fmt.Errorf("cas %s at version %d: %w", key, version, ErrVersionConflict)
	}
	return nil
}

// Version returns the current version of key, 0 when absent.
func (s *Store) Version(ctx context.Context, key string) (int64, error) {
	_, v, _, err := s.get(ctx, key)
	return v, err
}

// Reset deletes every stored record.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv`); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}
