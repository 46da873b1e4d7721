package db

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// compile-time check that *store implements Store
var _ Store = (*store)(nil)

// store implements Store over a GORM database handle
type store struct {
	db *gorm.DB
}

// NewStore creates the persistence gateway over an open database
func NewStore(database Database) Store {
	return &store{db: database.DB()}
}

// NewStoreFromGorm creates a store over a raw GORM handle, used by tests
func NewStoreFromGorm(db *gorm.DB) Store {
	return &store{db: db}
}

// WithTx runs fn inside a single transaction
func (s *store) WithTx(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&store{db: tx})
	})
}

// translateError maps GORM and driver errors to package sentinels
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}
	// glebarez/sqlite surfaces constraint violations as driver errors
	// with a UNIQUE prefix in the message
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicateName
	}
	return err
}
