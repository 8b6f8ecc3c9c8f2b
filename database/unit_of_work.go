package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StorageError wraps any failure raised by the persistence layer
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsDuplicate reports whether err comes from a unique constraint violation
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Find returns the first T matching query, or nil when nothing matches.
// Pass a scoped db (Preload, Unscoped) to shape the lookup.
func Find[T any](ctx context.Context, db *gorm.DB, query interface{}, args ...interface{}) (*T, error) {
	var rec T
	err := db.WithContext(ctx).Where(query, args...).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "find", Err: err}
	}
	return &rec, nil
}

// List returns every T matching query in the given order. A nil query matches all rows.
func List[T any](ctx context.Context, db *gorm.DB, order string, query interface{}, args ...interface{}) ([]T, error) {
	tx := db.WithContext(ctx)
	if query != nil {
		tx = tx.Where(query, args...)
	}
	if order != "" {
		tx = tx.Order(order)
	}
	recs := make([]T, 0)
	if err := tx.Find(&recs).Error; err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	return recs, nil
}

// Exists reports whether at least one T matches query
func Exists[T any](ctx context.Context, db *gorm.DB, query interface{}, args ...interface{}) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(new(T)).Where(query, args...).Limit(1).Count(&n).Error; err != nil {
		return false, &StorageError{Op: "exists", Err: err}
	}
	return n > 0, nil
}

type changeKind int

const (
	changeAdd changeKind = iota
	changeUpdate
	changeRemove
)

type change struct {
	kind   changeKind
	record interface{}
}

// UnitOfWork collects pending changes and writes them in one transaction.
// Associations are never cascaded; every record must be staged explicitly.
type UnitOfWork struct {
	db      *gorm.DB
	retry   RetryPolicy
	pending []change
}

// Add stages a new record for insertion
func (u *UnitOfWork) Add(record interface{}) {
	u.pending = append(u.pending, change{kind: changeAdd, record: record})
}

// Update stages a full save of an existing record
func (u *UnitOfWork) Update(record interface{}) {
	u.pending = append(u.pending, change{kind: changeUpdate, record: record})
}

// Remove stages a delete; soft-deletable models are only marked deleted
func (u *UnitOfWork) Remove(record interface{}) {
	u.pending = append(u.pending, change{kind: changeRemove, record: record})
}

// Pending returns the number of staged changes
func (u *UnitOfWork) Pending() int {
	return len(u.pending)
}

// Commit applies all staged changes atomically. On failure nothing is
// written and the staged changes are kept; on success they are cleared.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if len(u.pending) == 0 {
		return nil
	}

	err := u.retry.do(ctx, IsTransient, func(ctx context.Context) error {
		return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for _, c := range u.pending {
				var res *gorm.DB
				switch c.kind {
				case changeAdd:
					res = tx.Omit(clause.Associations).Create(c.record)
				case changeUpdate:
					res = tx.Omit(clause.Associations).Save(c.record)
				case changeRemove:
					res = tx.Delete(c.record)
				}
				if res.Error != nil {
					return res.Error
				}
			}
			return nil
		})
	})
	if err != nil {
		return &StorageError{Op: "commit", Err: err}
	}

	u.pending = nil
	return nil
}
