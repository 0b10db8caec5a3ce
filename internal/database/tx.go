package database

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type txKey struct{}

// Transactor runs a unit of work in one database transaction. Repositories
// called with the ctx handed to fn join that transaction through Conn.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TxOptions configures NewTransactor
type TxOptions struct {
	// Serializable requests SERIALIZABLE isolation. A serialization failure
	// is returned to the caller as is; nothing is retried.
	Serializable bool
}

type gormTransactor struct {
	db   *gorm.DB
	opts *sql.TxOptions
}

// NewTransactor creates a Transactor backed by db
func NewTransactor(db *gorm.DB, opts TxOptions) Transactor {
	t := &gormTransactor{db: db}
	if opts.Serializable && db.Dialector.Name() == "postgres" {
		t.opts = &sql.TxOptions{Isolation: sql.LevelSerializable}
	}
	return t
}

func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// Nested calls reuse the outer transaction.
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	run := func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	}
	if t.opts != nil {
		return t.db.WithContext(ctx).Transaction(run, t.opts)
	}
	return t.db.WithContext(ctx).Transaction(run)
}

// Conn returns the transaction carried by ctx, or db bound to ctx otherwise
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
