package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context bundles a request context with an optional GORM transaction.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

func New(ctx context.Context) Context {
	return Context{Ctx: ctx}
}

// Conn returns the transaction when set, otherwise fallback, bound to Ctx.
func (c Context) Conn(fallback *gorm.DB) *gorm.DB {
	db := c.Tx
	if db == nil {
		db = fallback
	}
	return db.WithContext(c.context())
}

// Transaction runs fn inside a transaction opened on Conn(fallback). When Tx is
// already set the work is nested under a savepoint.
func (c Context) Transaction(fallback *gorm.DB, fn func(inner Context) error) error {
	return c.Conn(fallback).Transaction(func(tx *gorm.DB) error {
		return fn(Context{Ctx: c.context(), Tx: tx})
	})
}

func (c Context) context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}
