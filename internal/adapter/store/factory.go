// Package store selects the storage backend for an identity: the
// postgres adapter for authenticated users, the local JSON store for
// guests. Call sites never branch on auth state themselves.
package store

import (
	"github.com/jmoiron/sqlx"

	"focusquest/internal/adapter/db"
	"focusquest/internal/adapter/localstore"
	"focusquest/internal/core/domain"
	"focusquest/internal/core/ports"
)

type Factory struct {
	db    *sqlx.DB
	guest *localstore.Store
}

var _ ports.StoreFactory = (*Factory)(nil)

func NewFactory(conn *sqlx.DB, guest *localstore.Store) *Factory {
	return &Factory{db: conn, guest: guest}
}

func (f *Factory) StoreFor(identity domain.Identity) ports.TaskStore {
	if identity.IsGuest() {
		return f.guest
	}
	return db.NewTaskRepository(f.db, identity.UserID)
}
