// Package session persists the logged-in session so a restarted client can
// resume without re-entering credentials. The in-memory store is the
// default; the Redis store is for shared kiosk deployments where several
// terminals present the same desk session.
package session

import (
	"context"
)

// Record is the persisted shape of a login session. The account package owns
// the richer Session type; this package only needs opaque fields.
type Record struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	UserJSON []byte `json:"user_json"`
}

// Store persists at most one session.
type Store interface {
	Save(ctx context.Context, rec Record) error
	Load(ctx context.Context) (Record, error)
	Clear(ctx context.Context) error
}
