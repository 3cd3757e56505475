package identity

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNoSession      = errors.New("identity: no session")
	ErrProviderClosed = errors.New("identity: provider closed")
)

// Session is an anonymous identity handle issued by a provider.
type Session struct {
	UID          string    `json:"uid"`
	IDToken      string    `json:"id_token,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Provider     string    `json:"provider"`
	CreatedAt    time.Time `json:"created_at"`
	// Expiry is when IDToken stops being accepted. Zero means unknown.
	Expiry time.Time `json:"expiry,omitempty"`
}

func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

// Event is a session-change notification. A nil Session means signed out.
type Event struct {
	Session *Session
}

type Provider interface {
	// Current returns a copy of the active session, or nil.
	Current() *Session
	SignInAnonymously(ctx context.Context) (*Session, error)
	SignOut(ctx context.Context) error
	// Subscribe registers for session changes. The current state is
	// delivered first. The returned func unsubscribes and may be called
	// more than once.
	Subscribe(buffer int) (<-chan Event, func())
	Close()
}
