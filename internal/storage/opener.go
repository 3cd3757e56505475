package storage

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/sandeepkv93/todocal/internal/identity"
)

const (
	BackendFirestore = "firestore"
	BackendSQLite    = "sqlite"
)

// Opener opens a repository on behalf of a session.
type Opener func(ctx context.Context, session *identity.Session) (Repository, error)

type OpenerConfig struct {
	Backend    string
	ProjectID  string
	Collection string
	SQLitePath string
	// TokenSource builds the credentials for a session's firestore calls.
	// When nil the session's ID token is sent as-is.
	TokenSource func(ctx context.Context, session *identity.Session) oauth2.TokenSource
}

func NewOpener(cfg OpenerConfig) (Opener, error) {
	switch cfg.Backend {
	case BackendFirestore:
		return func(ctx context.Context, session *identity.Session) (Repository, error) {
			if session == nil {
				return nil, identity.ErrNoSession
			}
			return OpenFirestore(ctx, FirestoreConfig{
				ProjectID:   cfg.ProjectID,
				Collection:  cfg.Collection,
				TokenSource: firestoreTokenSource(ctx, cfg, session),
			})
		}, nil
	case BackendSQLite:
		return func(ctx context.Context, session *identity.Session) (Repository, error) {
			if session == nil {
				return nil, identity.ErrNoSession
			}
			return OpenSQLite(cfg.SQLitePath)
		}, nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
	}
}

func firestoreTokenSource(ctx context.Context, cfg OpenerConfig, session *identity.Session) oauth2.TokenSource {
	if cfg.TokenSource != nil {
		return cfg.TokenSource(ctx, session)
	}
	if session.IDToken == "" {
		return nil
	}
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: session.IDToken, TokenType: "Bearer"})
}
