package identity

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

const (
	authEmulatorEnv = "FIREBASE_AUTH_EMULATOR_HOST"
	secureTokenURL  = "https://securetoken.googleapis.com/v1/token"
	idTokenLifetime = time.Hour
)

type FirebaseConfig struct {
	APIKey          string
	CredentialsPath string
	// Endpoint overrides the Identity Toolkit base URL. When empty and
	// FIREBASE_AUTH_EMULATOR_HOST is set, the emulator is used.
	Endpoint string
	// TokenEndpoint overrides the secure token URL used to refresh ID
	// tokens. The emulator is honored the same way as Endpoint.
	TokenEndpoint string
}

// FirebaseProvider signs users in anonymously through the Identity Toolkit
// API. The issued ID token authorizes document store calls.
type FirebaseProvider struct {
	*sessionHolder
	svc      *identitytoolkit.Service
	apiKey   string
	tokenURL string
}

func NewFirebaseProvider(ctx context.Context, cfg FirebaseConfig, logger logrus.FieldLogger) (*FirebaseProvider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("identity: firebase api key is required")
	}
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if endpoint := resolveEndpoint(cfg.Endpoint); endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	svc, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create identity toolkit service: %w", err)
	}

	p := &FirebaseProvider{svc: svc, apiKey: cfg.APIKey, tokenURL: resolveTokenURL(cfg.TokenEndpoint)}
	h, err := newSessionHolder(cfg.CredentialsPath, logger, p.signUp)
	if err != nil {
		return nil, err
	}
	p.sessionHolder = h
	return p, nil
}

func (p *FirebaseProvider) signUp(ctx context.Context) (*Session, error) {
	resp, err := p.svc.Relyingparty.SignupNewUser(&identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{}).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return sessionFromSignup(resp, p.now())
}

func sessionFromSignup(resp *identitytoolkit.SignupNewUserResponse, now time.Time) (*Session, error) {
	if resp == nil || strings.TrimSpace(resp.LocalId) == "" {
		return nil, errors.New("identity: sign-up response has no user id")
	}
	s := &Session{
		UID:          resp.LocalId,
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
		Provider:     ProviderFirebase,
		CreatedAt:    now,
	}
	if resp.ExpiresIn > 0 {
		s.Expiry = now.Add(time.Duration(resp.ExpiresIn) * time.Second)
	}
	return s, nil
}

// TokenSource serves the session's ID token and, once it is about to
// expire, exchanges the refresh token for a new one at the secure token
// endpoint. Refreshed tokens are cached in memory only.
func (p *FirebaseProvider) TokenSource(ctx context.Context, s *Session) oauth2.TokenSource {
	conf := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  p.tokenURL + "?key=" + url.QueryEscape(p.apiKey),
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	tok := &oauth2.Token{
		AccessToken:  s.IDToken,
		RefreshToken: s.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       tokenExpiry(s, p.now()),
	}
	return oauth2.ReuseTokenSource(tok, conf.TokenSource(ctx, tok))
}

// tokenExpiry never returns the zero time: oauth2 treats a zero expiry as a
// token that never expires.
func tokenExpiry(s *Session, now time.Time) time.Time {
	switch {
	case !s.Expiry.IsZero():
		return s.Expiry
	case !s.CreatedAt.IsZero():
		return s.CreatedAt.Add(idTokenLifetime)
	default:
		return now
	}
}

func resolveEndpoint(explicit string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	host := strings.TrimSpace(os.Getenv(authEmulatorEnv))
	if host == "" {
		return ""
	}
	return "http://" + host + "/www.googleapis.com/identitytoolkit/v3/relyingparty/"
}

func resolveTokenURL(explicit string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	host := strings.TrimSpace(os.Getenv(authEmulatorEnv))
	if host == "" {
		return secureTokenURL
	}
	return "http://" + host + "/securetoken.googleapis.com/v1/token"
}
