package identity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sandeepkv93/todocal/internal/logging"
)

const (
	ProviderLocal    = "local"
	ProviderFirebase = "firebase"
)

// signInFunc performs the provider-specific anonymous sign-in.
type signInFunc func(ctx context.Context) (*Session, error)

// sessionHolder is the state shared by every provider: the current session,
// its persisted copy and the subscribers watching it.
type sessionHolder struct {
	mu              sync.Mutex
	current         *Session
	credentialsPath string
	notifier        *notifier
	signIn          signInFunc
	logger          logrus.FieldLogger
	now             func() time.Time
	closed          bool
}

func newSessionHolder(credentialsPath string, logger logrus.FieldLogger, signIn signInFunc) (*sessionHolder, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	h := &sessionHolder{
		credentialsPath: credentialsPath,
		notifier:        newNotifier(),
		signIn:          signIn,
		logger:          logger,
		now:             func() time.Time { return time.Now().UTC() },
	}
	restored, err := loadSession(credentialsPath)
	if err != nil {
		return nil, err
	}
	if restored != nil {
		h.current = restored
		logger.WithField(logging.KeyUID, logging.UIDPrefix(restored.UID)).Info("session restored")
	}
	return h, nil
}

func (h *sessionHolder) Current() *Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current.clone()
}

func (h *sessionHolder) Subscribe(buffer int) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.notifier.subscribe(buffer, Event{Session: h.current.clone()})
}

func (h *sessionHolder) SignInAnonymously(ctx context.Context) (*Session, error) {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		return nil, ErrProviderClosed
	}

	s, err := h.signIn(ctx)
	if err != nil {
		return nil, fmt.Errorf("sign in anonymously: %w", err)
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = h.now()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := saveSession(h.credentialsPath, s); err != nil {
		return nil, err
	}
	h.current = s
	h.notifier.publish(Event{Session: s})
	h.logger.WithField(logging.KeyUID, logging.UIDPrefix(s.UID)).Info("signed in")
	return s.clone(), nil
}

func (h *sessionHolder) SignOut(context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := deleteSession(h.credentialsPath); err != nil {
		return err
	}
	had := h.current != nil
	h.current = nil
	h.notifier.publish(Event{})
	if had {
		h.logger.Info("signed out")
	}
	return nil
}

func (h *sessionHolder) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.notifier.close()
}

// Dropped reports how many notifications were dropped because a subscriber
// was not draining its channel.
func (h *sessionHolder) Dropped() uint64 {
	return h.notifier.droppedCount()
}
