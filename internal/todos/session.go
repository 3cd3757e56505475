package todos

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sandeepkv93/todocal/internal/identity"
	"github.com/sandeepkv93/todocal/internal/instrumentation"
	"github.com/sandeepkv93/todocal/internal/logging"
)

// Login signs in anonymously. Failures are logged and counted; the session
// change itself reaches the UI through the provider's notifications.
func Login(ctx context.Context, p identity.Provider, logger logrus.FieldLogger, metrics *instrumentation.Metrics) (*identity.Session, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	started := time.Now()
	s, err := p.SignInAnonymously(ctx)
	metrics.ObserveRemote(OpLogin, started, err)
	if err != nil {
		logging.Operation(logger, OpLogin).WithError(err).Warn("login failed")
		return nil, err
	}
	return s, nil
}

func Logout(ctx context.Context, p identity.Provider, logger logrus.FieldLogger, metrics *instrumentation.Metrics) error {
	if logger == nil {
		logger = logging.Discard()
	}
	started := time.Now()
	err := p.SignOut(ctx)
	metrics.ObserveRemote(OpLogout, started, err)
	if err != nil {
		logging.Operation(logger, OpLogout).WithError(err).Warn("logout failed")
	}
	return err
}
