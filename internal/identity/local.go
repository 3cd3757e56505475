package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LocalProvider issues anonymous sessions without a remote identity service.
// It pairs with the sqlite backend.
type LocalProvider struct {
	*sessionHolder
}

func NewLocalProvider(credentialsPath string, logger logrus.FieldLogger) (*LocalProvider, error) {
	h, err := newSessionHolder(credentialsPath, logger, func(ctx context.Context) (*Session, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return &Session{UID: uuid.NewString(), Provider: ProviderLocal}, nil
	})
	if err != nil {
		return nil, err
	}
	return &LocalProvider{sessionHolder: h}, nil
}
