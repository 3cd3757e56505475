package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/sandeepkv93/todocal/internal/identity"
	"github.com/sandeepkv93/todocal/internal/instrumentation"
	"github.com/sandeepkv93/todocal/internal/logging"
	"github.com/sandeepkv93/todocal/internal/storage"
	"github.com/sandeepkv93/todocal/internal/todos"
	"github.com/sandeepkv93/todocal/internal/update"
)

// runtime is everything a subcommand needs, built from the resolved config.
type runtime struct {
	cfg      update.RuntimeConfig
	logger   *logrus.Logger
	logFile  io.Closer
	metrics  *instrumentation.Metrics
	provider identity.Provider
	open     storage.Opener
}

func newRuntime(ctx context.Context, cfg update.RuntimeConfig) (*runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, logFile, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	r := &runtime{
		cfg:     cfg,
		logger:  logger,
		logFile: logFile,
		metrics: instrumentation.NewMetrics(),
	}

	provider, err := newProvider(ctx, cfg, logger)
	if err != nil {
		r.Close()
		return nil, err
	}
	r.provider = provider

	openerCfg := cfg.OpenerConfig()
	if fp, ok := provider.(*identity.FirebaseProvider); ok {
		openerCfg.TokenSource = fp.TokenSource
	}
	open, err := storage.NewOpener(openerCfg)
	if err != nil {
		r.Close()
		return nil, err
	}
	r.open = open
	logger.WithField(logging.KeyBackend, cfg.Backend).Debug("runtime ready")
	return r, nil
}

// newProvider pairs the remote store with Firebase identity and the local
// store with locally issued sessions.
func newProvider(ctx context.Context, cfg update.RuntimeConfig, logger logrus.FieldLogger) (identity.Provider, error) {
	if cfg.Backend == storage.BackendFirestore {
		return identity.NewFirebaseProvider(ctx, identity.FirebaseConfig{
			APIKey:          cfg.APIKey,
			CredentialsPath: cfg.CredentialsPath,
		}, logger)
	}
	return identity.NewLocalProvider(cfg.CredentialsPath, logger)
}

// client opens the store for the persisted session.
func (r *runtime) client(ctx context.Context) (*todos.Client, error) {
	session := r.provider.Current()
	if session == nil {
		return nil, fmt.Errorf("%w: run `todocal login` first", identity.ErrNoSession)
	}
	repo, err := r.open(ctx, session)
	if err != nil {
		return nil, err
	}
	return todos.NewClient(repo, session, todos.Options{
		Limit:   r.cfg.FetchLimit,
		Timeout: r.cfg.RequestTimeout,
		Logger:  r.logger,
		Metrics: r.metrics,
	}), nil
}

func (r *runtime) Close() {
	if r.provider != nil {
		r.provider.Close()
	}
	if r.logFile != nil {
		_ = r.logFile.Close()
	}
}
