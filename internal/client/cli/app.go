package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/bidscurator/internal/client/client"
	"github.com/dmitrijs2005/bidscurator/internal/client/config"
	"github.com/dmitrijs2005/bidscurator/internal/client/services"
	"github.com/dmitrijs2005/bidscurator/internal/logging"
)

var (
	// ErrFailures is returned when a command finished but some entries failed.
	ErrFailures   = errors.New("some operations failed")
	ErrNoSessions = errors.New("no sessions found")
)

// ClientFactory builds the platform client for a validated configuration.
type ClientFactory func(cfg *config.Config) (client.Client, error)

func httpClientFactory(cfg *config.Config) (client.Client, error) {
	return client.NewHTTPClient(cfg.Host, cfg.APIKey, cfg.RequestTimeout)
}

// globalOptions are the persistent flags that are not config keys.
type globalOptions struct {
	configPath string
	verbose    bool
	dryRun     bool
}

type App struct {
	out       io.Writer
	errOut    io.Writer
	newClient ClientFactory

	opts globalOptions

	config         *config.Config
	log            logging.Logger
	client         client.Client
	sessionService services.SessionService
	labelService   services.LabelService
	metaService    services.MetaService
}

type Option func(*App)

// WithOutput redirects tables (out) and logs and prompts (errOut).
func WithOutput(out, errOut io.Writer) Option {
	return func(a *App) {
		a.out = out
		a.errOut = errOut
	}
}

func WithClientFactory(f ClientFactory) Option {
	return func(a *App) {
		a.newClient = f
	}
}

func NewApp(opts ...Option) *App {
	a := &App{
		out:       os.Stdout,
		errOut:    os.Stderr,
		newClient: httpClientFactory,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// setup loads the configuration and builds the logger, the client and the
// services. It runs before every subcommand.
func (a *App) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(a.opts.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	if a.opts.verbose || a.opts.dryRun {
		cfg.Logging.Level = "DEBUG"
	}

	log := logging.New(a.errOut, logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format}).
		With("run", uuid.NewString())

	if cfg.APIKey == "" && isTerminal() {
		key, err := GetAPIKey(a.errOut)
		if err != nil {
			return err
		}
		cfg.APIKey = key
		cfg.Resolve()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	c, err := a.newClient(cfg)
	if err != nil {
		return err
	}
	if a.opts.dryRun {
		log.Info(ctx, "dry run: no metadata will be written and no files uploaded")
		c = client.NewDryRunClient(c, log)
	}

	a.config = cfg
	a.log = log
	a.client = c
	a.sessionService = services.NewSessionService(c, log)
	a.labelService = services.NewLabelService(c, log)
	a.metaService = services.NewMetaService(c, log)
	return nil
}
