package cli

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/schoolauth/internal/client/client"
	"github.com/dmitrijs2005/schoolauth/internal/client/config"
	"github.com/dmitrijs2005/schoolauth/internal/client/services"
	"github.com/dmitrijs2005/schoolauth/internal/logging"
)

// Backend is what the CLI needs from the HTTP client.
type Backend interface {
	services.SessionClient
	Session() *client.Session
}

type App struct {
	backend   Backend
	auth      services.AuthService
	offers    *services.OfferService
	lessons   *services.LessonService
	questions *services.QuestionService
	uploads   *services.UploadService

	prompt *Prompter
	out    io.Writer
	logger logging.Logger
	db     *sql.DB

	openFile func(name string) (io.ReadCloser, error)
}

// NewApp builds the client described by cfg and restores a persisted
// session when a token store path is configured.
func NewApp(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) (*App, error) {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewTextLogger(os.Stderr, level)

	var (
		store client.TokenStore = client.NewMemoryStore()
		db    *sql.DB
	)
	if cfg.TokenStorePath != "" {
		s, sqlDB, err := client.OpenSQLiteTokenStore(ctx, cfg.TokenStorePath)
		if err != nil {
			return nil, err
		}
		store, db = s, sqlDB
	}

	session := client.NewSession(store)
	if err := session.Restore(ctx); err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}

	c := client.New(cfg.BaseURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithSession(session),
		client.WithLogger(logger.With("component", "client")),
	)

	app := newApp(c, NewPrompter(in, out, int(os.Stdin.Fd())), out, logger)
	app.db = db
	return app, nil
}

func newApp(b Backend, p *Prompter, out io.Writer, logger logging.Logger) *App {
	return &App{
		backend:   b,
		auth:      services.NewAuthService(b),
		offers:    services.NewOfferService(b),
		lessons:   services.NewLessonService(b),
		questions: services.NewQuestionService(b),
		uploads:   services.NewUploadService(b),
		prompt:    p,
		out:       out,
		logger:    logger,
		openFile:  func(name string) (io.ReadCloser, error) { return os.Open(name) },
	}
}

// Run blocks in the REPL until exit, end of input or ctx cancellation.
func (a *App) Run(ctx context.Context) {
	a.println("School CLI (type 'help' for commands)")
	a.repl(ctx)
}

// Close releases the session database, if any. The session itself stays
// persisted for the next run.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) loggedIn() bool {
	return a.backend.Session().State() != client.StateUnauthenticated
}

func (a *App) status() string {
	if !a.loggedIn() {
		return ""
	}
	c, err := a.backend.Claims()
	if err != nil || c.Subject == "" {
		return "(authenticated)"
	}
	if c.Role == "" {
		return "(" + c.Subject + ")"
	}
	return "(" + c.Subject + " " + c.Role + ")"
}
