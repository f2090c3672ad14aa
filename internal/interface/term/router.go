package term

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/feehub/student-fee-portal/internal/domain/session"
	"github.com/feehub/student-fee-portal/internal/domain/shared"
	"github.com/feehub/student-fee-portal/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// PAGE SURFACE
// ══════════════════════════════════════════════════════════════════════════════

// Page paths. These mirror the portal's route surface.
const (
	PageHome        = "/"
	PageSignUp      = "/signup"
	PageLogin       = "/login"
	PageStudentList = "/studentlist"
	PageMyProfile   = "/myprofile"
	PagePayFee      = "/payfee"

	// PageExit ends the navigation loop. It is a router sentinel, not a page.
	PageExit = ""
)

// Handler renders one page and returns the next path to navigate to.
// Returning PageExit ends the loop.
type Handler interface {
	Handle(ctx context.Context, t *Terminal) (next string, err error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, t *Terminal) (string, error)

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, t *Terminal) (string, error) {
	return f(ctx, t)
}

// ══════════════════════════════════════════════════════════════════════════════
// ROUTER
// ══════════════════════════════════════════════════════════════════════════════

// RouterConfig contains configuration for the router.
type RouterConfig struct {
	// Sessions is the persisted session store, reloaded before every page so
	// a login or logout on one page is visible to the next.
	Sessions session.Store

	// In and Out are the terminal streams.
	In  io.Reader
	Out io.Writer

	// Logger for structured logging.
	Logger *logger.Logger
}

// Router walks the page surface. Protected pages redirect to the login page
// when no valid session is present.
type Router struct {
	config    RouterConfig
	logger    *logger.Logger
	terminal  *Terminal
	handlers  map[string]Handler
	protected map[string]bool
}

// NewRouter creates a router with no pages registered. The terminal is shared
// across pages so buffered input survives navigation.
func NewRouter(config RouterConfig) *Router {
	if config.Logger == nil {
		config.Logger = logger.Default()
	}
	return &Router{
		config:    config,
		logger:    config.Logger.With(logger.Component("router")),
		terminal:  NewTerminal(config.In, config.Out),
		handlers:  make(map[string]Handler),
		protected: make(map[string]bool),
	}
}

// Register registers a public page handler.
func (r *Router) Register(path string, h Handler) {
	r.handlers[path] = h
}

// RegisterProtected registers a page that requires a valid session.
func (r *Router) RegisterProtected(path string, h Handler) {
	r.handlers[path] = h
	r.protected[path] = true
}

// Run navigates from the entry page until a handler returns PageExit or the
// context is cancelled.
func (r *Router) Run(ctx context.Context) error {
	path := PageHome

	for path != PageExit {
		if err := ctx.Err(); err != nil {
			return err
		}

		handler, ok := r.handlers[path]
		if !ok {
			return shared.NewDomainError("router", "Run", shared.ErrNotFound, "no page at "+path)
		}

		sess, err := r.config.Sessions.Load()
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}

		if r.protected[path] && sess.Validate(time.Now()) != nil {
			r.logger.Info("redirecting to login", logger.Page(path))
			fmt.Fprintln(r.config.Out, "Please log in first.")
			path = PageLogin
			continue
		}

		r.terminal.Session = sess

		start := time.Now()
		next, err := handler.Handle(ctx, r.terminal)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// A handler asking to exit along with its error means the input
			// stream is gone; navigating home would just prompt into the same
			// dead stream forever.
			if next == PageExit || errors.Is(err, io.EOF) {
				r.logger.Info("input closed, stopping", logger.Page(path), logger.Err(err))
				return err
			}
			r.logger.Error("page failed", logger.Page(path), logger.Err(err))
			fmt.Fprintln(r.config.Out, "Something went wrong. Returning to the start page.")
			path = PageHome
			continue
		}

		r.logger.Debug("page rendered",
			logger.Page(path),
			logger.String("next", next),
			logger.Latency(time.Since(start)))
		path = next
	}
	return nil
}
