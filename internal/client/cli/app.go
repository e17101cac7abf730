package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/storefront/internal/client/catalog"
	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/client/persistence"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/kv"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// App wires the storefront components to one kv store and drives them from
// an interactive shell.
type App struct {
	config    *config.Config
	log       logging.Logger
	store     kv.Store
	gw        *persistence.Gateway
	catalog   *catalog.Static
	cart      *services.CartStore
	favorites *services.FavoritesSet
	users     *services.UserDirectory
	session   *services.SessionManager
	reader    *bufio.Reader
	out       io.Writer
}

// NewApp builds the logger and opens the configured store.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log, err := logging.New(c.LogFormat, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	store, err := OpenStore(ctx, c)
	if err != nil {
		log.Error(ctx, "error opening storage", "backend", c.Backend, "error", err)
		return nil, err
	}

	return newApp(c, log, store, os.Stdin, os.Stdout), nil
}

// OpenStore opens the kv store selected by c.Backend.
func OpenStore(ctx context.Context, c *config.Config) (kv.Store, error) {
	switch c.Backend {
	case config.BackendSQLite:
		return kv.OpenSQLite(ctx, c.DataPath)
	case config.BackendNuts:
		return kv.OpenNuts(c.DataPath)
	case config.BackendMemory:
		return kv.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", c.Backend)
	}
}

func newApp(c *config.Config, log logging.Logger, store kv.Store, in io.Reader, out io.Writer, opts ...services.DirectoryOption) *App {
	gw := persistence.NewGateway(store, log)
	cat := catalog.Default()
	opts = append([]services.DirectoryOption{services.WithRecentWindow(c.RecentWindow)}, opts...)
	users := services.NewUserDirectory(gw, log, opts...)

	return &App{
		config:    c,
		log:       log,
		store:     store,
		gw:        gw,
		catalog:   cat,
		cart:      services.NewCartStore(gw, cat, log),
		favorites: services.NewFavoritesSet(gw, cat, log),
		users:     users,
		session:   services.NewSessionManager(gw, users, log),
		reader:    bufio.NewReader(in),
		out:       out,
	}
}

// Hydrate loads every component from storage and resumes a remembered
// session. Users load before the session so it can be checked against them.
func (a *App) Hydrate(ctx context.Context) {
	a.cart.Hydrate(ctx)
	a.favorites.Hydrate(ctx)
	a.users.Hydrate(ctx)
	if s, ok := a.session.Resume(ctx); ok {
		a.println("Welcome back,", s.FirstName+"!")
	}
}

// Run hydrates state and blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.Close(); err != nil {
			a.log.Error(ctx, "error closing storage", "error", err)
		}
	}()

	a.println("Welcome to the storefront CLI (type 'help' for commands)")
	a.Hydrate(ctx)
	runREPL(ctx, a, a.reader, a.out)
}

func (a *App) Close() error {
	return a.store.Close()
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
