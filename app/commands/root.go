// Package commands is the helpboard command line: the HTTP server plus
// subcommands that drive the same services from a terminal.
package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"helpboard/app/config"
	"helpboard/app/repositories"
	"helpboard/app/services"
	"helpboard/app/storage"
)

const cliVersion = "1.0.0"

// skipStore marks commands that run without opening the backend.
const skipStore = "skipStore"

var (
	success = color.New(color.FgGreen)
	warning = color.New(color.FgYellow)
	subtle  = color.New(color.Faint)
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	now     repositories.Clock
	backend string
	dataDir string

	cfg         *config.Config
	store       *storage.Store
	posts       *repositories.PostRepository
	postService *services.PostService
	auth        *services.AuthService
}

// userError prints the user-facing text of a core error and still unwraps
// to it.
type userError struct {
	err error
}

func (e *userError) Error() string { return services.UserMessage(e.err) }
func (e *userError) Unwrap() error { return e.err }

func friendly(err error) error {
	if err == nil {
		return nil
	}
	return &userError{err: err}
}

// Execute runs the command line with os.Args.
func Execute() error {
	root, a := newRootCommand(nil)
	defer a.close()
	return root.Execute()
}

func newRootCommand(now repositories.Clock) (*cobra.Command, *app) {
	if now == nil {
		now = repositories.SystemClock
	}
	a := &app{now: now}

	root := &cobra.Command{
		Use:   "helpboard",
		Short: "A community help board",
		Long: `helpboard lets neighbours post help requests, browse them by
category, and mark them closed once someone has helped.

Run "helpboard serve" for the web dashboard, or use the subcommands below.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "badger data directory (overrides HELPBOARD_DATA_DIR)")
	root.PersistentFlags().StringVar(&a.backend, "backend", "", "storage backend: badger, redis or memory (overrides HELPBOARD_BACKEND)")

	root.AddCommand(
		versionCommand(),
		a.serveCommand(),
		a.registerCommand(),
		a.loginCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.categoriesCommand(),
		a.postCommand(),
		a.postsCommand(),
		a.statsCommand(),
		a.backupCommand(),
		a.restoreCommand(),
		a.cleanCommand(),
	)
	return root, a
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Show version information",
		Annotations: map[string]string{skipStore: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "helpboard version %s\n", cliVersion)
		},
	}
}

// open loads the configuration, applies flag overrides and wires the
// repositories and services.
func (a *app) open(cmd *cobra.Command) error {
	if cmd.Annotations[skipStore] == "true" {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.backend != "" {
		cfg.Backend = a.backend
	}
	if a.dataDir != "" {
		cfg.DataDir = a.dataDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	slog.SetDefault(cfg.Logger())

	backend, err := cfg.OpenBackend()
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.Backend, err)
	}
	a.cfg = cfg
	a.store = storage.NewStore(backend, slog.Default())

	a.posts = repositories.NewPostRepository(a.store, a.now)
	a.posts.Load()
	a.postService = services.NewPostService(a.posts)
	a.auth = services.NewAuthService(repositories.NewUserRepository(a.store), a.now)
	return nil
}

func (a *app) close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
	a.store = nil
}

// requireLogin gates the post commands the way the web dashboard does.
func (a *app) requireLogin() error {
	_, err := a.auth.RequireSession()
	return friendly(err)
}

func printSuccess(w io.Writer, format string, args ...interface{}) {
	success.Fprintf(w, format+"\n", args...)
}
