// Package cli implements the Geniable command-line interface: login, logout,
// and whoami. Commands print to stdout and return process exit codes; all
// authentication work is delegated to the auth client.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mnedelko/geniable/internal/buildinfo"
	"github.com/mnedelko/geniable/internal/client/auth"
	"github.com/mnedelko/geniable/internal/client/config"
	"github.com/mnedelko/geniable/internal/client/tokens"
	"github.com/mnedelko/geniable/internal/logging"
)

// authClient is the slice of *auth.Client the commands use. Tests substitute
// a fake.
type authClient interface {
	Login(ctx context.Context, username, password string) (*auth.LoginResult, error)
	CompletePasswordChange(ctx context.Context, session, userID, newPassword, email string) (*tokens.AuthTokens, error)
	Logout(ctx context.Context) error
	CurrentTokens(ctx context.Context) *tokens.AuthTokens
	IsAuthenticated(ctx context.Context) bool
}

type App struct {
	config *config.Config
	auth   authClient
	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires the production dependencies: the provider SDK client, the
// token store (keyring plus file fallback), and a stderr logger.
func NewApp(cfg *config.Config) (*App, error) {
	idp, err := auth.NewIdentityProvider(context.Background(), cfg.Region)
	if err != nil {
		return nil, err
	}

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	var secure tokens.Backend
	if cfg.UseKeyring {
		secure = tokens.NewKeyringBackend()
	}
	store := tokens.NewStore(secure, tokens.NewFileBackend(cfg.ConfigDir), log)

	return &App{
		config: cfg,
		auth:   auth.NewClient(cfg.UserPoolID, cfg.ClientID, idp, store, log),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

var commands = map[string]struct{}{
	"login": {}, "logout": {}, "whoami": {}, "version": {}, "help": {},
}

// Run dispatches the subcommand and returns the process exit code. The
// command may appear anywhere in args; flag values never shadow it.
func (a *App) Run(ctx context.Context, args []string) int {
	cmd := ""
	for _, arg := range args {
		if _, ok := commands[arg]; ok {
			cmd = arg
			break
		}
		if len(arg) > 0 && arg[0] != '-' && cmd == "" {
			cmd = arg
		}
	}

	switch cmd {
	case "login":
		return a.Login(ctx, args)
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.Whoami(ctx)
	case "version":
		buildinfo.PrintBuildData(a.out)
		return 0
	case "", "help":
		a.usage()
		return 0
	default:
		fmt.Fprintf(a.out, "Unknown command: %s\n", cmd)
		a.usage()
		return 1
	}
}

func (a *App) usage() {
	fmt.Fprintln(a.out, "Usage: geni [flags] <command>")
	fmt.Fprintln(a.out, "")
	fmt.Fprintln(a.out, "Commands:")
	fmt.Fprintln(a.out, "  login    authenticate against the Geniable cloud service")
	fmt.Fprintln(a.out, "  logout   clear stored authentication tokens")
	fmt.Fprintln(a.out, "  whoami   show current authentication status")
	fmt.Fprintln(a.out, "  version  show build information")
	fmt.Fprintln(a.out, "")
	fmt.Fprintln(a.out, "Flags:")
	fmt.Fprintln(a.out, "  -e string     email address (login)")
	fmt.Fprintln(a.out, "  -no-keyring   use file storage instead of the system keyring")
	fmt.Fprintln(a.out, "  -c string     path to a JSON config file")
}
