// Package cli implements the authkeeper-cli commands: signup, login, me and
// ping. Each command prompts for what it needs on stdin and talks to the
// server through an AuthClient.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/client/client"
)

var ErrUnknownCommand = errors.New("unknown command")

type AuthClient interface {
	Signup(ctx context.Context, in client.SignupInput) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, token string) (*client.Profile, error)
	Ping(ctx context.Context) error
}

type App struct {
	client  AuthClient
	reader  *bufio.Reader
	out     io.Writer
	token   string
	timeout time.Duration
}

func NewApp(c AuthClient, in io.Reader, out io.Writer, token string, timeout time.Duration) *App {
	return &App{
		client:  c,
		reader:  bufio.NewReader(in),
		out:     out,
		token:   token,
		timeout: timeout,
	}
}

const usage = `usage: authkeeper-cli [-a addr] [-t token] [-timeout d] <command>

commands:
  signup   create an account
  login    print a bearer token for an account
  me       show the account of the token (-t or AUTHKEEPER_TOKEN)
  ping     check the server is reachable
`

func (a *App) Usage() {
	fmt.Fprint(a.out, usage)
}

// Run executes the named command.
func (a *App) Run(ctx context.Context, command string) error {
	cmds := map[string]func(context.Context) error{
		"signup": a.Signup,
		"login":  a.Login,
		"me":     a.Me,
		"ping":   a.Ping,
	}

	cmd, ok := cmds[command]
	if !ok {
		a.Usage()
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
	return cmd(ctx)
}

// withTimeout bounds a single server call.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}
