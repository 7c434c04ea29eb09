package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// getSimpleText and getPassword can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

var ErrNoToken = errors.New("no token: pass -t or set AUTHKEEPER_TOKEN")

func (a *App) Signup(ctx context.Context) error {
	var in client.SignupInput
	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"Enter name", &in.Name},
		{"Enter email", &in.Email},
		{"Enter gender", &in.Gender},
	} {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	in.Password = string(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	id, err := a.client.Signup(ctx, in)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s (id %s)\n", common.MsgUserCreated, id)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	token, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, common.MsgLoginSuccessful)
	fmt.Fprintf(a.out, "export AUTHKEEPER_TOKEN=%s\n", token)
	return nil
}

func (a *App) Me(ctx context.Context) error {
	if a.token == "" {
		return ErrNoToken
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	p, err := a.client.Me(ctx, a.token)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "name:   %s\nemail:  %s\ngender: %s\n", p.Name, p.Email, p.Gender)
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "OK")
	return nil
}
