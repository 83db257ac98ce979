// Package cli is an interactive front end over the user registry.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/userholder/internal/importer"
	"github.com/dmitrijs2005/userholder/internal/users"
)

type App struct {
	registry *users.Registry
	reader   *bufio.Reader
	out      io.Writer
	login    string
}

func NewApp(registry *users.Registry, in io.Reader, out io.Writer) *App {
	return &App{registry: registry, reader: bufio.NewReader(in), out: out}
}

// Run starts the REPL on the app's input.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to userholder (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) status() string {
	if a.login == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", a.login)
}

func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return a.fail(err)
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return a.fail(err)
	}
	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		return a.fail(err)
	}

	u, err := a.registry.Register(ctx, name, email, password)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Registered %s\n", u.Login())
	return nil
}

func (a *App) RegisterByPhone(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return a.fail(err)
	}
	phone, err := GetSimpleText(a.reader, "Enter phone (+ and 11 digits)", a.out)
	if err != nil {
		return a.fail(err)
	}

	u, err := a.registry.RegisterByPhone(ctx, name, phone)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Registered %s, access code sent\n", u.Login())
	return nil
}

func (a *App) RequestCode(ctx context.Context) error {
	login, err := GetSimpleText(a.reader, "Enter login", a.out)
	if err != nil {
		return a.fail(err)
	}
	if err := a.registry.RequestAccessCode(ctx, login); err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, "Access code sent")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	login, err := GetSimpleText(a.reader, "Enter login", a.out)
	if err != nil {
		return a.fail(err)
	}
	password, err := GetPassword("Enter password or access code", a.out)
	if err != nil {
		return a.fail(err)
	}

	summary, ok := a.registry.Login(ctx, login, password)
	if !ok {
		fmt.Fprintln(a.out, "Invalid login or password")
		return nil
	}
	a.login = users.NormalizeLogin(login)
	fmt.Fprintln(a.out, summary)
	return nil
}

func (a *App) ChangePassword(ctx context.Context) error {
	login := a.login
	if login == "" {
		var err error
		if login, err = GetSimpleText(a.reader, "Enter login", a.out); err != nil {
			return a.fail(err)
		}
	}
	oldPassword, err := GetPassword("Enter current password", a.out)
	if err != nil {
		return a.fail(err)
	}
	newPassword, err := GetPassword("Enter new password", a.out)
	if err != nil {
		return a.fail(err)
	}

	if err := a.registry.ChangePassword(ctx, login, oldPassword, newPassword); err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, "Password changed")
	return nil
}

func (a *App) Import(ctx context.Context) error {
	path, err := GetSimpleText(a.reader, "Enter path to export file", a.out)
	if err != nil {
		return a.fail(err)
	}
	return a.ImportFile(ctx, path)
}

// ImportFile loads a legacy export into the registry. Records that fail are
// reported but do not stop the others.
func (a *App) ImportFile(ctx context.Context, path string) error {
	records, err := importer.ReadFile(path)
	if err != nil {
		return a.fail(err)
	}
	imported, err := a.registry.Import(ctx, records)
	fmt.Fprintf(a.out, "Imported %d of %d users\n", len(imported), len(records))
	if err != nil {
		return a.fail(err)
	}
	return nil
}

func (a *App) fail(err error) error {
	fmt.Fprintln(a.out, "Error:", err.Error())
	return err
}
