package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	calls []string
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeExec) Register(ctx context.Context) error { return f.record("register") }
func (f *fakeExec) RegisterByPhone(ctx context.Context) error { return f.record("regphone") }
func (f *fakeExec) RequestCode(ctx context.Context) error { return f.record("code") }
func (f *fakeExec) Login(ctx context.Context) error { return f.record("login") }
func (f *fakeExec) ChangePassword(ctx context.Context) error { return f.record("passwd") }
func (f *fakeExec) Import(ctx context.Context) error { return f.record("import") }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var out []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, 0, len(a))
		for _, v := range a {
			if s, ok := v.(string); ok {
				parts = append(parts, s)
			}
		}
		out = append(out, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &out
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	out := captureOutput(t)

	input := strings.Join([]string{
		"help",
		"",
		"register",
		"regphone",
		"code",
		"login",
		"passwd",
		"import",
		"bogus",
		"exit",
		"login",
	}, "\n")

	f := &fakeExec{}
	runREPL(context.Background(), f, func() string { return "" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{"register", "regphone", "code", "login", "passwd", "import"}, f.calls)
	assert.Contains(t, *out, "Unknown command: bogus")
	assert.Contains(t, *out, "Bye!")
	assert.Contains(t, strings.Join(*out, "\n"), "Available commands")
}

func TestRunREPL_StopsOnEOFAndHandlesUnterminatedLastLine(t *testing.T) {
	captureOutput(t)

	f := &fakeExec{}
	runREPL(context.Background(), f, func() string { return "" }, bufio.NewReader(strings.NewReader("login\nquit-not\nregister")))

	assert.Equal(t, []string{"login", "register"}, f.calls)
}

func TestRunREPL_PromptShowsStatus(t *testing.T) {
	out := captureOutput(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return " (ivan@mail.com)" }, bufio.NewReader(strings.NewReader("quit\n")))

	assert.Equal(t, "uh (ivan@mail.com)> ", (*out)[0])
}
