package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests use a stub.
type execIface interface {
	Register(ctx context.Context) error
	RegisterByPhone(ctx context.Context) error
	RequestCode(ctx context.Context) error
	Login(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Import(ctx context.Context) error
}

// runREPL reads commands from reader until EOF, exit or quit. Command
// handlers prompt on the same reader, so it must not be wrapped in a
// read-ahead scanner.
//
//	help      show available commands
//	register  create an account with email and password
//	regphone  create an account with a phone number
//	code      request a new access code
//	login     log in and print the account summary
//	passwd    change a password
//	import    load accounts from a legacy export
//	exit|quit leave the program
//
// Errors from command handlers are ignored here; handlers report them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("uh%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			printlnFn("Available commands: register, regphone, code, login, passwd, import, exit")

		case "register":
			_ = a.Register(ctx)

		case "regphone":
			_ = a.RegisterByPhone(ctx)

		case "code":
			_ = a.RequestCode(ctx)

		case "login":
			_ = a.Login(ctx)

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "import":
			_ = a.Import(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
