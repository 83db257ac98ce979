package users

import (
	"context"

	"github.com/dmitrijs2005/userholder/internal/logging"
)

// CodeSender delivers an access code to a destination (a phone number or an
// email address). Delivery is best effort: the registry logs failures and
// never rolls an operation back because of them.
type CodeSender interface {
	SendCode(ctx context.Context, destination, code string) error
}

// CodeSenderFunc adapts a plain function to CodeSender.
type CodeSenderFunc func(ctx context.Context, destination, code string) error

func (f CodeSenderFunc) SendCode(ctx context.Context, destination, code string) error {
	return f(ctx, destination, code)
}

// LogCodeSender "delivers" codes by writing them to the log. It stands in
// for a real SMS or mail gateway.
type LogCodeSender struct {
	logger logging.Logger
}

func NewLogCodeSender(logger logging.Logger) *LogCodeSender {
	return &LogCodeSender{logger: logger}
}

func (s *LogCodeSender) SendCode(ctx context.Context, destination, code string) error {
	s.logger.Info(ctx, "access code sent", "destination", destination, "code", code)
	return nil
}
