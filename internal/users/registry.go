package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/userholder/internal/common"
	"github.com/dmitrijs2005/userholder/internal/logging"
	"github.com/dmitrijs2005/userholder/internal/phonex"
)

// Registry stores accounts keyed by normalized login. It is safe for
// concurrent use; inserts are atomic, so two registrations racing for the
// same login cannot both succeed.
type Registry struct {
	mu     sync.RWMutex
	users  map[string]*User
	logger logging.Logger
	sender CodeSender
	opts   []Option
}

// NewRegistry returns an empty registry. Access codes are handed to sender;
// when sender is nil they are written to the log. opts apply to every
// account the registry creates or restores.
func NewRegistry(logger logging.Logger, sender CodeSender, opts ...Option) *Registry {
	if sender == nil {
		sender = NewLogCodeSender(logger)
	}
	return &Registry{
		users:  make(map[string]*User),
		logger: logger,
		sender: sender,
		opts:   opts,
	}
}

// NormalizeLogin turns a login as typed by a user into a registry key.
// Anything containing '@' is treated as an email and only trimmed; anything
// else is phone-normalized. Email keys are not lowercased here, registration
// already stores them lowercased.
func NormalizeLogin(login string) string {
	if strings.Contains(login, "@") {
		return strings.TrimSpace(login)
	}
	return phonex.Normalize(login)
}

// Register creates a password account for fullName and email.
func (r *Registry) Register(ctx context.Context, fullName, email, password string) (*User, error) {
	op := "Register"

	firstName, lastName, err := SplitFullName(fullName)
	if err != nil {
		r.logger.Warn(ctx, "invalid name", "op", op, "error", err)
		return nil, err
	}

	u, err := NewWithPassword(firstName, lastName, email, password, r.opts...)
	if err != nil {
		r.logger.Warn(ctx, "invalid account", "op", op, "error", err)
		return nil, err
	}

	if err := r.add(ctx, op, u); err != nil {
		return nil, err
	}
	return u, nil
}

// RegisterByPhone creates an access code account for fullName and phone and
// sends the first code to that phone.
func (r *Registry) RegisterByPhone(ctx context.Context, fullName, phone string) (*User, error) {
	op := "RegisterByPhone"

	firstName, lastName, err := SplitFullName(fullName)
	if err != nil {
		r.logger.Warn(ctx, "invalid name", "op", op, "error", err)
		return nil, err
	}

	u, err := NewWithPhone(firstName, lastName, phone, r.opts...)
	if err != nil {
		r.logger.Warn(ctx, "invalid account", "op", op, "error", err)
		return nil, err
	}

	if err := r.add(ctx, op, u); err != nil {
		return nil, err
	}

	code, _ := u.AccessCode()
	r.deliver(ctx, op, u.Phone(), code)
	return u, nil
}

// RequestAccessCode rotates the access code of the account behind login and
// sends the new one to the account's phone, or to its login when it has no
// phone.
func (r *Registry) RequestAccessCode(ctx context.Context, login string) error {
	op := "RequestAccessCode"

	u, ok := r.Lookup(login)
	if !ok {
		r.logger.Warn(ctx, "unknown login", "op", op, "login", login)
		return fmt.Errorf("%w: %s", common.ErrUnknownLogin, login)
	}

	code := u.RequestAccessCode()
	dest := u.Phone()
	if dest == "" {
		dest = u.Login()
	}
	r.deliver(ctx, op, dest, code)
	return nil
}

// Login returns the account summary when password matches. Unknown logins
// and wrong passwords both yield ("", false) so callers cannot tell them
// apart.
func (r *Registry) Login(ctx context.Context, login, password string) (string, bool) {
	op := "Login"

	u, ok := r.Lookup(login)
	if !ok || !u.CheckPassword(password) {
		r.logger.Info(ctx, "login rejected", "op", op, "login", login)
		return "", false
	}

	r.logger.Info(ctx, "user logged in", "op", op, "user_id", u.ID())
	return u.Summary(), true
}

// ChangePassword replaces the credential of the account behind login.
func (r *Registry) ChangePassword(ctx context.Context, login, oldPassword, newPassword string) error {
	op := "ChangePassword"

	u, ok := r.Lookup(login)
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrUnknownLogin, login)
	}
	if err := u.ChangePassword(oldPassword, newPassword); err != nil {
		r.logger.Warn(ctx, "password not changed", "op", op, "user_id", u.ID())
		return err
	}

	r.logger.Info(ctx, "password changed", "op", op, "user_id", u.ID())
	return nil
}

// Import restores accounts from records. Valid, non-duplicate records are
// inserted; the others are reported together in the returned error, each
// tagged with its 1-based position.
func (r *Registry) Import(ctx context.Context, records []Record) ([]*User, error) {
	op := "Import"

	imported := make([]*User, 0, len(records))
	var errs []error
	for i, rec := range records {
		u, err := Restore(rec, r.opts...)
		if err == nil {
			err = r.add(ctx, op, u)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i+1, err))
			continue
		}
		imported = append(imported, u)
	}

	r.logger.Info(ctx, "import finished", "op", op, "imported", len(imported), "failed", len(errs))
	return imported, errors.Join(errs...)
}

// Lookup finds the account behind a login as typed by a user.
func (r *Registry) Lookup(login string) (*User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[NormalizeLogin(login)]
	return u, ok
}

// Len returns the number of stored accounts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

// Reset removes every account.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.users)
}

func (r *Registry) add(ctx context.Context, op string, u *User) error {
	if !r.insertIfAbsent(u) {
		r.logger.Warn(ctx, "login already taken", "op", op, "login", u.Login())
		return fmt.Errorf("%w: %s", common.ErrDuplicateLogin, u.Login())
	}
	r.logger.Info(ctx, "user registered", "op", op, "user_id", u.ID(), "login", u.Login())
	return nil
}

// insertIfAbsent stores u under its login, which construction has already
// normalized, unless that key is taken.
func (r *Registry) insertIfAbsent(u *User) bool {
	key := u.Login()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[key]; exists {
		return false
	}
	r.users[key] = u
	return true
}

func (r *Registry) deliver(ctx context.Context, op, destination, code string) {
	if err := r.sender.SendCode(ctx, destination, code); err != nil {
		r.logger.Warn(ctx, "access code delivery failed", "op", op, "destination", destination, "error", err)
	}
}
