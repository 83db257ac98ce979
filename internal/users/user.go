// Package users implements user accounts and the in-memory registry that
// keys them by login.
//
// An account is created through one of three factories (NewWithPassword,
// NewWithPhone, Restore), all of which share the same validation. After
// construction only the credential (password hash and access code) changes.
package users

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/userholder/internal/common"
	"github.com/dmitrijs2005/userholder/internal/cryptox"
	"github.com/dmitrijs2005/userholder/internal/phonex"
)

// Meta keys and values recorded on accounts.
const (
	MetaAuth   = "auth"
	MetaSource = "src"

	AuthPassword = "password"
	AuthSMS      = "sms"
	SourceImport = "import"
)

// User is a registered account. All methods are safe for concurrent use.
type User struct {
	id        string
	firstName string
	lastName  string
	email     string
	phone     string
	login     string
	meta      map[string]string
	summary   string

	hasher  cryptox.Hasher
	newCode func() string

	mu           sync.Mutex
	salt         string
	passwordHash string
	accessCode   string
}

// Record carries a previously persisted account: identity fields plus the
// salt and hash that were stored for it.
type Record struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Salt         string
	PasswordHash string
}

// Option customizes how accounts hash secrets and generate access codes.
type Option func(*options)

type options struct {
	hasher  cryptox.Hasher
	newCode func() string
}

// WithHasher sets the credential hasher. The default is cryptox.MD5Hasher.
func WithHasher(h cryptox.Hasher) Option {
	return func(o *options) { o.hasher = h }
}

// WithCodeGenerator replaces cryptox.GenerateAccessCode.
func WithCodeGenerator(fn func() string) Option {
	return func(o *options) { o.newCode = fn }
}

func buildOptions(opts []Option) options {
	o := options{hasher: cryptox.MD5Hasher{}, newCode: cryptox.GenerateAccessCode}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewWithPassword creates an account whose login is the lowercased email.
func NewWithPassword(firstName, lastName, email, password string, opts ...Option) (*User, error) {
	if isBlank(email) {
		return nil, common.ErrMissingIdentity
	}
	if isBlank(password) {
		return nil, common.ErrBlankPassword
	}

	u, err := newUser(firstName, lastName, email, "", map[string]string{MetaAuth: AuthPassword}, buildOptions(opts))
	if err != nil {
		return nil, err
	}
	u.salt = cryptox.DeriveSalt()
	u.passwordHash = u.hasher.Hash(password, u.salt)
	return u, nil
}

// NewWithPhone creates an account whose login is the normalized phone and
// whose credential is a freshly generated access code. The code is available
// through AccessCode; delivering it is up to the caller.
func NewWithPhone(firstName, lastName, phone string, opts ...Option) (*User, error) {
	if isBlank(phone) {
		return nil, common.ErrMissingIdentity
	}

	u, err := newUser(firstName, lastName, "", phone, map[string]string{MetaAuth: AuthSMS}, buildOptions(opts))
	if err != nil {
		return nil, err
	}
	u.salt = cryptox.DeriveSalt()
	u.setAccessCode(u.newCode())
	return u, nil
}

// Restore rebuilds an account from a stored record. The salt and hash are
// taken as is, so the hasher passed in opts must be the one that produced
// them.
func Restore(rec Record, opts ...Option) (*User, error) {
	if rec.Salt == "" || rec.PasswordHash == "" {
		return nil, fmt.Errorf("%w: salt and password hash are required", common.ErrInvalidRecord)
	}

	u, err := newUser(rec.FirstName, rec.LastName, rec.Email, rec.Phone, map[string]string{MetaSource: SourceImport}, buildOptions(opts))
	if err != nil {
		return nil, err
	}
	u.salt = rec.Salt
	u.passwordHash = rec.PasswordHash
	return u, nil
}

func newUser(firstName, lastName, email, phone string, meta map[string]string, o options) (*User, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	if firstName == "" {
		return nil, common.ErrBlankFirstName
	}
	if email == "" && phone == "" {
		return nil, common.ErrMissingIdentity
	}
	// logins without '@' are looked up as phones
	if email != "" && !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidEmail, email)
	}
	if phone != "" {
		if !phonex.IsValid(phone) {
			return nil, fmt.Errorf("%w: %q", common.ErrInvalidPhone, phone)
		}
		phone = phonex.Normalize(phone)
	}

	u := &User{
		id:        uuid.NewString(),
		firstName: firstName,
		lastName:  lastName,
		email:     email,
		phone:     phone,
		meta:      meta,
		hasher:    o.hasher,
		newCode:   o.newCode,
	}
	if email != "" {
		u.login = strings.ToLower(email)
	} else {
		u.login = phone
	}
	u.summary = u.buildSummary()
	return u, nil
}

func (u *User) ID() string        { return u.id }
func (u *User) FirstName() string { return u.firstName }
func (u *User) LastName() string  { return u.lastName }
func (u *User) Email() string     { return u.email }
func (u *User) Phone() string     { return u.phone }
func (u *User) Login() string     { return u.login }

// Meta returns a copy of the account metadata.
func (u *User) Meta() map[string]string { return maps.Clone(u.meta) }

// Summary returns the human readable snapshot taken at construction.
func (u *User) Summary() string { return u.summary }

// FullName is the capitalized "first last" name.
func (u *User) FullName() string {
	return capitalize(strings.Join(u.names(), " "))
}

// Initials are the uppercased first letters of the names, space separated.
func (u *User) Initials() string {
	names := u.names()
	initials := make([]string, 0, len(names))
	for _, n := range names {
		r, _ := utf8.DecodeRuneInString(n)
		initials = append(initials, string(unicode.ToUpper(r)))
	}
	return strings.Join(initials, " ")
}

// AccessCode returns the active access code, if any.
func (u *User) AccessCode() (string, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.accessCode, u.accessCode != ""
}

// Credentials exports the salt and hash so the account can be persisted and
// later rebuilt with Restore.
func (u *User) Credentials() (salt, passwordHash string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.salt, u.passwordHash
}

// CheckPassword reports whether candidate matches the current credential,
// which is either the password or the active access code.
func (u *User) CheckPassword(candidate string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.checkLocked(candidate)
}

// ChangePassword replaces the credential with newPassword if oldPassword
// matches. On mismatch nothing changes and ErrPasswordMismatch is returned.
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.checkLocked(oldPassword) {
		return common.ErrPasswordMismatch
	}
	u.passwordHash = u.hasher.Hash(newPassword, u.salt)
	return nil
}

// RequestAccessCode generates a new access code, makes it the current
// credential and returns it for delivery.
func (u *User) RequestAccessCode() string {
	code := u.newCode()

	u.mu.Lock()
	defer u.mu.Unlock()
	u.setAccessCode(code)
	return code
}

func (u *User) setAccessCode(code string) {
	u.accessCode = code
	u.passwordHash = u.hasher.Hash(code, u.salt)
}

func (u *User) checkLocked(candidate string) bool {
	return cryptox.Equal(u.hasher.Hash(candidate, u.salt), u.passwordHash)
}

func (u *User) names() []string {
	if u.lastName == "" {
		return []string{u.firstName}
	}
	return []string{u.firstName, u.lastName}
}

func (u *User) buildSummary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "firstName: %s\n", u.firstName)
	fmt.Fprintf(&b, "lastName: %s\n", orNull(u.lastName))
	fmt.Fprintf(&b, "login: %s\n", u.login)
	fmt.Fprintf(&b, "fullName: %s\n", u.FullName())
	fmt.Fprintf(&b, "initials: %s\n", u.Initials())
	fmt.Fprintf(&b, "email: %s\n", orNull(u.email))
	fmt.Fprintf(&b, "phone: %s\n", orNull(u.phone))
	fmt.Fprintf(&b, "meta: %s", formatMeta(u.meta))
	return b.String()
}

func formatMeta(meta map[string]string) string {
	pairs := make([]string, 0, len(meta))
	for _, k := range slices.Sorted(maps.Keys(meta)) {
		pairs = append(pairs, k+"="+meta[k])
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

func orNull(s string) string {
	if s == "" {
		return "null"
	}
	return s
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
