package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"treatment-booking-api/internal/events"
	"treatment-booking-api/internal/model"
	"treatment-booking-api/internal/store"
)

var (
	// ErrUnauthorized means no credential was presented.
	ErrUnauthorized = errors.New("unauthorized access")
	// ErrForbidden means a credential was presented but does not allow the
	// operation: bad or expired token, wrong identity, or missing role.
	ErrForbidden = errors.New("forbidden access")
	// ErrUnknownAccount denies token issuance for an email with no account.
	ErrUnknownAccount = errors.New("no account for email")
)

// Accounts is the slice of the user store the authorizer needs.
type Accounts interface {
	UserByEmail(ctx context.Context, email string) (*model.UserAccount, error)
	PromoteToAdmin(ctx context.Context, id string) (store.PromoteResult, error)
}

type Token struct {
	Value     string
	ExpiresAt time.Time
}

type Authorizer struct {
	users  Accounts
	secret string
	events events.Publisher
	log    zerolog.Logger
	now    func() time.Time
}

type Option func(*Authorizer)

func WithClock(now func() time.Time) Option { return func(a *Authorizer) { a.now = now } }

func WithPublisher(p events.Publisher) Option { return func(a *Authorizer) { a.events = p } }

func WithLogger(l zerolog.Logger) Option { return func(a *Authorizer) { a.log = l } }

func New(users Accounts, secret string, opts ...Option) *Authorizer {
	a := &Authorizer{
		users:  users,
		secret: secret,
		events: events.Nop{},
		log:    zerolog.Nop(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// IssueToken signs a token for an existing account only.
func (a *Authorizer) IssueToken(ctx context.Context, email string) (Token, error) {
	if _, err := a.users.UserByEmail(ctx, email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Token{}, ErrUnknownAccount
		}
		return Token{}, fmt.Errorf("lookup account: %w", err)
	}
	raw, exp, err := MakeToken(email, a.secret, a.now())
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}
	return Token{Value: raw, ExpiresAt: exp}, nil
}

// VerifyToken returns the email the token was issued to. Every failure is
// reported as ErrForbidden.
func (a *Authorizer) VerifyToken(raw string) (string, error) {
	c, err := ParseToken(raw, a.secret, jwt.WithTimeFunc(a.now))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrForbidden, err)
	}
	return c.Email, nil
}

// Authenticate verifies an Authorization header of the form "Bearer <jwt>".
func (a *Authorizer) Authenticate(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrUnauthorized
	}
	scheme, raw, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%w: malformed authorization header", ErrForbidden)
	}
	return a.VerifyToken(strings.TrimSpace(raw))
}

// RequireSelf allows a caller to act only on its own email. The comparison
// is exact and case-sensitive.
func RequireSelf(tokenEmail, requestedEmail string) error {
	if tokenEmail == "" || tokenEmail != requestedEmail {
		return ErrForbidden
	}
	return nil
}

// IsAdmin reports whether email belongs to an admin. Unknown accounts are
// not admins.
func (a *Authorizer) IsAdmin(ctx context.Context, email string) (bool, error) {
	u, err := a.users.UserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup account: %w", err)
	}
	return u.IsAdmin(), nil
}

func (a *Authorizer) RequireAdmin(ctx context.Context, email string) error {
	ok, err := a.IsAdmin(ctx, email)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

// PromoteToAdmin grants the admin role to targetID. callerEmail must come
// from a verified token. A target id with no account is created as an
// admin (upsert).
func (a *Authorizer) PromoteToAdmin(ctx context.Context, callerEmail, targetID string) (store.PromoteResult, error) {
	if err := a.RequireAdmin(ctx, callerEmail); err != nil {
		return store.PromoteResult{}, err
	}
	res, err := a.users.PromoteToAdmin(ctx, targetID)
	if err != nil {
		return store.PromoteResult{}, fmt.Errorf("promote %s: %w", targetID, err)
	}

	a.log.Info().
		Str("caller", callerEmail).
		Str("target", targetID).
		Bool("upserted", res.UpsertedID != "").
		Msg("admin role granted")
	if err := a.events.Publish(ctx, events.UserPromoted, map[string]any{
		"id": targetID, "by": callerEmail, "upserted": res.UpsertedID != "",
	}); err != nil {
		a.log.Warn().Err(err).Str("target", targetID).Msg("promotion event not published")
	}
	return res, nil
}
