package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
	"github.com/aussiebroadwan/vouch/internal/vouch/store"
	"github.com/aussiebroadwan/vouch/pkg/cryptox"
	"github.com/aussiebroadwan/vouch/pkg/idx"
	"github.com/aussiebroadwan/vouch/pkg/jwtx"
	"github.com/aussiebroadwan/vouch/pkg/slogx"
	"github.com/pquerna/otp/totp"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 256
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrMFARequired        = errors.New("mfa_required")
	ErrInvalidOTP         = errors.New("invalid_otp")
	ErrProfileNotFound    = errors.New("profile not found")
)

// AMR values recorded on sessions.
const (
	AMRPassword = "pwd"
	AMROTP      = "otp"
)

// AccountService is the identity boundary: signup, login and sessions.
type AccountService struct {
	Store      store.Store
	Signer     jwtx.Signer
	Issuer     string
	Audience   []string
	SessionTTL time.Duration
	Now        func() time.Time
}

// ProfileInput is the seeker profile created with an account.
type ProfileInput struct {
	Name   string
	Handle string
}

func (s *AccountService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// CreateAccount registers a job seeker. The account, profile and a freshly
// generated wallet are written in one transaction. Returns the account id.
func (s *AccountService) CreateAccount(ctx context.Context, email, password string, profile ProfileInput) (string, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return "", err
	}
	if err := validatePassword(password); err != nil {
		return "", err
	}
	name := strings.TrimSpace(profile.Name)
	if name == "" {
		return "", invalid("name", "required")
	}
	if len(name) > maxNameLength {
		return "", invalid("name", "too long")
	}
	handle := domain.NormalizeHandle(profile.Handle)
	if !domain.ValidHandle(handle) {
		return "", invalid("handle", "3-32 characters of a-z, 0-9, _ or -")
	}

	if _, err := s.Store.Accounts().GetAccountByEmail(ctx, email); err == nil {
		return "", invalid("email", "already registered")
	} else if !errors.Is(err, store.ErrNotFound) {
		return "", persistence("check email", err)
	}
	if _, err := s.Store.Users().GetUserByHandle(ctx, handle); err == nil {
		return "", invalid("handle", "already taken")
	} else if !errors.Is(err, store.ErrNotFound) {
		return "", persistence("check handle", err)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return "", err
	}
	wallet, err := cryptox.GenerateWallet()
	if err != nil {
		return "", err
	}
	sealed, err := cryptox.Seal(wallet.Secret)
	if err != nil {
		return "", err
	}

	now := s.now()
	id := idx.New().String()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().CreateAccount(ctx, domain.Account{
			ID:           id,
			Email:        email,
			PasswordHash: hash,
			Kind:         domain.KindSeeker,
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			return err
		}
		return tx.Users().CreateUser(ctx, domain.User{
			ID:                    id,
			Name:                  name,
			Handle:                handle,
			Email:                 email,
			WalletAddress:         wallet.Address,
			WalletSecretEncrypted: sealed,
			CreatedAt:             now,
			UpdatedAt:             now,
		})
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return "", invalid("email", "email or handle already registered")
		}
		return "", persistence("create account", err)
	}

	slogx.FromContext(ctx).Info("account created",
		slog.String("account_id", id),
		slog.String("handle", handle),
		slog.String("wallet_address", wallet.Address),
	)
	return id, nil
}

// Authenticate checks the password (and TOTP code when enrolled) and issues
// a signed session.
func (s *AccountService) Authenticate(ctx context.Context, email, password, otpCode string) (domain.IssuedSession, error) {
	l := slogx.FromContext(ctx)

	acct, err := s.Store.Accounts().GetAccountByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.IssuedSession{}, ErrInvalidCredentials
		}
		return domain.IssuedSession{}, persistence("load account", err)
	}
	if err := cryptox.VerifyPassword(password, acct.PasswordHash); err != nil {
		l.Info("login failed", slog.String("account_id", acct.ID))
		return domain.IssuedSession{}, ErrInvalidCredentials
	}

	amr := []string{AMRPassword}
	if acct.MFAEnabled() {
		code := strings.TrimSpace(otpCode)
		if code == "" {
			return domain.IssuedSession{}, ErrMFARequired
		}
		if acct.MFASecret == nil || !totp.Validate(code, *acct.MFASecret) {
			l.Info("login otp rejected", slog.String("account_id", acct.ID))
			return domain.IssuedSession{}, ErrInvalidOTP
		}
		amr = append(amr, AMROTP)
	}

	sess := domain.Session{
		ID:        idx.New().String(),
		AccountID: acct.ID,
		Kind:      acct.Kind,
		Scopes:    domain.ScopesFor(acct.Kind),
		AMR:       amr,
	}
	switch acct.Kind {
	case domain.KindSeeker:
		u, err := s.Store.Users().GetUserByID(ctx, acct.ID)
		if err != nil {
			return domain.IssuedSession{}, persistence("load profile", err)
		}
		sess.Handle = u.Handle
	case domain.KindEmployer:
		e, err := s.Store.Employers().GetEmployerByID(ctx, acct.ID)
		if err != nil {
			return domain.IssuedSession{}, persistence("load employer", err)
		}
		sess.Organization = e.OrganizationName
	}

	return s.issue(sess)
}

func (s *AccountService) issue(sess domain.Session) (domain.IssuedSession, error) {
	claims := jwtx.NewSessionClaims(jwtx.SessionClaimsParams{
		Subject:      sess.AccountID,
		SessionID:    sess.ID,
		Kind:         string(sess.Kind),
		Handle:       sess.Handle,
		Organization: sess.Organization,
		Scopes:       sess.Scopes,
		AMR:          sess.AMR,
		Issuer:       s.Issuer,
		Audience:     s.Audience,
		TTL:          s.SessionTTL,
		Now:          s.now(),
	})
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return domain.IssuedSession{}, err
	}
	sess.IssuedAt = claims.IssuedAt.Time.UTC()
	sess.ExpiresAt = claims.ExpiresAt.Time.UTC()
	return domain.IssuedSession{Session: sess, Token: token}, nil
}

// SessionFromClaims rebuilds the session a verified token describes.
func SessionFromClaims(c jwtx.Claims) domain.Session {
	sess := domain.Session{
		ID:           c.SID,
		AccountID:    c.Subject,
		Kind:         domain.AccountKind(c.Kind),
		Handle:       c.Handle,
		Organization: c.Organization,
		Scopes:       c.Scopes,
		AMR:          c.AMR,
	}
	if c.IssuedAt != nil {
		sess.IssuedAt = c.IssuedAt.Time.UTC()
	}
	if c.ExpiresAt != nil {
		sess.ExpiresAt = c.ExpiresAt.Time.UTC()
	}
	return sess
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", invalid("email", "required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", invalid("email", "not a valid address")
	}
	return email, nil
}

func validatePassword(pw string) error {
	switch {
	case len(pw) < minPasswordLength:
		return invalid("password", "at least 8 characters")
	case len(pw) > maxPasswordLength:
		return invalid("password", "too long")
	}
	return nil
}
