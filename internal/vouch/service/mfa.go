package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
	"github.com/aussiebroadwan/vouch/internal/vouch/store"
	"github.com/aussiebroadwan/vouch/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

var (
	ErrMFANotEnrolled    = errors.New("MFA not enrolled")
	ErrMFAAlreadyEnabled = errors.New("MFA already enabled for this account")
	ErrMFANotEnabled     = errors.New("MFA not enabled for this account")
)

type MFAService struct {
	Store  store.Store
	Issuer string // TOTP issuer label, e.g. "vouch"
	Now    func() time.Time
}

func (s *MFAService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// EnrollTOTP generates a secret. MFA is not enabled until VerifyTOTP
// confirms a code from it.
func (s *MFAService) EnrollTOTP(ctx context.Context, accountID string) (domain.MFAEnrollment, error) {
	acct, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		return domain.MFAEnrollment{}, fmt.Errorf("failed to load account: %w", err)
	}
	if acct.MFAEnabled() {
		return domain.MFAEnrollment{}, ErrMFAAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: acct.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return domain.MFAEnrollment{}, fmt.Errorf("failed to generate TOTP key: %w", err)
	}

	if err := s.Store.Accounts().SetMFASecret(ctx, accountID, key.Secret(), s.now()); err != nil {
		return domain.MFAEnrollment{}, fmt.Errorf("failed to store MFA secret: %w", err)
	}

	return domain.MFAEnrollment{
		Secret:  key.Secret(),
		URL:     key.URL(),
		Issuer:  s.Issuer,
		Account: acct.Email,
	}, nil
}

// VerifyTOTP enables MFA when code matches the enrolled secret.
func (s *MFAService) VerifyTOTP(ctx context.Context, accountID, code string) error {
	acct, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to load account: %w", err)
	}
	if acct.MFAEnabled() {
		return ErrMFAAlreadyEnabled
	}
	if acct.MFASecret == nil || *acct.MFASecret == "" {
		return ErrMFANotEnrolled
	}
	if !totp.Validate(strings.TrimSpace(code), *acct.MFASecret) {
		return ErrInvalidOTP
	}

	if err := s.Store.Accounts().EnableMFA(ctx, accountID, s.now()); err != nil {
		return fmt.Errorf("failed to enable MFA: %w", err)
	}
	slogx.FromContext(ctx).Info("mfa enabled", slog.String("account_id", accountID))
	return nil
}

// DisableTOTP turns MFA off. A current code is required.
func (s *MFAService) DisableTOTP(ctx context.Context, accountID, code string) error {
	acct, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to load account: %w", err)
	}
	if !acct.MFAEnabled() || acct.MFASecret == nil {
		return ErrMFANotEnabled
	}
	if !totp.Validate(strings.TrimSpace(code), *acct.MFASecret) {
		return ErrInvalidOTP
	}

	if err := s.Store.Accounts().DisableMFA(ctx, accountID, s.now()); err != nil {
		return fmt.Errorf("failed to disable MFA: %w", err)
	}
	slogx.FromContext(ctx).Info("mfa disabled", slog.String("account_id", accountID))
	return nil
}
