package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/vouch/internal/vouch/service"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func TestMFALifecycle(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	u := seedSeeker(t, s)
	mfa := &service.MFAService{Store: s, Issuer: "vouch-test"}

	err := mfa.VerifyTOTP(ctx, u.ID, "123456")
	require.ErrorIs(t, err, service.ErrMFANotEnrolled)

	enrollment, err := mfa.EnrollTOTP(ctx, u.ID)
	require.NoError(t, err)
	require.NotEmpty(t, enrollment.Secret)
	require.Contains(t, enrollment.URL, "otpauth://totp/")
	require.Equal(t, "vouch-test", enrollment.Issuer)

	acct, err := s.Accounts().GetAccountByID(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, acct.MFAEnabled())

	require.ErrorIs(t, mfa.VerifyTOTP(ctx, u.ID, "not-a-code"), service.ErrInvalidOTP)

	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, mfa.VerifyTOTP(ctx, u.ID, code))

	acct, err = s.Accounts().GetAccountByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, acct.MFAEnabled())

	_, err = mfa.EnrollTOTP(ctx, u.ID)
	require.ErrorIs(t, err, service.ErrMFAAlreadyEnabled)

	require.ErrorIs(t, mfa.DisableTOTP(ctx, u.ID, "not-a-code"), service.ErrInvalidOTP)

	code, err = totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, mfa.DisableTOTP(ctx, u.ID, code))

	acct, err = s.Accounts().GetAccountByID(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, acct.MFAEnabled())
	require.Nil(t, acct.MFASecret)

	require.ErrorIs(t, mfa.DisableTOTP(ctx, u.ID, code), service.ErrMFANotEnabled)
}
