package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
	"github.com/aussiebroadwan/vouch/internal/vouch/store"
	"github.com/aussiebroadwan/vouch/pkg/cryptox"
	"github.com/aussiebroadwan/vouch/pkg/idx"
	"github.com/aussiebroadwan/vouch/pkg/slogx"
)

var (
	ErrProvisioningDisabled = errors.New("employer provisioning is disabled")
	ErrProvisioningDenied   = errors.New("invalid provisioning token")
)

// EmployerService creates employer accounts out of band and lists the
// organization directory.
type EmployerService struct {
	Store             store.Store
	ProvisioningToken string
	Now               func() time.Time
}

type EmployerInput struct {
	Email            string
	Password         string
	OrganizationName string
}

// Provision creates an employer when token matches the configured
// provisioning token.
func (s *EmployerService) Provision(ctx context.Context, token string, in EmployerInput) (domain.Employer, error) {
	if s.ProvisioningToken == "" {
		return domain.Employer{}, ErrProvisioningDisabled
	}
	if !cryptox.EqualTokens(token, s.ProvisioningToken) {
		slogx.FromContext(ctx).Warn("employer provisioning denied")
		return domain.Employer{}, ErrProvisioningDenied
	}
	return s.Create(ctx, in)
}

// Create writes the employer account and organization in one transaction.
func (s *EmployerService) Create(ctx context.Context, in EmployerInput) (domain.Employer, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return domain.Employer{}, err
	}
	if err := validatePassword(in.Password); err != nil {
		return domain.Employer{}, err
	}
	org := strings.TrimSpace(in.OrganizationName)
	if org == "" {
		return domain.Employer{}, invalid("organization_name", "required")
	}
	if len(org) > maxNameLength {
		return domain.Employer{}, invalid("organization_name", "too long")
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.Employer{}, err
	}

	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now().UTC()
	}
	emp := domain.Employer{ID: idx.New().String(), OrganizationName: org, CreatedAt: now}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().CreateAccount(ctx, domain.Account{
			ID:           emp.ID,
			Email:        email,
			PasswordHash: hash,
			Kind:         domain.KindEmployer,
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			return err
		}
		return tx.Employers().CreateEmployer(ctx, emp)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Employer{}, invalid("organization_name", "email or organization already registered")
		}
		return domain.Employer{}, persistence("create employer", err)
	}

	slogx.FromContext(ctx).Info("employer created",
		slog.String("account_id", emp.ID),
		slog.String("organization", org),
	)
	return emp, nil
}

// ListOrganizations returns known organization names, sorted.
func (s *EmployerService) ListOrganizations(ctx context.Context) ([]string, error) {
	emps, err := s.Store.Employers().ListEmployers(ctx)
	if err != nil {
		return nil, persistence("list employers", err)
	}
	out := make([]string, 0, len(emps))
	for _, e := range emps {
		out = append(out, e.OrganizationName)
	}
	return out, nil
}
