package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
	"github.com/aussiebroadwan/vouch/internal/vouch/store"
)

// ProfileService presents public profiles. It only reads.
type ProfileService struct {
	Store store.Store
}

// FindProfileByHandle returns ErrProfileNotFound for unknown handles.
func (s *ProfileService) FindProfileByHandle(ctx context.Context, handle string) (domain.Profile, error) {
	u, err := s.Store.Users().GetUserByHandle(ctx, domain.NormalizeHandle(handle))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Profile{}, ErrProfileNotFound
		}
		return domain.Profile{}, persistence("load profile", err)
	}
	return u.Profile(), nil
}

// PublicProfile is the profile plus its approved credentials, latest start first.
func (s *ProfileService) PublicProfile(ctx context.Context, handle string) (domain.PublicProfile, error) {
	p, err := s.FindProfileByHandle(ctx, handle)
	if err != nil {
		return domain.PublicProfile{}, err
	}
	creds, err := s.Store.CredentialRequests().ListApprovedByUser(ctx, p.UserID)
	if err != nil {
		return domain.PublicProfile{}, persistence("list approved requests", err)
	}
	return domain.PublicProfile{Profile: p, Credentials: creds}, nil
}

// ProfileByID returns the caller's own profile.
func (s *ProfileService) ProfileByID(ctx context.Context, userID string) (domain.Profile, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Profile{}, ErrProfileNotFound
		}
		return domain.Profile{}, persistence("load profile", err)
	}
	return u.Profile(), nil
}
