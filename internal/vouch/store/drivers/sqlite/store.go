package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
	"github.com/aussiebroadwan/vouch/internal/vouch/store"
	"github.com/aussiebroadwan/vouch/internal/vouch/store/drivers/sqlite/gen"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	db *sql.DB
	q  *gen.Queries
}

// DSN turns a file path (or ":memory:") into a modernc DSN with the
// pragmas the store relies on.
func DSN(path string) string {
	const pragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	if strings.HasPrefix(path, "file:") {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return path + sep + pragmas
	}
	return "file:" + path + "?" + pragmas
}

// NewStore opens the database at path. A single connection serialises
// writers and keeps ":memory:" databases alive for the life of the Store.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}

	return &Store{db: db, q: gen.New(db)}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Accounts() store.Accounts                     { return &accountsRepo{q: s.q} }
func (s *Store) Users() store.Users                           { return &usersRepo{q: s.q} }
func (s *Store) Employers() store.Employers                   { return &employersRepo{q: s.q} }
func (s *Store) CredentialRequests() store.CredentialRequests { return &requestsRepo{q: s.q} }
func (s *Store) MintIntents() store.MintIntents               { return &mintIntentsRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConflict turns unique and primary key violations into ErrAlreadyExists.
func mapConflict(err error) error {
	if err == nil {
		return nil
	}
	var serr *sqlite.Error
	if errors.As(err, &serr) {
		switch serr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
		}
	}
	return err
}

func utc(t time.Time) time.Time { return t.UTC() }

func mapNullStringPtr(ns sql.NullString) *string {
	if ns.Valid {
		v := ns.String
		return &v
	}
	return nil
}

func mapOptionalString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		v := nt.Time.UTC()
		return &v
	}
	return nil
}

func mapOptionalTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func mapAccount(row gen.Account) domain.Account {
	return domain.Account{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Kind:         domain.AccountKind(row.Kind),
		MFASecret:    mapNullStringPtr(row.MfaSecret),
		MFAEnabledAt: mapNullTimePtr(row.MfaEnabledAt),
		CreatedAt:    row.CreatedAt.UTC(),
		UpdatedAt:    row.UpdatedAt.UTC(),
	}
}

func mapUser(row gen.User) domain.User {
	return domain.User{
		ID:                    row.ID,
		Name:                  row.Name,
		Handle:                row.Handle,
		Email:                 row.Email,
		WalletAddress:         row.WalletAddress,
		WalletSecretEncrypted: row.WalletSecretEncrypted,
		CreatedAt:             row.CreatedAt.UTC(),
		UpdatedAt:             row.UpdatedAt.UTC(),
	}
}

func mapEmployer(row gen.Employer) domain.Employer {
	return domain.Employer{
		ID:               row.ID,
		OrganizationName: row.OrganizationName,
		CreatedAt:        row.CreatedAt.UTC(),
	}
}

func mapRequest(row gen.CredentialRequest) domain.CredentialRequest {
	return domain.CredentialRequest{
		ID:               row.ID,
		UserID:           row.UserID,
		OrganizationName: row.OrganizationName,
		RoleTitle:        row.RoleTitle,
		StartDate:        domain.Date(row.StartDate.UTC()),
		EndDate:          mapNullTimePtr(row.EndDate),
		ProofLink:        mapNullStringPtr(row.ProofLink),
		Status:           domain.RequestStatus(row.Status),
		TokenAddress:     mapNullStringPtr(row.TokenAddress),
		CreatedAt:        row.CreatedAt.UTC(),
		UpdatedAt:        row.UpdatedAt.UTC(),
	}
}

func mapRequests(rows []gen.CredentialRequest) []domain.CredentialRequest {
	out := make([]domain.CredentialRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapRequest(row))
	}
	return out
}

func mapMintIntent(row gen.MintIntent) (domain.MintIntent, error) {
	var md domain.TokenMetadata
	if err := json.Unmarshal([]byte(row.MetadataJson), &md); err != nil {
		return domain.MintIntent{}, fmt.Errorf("sqlite: decode intent %s metadata: %w", row.ID, err)
	}
	return domain.MintIntent{
		ID:            row.ID,
		RequestID:     row.RequestID,
		Destination:   row.Destination,
		Metadata:      md,
		State:         domain.MintState(row.State),
		TokenAddress:  mapNullStringPtr(row.TokenAddress),
		FailureReason: mapNullStringPtr(row.FailureReason),
		CreatedAt:     row.CreatedAt.UTC(),
		UpdatedAt:     row.UpdatedAt.UTC(),
	}, nil
}
