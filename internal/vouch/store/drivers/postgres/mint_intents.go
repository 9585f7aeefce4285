package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
	"github.com/aussiebroadwan/vouch/internal/vouch/store"
)

const (
	intentColumns = `id, request_id, destination, metadata, state, token_address, failure_reason, created_at, updated_at`

	createIntentQuery = `INSERT INTO mint_intents (id, request_id, destination, metadata, state, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	getIntentQuery = `SELECT ` + intentColumns + ` FROM mint_intents WHERE id = $1`

	listIntentsByRequestQuery = `SELECT ` + intentColumns + ` FROM mint_intents
WHERE request_id = $1
ORDER BY created_at, id`

	updateIntentOutcomeQuery = `UPDATE mint_intents
SET state = $1, token_address = $2, failure_reason = $3, updated_at = $4
WHERE id = $5 AND state = 'in_flight'`

	resolveIntentQuery = `UPDATE mint_intents
SET state = $1, token_address = $2, failure_reason = $3, updated_at = $4
WHERE id = $5 AND state IN ('in_flight', 'stale')`

	markStaleIntentsQuery = `UPDATE mint_intents
SET state = 'stale', updated_at = $1
WHERE state = 'in_flight' AND created_at < $2
RETURNING ` + intentColumns

	countIntentsByStatePrefix = `SELECT COUNT(*) FROM mint_intents WHERE state IN (`
)

type mintIntentsRepo struct {
	db DBTX
}

func (r *mintIntentsRepo) CreateIntent(ctx context.Context, i domain.MintIntent) error {
	md, err := json.Marshal(i.Metadata)
	if err != nil {
		return fmt.Errorf("postgres: encode intent metadata: %w", err)
	}
	_, err = r.db.ExecContext(ctx, createIntentQuery,
		i.ID, i.RequestID, i.Destination, string(md), string(i.State), i.CreatedAt.UTC(), i.UpdatedAt.UTC())
	return mapConflict(err)
}

func (r *mintIntentsRepo) GetIntent(ctx context.Context, id string) (domain.MintIntent, error) {
	return scanIntent(r.db.QueryRowContext(ctx, getIntentQuery, id))
}

func (r *mintIntentsRepo) ListIntentsByRequest(ctx context.Context, requestID string) ([]domain.MintIntent, error) {
	return r.list(ctx, listIntentsByRequestQuery, requestID)
}

func (r *mintIntentsRepo) UpdateIntentOutcome(ctx context.Context, o store.MintOutcome) error {
	return rowsOrNotFound(r.db.ExecContext(ctx, updateIntentOutcomeQuery,
		string(o.State), nullString(o.TokenAddress), nullString(o.FailureReason), o.UpdatedAt.UTC(), o.IntentID))
}

func (r *mintIntentsRepo) ResolveIntent(ctx context.Context, o store.MintOutcome) error {
	return rowsOrNotFound(r.db.ExecContext(ctx, resolveIntentQuery,
		string(o.State), nullString(o.TokenAddress), nullString(o.FailureReason), o.UpdatedAt.UTC(), o.IntentID))
}

// MarkStaleIntents flips old in_flight intents in one statement; rows the
// issuer path finished concurrently no longer match.
func (r *mintIntentsRepo) MarkStaleIntents(ctx context.Context, cutoff, now time.Time) ([]domain.MintIntent, error) {
	return r.list(ctx, markStaleIntentsQuery, now.UTC(), cutoff.UTC())
}

func (r *mintIntentsRepo) CountIntentsByState(ctx context.Context, states ...domain.MintState) (int64, error) {
	if len(states) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(states))
	args := make([]any, len(states))
	for i, s := range states {
		placeholders[i] = "$" + strconv.Itoa(i+1)
		args[i] = string(s)
	}

	var n int64
	err := r.db.QueryRowContext(ctx, countIntentsByStatePrefix+strings.Join(placeholders, ", ")+")", args...).Scan(&n)
	return n, err
}

func (r *mintIntentsRepo) list(ctx context.Context, query string, args ...any) ([]domain.MintIntent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.MintIntent{}
	for rows.Next() {
		i, err := scanIntent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func scanIntent(row scanner) (domain.MintIntent, error) {
	var (
		i         domain.MintIntent
		md        []byte
		state     string
		tokenAddr sql.NullString
		reason    sql.NullString
	)
	err := row.Scan(&i.ID, &i.RequestID, &i.Destination, &md, &state, &tokenAddr, &reason, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return domain.MintIntent{}, mapNotFound(err)
	}
	if err := json.Unmarshal(md, &i.Metadata); err != nil {
		return domain.MintIntent{}, fmt.Errorf("postgres: decode intent %s metadata: %w", i.ID, err)
	}
	i.State = domain.MintState(state)
	i.TokenAddress = stringPtr(tokenAddr)
	i.FailureReason = stringPtr(reason)
	i.CreatedAt = i.CreatedAt.UTC()
	i.UpdatedAt = i.UpdatedAt.UTC()
	return i, nil
}
