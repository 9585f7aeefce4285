package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
	"github.com/aussiebroadwan/vouch/internal/vouch/store"
	"github.com/aussiebroadwan/vouch/internal/vouch/store/drivers/sqlite/gen"
)

type mintIntentsRepo struct {
	q *gen.Queries
}

func (r *mintIntentsRepo) CreateIntent(ctx context.Context, i domain.MintIntent) error {
	md, err := json.Marshal(i.Metadata)
	if err != nil {
		return fmt.Errorf("sqlite: encode intent metadata: %w", err)
	}
	return mapConflict(r.q.CreateMintIntent(ctx, gen.CreateMintIntentParams{
		ID:           i.ID,
		RequestID:    i.RequestID,
		Destination:  i.Destination,
		MetadataJson: string(md),
		State:        string(i.State),
		CreatedAt:    utc(i.CreatedAt),
		UpdatedAt:    utc(i.UpdatedAt),
	}))
}

func (r *mintIntentsRepo) GetIntent(ctx context.Context, id string) (domain.MintIntent, error) {
	row, err := r.q.GetMintIntent(ctx, id)
	if err != nil {
		return domain.MintIntent{}, mapNotFound(err)
	}
	return mapMintIntent(row)
}

func (r *mintIntentsRepo) ListIntentsByRequest(ctx context.Context, requestID string) ([]domain.MintIntent, error) {
	rows, err := r.q.ListMintIntentsByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return mapMintIntents(rows)
}

func (r *mintIntentsRepo) UpdateIntentOutcome(ctx context.Context, o store.MintOutcome) error {
	n, err := r.q.UpdateMintIntentOutcome(ctx, gen.UpdateMintIntentOutcomeParams{
		State:         string(o.State),
		TokenAddress:  mapOptionalString(o.TokenAddress),
		FailureReason: mapOptionalString(o.FailureReason),
		UpdatedAt:     utc(o.UpdatedAt),
		ID:            o.IntentID,
	})
	return rowsOrNotFound(n, err)
}

func (r *mintIntentsRepo) ResolveIntent(ctx context.Context, o store.MintOutcome) error {
	n, err := r.q.ResolveMintIntent(ctx, gen.ResolveMintIntentParams{
		State:         string(o.State),
		TokenAddress:  mapOptionalString(o.TokenAddress),
		FailureReason: mapOptionalString(o.FailureReason),
		UpdatedAt:     utc(o.UpdatedAt),
		ID:            o.IntentID,
	})
	return rowsOrNotFound(n, err)
}

func (r *mintIntentsRepo) MarkStaleIntents(ctx context.Context, cutoff, now time.Time) ([]domain.MintIntent, error) {
	rows, err := r.q.ListInFlightIntentsBefore(ctx, utc(cutoff))
	if err != nil {
		return nil, err
	}

	var marked []gen.MintIntent
	for _, row := range rows {
		n, err := r.q.MarkMintIntentStale(ctx, gen.MarkMintIntentStaleParams{UpdatedAt: utc(now), ID: row.ID})
		if err != nil {
			return nil, err
		}
		// Zero rows: the issuer call finished between the read and the update.
		if n == 0 {
			continue
		}
		row.State = string(domain.MintStale)
		row.UpdatedAt = utc(now)
		marked = append(marked, row)
	}
	return mapMintIntents(marked)
}

func (r *mintIntentsRepo) CountIntentsByState(ctx context.Context, states ...domain.MintState) (int64, error) {
	names := make([]string, 0, len(states))
	for _, s := range states {
		names = append(names, string(s))
	}
	return r.q.CountMintIntentsByState(ctx, names)
}

func mapMintIntents(rows []gen.MintIntent) ([]domain.MintIntent, error) {
	out := make([]domain.MintIntent, 0, len(rows))
	for _, row := range rows {
		i, err := mapMintIntent(row)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, nil
}
