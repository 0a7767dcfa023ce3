package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/petmercado/petmercado/internal/domain"
)

// RatingStore implements domain.RatingStore using SQLite. The contract's
// aggregated flag and the provider's running statistics are written in a
// single transaction, so a rating is never counted twice and never counted
// without being flagged.
type RatingStore struct {
	db *sql.DB
}

// Compile-time check: RatingStore implements domain.RatingStore.
var _ domain.RatingStore = (*RatingStore)(nil)

// Aggregate persists an already-folded rating: the contract carries the
// rating with its aggregated flag set, the provider carries the new
// average and count. The flag flip is conditioned on the flag still being
// unset (domain.ErrAlreadyRated otherwise) and the provider write on the
// prior rating count (domain.ErrConflict otherwise).
func (s *RatingStore) Aggregate(ctx context.Context, contract domain.Record, provider domain.ProviderProfile) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning rating transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	result, err := tx.ExecContext(ctx,
		`UPDATE records SET rating = ?, rating_aggregated = 1
		 WHERE id = ? AND kind = ? AND status = ? AND rating_aggregated = 0`,
		contract.Contract.Rating, contract.ID,
		string(domain.KindContract), string(domain.ContractDone),
	)
	if err != nil {
		return fmt.Errorf("flagging contract rating: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	} else if n == 0 {
		return domain.ErrAlreadyRated
	}

	result, err = tx.ExecContext(ctx,
		`UPDATE providers SET rating_avg = ?, rating_count = ?
		 WHERE id = ? AND rating_count = ?`,
		provider.RatingAvg, provider.RatingCount,
		provider.ID, provider.RatingCount-1,
	)
	if err != nil {
		return fmt.Errorf("updating provider rating: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	} else if n == 0 {
		return domain.ErrConflict
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing rating transaction: %w", err)
	}
	return nil
}
