package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/petmercado/petmercado/internal/domain"
)

// ProviderRepository implements domain.ProviderRepository using SQLite.
type ProviderRepository struct {
	db *sql.DB
}

// Compile-time check: ProviderRepository implements domain.ProviderRepository.
var _ domain.ProviderRepository = (*ProviderRepository)(nil)

const providerColumns = `id, kind, name, description, city, state, categories, verified, rating_avg, rating_count`

func (s *ProviderRepository) Create(ctx context.Context, p domain.ProviderProfile) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO providers (`+providerColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, string(p.Kind), p.Name, p.Description, p.City, p.State,
		joinCategories(p.Categories), p.Verified, p.RatingAvg, p.RatingCount,
	)
	if err != nil {
		return fmt.Errorf("inserting provider: %w", err)
	}
	return nil
}

func (s *ProviderRepository) GetByID(ctx context.Context, id string) (domain.ProviderProfile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+providerColumns+` FROM providers WHERE id = ?`, id)

	p, err := scanProvider(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ProviderProfile{}, domain.ErrProviderNotFound
	}
	return p, err
}

// List returns provider profiles, optionally narrowed to one kind.
// Finer filtering, ordering and pagination happen in the search service.
func (s *ProviderRepository) List(ctx context.Context, kind *domain.ProviderKind) ([]domain.ProviderProfile, error) {
	query := `SELECT ` + providerColumns + ` FROM providers`
	var args []any

	if kind != nil {
		query += ` WHERE kind = ?`
		args = append(args, string(*kind))
	}

	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing providers: %w", err)
	}
	defer rows.Close()

	var profiles []domain.ProviderProfile
	for rows.Next() {
		p, err := scanProvider(rows.Scan)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}

func scanProvider(scan func(dest ...any) error) (domain.ProviderProfile, error) {
	var p domain.ProviderProfile
	var kind, categories string

	err := scan(&p.ID, &kind, &p.Name, &p.Description, &p.City, &p.State,
		&categories, &p.Verified, &p.RatingAvg, &p.RatingCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ProviderProfile{}, err
		}
		return domain.ProviderProfile{}, fmt.Errorf("scanning provider: %w", err)
	}

	p.Kind = domain.ProviderKind(kind)
	p.Categories = splitCategories(categories)

	return p, nil
}

func joinCategories(categories []string) string {
	return strings.Join(categories, ",")
}

func splitCategories(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
