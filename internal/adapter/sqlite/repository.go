package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/petmercado/petmercado/internal/domain"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // Register SQLite driver.
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store owns the SQLite connection and hands out the repository types
// that implement the domain persistence ports.
type Store struct {
	db *sql.DB
}

// Records returns the record repository backed by this store.
func (s *Store) Records() *RecordRepository {
	return &RecordRepository{db: s.db}
}

// Providers returns the provider repository backed by this store.
func (s *Store) Providers() *ProviderRepository {
	return &ProviderRepository{db: s.db}
}

// Ratings returns the rating store backed by this store.
func (s *Store) Ratings() *RatingStore {
	return &RatingStore{db: s.db}
}

// RecordRepository implements domain.RecordRepository using SQLite.
type RecordRepository struct {
	db *sql.DB
}

// Compile-time check: RecordRepository implements domain.RecordRepository.
var _ domain.RecordRepository = (*RecordRepository)(nil)

// New opens a SQLite database, runs migrations, and returns a ready store.
func New(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// Enable foreign keys (off by default in SQLite).
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	return NewFromDB(db)
}

// NewFromDB wraps an existing database connection, runs migrations, and
// returns a ready store. Use this when the *sql.DB has been pre-configured
// (e.g., with otelsql instrumentation).
func NewFromDB(db *sql.DB) (*Store, error) {
	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection for use by other adapters
// (e.g., river).
func (s *Store) DB() *sql.DB {
	return s.db
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

const timeFormat = "2006-01-02T15:04:05.000Z"

const recordColumns = `id, owner_id, kind, status, moderation_reason, created_at, status_changed_at,
	title, goal_cents, referred_kind, commission_cents, feedback_provider_id, comment,
	contract_provider_id, rating, rating_aggregated, product_name, price_cents`

func (s *RecordRepository) Create(ctx context.Context, r domain.Record) error {
	f := flatten(r)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (`+recordColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.OwnerID, string(r.Kind), string(r.Status), r.ModerationReason,
		r.CreatedAt.Format(timeFormat), r.StatusChangedAt.Format(timeFormat),
		f.title, f.goalCents, f.referredKind, f.commissionCents,
		f.feedbackProviderID, f.comment,
		f.contractProviderID, f.rating, f.ratingAggregated,
		f.productName, f.priceCents,
	)
	if err != nil {
		return fmt.Errorf("inserting record: %w", err)
	}
	return nil
}

func (s *RecordRepository) GetByID(ctx context.Context, id string) (domain.Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE id = ?`, id)
	r, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Record{}, domain.ErrNotFound
	}
	return r, err
}

func (s *RecordRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records`
	var where []string
	var args []any

	if filter.Kind != nil {
		where = append(where, `kind = ?`)
		args = append(args, string(*filter.Kind))
	}
	if filter.Status != nil {
		where = append(where, `status = ?`)
		args = append(args, string(*filter.Status))
	}
	if filter.OwnerID != "" {
		where = append(where, `owner_id = ?`)
		args = append(args, filter.OwnerID)
	}

	for i, cond := range where {
		if i == 0 {
			query += ` WHERE ` + cond
		} else {
			query += ` AND ` + cond
		}
	}

	query += ` ORDER BY created_at DESC, id`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		r, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// Update writes the record only if its stored status still equals
// expectedStatus. A zero-row update against an existing record means a
// concurrent writer won; the caller gets domain.ErrConflict.
func (s *RecordRepository) Update(ctx context.Context, r domain.Record, expectedStatus domain.Status) error {
	f := flatten(r)
	result, err := s.db.ExecContext(ctx,
		`UPDATE records
		 SET status = ?, moderation_reason = ?, status_changed_at = ?,
		     commission_cents = ?, rating = ?, rating_aggregated = ?
		 WHERE id = ? AND status = ?`,
		string(r.Status), r.ModerationReason, r.StatusChangedAt.Format(timeFormat),
		f.commissionCents, f.rating, f.ratingAggregated,
		r.ID, string(expectedStatus),
	)
	if err != nil {
		return fmt.Errorf("updating record: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		if _, err := s.GetByID(ctx, r.ID); errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return domain.ErrConflict
	}

	return nil
}

// flat holds a record's payload spread over the nullable table columns.
type flat struct {
	title              sql.NullString
	goalCents          sql.NullInt64
	referredKind       sql.NullString
	commissionCents    sql.NullInt64
	feedbackProviderID sql.NullString
	comment            sql.NullString
	contractProviderID sql.NullString
	rating             sql.NullInt64
	ratingAggregated   sql.NullBool
	productName        sql.NullString
	priceCents         sql.NullInt64
}

func flatten(r domain.Record) flat {
	var f flat
	switch {
	case r.Campaign != nil:
		f.title = sql.NullString{String: r.Campaign.Title, Valid: true}
		f.goalCents = sql.NullInt64{Int64: r.Campaign.GoalCents, Valid: true}
	case r.Indication != nil:
		f.referredKind = sql.NullString{String: string(r.Indication.Referred), Valid: true}
		f.commissionCents = sql.NullInt64{Int64: r.Indication.CommissionCents, Valid: true}
	case r.Feedback != nil:
		f.feedbackProviderID = sql.NullString{String: r.Feedback.ProviderID, Valid: true}
		f.comment = sql.NullString{String: r.Feedback.Comment, Valid: true}
	case r.Contract != nil:
		f.contractProviderID = sql.NullString{String: r.Contract.ProviderID, Valid: true}
		f.rating = sql.NullInt64{Int64: int64(r.Contract.Rating), Valid: true}
		f.ratingAggregated = sql.NullBool{Bool: r.Contract.RatingAggregated, Valid: true}
	case r.Product != nil:
		f.productName = sql.NullString{String: r.Product.Name, Valid: true}
		f.priceCents = sql.NullInt64{Int64: r.Product.PriceCents, Valid: true}
	}
	return f
}

// scanRecord scans one row into a domain.Record, rebuilding the payload
// variant that matches the kind column.
func scanRecord(scan func(dest ...any) error) (domain.Record, error) {
	var r domain.Record
	var kind, status, createdAt, statusChangedAt string
	var f flat

	err := scan(&r.ID, &r.OwnerID, &kind, &status, &r.ModerationReason, &createdAt, &statusChangedAt,
		&f.title, &f.goalCents, &f.referredKind, &f.commissionCents,
		&f.feedbackProviderID, &f.comment,
		&f.contractProviderID, &f.rating, &f.ratingAggregated,
		&f.productName, &f.priceCents,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Record{}, err
		}
		return domain.Record{}, fmt.Errorf("scanning record: %w", err)
	}

	r.Kind = domain.Kind(kind)
	r.Status = domain.Status(status)
	r.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	r.StatusChangedAt, _ = time.Parse(timeFormat, statusChangedAt)

	switch r.Kind {
	case domain.KindCampaign:
		r.Campaign = &domain.CampaignDetails{
			Title:     f.title.String,
			GoalCents: f.goalCents.Int64,
		}
	case domain.KindIndication:
		r.Indication = &domain.IndicationDetails{
			Referred:        domain.ReferralKind(f.referredKind.String),
			CommissionCents: f.commissionCents.Int64,
		}
	case domain.KindFeedback:
		r.Feedback = &domain.FeedbackDetails{
			ProviderID: f.feedbackProviderID.String,
			Comment:    f.comment.String,
		}
	case domain.KindContract:
		r.Contract = &domain.ContractDetails{
			ProviderID:       f.contractProviderID.String,
			Rating:           int(f.rating.Int64),
			RatingAggregated: f.ratingAggregated.Bool,
		}
	case domain.KindProduct:
		r.Product = &domain.ProductDetails{
			Name:       f.productName.String,
			PriceCents: f.priceCents.Int64,
		}
	}

	return r, nil
}
