package repository

import (
	"context"
	"fmt"

	"scholarmatch/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// CatalogRepository loads and seeds the catalog tables. The server reads
// the full catalog once at startup (and again on explicit rebuild); all
// query-time work happens against the in-memory store.
type CatalogRepository struct {
	db     *pgxpool.Pool
	kind   models.Kind
	logger *zap.Logger
}

func NewCatalogRepository(db *pgxpool.Pool, kind models.Kind, logger *zap.Logger) *CatalogRepository {
	return &CatalogRepository{
		db:     db,
		kind:   kind,
		logger: logger,
	}
}

func (r *CatalogRepository) Kind() models.Kind { return r.kind }

// Load fetches every record of the repository's kind in stable insertion
// order. Implements the engine's catalog source contract.
func (r *CatalogRepository) Load(ctx context.Context) ([]models.Record, error) {
	switch r.kind {
	case models.KindScholarship:
		return r.loadScholarships(ctx)
	case models.KindUniversity:
		return r.loadUniversities(ctx)
	default:
		return nil, fmt.Errorf("unknown catalog kind %q", r.kind)
	}
}

func (r *CatalogRepository) loadScholarships(ctx context.Context) ([]models.Record, error) {
	query := squirrel.Select("id", "name", "provider", "country", "type", "field", "level",
		"amount", "application_fee", "renewable", "deadline", "description", "created_at").
		From("scholarships").
		OrderBy("created_at ASC", "name ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query scholarships: %w", err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var s models.Scholarship
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Provider, &s.Country, &s.Type, &s.Field, &s.Level,
			&s.Amount, &s.Fee, &s.Renewable, &s.Deadline, &s.Description, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.logger.Info("Catalog loaded",
		zap.String("kind", string(models.KindScholarship)),
		zap.Int("records", len(records)),
	)
	return records, nil
}

func (r *CatalogRepository) loadUniversities(ctx context.Context) ([]models.Record, error) {
	query := squirrel.Select("id", "name", "country", "city", "type", "ranking",
		"students", "founded", "description", "created_at").
		From("universities").
		OrderBy("ranking ASC", "name ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query universities: %w", err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var u models.University
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Country, &u.City, &u.Type, &u.Ranking,
			&u.Students, &u.Founded, &u.Description, &u.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.logger.Info("Catalog loaded",
		zap.String("kind", string(models.KindUniversity)),
		zap.Int("records", len(records)),
	)
	return records, nil
}

// InsertBatch upserts generated records. Existing rows (same id) are
// replaced so repeated seeding runs converge on the generator output.
func (r *CatalogRepository) InsertBatch(ctx context.Context, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}
	switch r.kind {
	case models.KindScholarship:
		return r.insertScholarships(ctx, records)
	case models.KindUniversity:
		return r.insertUniversities(ctx, records)
	default:
		return fmt.Errorf("unknown catalog kind %q", r.kind)
	}
}

func (r *CatalogRepository) insertScholarships(ctx context.Context, records []models.Record) error {
	builder := squirrel.Insert("scholarships").
		Columns("id", "name", "provider", "country", "type", "field", "level",
			"amount", "application_fee", "renewable", "deadline", "description", "created_at").
		PlaceholderFormat(squirrel.Dollar)

	for _, rec := range records {
		s, ok := rec.(*models.Scholarship)
		if !ok {
			return fmt.Errorf("record %q is not a scholarship", rec.Attributes().Name)
		}
		builder = builder.Values(s.ID, s.Name, s.Provider, s.Country, s.Type, s.Field, s.Level,
			s.Amount, s.Fee, s.Renewable, s.Deadline, s.Description, s.CreatedAt)
	}
	builder = builder.Suffix("ON CONFLICT (id) DO UPDATE SET " +
		"amount = EXCLUDED.amount, deadline = EXCLUDED.deadline, description = EXCLUDED.description")

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *CatalogRepository) insertUniversities(ctx context.Context, records []models.Record) error {
	builder := squirrel.Insert("universities").
		Columns("id", "name", "country", "city", "type", "ranking",
			"students", "founded", "description", "created_at").
		PlaceholderFormat(squirrel.Dollar)

	for _, rec := range records {
		u, ok := rec.(*models.University)
		if !ok {
			return fmt.Errorf("record %q is not a university", rec.Attributes().Name)
		}
		builder = builder.Values(u.ID, u.Name, u.Country, u.City, u.Type, u.Ranking,
			u.Students, u.Founded, u.Description, u.CreatedAt)
	}
	builder = builder.Suffix("ON CONFLICT (id) DO UPDATE SET " +
		"ranking = EXCLUDED.ranking, students = EXCLUDED.students, description = EXCLUDED.description")

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// EnsureSchema creates the catalog tables if they do not exist. Called by
// the seed command before inserting.
func (r *CatalogRepository) EnsureSchema(ctx context.Context) error {
	const scholarships = `
CREATE TABLE IF NOT EXISTS scholarships (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	provider TEXT NOT NULL,
	country TEXT NOT NULL,
	type TEXT NOT NULL,
	field TEXT NOT NULL,
	level TEXT NOT NULL,
	amount DOUBLE PRECISION NOT NULL,
	application_fee DOUBLE PRECISION NOT NULL DEFAULT 0,
	renewable BOOLEAN NOT NULL DEFAULT FALSE,
	deadline TEXT NOT NULL DEFAULT 'Rolling',
	description TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
	const universities = `
CREATE TABLE IF NOT EXISTS universities (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	country TEXT NOT NULL,
	city TEXT NOT NULL DEFAULT '',
	type TEXT NOT NULL,
	ranking INTEGER NOT NULL,
	students INTEGER NOT NULL,
	founded INTEGER NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
	for _, ddl := range []string{scholarships, universities} {
		if _, err := r.db.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
