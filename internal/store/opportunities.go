// Package store provides PostgreSQL access to opportunity records.
package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/opportunity-matcher/internal/types"
)

// Store wraps a PostgreSQL connection pool for opportunity records
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Pool exposes the underlying connection pool for sharing with the catalog store
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Close closes the connection pool
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

const opportunityColumns = `id, title, COALESCE(description, ''), organization_key,
	COALESCE(url, ''), type, COALESCE(modality, ''), COALESCE(language, ''),
	COALESCE(location, ''), COALESCE(field_of_study, ''),
	required_skills, optional_skills, eligible_levels, eligible_countries,
	min_salary, max_salary, COALESCE(currency, ''), deadline, popularity_score`

// listQuery builds the SELECT for ListForMatching from the coarse filters
// and paging options
func listQuery(prefs *types.Preferences, filters *types.Filters) (string, []any) {
	query := `SELECT ` + opportunityColumns + ` FROM opportunities`
	where := make([]string, 0, 3)
	args := make([]any, 0, 5)

	if filters != nil && filters.ExcludeExpired {
		where = append(where, "(deadline IS NULL OR deadline > NOW())")
	}
	if prefs != nil && prefs.Modality != "" {
		args = append(args, string(prefs.Modality))
		where = append(where, fmt.Sprintf("modality = $%d", len(args)))
	}
	if filters != nil && len(filters.Types) > 0 {
		typeNames := make([]string, len(filters.Types))
		for i, t := range filters.Types {
			typeNames[i] = string(t)
		}
		args = append(args, typeNames)
		where = append(where, fmt.Sprintf("type = ANY($%d)", len(args)))
	}

	for i, cond := range where {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC"

	if filters != nil && filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filters != nil && filters.Offset > 0 {
		args = append(args, filters.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return query, args
}

// ListForMatching returns the coarse-filtered candidate set for a ranking run:
// expired records, mismatched modalities and unwanted types are excluded here
// so the engine only consumes the result and never re-applies these filters.
// Filters.Limit and Filters.Offset page through the table in created_at order.
func (s *Store) ListForMatching(ctx context.Context, prefs *types.Preferences, filters *types.Filters) ([]types.OpportunityRecord, error) {
	query, args := listQuery(prefs, filters)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}
	defer rows.Close()

	records := make([]types.OpportunityRecord, 0)
	for rows.Next() {
		var rec types.OpportunityRecord
		var levels []string
		err := rows.Scan(
			&rec.ID, &rec.Title, &rec.Description, &rec.OrganizationKey,
			&rec.URL, &rec.Type, &rec.Modality, &rec.Language,
			&rec.Location, &rec.FieldOfStudy,
			&rec.RequiredSkills, &rec.OptionalSkills, &levels, &rec.EligibleCountries,
			&rec.MinSalary, &rec.MaxSalary, &rec.Currency, &rec.Deadline, &rec.PopularityScore,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opportunity row: %w", err)
		}
		rec.EligibleLevels = make([]types.Level, len(levels))
		for i, l := range levels {
			rec.EligibleLevels[i] = types.Level(l)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read opportunity rows: %w", err)
	}

	return records, nil
}

// InsertBatch inserts opportunity records, generating IDs where missing, and
// returns the stored IDs in input order.
func (s *Store) InsertBatch(ctx context.Context, records []types.OpportunityRecord) ([]string, error) {
	ids := make([]string, 0, len(records))
	for i := range records {
		rec := &records[i]
		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		levels := make([]string, len(rec.EligibleLevels))
		for j, l := range rec.EligibleLevels {
			levels[j] = string(l)
		}

		_, err := s.pool.Exec(ctx,
			`INSERT INTO opportunities (
				id, title, description, organization_key, url, type, modality,
				language, location, field_of_study, required_skills, optional_skills,
				eligible_levels, eligible_countries, min_salary, max_salary,
				currency, deadline, popularity_score, created_at
			) VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6, NULLIF($7, ''),
				NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), $11, $12,
				$13, $14, $15, $16, NULLIF($17, ''), $18, $19, NOW())`,
			rec.ID, rec.Title, rec.Description, rec.OrganizationKey, rec.URL,
			string(rec.Type), string(rec.Modality), rec.Language, rec.Location,
			rec.FieldOfStudy, rec.RequiredSkills, rec.OptionalSkills,
			levels, rec.EligibleCountries, rec.MinSalary, rec.MaxSalary,
			rec.Currency, rec.Deadline, rec.PopularityScore,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert opportunity %q: %w", rec.Title, err)
		}
		ids = append(ids, rec.ID)
	}
	return ids, nil
}
