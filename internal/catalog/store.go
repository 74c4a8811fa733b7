package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/opportunity-matcher/internal/matching"
)

// Skill is a catalog entry keyed by canonical skill name
type Skill struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Store looks up skill and organization display metadata in PostgreSQL,
// optionally fronted by a Redis cache. It implements the engine's
// SkillResolver and OrganizationResolver interfaces.
type Store struct {
	pool  *pgxpool.Pool
	canon *Canonicalizer
	cache *Cache
}

// NewStore creates a catalog store. cache may be nil.
func NewStore(pool *pgxpool.Pool, canon *Canonicalizer, cache *Cache) *Store {
	return &Store{pool: pool, canon: canon, cache: cache}
}

// Canonicalizer returns the canonicalizer this store keys skills with
func (s *Store) Canonicalizer() *Canonicalizer {
	return s.canon
}

// EnsureSkill upserts a skill by its canonical key and returns the stored
// entry. Re-ensuring an existing skill is idempotent: the first recorded
// display name wins.
func (s *Store) EnsureSkill(ctx context.Context, name string) (Skill, error) {
	name = strings.TrimSpace(name)
	key := s.canon.Canonicalize(name)
	if key == "" {
		return Skill{}, fmt.Errorf("skill name %q normalizes to nothing", name)
	}

	var skill Skill
	err := s.pool.QueryRow(ctx,
		`INSERT INTO skills (key, name)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET key = skills.key
		 RETURNING key, name`,
		key, name,
	).Scan(&skill.Key, &skill.Name)
	if err != nil {
		return Skill{}, fmt.Errorf("failed to ensure skill %q: %w", name, err)
	}
	return skill, nil
}

// ResolveSkillNames maps canonical skill keys to display names, preserving
// input order. Keys missing from the catalog fall back to the key itself so a
// stale record still renders something sensible.
func (s *Store) ResolveSkillNames(ctx context.Context, keys []string) ([]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	names := make([]string, len(keys))
	missing := make([]string, 0, len(keys))
	missingIdx := make(map[string][]int, len(keys))

	for i, key := range keys {
		if s.cache != nil {
			if name, ok := s.cache.GetSkillName(ctx, key); ok {
				names[i] = name
				continue
			}
		}
		if len(missingIdx[key]) == 0 {
			missing = append(missing, key)
		}
		missingIdx[key] = append(missingIdx[key], i)
	}

	if len(missing) > 0 {
		rows, err := s.pool.Query(ctx,
			`SELECT key, name FROM skills WHERE key = ANY($1)`, missing)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve skill names: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var key, name string
			if err := rows.Scan(&key, &name); err != nil {
				return nil, fmt.Errorf("failed to scan skill row: %w", err)
			}
			for _, i := range missingIdx[key] {
				names[i] = name
			}
			if s.cache != nil {
				s.cache.SetSkillName(ctx, key, name)
			}
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to read skill rows: %w", err)
		}
	}

	for i, name := range names {
		if name == "" {
			names[i] = keys[i]
		}
	}
	return names, nil
}

// ResolveOrganization returns display metadata for an organization key, or
// nil (with a nil error) when the key is unknown.
func (s *Store) ResolveOrganization(ctx context.Context, key string) (*matching.Organization, error) {
	if s.cache != nil {
		if org, ok := s.cache.GetOrganization(ctx, key); ok {
			return org, nil
		}
	}

	var org matching.Organization
	err := s.pool.QueryRow(ctx,
		`SELECT name, COALESCE(logo_url, '') FROM organizations WHERE key = $1`, key,
	).Scan(&org.Name, &org.LogoURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve organization %q: %w", key, err)
	}

	if s.cache != nil {
		s.cache.SetOrganization(ctx, key, &org)
	}
	return &org, nil
}
