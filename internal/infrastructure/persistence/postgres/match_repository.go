package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fate-inyeon/internal/database"
	"fate-inyeon/internal/domain/match"
)

type MatchRepository struct {
	db  database.DB
	now func() time.Time
}

func NewMatchRepository(db database.DB) *MatchRepository {
	return &MatchRepository{db: db, now: time.Now}
}

// CreateIfAbsent relies on the unique pair_key: a losing concurrent insert
// hits ON CONFLICT, returns no row and reads the winner back.
func (r *MatchRepository) CreateIfAbsent(ctx context.Context, a, b string) (match.Match, bool, error) {
	if !validID(a) || !validID(b) {
		return match.Match{}, false, fmt.Errorf("match participants: invalid id")
	}
	key := match.PairKey(a, b)

	row := r.db.QueryRow(ctx,
		`INSERT INTO matches (id, profile_a, profile_b, pair_key, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (pair_key) DO NOTHING
		 RETURNING id, profile_a, profile_b, created_at`,
		uuid.NewString(), a, b, key, r.now().UTC(),
	)
	m, err := scanMatch(row)
	if err == nil {
		return m, true, nil
	}
	if !isNoRows(err) {
		return match.Match{}, false, fmt.Errorf("insert match: %w", err)
	}

	m, err = r.getOne(ctx, `SELECT id, profile_a, profile_b, created_at FROM matches WHERE pair_key = $1`, key)
	if err != nil {
		return match.Match{}, false, err
	}
	return m, false, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, id string) (match.Match, error) {
	if !validID(id) {
		return match.Match{}, match.ErrNotFound
	}
	return r.getOne(ctx, `SELECT id, profile_a, profile_b, created_at FROM matches WHERE id = $1`, id)
}

func (r *MatchRepository) ListByParticipant(ctx context.Context, accountID string) ([]match.Match, error) {
	if !validID(accountID) {
		return []match.Match{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, profile_a, profile_b, created_at FROM matches
		 WHERE profile_a = $1 OR profile_b = $1
		 ORDER BY created_at, id`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}
	defer rows.Close()

	out := make([]match.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}
	return out, nil
}

func (r *MatchRepository) DeleteForParticipant(ctx context.Context, id, accountID string) (bool, error) {
	if !validID(id) || !validID(accountID) {
		return false, nil
	}
	n, err := r.db.Exec(ctx,
		`DELETE FROM matches WHERE id = $1 AND (profile_a = $2 OR profile_b = $2)`,
		id, accountID,
	)
	if err != nil {
		return false, fmt.Errorf("delete match: %w", err)
	}
	return n == 1, nil
}

func (r *MatchRepository) getOne(ctx context.Context, q, arg string) (match.Match, error) {
	m, err := scanMatch(r.db.QueryRow(ctx, q, arg))
	if err != nil {
		if isNoRows(err) {
			return match.Match{}, match.ErrNotFound
		}
		return match.Match{}, fmt.Errorf("select match: %w", err)
	}
	return m, nil
}

func scanMatch(row database.Row) (match.Match, error) {
	var m match.Match
	if err := row.Scan(&m.ID, &m.Profiles[0], &m.Profiles[1], &m.CreatedAt); err != nil {
		return match.Match{}, err
	}
	return m, nil
}
