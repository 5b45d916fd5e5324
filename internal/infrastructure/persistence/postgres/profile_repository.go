package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fate-inyeon/internal/database"
	"fate-inyeon/internal/domain/profile"
)

const profileColumns = `id, account_id, name, age, birthday, gender, location, bio, picture,
	pref_gender, pref_age_min, pref_age_max, likes, dislikes, created_at, updated_at`

type ProfileRepository struct {
	db  database.DB
	now func() time.Time
}

func NewProfileRepository(db database.DB) *ProfileRepository {
	return &ProfileRepository{db: db, now: time.Now}
}

func (r *ProfileRepository) Create(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	if !validID(p.AccountID) || !validIDs(p.Likes.Slice()) || !validIDs(p.Dislikes.Slice()) {
		return profile.Profile{}, profile.ErrInvalidID
	}

	now := r.now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO profiles (`+profileColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 RETURNING `+profileColumns,
		uuid.NewString(), p.AccountID, p.Name, p.Age, p.Birthday, p.Gender, p.Location, p.Bio, p.Picture,
		p.Preferences.Gender, p.Preferences.AgeRange[0], p.Preferences.AgeRange[1],
		p.Likes.Slice(), p.Dislikes.Slice(), p.CreatedAt, p.UpdatedAt,
	)
	out, err := scanProfile(row)
	if err != nil {
		if isUniqueViolation(err) {
			return profile.Profile{}, profile.ErrAlreadyExists
		}
		return profile.Profile{}, fmt.Errorf("insert profile: %w", err)
	}
	return out, nil
}

func (r *ProfileRepository) GetByAccountID(ctx context.Context, accountID string) (profile.Profile, error) {
	if !validID(accountID) {
		return profile.Profile{}, profile.ErrInvalidID
	}

	row := r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE account_id = $1`, accountID)
	p, err := scanProfile(row)
	if err != nil {
		if isNoRows(err) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, fmt.Errorf("select profile: %w", err)
	}
	return p, nil
}

func (r *ProfileRepository) UpdateAttributes(ctx context.Context, accountID string, a profile.Attributes) (profile.Profile, error) {
	if !validID(accountID) {
		return profile.Profile{}, profile.ErrInvalidID
	}

	row := r.db.QueryRow(ctx,
		`UPDATE profiles SET name = $2, age = $3, birthday = $4, gender = $5, location = $6, bio = $7,
		        picture = $8, pref_gender = $9, pref_age_min = $10, pref_age_max = $11, updated_at = $12
		 WHERE account_id = $1
		 RETURNING `+profileColumns,
		accountID, a.Name, a.Age, a.Birthday, a.Gender, a.Location, a.Bio, a.Picture,
		a.Preferences.Gender, a.Preferences.AgeRange[0], a.Preferences.AgeRange[1], r.now().UTC(),
	)
	p, err := scanProfile(row)
	if err != nil {
		if isNoRows(err) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

func (r *ProfileRepository) ListCandidates(ctx context.Context, f profile.CandidateFilter) ([]profile.Profile, error) {
	if !validIDs(f.Exclude) {
		return nil, profile.ErrInvalidID
	}
	exclude := f.Exclude
	if exclude == nil {
		exclude = []string{}
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+profileColumns+` FROM profiles
		 WHERE gender = $1 AND NOT (account_id = ANY($2))
		 ORDER BY created_at, id`,
		f.Gender, exclude,
	)
	if err != nil {
		return nil, fmt.Errorf("select candidates: %w", err)
	}
	defer rows.Close()

	out := make([]profile.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return out, nil
}

// Like and Dislike move the target between the two arrays in one UPDATE.
// array_remove before array_append keeps each array free of duplicates.
func (r *ProfileRepository) Like(ctx context.Context, accountID, targetID string) error {
	return r.exec(ctx, true, accountID, targetID,
		`UPDATE profiles
		 SET likes = array_append(array_remove(likes, $2), $2),
		     dislikes = array_remove(dislikes, $2),
		     updated_at = $3
		 WHERE account_id = $1`)
}

func (r *ProfileRepository) Dislike(ctx context.Context, accountID, targetID string) error {
	return r.exec(ctx, true, accountID, targetID,
		`UPDATE profiles
		 SET dislikes = array_append(array_remove(dislikes, $2), $2),
		     likes = array_remove(likes, $2),
		     updated_at = $3
		 WHERE account_id = $1`)
}

func (r *ProfileRepository) RetractLike(ctx context.Context, accountID, targetID string) error {
	if !validID(accountID) || !validID(targetID) {
		return nil
	}
	return r.exec(ctx, false, accountID, targetID,
		`UPDATE profiles SET likes = array_remove(likes, $2), updated_at = $3 WHERE account_id = $1`)
}

func (r *ProfileRepository) exec(ctx context.Context, mustExist bool, accountID, targetID, q string) error {
	if !validID(accountID) || !validID(targetID) {
		return profile.ErrInvalidID
	}
	n, err := r.db.Exec(ctx, q, accountID, targetID, r.now().UTC())
	if err != nil {
		return fmt.Errorf("update profile sets: %w", err)
	}
	if mustExist && n == 0 {
		return profile.ErrNotFound
	}
	return nil
}

func scanProfile(row database.Row) (profile.Profile, error) {
	var (
		p               profile.Profile
		likes, dislikes []string
		ageMin, ageMax  int
	)
	err := row.Scan(
		&p.ID, &p.AccountID, &p.Name, &p.Age, &p.Birthday, &p.Gender, &p.Location, &p.Bio, &p.Picture,
		&p.Preferences.Gender, &ageMin, &ageMax, &likes, &dislikes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return profile.Profile{}, err
	}
	p.Preferences.AgeRange = [2]int{ageMin, ageMax}
	p.Likes = profile.NewIDSet(likes...)
	p.Dislikes = profile.NewIDSet(dislikes...)
	return p, nil
}
