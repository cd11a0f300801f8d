package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"hanmal/backend/internal/model"
)

// ProfileRepository defines the interface for custom profile storage.
type ProfileRepository interface {
	List(ctx context.Context) ([]model.TranslationProfile, error)
	// Get returns nil, nil when no profile with the id exists.
	Get(ctx context.Context, id string) (*model.TranslationProfile, error)
	Save(ctx context.Context, profile model.TranslationProfile) error
	// Delete removes a profile and reports whether a row existed.
	Delete(ctx context.Context, id string) (bool, error)
}

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) List(ctx context.Context) ([]model.TranslationProfile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, rules FROM profiles ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []model.TranslationProfile
	for rows.Next() {
		p, err := scanProfile(rows.Scan)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

func (r *profileRepository) Get(ctx context.Context, id string) (*model.TranslationProfile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, rules FROM profiles WHERE id = ?
	`, id)

	p, err := scanProfile(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) Save(ctx context.Context, profile model.TranslationProfile) error {
	rules, err := json.Marshal(profile.Rules)
	if err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}
	if profile.Rules == nil {
		rules = []byte("[]")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO profiles (id, name, description, rules, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			rules = excluded.rules,
			updated_at = excluded.updated_at
	`, profile.ID, profile.Name, profile.Description, string(rules), now, now)
	return err
}

func (r *profileRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanProfile(scan func(dest ...any) error) (*model.TranslationProfile, error) {
	var p model.TranslationProfile
	var rules string
	if err := scan(&p.ID, &p.Name, &p.Description, &rules); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(rules), &p.Rules); err != nil {
		// A corrupt rules column should not make the profile unreadable.
		p.Rules = nil
	}
	return &p, nil
}
