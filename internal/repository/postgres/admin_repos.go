package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/baharkarakas/fameflow-backend/internal/errs"
	"github.com/baharkarakas/fameflow-backend/internal/models"
	"github.com/jackc/pgx/v5"
)

type apiKeysRepo struct{ q querier }

func (r *apiKeysRepo) List(ctx context.Context) ([]models.APIKey, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, name, key_value, provider, status, usage_limit, current_usage, created_at
		   FROM api_keys ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.APIKey{}
	for rows.Next() {
		var k models.APIKey
		if err := rows.Scan(&k.ID, &k.Name, &k.KeyValue, &k.Provider, &k.Status, &k.UsageLimit, &k.CurrentUsage, &k.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

func (r *apiKeysRepo) Create(ctx context.Context, k models.APIKey) (models.APIKey, error) {
	err := r.q.QueryRow(ctx,
		`INSERT INTO api_keys (name, key_value, provider) VALUES ($1,$2,$3)
		 RETURNING id, status, usage_limit, current_usage, created_at`,
		k.Name, k.KeyValue, k.Provider,
	).Scan(&k.ID, &k.Status, &k.UsageLimit, &k.CurrentUsage, &k.CreatedAt)
	return k, err
}

type settingsRepo struct{ q querier }

func (r *settingsRepo) All(ctx context.Context) (map[string]string, error) {
	rows, err := r.q.Query(ctx, `SELECT key, COALESCE(value, '') FROM app_settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}

func (r *settingsRepo) Set(ctx context.Context, key models.SettingKey, value string) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO app_settings (key, value) VALUES ($1,$2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		string(key), value,
	)
	return err
}

type adminsRepo struct{ q querier }

func (r *adminsRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&n)
	return n, err
}

func (r *adminsRepo) Create(ctx context.Context, a models.Admin) (models.Admin, error) {
	err := r.q.QueryRow(ctx,
		`INSERT INTO admins (email, password_hash, role) VALUES ($1,$2,$3)
		 RETURNING id, two_factor_enabled, created_at`,
		a.Email, a.PasswordHash, a.Role,
	).Scan(&a.ID, &a.TwoFactorEnabled, &a.CreatedAt)
	return a, err
}

func (r *adminsRepo) GetByEmail(ctx context.Context, email string) (models.Admin, error) {
	var a models.Admin
	err := r.q.QueryRow(ctx,
		`SELECT id, email, password_hash, role, two_factor_enabled, last_login, created_at
		   FROM admins WHERE email=$1`, email,
	).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.TwoFactorEnabled, &a.LastLogin, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Admin{}, errs.ErrNotFound
	}
	return a, err
}

func (r *adminsRepo) TouchLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE admins SET last_login=$2 WHERE id=$1`, id, at)
	return err
}
