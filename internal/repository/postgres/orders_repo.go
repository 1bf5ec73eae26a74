package postgres

import (
	"context"
	"errors"

	"github.com/baharkarakas/fameflow-backend/internal/errs"
	"github.com/baharkarakas/fameflow-backend/internal/models"
	"github.com/jackc/pgx/v5"
)

type ordersRepo struct{ q querier }

const orderColumns = `id, user_id, type, amount, price, target, status, provider_order_id, created_at`

func scanOrder(row pgx.Row) (models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.UserID, &o.Type, &o.Amount, &o.Price, &o.Target, &o.Status, &o.ProviderOrderID, &o.CreatedAt)
	return o, err
}

func (r *ordersRepo) Create(ctx context.Context, o models.Order) (models.Order, error) {
	const q = `
INSERT INTO orders (id, user_id, type, amount, price, target, status)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING ` + orderColumns

	out, err := scanOrder(r.q.QueryRow(ctx, q,
		o.ID, o.UserID, o.Type, o.Amount, o.Price, o.Target, o.Status,
	))
	if isUniqueViolation(err, "orders_pkey") {
		return models.Order{}, errs.ErrDuplicateID
	}
	return out, err
}

func (r *ordersRepo) GetByID(ctx context.Context, id string) (models.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Order{}, errs.ErrNotFound
	}
	return o, err
}

func (r *ordersRepo) List(ctx context.Context, userID *int64, limit, offset int) ([]models.Order, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+orderColumns+`
		   FROM orders
		  WHERE ($1::bigint IS NULL OR user_id = $1)
		  ORDER BY created_at DESC, id DESC
		  LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
