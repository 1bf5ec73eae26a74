package postgres

import (
	"context"

	"github.com/baharkarakas/fameflow-backend/internal/models"
)

type statsRepo struct{ q querier }

func (r *statsRepo) Totals(ctx context.Context) (models.Stats, error) {
	var s models.Stats
	err := r.q.QueryRow(ctx, `
SELECT (SELECT COUNT(*) FROM users),
       (SELECT COALESCE(SUM(price), 0) FROM orders),
       (SELECT COUNT(*) FROM orders),
       (SELECT COUNT(*) FROM user_subscriptions WHERE status = 'Active')`,
	).Scan(&s.TotalUsers, &s.TotalRevenue, &s.TotalOrders, &s.ActiveSubs)
	return s, err
}

func (r *statsRepo) Growth(ctx context.Context, days int) ([]models.GrowthPoint, error) {
	rows, err := r.q.Query(ctx, `
SELECT to_char(d, 'Dy'),
       (SELECT COALESCE(SUM(price), 0) FROM orders
         WHERE created_at >= d AND created_at < d + interval '1 day'),
       (SELECT COUNT(*) FROM users
         WHERE created_at >= d AND created_at < d + interval '1 day')
  FROM generate_series(date_trunc('day', now()) - ($1::int - 1) * interval '1 day',
                       date_trunc('day', now()),
                       interval '1 day') AS d
 ORDER BY d`, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.GrowthPoint{}
	for rows.Next() {
		var p models.GrowthPoint
		if err := rows.Scan(&p.Name, &p.Revenue, &p.Users); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *statsRepo) Plans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, price, duration, features, status FROM subscription_plans ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.SubscriptionPlan{}
	for rows.Next() {
		var p models.SubscriptionPlan
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Duration, &p.Features, &p.Status); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
