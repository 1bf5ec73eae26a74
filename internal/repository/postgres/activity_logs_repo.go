package postgres

import (
	"context"

	"github.com/baharkarakas/fameflow-backend/internal/models"
)

type activityLogsRepo struct{ q querier }

func (r *activityLogsRepo) Create(ctx context.Context, l models.ActivityLog) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO activity_logs(actor_type, actor_id, action, details, ip_address) VALUES($1,$2,$3,$4,NULLIF($5,''))`,
		l.ActorType, l.ActorID, l.Action, l.Details, l.IPAddress,
	)
	return err
}

func (r *activityLogsRepo) List(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, actor_type, actor_id, action, details, COALESCE(ip_address, ''), created_at
		   FROM activity_logs
		  ORDER BY created_at DESC, id DESC
		  LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ActivityLog{}
	for rows.Next() {
		var l models.ActivityLog
		if err := rows.Scan(&l.ID, &l.ActorType, &l.ActorID, &l.Action, &l.Details, &l.IPAddress, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
