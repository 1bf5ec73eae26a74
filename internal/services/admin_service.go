package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/baharkarakas/fameflow-backend/internal/errs"
	"github.com/baharkarakas/fameflow-backend/internal/logger"
	"github.com/baharkarakas/fameflow-backend/internal/models"
	repo "github.com/baharkarakas/fameflow-backend/internal/repository"
)

const (
	growthDays          = 7
	defaultActivityRows = 50
	maxActivityRows     = 500
)

// Actor identifies who performed an admin mutation for the activity log.
type Actor struct {
	Type models.ActorType
	ID   *int64
	IP   string
}

// AdminService is the back-office query layer. It never touches balances
// or orders.
type AdminService struct {
	store repo.Store
}

func NewAdminService(store repo.Store) *AdminService { return &AdminService{store: store} }

func (s *AdminService) Stats(ctx context.Context) (models.Stats, error) {
	st, err := s.store.Stats().Totals(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("stats totals", "err", err)
		return models.Stats{}, err
	}
	st.Growth, err = s.store.Stats().Growth(ctx, growthDays)
	if err != nil {
		logger.FromContext(ctx).Error("stats growth", "err", err)
		return models.Stats{}, err
	}
	return st, nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.store.Users().List(ctx)
}

func (s *AdminService) UpdateUserStatus(ctx context.Context, actor Actor, id int64, status models.UserStatus) error {
	if !status.Valid() {
		return errs.Invalid("status must be %s or %s", models.UserActive, models.UserSuspended)
	}
	if err := s.store.Users().UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.audit(ctx, actor, "user.status", map[string]any{"user_id": id, "status": string(status)})
	return nil
}

func (s *AdminService) ListAPIKeys(ctx context.Context) ([]models.APIKey, error) {
	return s.store.APIKeys().List(ctx)
}

func (s *AdminService) CreateAPIKey(ctx context.Context, actor Actor, name, keyValue, provider string) (models.APIKey, error) {
	k := models.APIKey{
		Name:     strings.TrimSpace(name),
		KeyValue: strings.TrimSpace(keyValue),
		Provider: strings.TrimSpace(provider),
	}
	switch {
	case k.Name == "":
		return models.APIKey{}, errs.Invalid("name is required")
	case k.KeyValue == "":
		return models.APIKey{}, errs.Invalid("key_value is required")
	case k.Provider == "":
		return models.APIKey{}, errs.Invalid("provider is required")
	}
	out, err := s.store.APIKeys().Create(ctx, k)
	if err != nil {
		return models.APIKey{}, err
	}
	s.audit(ctx, actor, "api_key.create", map[string]any{"api_key_id": out.ID, "provider": out.Provider})
	return out, nil
}

// Settings folds the stored rows over the defaults.
func (s *AdminService) Settings(ctx context.Context) (models.Settings, error) {
	vals, err := s.store.Settings().All(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	return models.SettingsFromValues(vals), nil
}

// UpdateSetting accepts only recognised keys; boolean keys take the literal
// strings "true" or "false".
func (s *AdminService) UpdateSetting(ctx context.Context, actor Actor, key, value string) (models.Settings, error) {
	k := models.SettingKey(strings.TrimSpace(key))
	if !k.Known() {
		return models.Settings{}, errs.Invalid("unknown setting %q", key)
	}
	if k.IsBool() && value != "true" && value != "false" {
		return models.Settings{}, errs.Invalid("setting %q expects true or false", k)
	}
	if err := s.store.Settings().Set(ctx, k, value); err != nil {
		return models.Settings{}, fmt.Errorf("set %s: %w", k, err)
	}
	s.audit(ctx, actor, "settings.update", map[string]any{"key": string(k), "value": value})
	return s.Settings(ctx)
}

func (s *AdminService) ListActivity(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = defaultActivityRows
	}
	if limit > maxActivityRows {
		limit = maxActivityRows
	}
	return s.store.ActivityLogs().List(ctx, limit)
}

func (s *AdminService) ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	return s.store.Stats().Plans(ctx)
}

// audit is best effort: a failed log write is reported, not returned.
func (s *AdminService) audit(ctx context.Context, actor Actor, action string, details map[string]any) {
	auditTo(ctx, s.store.ActivityLogs(), actor, action, details)
}

func auditTo(ctx context.Context, logs repo.ActivityLogs, actor Actor, action string, details map[string]any) {
	if actor.Type == "" {
		actor.Type = models.ActorAdmin
	}
	err := logs.Create(ctx, models.ActivityLog{
		ActorType: actor.Type,
		ActorID:   actor.ID,
		Action:    action,
		Details:   details,
		IPAddress: actor.IP,
	})
	if err != nil {
		logger.FromContext(ctx).Warn("activity log", "action", action, "err", err)
	}
}
