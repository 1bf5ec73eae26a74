package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/baharkarakas/fameflow-backend/internal/auth"
	"github.com/baharkarakas/fameflow-backend/internal/errs"
	"github.com/baharkarakas/fameflow-backend/internal/logger"
	"github.com/baharkarakas/fameflow-backend/internal/models"
	repo "github.com/baharkarakas/fameflow-backend/internal/repository"
)

const seededRole = "Super Admin"

// AuthService checks admin credentials. It issues no tokens or sessions.
type AuthService struct {
	admins repo.Admins
	logs   repo.ActivityLogs
	now    func() time.Time
}

func NewAuthService(admins repo.Admins, logs repo.ActivityLogs) *AuthService {
	return &AuthService{admins: admins, logs: logs, now: time.Now}
}

func (s *AuthService) Login(ctx context.Context, email, password, ip string) (models.Admin, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return models.Admin{}, errs.Invalid("email and password are required")
	}

	a, err := s.admins.GetByEmail(ctx, email)
	if errors.Is(err, errs.ErrNotFound) {
		return models.Admin{}, errs.ErrInvalidCredentials
	}
	if err != nil {
		return models.Admin{}, err
	}
	if auth.VerifyPassword(password, a.PasswordHash) != nil {
		logger.FromContext(ctx).Info("admin login rejected", "email", email)
		return models.Admin{}, errs.ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.admins.TouchLogin(ctx, a.ID, now); err != nil {
		return models.Admin{}, err
	}
	a.LastLogin = &now

	auditTo(ctx, s.logs, Actor{Type: models.ActorAdmin, ID: &a.ID, IP: ip}, "admin.login", nil)
	return a, nil
}

// SeedAdmin creates the first admin when none exists. It reports whether a
// row was written.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password string) (bool, error) {
	n, err := s.admins.Count(ctx)
	if err != nil || n > 0 {
		return false, err
	}
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return false, errs.Invalid("seed admin needs email and password")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, err
	}
	if _, err := s.admins.Create(ctx, models.Admin{Email: email, PasswordHash: hash, Role: seededRole}); err != nil {
		return false, err
	}
	return true, nil
}

func normalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }
