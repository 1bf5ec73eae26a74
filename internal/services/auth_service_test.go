package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/fameflow-backend/internal/errs"
)

func TestAuth_SeedAndLogin(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	svc := NewAuthService(st.Admins(), st.ActivityLogs())

	seeded, err := svc.SeedAdmin(ctx, "Admin@FameFlow.com", "admin123")
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = svc.SeedAdmin(ctx, "other@fameflow.com", "x")
	require.NoError(t, err)
	assert.False(t, seeded, "seeding runs only on an empty table")

	stored, err := st.Admins().GetByEmail(ctx, "admin@fameflow.com")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", stored.PasswordHash)

	a, err := svc.Login(ctx, " admin@fameflow.com ", "admin123", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "admin@fameflow.com", a.Email)
	assert.Equal(t, "Super Admin", a.Role)
	require.NotNil(t, a.LastLogin)

	logs, err := st.ActivityLogs().List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "admin.login", logs[0].Action)
}

func TestAuth_LoginFailures(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	svc := NewAuthService(st.Admins(), st.ActivityLogs())
	_, err := svc.SeedAdmin(ctx, "admin@fameflow.com", "admin123")
	require.NoError(t, err)

	tests := []struct {
		name, email, password string
		want                  error
	}{
		{"wrong password", "admin@fameflow.com", "admin124", errs.ErrInvalidCredentials},
		{"unknown email", "nobody@fameflow.com", "admin123", errs.ErrInvalidCredentials},
		{"missing password", "admin@fameflow.com", "", errs.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.email, tt.password, "")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
