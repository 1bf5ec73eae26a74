package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsFromValues(t *testing.T) {
	s := SettingsFromValues(map[string]string{
		"maintenance_mode": "true",
		"feature_views":    "false",
		"announcement":     "hi",
		"unknown_key":      "ignored",
		"feature_likes":    "maybe",
	})

	assert.True(t, s.MaintenanceMode)
	assert.False(t, s.FeatureViews)
	assert.Equal(t, "hi", s.Announcement)
	// unparsable and missing keys keep defaults
	assert.True(t, s.FeatureLikes)
	assert.True(t, s.FeatureFollowers)
	assert.Equal(t, "1.0.0", s.AppVersion)
}

func TestSettingsValuesRoundTrip(t *testing.T) {
	in := DefaultSettings()
	in.MaintenanceMode = true
	in.FeatureLikes = false

	raw := map[string]string{}
	for k, v := range in.Values() {
		raw[string(k)] = v
	}
	require.Len(t, raw, len(SettingKeys))
	assert.Equal(t, in, SettingsFromValues(raw))
}

func TestSettingsSet(t *testing.T) {
	var s Settings
	assert.Error(t, s.Set("nope", "x"))
	assert.Error(t, s.Set(SettingFeatureFollowers, "sure"))
	require.NoError(t, s.Set(SettingFeatureFollowers, "true"))
	assert.True(t, s.Enabled(OrderFollowers))
	assert.False(t, s.Enabled(OrderDeposit))
}

func TestOrderTypeIsPurchase(t *testing.T) {
	for _, typ := range []OrderType{OrderFollowers, OrderViews, OrderLikes} {
		assert.True(t, typ.IsPurchase())
	}
	assert.False(t, OrderDeposit.IsPurchase())
	assert.False(t, OrderType("comments").IsPurchase())
}
