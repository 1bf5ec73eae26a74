package models

import (
	"fmt"
	"strconv"
)

type SettingKey string

const (
	SettingMaintenanceMode  SettingKey = "maintenance_mode"
	SettingAppVersion       SettingKey = "app_version"
	SettingAnnouncement     SettingKey = "announcement"
	SettingFeatureFollowers SettingKey = "feature_followers"
	SettingFeatureViews     SettingKey = "feature_views"
	SettingFeatureLikes     SettingKey = "feature_likes"
)

// SettingKeys lists every recognized key in storage order.
var SettingKeys = []SettingKey{
	SettingMaintenanceMode,
	SettingAppVersion,
	SettingAnnouncement,
	SettingFeatureFollowers,
	SettingFeatureViews,
	SettingFeatureLikes,
}

func (k SettingKey) Known() bool {
	for _, sk := range SettingKeys {
		if sk == k {
			return true
		}
	}
	return false
}

func (k SettingKey) IsBool() bool {
	switch k {
	case SettingMaintenanceMode, SettingFeatureFollowers, SettingFeatureViews, SettingFeatureLikes:
		return true
	}
	return false
}

// Settings is the process-wide configuration kept in app_settings.
type Settings struct {
	MaintenanceMode  bool   `json:"maintenance_mode"`
	AppVersion       string `json:"app_version"`
	Announcement     string `json:"announcement"`
	FeatureFollowers bool   `json:"feature_followers"`
	FeatureViews     bool   `json:"feature_views"`
	FeatureLikes     bool   `json:"feature_likes"`
}

func DefaultSettings() Settings {
	return Settings{
		AppVersion:       "1.0.0",
		Announcement:     "Welcome to the new FameFlow Admin Panel!",
		FeatureFollowers: true,
		FeatureViews:     true,
		FeatureLikes:     true,
	}
}

// SettingsFromValues folds stored rows over the defaults. Unknown keys and
// unparsable booleans are skipped.
func SettingsFromValues(values map[string]string) Settings {
	s := DefaultSettings()
	for k, v := range values {
		_ = s.Set(SettingKey(k), v)
	}
	return s
}

// Set assigns one key from its stored string form.
func (s *Settings) Set(key SettingKey, value string) error {
	if !key.Known() {
		return fmt.Errorf("unknown setting %q", key)
	}
	var b bool
	if key.IsBool() {
		var err error
		if b, err = strconv.ParseBool(value); err != nil {
			return fmt.Errorf("setting %q expects true or false", key)
		}
	}
	switch key {
	case SettingMaintenanceMode:
		s.MaintenanceMode = b
	case SettingAppVersion:
		s.AppVersion = value
	case SettingAnnouncement:
		s.Announcement = value
	case SettingFeatureFollowers:
		s.FeatureFollowers = b
	case SettingFeatureViews:
		s.FeatureViews = b
	case SettingFeatureLikes:
		s.FeatureLikes = b
	}
	return nil
}

// Values is the inverse of SettingsFromValues.
func (s Settings) Values() map[SettingKey]string {
	return map[SettingKey]string{
		SettingMaintenanceMode:  strconv.FormatBool(s.MaintenanceMode),
		SettingAppVersion:       s.AppVersion,
		SettingAnnouncement:     s.Announcement,
		SettingFeatureFollowers: strconv.FormatBool(s.FeatureFollowers),
		SettingFeatureViews:     strconv.FormatBool(s.FeatureViews),
		SettingFeatureLikes:     strconv.FormatBool(s.FeatureLikes),
	}
}

// Enabled reports the feature flag for a purchasable order type.
func (s Settings) Enabled(t OrderType) bool {
	switch t {
	case OrderFollowers:
		return s.FeatureFollowers
	case OrderViews:
		return s.FeatureViews
	case OrderLikes:
		return s.FeatureLikes
	}
	return false
}
