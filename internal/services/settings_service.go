package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const LastExportSettingKey = "last_export_at"

type SettingsStore interface {
	Get(key string) (string, bool, error)
	Set(key string, value string) error
	Delete(key string) error
}

type SettingsService struct {
	store SettingsStore
}

func NewSettingsService(store SettingsStore) *SettingsService {
	return &SettingsService{store: store}
}

// RecordExport stores the export instant as decimal epoch milliseconds.
func (service *SettingsService) RecordExport(at time.Time) error {
	if err := service.store.Set(LastExportSettingKey, strconv.FormatInt(at.UnixMilli(), 10)); err != nil {
		return fmt.Errorf("record last export: %w", err)
	}
	return nil
}

func (service *SettingsService) LastExport() (time.Time, bool, error) {
	raw, found, err := service.store.Get(LastExportSettingKey)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("load last export: %w", err)
	}
	if !found || strings.TrimSpace(raw) == "" {
		return time.Time{}, false, nil
	}

	millis, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse last export %q: %w", raw, err)
	}
	return time.UnixMilli(millis).UTC(), true, nil
}
