package services

import (
	"errors"
	"testing"
	"time"
)

type memorySettingsStore struct {
	values map[string]string
	err    error
}

func newMemorySettingsStore() *memorySettingsStore {
	return &memorySettingsStore{values: make(map[string]string)}
}

func (store *memorySettingsStore) Get(key string) (string, bool, error) {
	if store.err != nil {
		return "", false, store.err
	}
	value, ok := store.values[key]
	return value, ok, nil
}

func (store *memorySettingsStore) Set(key string, value string) error {
	if store.err != nil {
		return store.err
	}
	store.values[key] = value
	return nil
}

func (store *memorySettingsStore) Delete(key string) error {
	delete(store.values, key)
	return nil
}

func TestSettingsServiceLastExportRoundTrip(t *testing.T) {
	store := newMemorySettingsStore()
	service := NewSettingsService(store)

	if _, found, err := service.LastExport(); err != nil || found {
		t.Fatalf("expected no last export yet, got found=%v err=%v", found, err)
	}

	at := time.Date(2026, time.February, 21, 9, 30, 15, 123456789, time.UTC)
	if err := service.RecordExport(at); err != nil {
		t.Fatalf("RecordExport() unexpected error: %v", err)
	}
	if store.values[LastExportSettingKey] != "1771666215123" {
		t.Fatalf("expected epoch millis, got %q", store.values[LastExportSettingKey])
	}

	last, found, err := service.LastExport()
	if err != nil || !found {
		t.Fatalf("expected stored last export, got found=%v err=%v", found, err)
	}
	if !last.Equal(at.Truncate(time.Millisecond)) {
		t.Fatalf("expected %s, got %s", at.Truncate(time.Millisecond), last)
	}
}

func TestSettingsServiceSurfacesCorruptValues(t *testing.T) {
	store := newMemorySettingsStore()
	store.values[LastExportSettingKey] = "yesterday"

	if _, _, err := NewSettingsService(store).LastExport(); err == nil {
		t.Fatalf("expected parse error for corrupt value")
	}

	store.err = errors.New("locked")
	if err := NewSettingsService(store).RecordExport(time.Now()); err == nil {
		t.Fatalf("expected store error to propagate")
	}
}
