package db

import (
	"database/sql"
	"io/fs"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/glebarez/sqlite"
	embeddedmigrations "github.com/terraincognita07/healthlog/migrations"
	"gorm.io/gorm"
)

func TestOpenSQLiteAppliesEmbeddedMigrationsOnCleanDatabase(t *testing.T) {
	database := openSQLiteForMigrationBootstrapTest(t, filepath.Join(t.TempDir(), "healthlog-clean.db"))

	for _, table := range []string{"diet_records", "exercise_records", "sleep_records", "settings"} {
		if !database.Migrator().HasTable(table) {
			t.Fatalf("expected table %s to exist", table)
		}
	}
	assertSleepDetailColumns(t, database)
	assertAllEmbeddedMigrationsApplied(t, database)
}

func TestOpenSQLiteSkipsColumnsAlreadyPresentInLegacySchema(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "healthlog-legacy.db")
	seedLegacySleepSchema(t, databasePath)

	database := openSQLiteForMigrationBootstrapTest(t, databasePath)

	assertSleepDetailColumns(t, database)
	assertAllEmbeddedMigrationsApplied(t, database)

	var migrated struct {
		HasDream         bool   `gorm:"column:has_dream"`
		DreamDescription string `gorm:"column:dream_description"`
	}
	if err := database.Table("sleep_records").
		Select("has_dream", "dream_description").
		Where("note = ?", "legacy-sleep").
		First(&migrated).Error; err != nil {
		t.Fatalf("load legacy sleep record: %v", err)
	}
	if !migrated.HasDream {
		t.Fatal("expected legacy has_dream value to survive migration")
	}
	if migrated.DreamDescription != "" {
		t.Fatalf("expected dream_description default to be empty, got %q", migrated.DreamDescription)
	}
}

func TestOpenSQLiteMigrationBootstrapIsIdempotent(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "healthlog-idempotent.db")

	firstOpen, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("first open sqlite: %v", err)
	}
	firstRecords := loadMigrationRecords(t, firstOpen)

	firstSQLDB, err := firstOpen.DB()
	if err != nil {
		t.Fatalf("first open sql db: %v", err)
	}
	if err := firstSQLDB.Close(); err != nil {
		t.Fatalf("close first sql db: %v", err)
	}

	secondOpen := openSQLiteForMigrationBootstrapTest(t, databasePath)
	secondRecords := loadMigrationRecords(t, secondOpen)

	if !reflect.DeepEqual(firstRecords, secondRecords) {
		t.Fatalf("expected migration records to remain unchanged between boots, before=%v after=%v", firstRecords, secondRecords)
	}
}

func TestSplitSQLStatementsDropsEmptyParts(t *testing.T) {
	statements := splitSQLStatements("CREATE TABLE a (id INTEGER);\n\n;  ;CREATE TABLE b (id INTEGER);")
	if len(statements) != 2 {
		t.Fatalf("expected 2 statements, got %d: %#v", len(statements), statements)
	}
}

func TestMigratorRejectsDuplicateVersions(t *testing.T) {
	files := fstest.MapFS{
		"001_first.sql": {Data: []byte("CREATE TABLE a (id INTEGER);")},
		"1_second.sql":  {Data: []byte("CREATE TABLE b (id INTEGER);")},
		"notes.txt":     {Data: []byte("ignored")},
		"002_third.sql": {Data: []byte("CREATE TABLE c (id INTEGER);")},
	}

	_, err := migrator{files: files, now: time.Now}.load()
	if err == nil || !strings.Contains(err.Error(), "duplicate migration version 1") {
		t.Fatalf("expected duplicate version error, got %v", err)
	}
}

func TestMigratorAppliesFilesInVersionOrder(t *testing.T) {
	database, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "ordered.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	files := fstest.MapFS{
		"010_add_column.sql": {Data: []byte("ALTER TABLE items ADD COLUMN label TEXT NOT NULL DEFAULT '';")},
		"002_items.sql":      {Data: []byte("CREATE TABLE items (id INTEGER PRIMARY KEY);")},
	}
	fixed := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	if err := (migrator{database: database, files: files, now: func() time.Time { return fixed }}).run(); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if got := loadMigrationRecords(t, database); !reflect.DeepEqual(got, []string{"002", "010"}) {
		t.Fatalf("unexpected applied versions %v", got)
	}
	exists, err := tableColumnExists(database, "items", "label")
	if err != nil || !exists {
		t.Fatalf("expected items.label to exist, exists=%v err=%v", exists, err)
	}
}

func openSQLiteForMigrationBootstrapTest(t *testing.T, databasePath string) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return database
}

func seedLegacySleepSchema(t *testing.T, databasePath string) {
	t.Helper()

	legacy, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{})
	if err != nil {
		t.Fatalf("open legacy sqlite: %v", err)
	}
	statements := []string{
		`CREATE TABLE sleep_records (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  sleep_time DATETIME,
  wake_time DATETIME,
  duration_minutes INTEGER NOT NULL DEFAULT 0,
  quality TEXT NOT NULL DEFAULT '',
  wake_up_count INTEGER NOT NULL DEFAULT 0,
  has_dream BOOLEAN NOT NULL DEFAULT 0,
  note TEXT NOT NULL DEFAULT '',
  record_date DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
)`,
		`INSERT INTO sleep_records (has_dream, note, record_date) VALUES (1, 'legacy-sleep', '2026-01-10 00:00:00+00:00')`,
	}
	for _, statement := range statements {
		if err := legacy.Exec(statement).Error; err != nil {
			t.Fatalf("seed legacy schema: %v", err)
		}
	}

	sqlDB, err := legacy.DB()
	if err != nil {
		t.Fatalf("legacy sql db: %v", err)
	}
	closeLegacy(t, sqlDB)
}

func closeLegacy(t *testing.T, sqlDB *sql.DB) {
	t.Helper()
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close legacy sqlite: %v", err)
	}
}

func assertSleepDetailColumns(t *testing.T, database *gorm.DB) {
	t.Helper()

	for _, column := range []string{"sleep_latency_minutes", "has_dream", "dream_description"} {
		exists, err := tableColumnExists(database, "sleep_records", column)
		if err != nil {
			t.Fatalf("inspect sleep_records.%s: %v", column, err)
		}
		if !exists {
			t.Fatalf("expected sleep_records.%s to exist", column)
		}
	}
}

func assertAllEmbeddedMigrationsApplied(t *testing.T, database *gorm.DB) {
	t.Helper()

	entries, err := fs.Glob(embeddedmigrations.Files, "*.sql")
	if err != nil {
		t.Fatalf("list embedded migrations: %v", err)
	}

	var applied int64
	if err := database.Table("schema_migrations").Count(&applied).Error; err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}
	if int(applied) != len(entries) {
		t.Fatalf("expected %d applied migrations, got %d", len(entries), applied)
	}
}

func loadMigrationRecords(t *testing.T, database *gorm.DB) []string {
	t.Helper()

	versions := make([]string, 0)
	if err := database.Raw(`SELECT version FROM schema_migrations ORDER BY version`).Scan(&versions).Error; err != nil {
		t.Fatalf("load schema_migrations: %v", err)
	}
	return versions
}
