package db

import (
	"fmt"
	"io/fs"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	embeddedmigrations "github.com/terraincognita07/healthlog/migrations"
	"gorm.io/gorm"
)

var (
	migrationFilePattern      = regexp.MustCompile(`^(\d+)_([a-z0-9_]+)\.sql$`)
	addColumnStatementPattern = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+(\S+)\s+ADD\s+COLUMN\s+(\S+)`)
)

// schemaMigration is one row of the schema_migrations bookkeeping table.
type schemaMigration struct {
	Version   string `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	AppliedAt time.Time
}

func (schemaMigration) TableName() string {
	return "schema_migrations"
}

type migrationFile struct {
	version int
	name    string
	sql     string
}

func (file migrationFile) key() string {
	return fmt.Sprintf("%03d", file.version)
}

// migrator applies forward-only sqlite migrations from an fs.FS. Statements of
// the form ALTER TABLE ... ADD COLUMN are skipped when the column already
// exists, so databases created by older builds can catch up.
type migrator struct {
	database *gorm.DB
	files    fs.FS
	now      func() time.Time
}

func applyEmbeddedMigrations(database *gorm.DB) error {
	return migrator{database: database, files: embeddedmigrations.Files, now: time.Now}.run()
}

func (m migrator) run() error {
	if err := m.database.AutoMigrate(&schemaMigration{}); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	files, err := m.load()
	if err != nil {
		return err
	}

	var applied []string
	if err := m.database.Model(&schemaMigration{}).Pluck("version", &applied).Error; err != nil {
		return fmt.Errorf("load applied migration versions: %w", err)
	}

	for _, file := range files {
		if slices.Contains(applied, file.key()) {
			continue
		}
		if err := m.apply(file); err != nil {
			return err
		}
	}
	return nil
}

func (m migrator) load() ([]migrationFile, error) {
	entries, err := fs.ReadDir(m.files, ".")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	files := make([]migrationFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		matches := migrationFilePattern.FindStringSubmatch(entry.Name())
		if matches == nil {
			continue
		}

		version, err := strconv.Atoi(matches[1])
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", entry.Name(), err)
		}
		for _, existing := range files {
			if existing.version == version {
				return nil, fmt.Errorf("duplicate migration version %d in %s and %s", version, existing.name, entry.Name())
			}
		}

		content, err := fs.ReadFile(m.files, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		files = append(files, migrationFile{version: version, name: entry.Name(), sql: string(content)})
	}

	slices.SortFunc(files, func(a, b migrationFile) int {
		return a.version - b.version
	})
	return files, nil
}

func (m migrator) apply(file migrationFile) error {
	statements := splitSQLStatements(file.sql)
	if len(statements) == 0 {
		return fmt.Errorf("migration %s has no SQL statements", file.name)
	}

	return m.database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range statements {
			if table, column, ok := addedColumn(statement); ok {
				exists, err := tableColumnExists(tx, table, column)
				if err != nil {
					return fmt.Errorf("inspect migration %s: %w", file.name, err)
				}
				if exists {
					continue
				}
			}

			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", file.name, statement, err)
			}
		}

		record := schemaMigration{Version: file.key(), Name: file.name, AppliedAt: m.now().UTC()}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", file.name, err)
		}
		return nil
	})
}

func splitSQLStatements(sqlText string) []string {
	var statements []string
	for _, part := range strings.Split(sqlText, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

func addedColumn(statement string) (string, string, bool) {
	matches := addColumnStatementPattern.FindStringSubmatch(statement)
	if matches == nil {
		return "", "", false
	}
	return unquoteIdentifier(matches[1]), unquoteIdentifier(matches[2]), true
}

func tableColumnExists(database *gorm.DB, table string, column string) (bool, error) {
	migrator := database.Migrator()
	if !migrator.HasTable(table) {
		return false, fmt.Errorf("table %s does not exist", table)
	}
	return migrator.HasColumn(table, column), nil
}

func unquoteIdentifier(identifier string) string {
	return strings.Trim(strings.TrimSpace(identifier), "\"`[]")
}
