package database

import (
	"testing"
	"testing/fstest"
)

// TestMigrationNamesSorted проверяет порядок и фильтрацию файлов миграций.
func TestMigrationNamesSorted(t *testing.T) {
	files := fstest.MapFS{
		"migrations/0002_more.sql": {Data: []byte("SELECT 1;")},
		"migrations/0001_init.sql": {Data: []byte("SELECT 1;")},
		"migrations/README.md":     {Data: []byte("docs")},
		"migrations/nested/x.sql":  {Data: []byte("SELECT 1;")},
	}

	names, err := migrationNames(files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(names) != 2 || names[0] != "0001_init.sql" || names[1] != "0002_more.sql" {
		t.Fatalf("unexpected migration order: %v", names)
	}
}

// TestEmbeddedMigrationsPresent проверяет, что схема встроена в бинарник.
func TestEmbeddedMigrationsPresent(t *testing.T) {
	names, err := migrationNames(migrationFiles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(names) < 2 || names[0] != "0001_init.sql" || names[1] != "0002_advice_prompt_version.sql" {
		t.Fatalf("expected embedded migrations in order, got %v", names)
	}
}
