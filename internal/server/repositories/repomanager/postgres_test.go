package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/pressly/goose/v3"
)

func TestUsers_ReturnsRepository(t *testing.T) {
	m := NewPostgresRepositoryManager()
	if m.Users(nil) == nil {
		t.Fatalf("expected a users repository")
	}
}

func TestRunMigrations_UsesEmbeddedFS(t *testing.T) {
	m := NewPostgresRepositoryManager()

	called := false
	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		called = true
		if dir != "." {
			t.Fatalf("expected migrations rooted at '.', got %q", dir)
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	if err := m.RunMigrations(context.Background(), nil); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
	if !called {
		t.Fatalf("goose.UpContext was not invoked")
	}
}

func TestRunMigrations_PropagatesError(t *testing.T) {
	m := NewPostgresRepositoryManager()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("migration failed")
	}
	defer func() { gooseUpContext = orig }()

	if err := m.RunMigrations(context.Background(), nil); err == nil {
		t.Fatalf("expected migration error to propagate")
	}
}
