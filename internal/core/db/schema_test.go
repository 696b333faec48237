package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/nfrf/lightfeedback/internal/core/config"
)

func newTestDB(t *testing.T) (*sqlx.DB, *Queries) {
	t.Helper()
	db, err := Open("sqlite://" + filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	queries, err := LoadQueries()
	if err != nil {
		t.Fatalf("LoadQueries failed: %v", err)
	}
	return db, queries
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	ctx := context.Background()
	db, queries := newTestDB(t)

	// Schema init must tolerate running on every startup
	for i := 0; i < 3; i++ {
		if err := EnsureSchema(ctx, db, queries); err != nil {
			t.Fatalf("EnsureSchema run %d failed: %v", i+1, err)
		}
	}

	count, ok, err := Scalar(ctx, db, "SELECT COUNT(*) FROM projects")
	if err != nil || !ok {
		t.Fatalf("count projects: %v", err)
	}
	if int(count) != len(config.AllowedProjects) {
		t.Errorf("expected %d seeded projects, got %d", len(config.AllowedProjects), count)
	}
}

func TestScalar_AbsentRow(t *testing.T) {
	ctx := context.Background()
	db, queries := newTestDB(t)
	if err := EnsureSchema(ctx, db, queries); err != nil {
		t.Fatal(err)
	}

	_, ok, err := Scalar(ctx, db, "SELECT 1 FROM feedback WHERE id = ?", 999)
	if err != nil {
		t.Fatalf("Scalar failed: %v", err)
	}
	if ok {
		t.Error("expected absent result for missing row")
	}
}

func TestWithTx_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	db, queries := newTestDB(t)
	if err := EnsureSchema(ctx, db, queries); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	err := WithTx(ctx, db, func(tx *sqlx.Tx) error {
		if _, err := queries.Exec(ctx, tx, "seed-project", "ephemeral", "Ephemeral", true); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	_, ok, err := Scalar(ctx, db, "SELECT 1 FROM projects WHERE key = ?", "ephemeral")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected rollback to discard the insert")
	}
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	ctx := context.Background()
	db, queries := newTestDB(t)
	if err := EnsureSchema(ctx, db, queries); err != nil {
		t.Fatal(err)
	}

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic to propagate")
			}
		}()
		WithTx(ctx, db, func(tx *sqlx.Tx) error {
			if _, err := queries.Exec(ctx, tx, "seed-project", "panicproj", "Panic", true); err != nil {
				return err
			}
			panic("mid-transaction failure")
		})
	}()

	_, ok, err := Scalar(ctx, db, "SELECT 1 FROM projects WHERE key = ?", "panicproj")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected rollback to discard the insert after panic")
	}
}
