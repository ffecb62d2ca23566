// Store tests are integration tests against PostgreSQL. They are skipped
// when the database is not reachable.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"mlomp/internal/database"
	"mlomp/internal/models"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDSN uses the same defaults as docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "mlomp")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "mlomp")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

// testDB connects, migrates and registers cleanup, or skips the test.
func testDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, err := database.Connect(ctx, testDSN())
	if err != nil {
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// testUser inserts a throwaway account and removes it after the test.
func testUser(t *testing.T, db *sql.DB, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username:     username,
		Email:        username + "@store-test.local",
		PasswordHash: "x",
		Role:         models.RoleEditor,
	}
	if err := NewUserStore(db).Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = $1", u.ID) })
	return u
}

func TestRowIDRejectsNonNumeric(t *testing.T) {
	if _, err := rowID(models.ID("abc")); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
	if n, err := rowID(models.IDFromInt(42)); err != nil || n != 42 {
		t.Errorf("got %d, %v", n, err)
	}
}

func TestNullableAndPtr(t *testing.T) {
	if nullable("").Valid {
		t.Error("empty string should be NULL")
	}
	if p := ptr(nullable("x")); p == nil || *p != "x" {
		t.Errorf("round trip: %v", p)
	}
	if ptr(sql.NullString{}) != nil {
		t.Error("NULL should map to nil")
	}
}

func TestOwnerRefs(t *testing.T) {
	id, ref := owner{}.refs()
	if id != nil || ref != nil {
		t.Error("missing owner should give nil refs")
	}

	o := owner{id: sql.NullInt64{Int64: 3, Valid: true}, username: sql.NullString{String: "awa", Valid: true}}
	id, ref = o.refs()
	if id == nil || *id != models.IDFromInt(3) || ref.Username != "awa" {
		t.Errorf("got %v %+v", id, ref)
	}
	if !ownerArg(id).Valid || ownerArg(nil).Valid {
		t.Error("ownerArg mismatch")
	}
}
