package dbopen_test

import (
	"context"
	"errors"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/hazyhaar/redline/dbopen"
)

func TestOpen(t *testing.T) {
	db := dbopen.OpenMemory(t)

	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatal(err)
	}
	// :memory: may report "memory" instead of "wal" for journal_mode,
	// but the PRAGMA was still executed successfully.
	if journalMode != "wal" && journalMode != "memory" {
		t.Fatalf("journal_mode = %q, want wal or memory", journalMode)
	}

	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatal(err)
	}
	if fk != 1 {
		t.Fatalf("foreign_keys = %d, want 1", fk)
	}

	var busyTimeout int
	if err := db.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout); err != nil {
		t.Fatal(err)
	}
	if busyTimeout != 10_000 {
		t.Fatalf("busy_timeout = %d, want 10000", busyTimeout)
	}
}

func TestWithBusyTimeout(t *testing.T) {
	db := dbopen.OpenMemory(t, dbopen.WithBusyTimeout(5000))

	var bt int
	if err := db.QueryRow("PRAGMA busy_timeout").Scan(&bt); err != nil {
		t.Fatal(err)
	}
	if bt != 5000 {
		t.Fatalf("busy_timeout = %d, want 5000", bt)
	}
}

func TestWithSchema(t *testing.T) {
	db := dbopen.OpenMemory(t, dbopen.WithSchema(
		"CREATE TABLE things (id TEXT PRIMARY KEY, name TEXT)"))

	if _, err := db.Exec("INSERT INTO things (id, name) VALUES ('a', 'b')"); err != nil {
		t.Fatalf("insert into schema table: %v", err)
	}
}

func TestExec_Retry(t *testing.T) {
	db := dbopen.OpenMemory(t, dbopen.WithSchema(
		"CREATE TABLE kv (k TEXT PRIMARY KEY, v TEXT)"))

	if _, err := dbopen.Exec(context.Background(), db,
		"INSERT INTO kv (k, v) VALUES (?, ?)", "key", "val"); err != nil {
		t.Fatal(err)
	}

	var v string
	if err := db.QueryRow("SELECT v FROM kv WHERE k = 'key'").Scan(&v); err != nil {
		t.Fatal(err)
	}
	if v != "val" {
		t.Fatalf("v = %q, want val", v)
	}
}

func TestIsBusy(t *testing.T) {
	if dbopen.IsBusy(nil) {
		t.Fatal("nil error reported busy")
	}
	if dbopen.IsBusy(errors.New("no such table: kv")) {
		t.Fatal("unrelated error reported busy")
	}
	if !dbopen.IsBusy(errors.New("database is locked (5) (SQLITE_BUSY)")) {
		t.Fatal("busy error not detected")
	}
}
