package sql

import (
	"context"
	"database/sql"
	"errors"
	"iter"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lguimbarda/treeflow/flow/core"
	"github.com/lguimbarda/treeflow/flow/recursive"
)

type path struct {
	ID   int
	Path string
}

// setupTestDB creates the parent-linked directory table. The pool is held
// to one connection: every :memory: connection is its own database.
func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	if err := core.Run(ctx, Exec(db, `
		CREATE TABLE dirs (
			id INTEGER PRIMARY KEY,
			parent INTEGER REFERENCES dirs(id),
			name TEXT NOT NULL
		)
	`)); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	rows := []struct {
		id     int
		parent any
		name   string
	}{
		{1, nil, "root"},
		{2, 1, "images"},
		{3, 1, "Users"},
		{4, 3, "Susan"},
		{5, 4, "Desktop"},
		{6, 2, "test.jpg"},
	}
	for _, r := range rows {
		if err := core.Run(ctx, Exec(db, `INSERT INTO dirs (id, parent, name) VALUES (?, ?, ?)`, r.id, r.parent, r.name)); err != nil {
			t.Fatalf("failed to insert %q: %v", r.name, err)
		}
	}
	return db
}

func scanPath(prefix string) Scanner[path] {
	return func(rows *sql.Rows) (path, error) {
		var p path
		var name string
		if err := rows.Scan(&p.ID, &name); err != nil {
			return p, err
		}
		p.Path = prefix + "/" + name
		return p, nil
	}
}

var wantPaths = []path{
	{1, "/root"},
	{2, "/root/images"},
	{3, "/root/Users"},
	{6, "/root/images/test.jpg"},
	{4, "/root/Users/Susan"},
	{5, "/root/Users/Susan/Desktop"},
}

func assertPaths(t *testing.T, got []path) {
	t.Helper()
	if len(got) != len(wantPaths) {
		t.Fatalf("got %d paths %v, want %d", len(got), got, len(wantPaths))
	}
	for i := range wantPaths {
		if got[i] != wantPaths[i] {
			t.Errorf("paths[%d] = %v, want %v", i, got[i], wantPaths[i])
		}
	}
}

func TestQuery(t *testing.T) {
	db := setupTestDB(t)

	ctx := context.Background()
	got, err := core.Slice(ctx, Query(db, "SELECT id, name FROM dirs WHERE parent = ? ORDER BY id", scanPath("/root"), 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 2 || got[0].Path != "/root/images" || got[1].Path != "/root/Users" {
		t.Errorf("got %v, want images and Users", got)
	}
}

func TestQuery_Error(t *testing.T) {
	db := setupTestDB(t)

	_, err := core.Slice(context.Background(), Query(db, "SELECT id, name FROM missing", scanPath("")))
	if err == nil {
		t.Fatal("expected error for missing table")
	}
}

func TestRows(t *testing.T) {
	db := setupTestDB(t)

	var got []path
	for p, err := range Rows(context.Background(), db, "SELECT id, name FROM dirs WHERE parent IS NULL", scanPath("")) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, p)
	}

	if len(got) != 1 || got[0] != (path{1, "/root"}) {
		t.Errorf("got %v, want [/root]", got)
	}
}

func TestRows_IsLazy(t *testing.T) {
	db := setupTestDB(t)
	db.Close()

	// building the sequence on a closed database must not fail
	seq := Rows(context.Background(), db, "SELECT id, name FROM dirs", scanPath(""))

	for _, err := range seq {
		if err == nil {
			t.Fatal("expected an error from a closed database")
		}
	}
}

func TestRows_ScanErrorEndsSequence(t *testing.T) {
	db := setupTestDB(t)
	errScan := errors.New("bad row")

	var values, failures int
	for _, err := range Rows(context.Background(), db, "SELECT id FROM dirs ORDER BY id", func(*sql.Rows) (int, error) {
		return 0, errScan
	}) {
		if err != nil {
			if !errors.Is(err, errScan) {
				t.Errorf("err = %v, want %v", err, errScan)
			}
			failures++
			continue
		}
		values++
	}

	if values != 0 || failures != 1 {
		t.Errorf("got %d values and %d failures, want 0 and 1", values, failures)
	}
}

func TestRows_RecursiveWalk(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	roots := Rows(ctx, db, "SELECT id, name FROM dirs WHERE parent IS NULL ORDER BY id", scanPath(""))
	children := func(parent path) (iter.Seq2[path, error], error) {
		return Rows(ctx, db, "SELECT id, name FROM dirs WHERE parent = ? ORDER BY id", scanPath(parent.Path), parent.ID), nil
	}

	// one connection is enough: only the front level holds an open cursor
	var got []path
	for p, err := range recursive.MapErr(roots, children) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, p)
	}

	assertPaths(t, got)
}

func TestRows_RecursiveWalkFailure(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	roots := Rows(ctx, db, "SELECT id, name FROM dirs WHERE parent IS NULL", scanPath(""))
	children := func(parent path) (iter.Seq2[path, error], error) {
		if parent.ID == 3 {
			return Rows(ctx, db, "SELECT id, name FROM no_such_table", scanPath(parent.Path)), nil
		}
		return Rows(ctx, db, "SELECT id, name FROM dirs WHERE parent = ? ORDER BY id", scanPath(parent.Path), parent.ID), nil
	}

	var got []path
	var walkErr error
	for p, err := range recursive.MapErr(roots, children) {
		if err != nil {
			walkErr = err
			break
		}
		got = append(got, p)
	}

	if walkErr == nil {
		t.Fatal("expected the failing level to end the walk")
	}
	want := []path{{1, "/root"}, {2, "/root/images"}, {3, "/root/Users"}, {6, "/root/images/test.jpg"}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paths[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestQuery_RecursiveTransform(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	roots := Query(db, "SELECT id, name FROM dirs WHERE parent IS NULL ORDER BY id", scanPath(""))
	children := func(parent path) core.Stream[path] {
		return Query(db, "SELECT id, name FROM dirs WHERE parent = ? ORDER BY id", scanPath(parent.Path), parent.ID)
	}

	got, err := core.Slice(ctx, recursive.Transform(children).Apply(ctx, roots))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertPaths(t, got)
}
