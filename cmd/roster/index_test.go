package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matsen/roster/internal/logging"
	"github.com/matsen/roster/internal/session"
)

func TestBuildIndexAndQuery(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "people.csv")
	content := "3,Carol,2021-03-01,Osaka,beta\n" +
		"1,Alice,2020-01-01,Tokyo,hello\n" +
		"%S 1\n" +
		"2,Bob,2019-12-31,Tokyo,x\n"
	if err := os.WriteFile(src, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	dbPath := filepath.Join(dir, "people.db")

	n, err := buildIndex(src, dbPath, logging.Discard())
	if err != nil {
		t.Fatalf("buildIndex() error = %v", err)
	}
	if n != 3 {
		t.Errorf("buildIndex() = %d, want 3", n)
	}

	recs, err := queryIndex(dbPath, "Tokyo")
	if err != nil {
		t.Fatalf("queryIndex() error = %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("queryIndex() returned %d records, want 2", len(recs))
	}
	// Sorted before Bob was appended, so Alice comes first.
	if recs[0].Name != "Alice" || recs[1].Name != "Bob" {
		t.Errorf("queryIndex() order = %s, %s; want Alice, Bob", recs[0].Name, recs[1].Name)
	}
}

func TestBuildIndex_StopsAtQuit(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "people.csv")
	if err := os.WriteFile(src, []byte("1,a,2020-01-01,x,n\n%Q\n2,b,2020-01-01,x,n\n"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	n, err := buildIndex(src, filepath.Join(dir, "people.db"), logging.Discard())
	if err != nil {
		t.Fatalf("buildIndex() error = %v", err)
	}
	if n != 1 {
		t.Errorf("buildIndex() = %d, want 1", n)
	}
}

func TestBuildIndex_BadFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(src, []byte("1,a,not-a-date,x,n\n"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	_, err := buildIndex(src, filepath.Join(dir, "bad.db"), logging.Discard())
	if got := session.Kind(err); got != session.KindParse {
		t.Errorf("buildIndex() error kind = %q, want %q (err = %v)", got, session.KindParse, err)
	}

	_, err = buildIndex(filepath.Join(dir, "missing.csv"), filepath.Join(dir, "bad.db"), logging.Discard())
	if got := session.Kind(err); got != session.KindIO {
		t.Errorf("buildIndex() error kind = %q, want %q (err = %v)", got, session.KindIO, err)
	}
}
