package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FocuswithJustin/biblein1year/core/calendar"
	"github.com/FocuswithJustin/biblein1year/internal/store"
)

const exodusJSON = `[
 {"bookname":"Exodus","chapter":"3","verse":"12","text":"..."},
 {"bookname":"Exodus","chapter":"3","verse":"13","text":"..."},
 {"bookname":"Exodus","chapter":"3","verse":"14","text":"..."}
]`

func seed(t *testing.T, path string, records ...calendar.DayRecord) {
	t.Helper()
	s, err := store.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	for _, rec := range records {
		if err := s.Put(context.Background(), rec); err != nil {
			t.Fatal(err)
		}
	}
}

func reading(refs ...string) []calendar.Reading {
	out := make([]calendar.Reading, len(refs))
	for i, ref := range refs {
		out[i] = calendar.Reading{Ref: ref}
	}
	return out
}

func TestRunRejectsArguments(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--force"}, &stdout, &stderr)
	if code != exitUsage {
		t.Errorf("exit code = %d, want %d", code, exitUsage)
	}
	if !strings.Contains(stderr.String(), "Usage:") {
		t.Errorf("usage not printed: %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("unexpected stdout: %q", stdout.String())
	}
}

func TestRunConfigError(t *testing.T) {
	t.Setenv("PASSAGE_URL", "ftp://example.com")
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), nil, &stdout, &stderr); code != exitUsage {
		t.Errorf("exit code = %d, want %d", code, exitUsage)
	}
}

func TestRunMissingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readngs.db")
	t.Setenv("READINGS_DB", path)

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), nil, &stdout, &stderr); code != exitUsage {
		t.Errorf("exit code = %d, want %d", code, exitUsage)
	}
	if !strings.Contains(stderr.String(), "database does not exist") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("summary printed for a missing database: %q", stdout.String())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("run created the missing database")
	}
}

func TestRunCorrectsCalendar(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("passage") != "Exodus 3:12-14" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(exodusJSON))
	}))
	defer server.Close()

	db := filepath.Join(t.TempDir(), "readings.db")
	seed(t, db,
		calendar.DayRecord{Month: 2, Day: 1, Readings: reading("Exodus 3:1-12", "Mark 2:1-12")},
		calendar.DayRecord{Month: 2, Day: 2, Readings: reading("Exodus 3:12-14", "Mark 2:13-17")},
	)
	t.Setenv("READINGS_DB", db)
	t.Setenv("PASSAGE_URL", server.URL+"/api/")
	t.Setenv("LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), nil, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code = %d, want %d; stderr: %s", code, exitOK, stderr.String())
	}
	if !strings.Contains(stdout.String(), "1 corrected, 0 skipped") {
		t.Errorf("summary = %q", stdout.String())
	}

	s, err := store.OpenReadOnly(db)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	rec, err := s.Get(context.Background(), 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Readings[0].Ref != "Exodus 3:13-14" || rec.Readings[0].OldOverlap != "Exodus 3:12-14" {
		t.Errorf("reading = %+v", rec.Readings[0])
	}
}

func TestRunReportsSkips(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	db := filepath.Join(t.TempDir(), "readings.db")
	seed(t, db,
		calendar.DayRecord{Month: 2, Day: 1, Readings: reading("Exodus 3:1-12", "Mark 2:1-12")},
		calendar.DayRecord{Month: 2, Day: 2, Readings: reading("Exodus 3:12-14", "Mark 2:13-17")},
	)
	t.Setenv("READINGS_DB", db)
	t.Setenv("PASSAGE_URL", server.URL)
	t.Setenv("LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), nil, &stdout, &stderr); code != exitSkipped {
		t.Errorf("exit code = %d, want %d", code, exitSkipped)
	}
	if !strings.Contains(stdout.String(), "skipped 2/2 old_testament (resolve)") {
		t.Errorf("summary = %q", stdout.String())
	}
}
