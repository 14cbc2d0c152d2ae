package engine

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != SnapshotPath {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testSnapshotJSON))
	}))
	defer srv.Close()

	snap, err := NewClient(srv.URL+"/", nil).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if snap.Name != "rtr-core-1" {
		t.Errorf("expected rtr-core-1, got %q", snap.Name)
	}
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`, "500"},
		{"not found", http.StatusNotFound, "", "404"},
		{"array body", http.StatusOK, `[1,2]`, "not a JSON object"},
		{"html body", http.StatusOK, `<html></html>`, "invalid JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, nil).Fetch(context.Background())
			var fe *FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *FetchError, got %T: %v", err, err)
			}
			if !strings.Contains(fe.Message, tt.wantMsg) {
				t.Errorf("expected message containing %q, got %q", tt.wantMsg, fe.Message)
			}
		})
	}
}

func TestFetchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, nil).Fetch(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T: %v", err, err)
	}
	if fe.Unwrap() == nil {
		t.Error("expected the transport error to be wrapped")
	}
}

func TestDownloadReport(t *testing.T) {
	pdf := []byte("%PDF-1.4 test report")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != ReportPath {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(pdf)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	var buf bytes.Buffer
	n, err := client.DownloadReport(context.Background(), &buf)
	if err != nil {
		t.Fatalf("DownloadReport() error: %v", err)
	}
	if n != int64(len(pdf)) || !bytes.Equal(buf.Bytes(), pdf) {
		t.Errorf("unexpected report body %q", buf.Bytes())
	}

	dir := t.TempDir()
	path, err := client.SaveReport(context.Background(), dir)
	if err != nil {
		t.Fatalf("SaveReport() error: %v", err)
	}
	if filepath.Base(path) != ReportFileName {
		t.Errorf("expected %s, got %s", ReportFileName, filepath.Base(path))
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if !bytes.Equal(got, pdf) {
		t.Errorf("saved report mismatch: %q", got)
	}
}

func TestSaveReportFailureLeavesNoFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "report generation failed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	dir := t.TempDir()
	if _, err := NewClient(srv.URL, nil).SaveReport(context.Background(), dir); err == nil {
		t.Fatal("expected error for failed report")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected empty dir, found %d entries", len(entries))
	}
}

func TestSaveReportRejectsNonPDF(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>login required</body></html>"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	_, err := NewClient(srv.URL, nil).SaveReport(context.Background(), dir)
	if !errors.Is(err, ErrNotPDF) {
		t.Fatalf("expected ErrNotPDF, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ReportFileName)); !os.IsNotExist(err) {
		t.Error("expected no report file to be written")
	}
}

func TestUserAgent(t *testing.T) {
	if got := UserAgent("1.2.3"); got != "snmpdash/1.2.3" {
		t.Errorf("UserAgent(1.2.3) = %q", got)
	}
	if got := UserAgent(""); got != "snmpdash" {
		t.Errorf("UserAgent(empty) = %q", got)
	}

	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("User-Agent")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	client.UserAgent = UserAgent("0.9.0")
	if _, err := client.Fetch(context.Background()); err != nil {
		t.Fatal(err)
	}
	if seen != "snmpdash/0.9.0" {
		t.Errorf("expected User-Agent snmpdash/0.9.0, got %q", seen)
	}
}
