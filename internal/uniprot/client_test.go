package uniprot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func testClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return &Client{HTTP: srv.Client(), BaseURL: srv.URL}, srv
}

func TestResolve(t *testing.T) {
	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		if !strings.Contains(query, "gene_exact:TP53") {
			t.Errorf("unexpected query %q", query)
		}
		if strings.Contains(query, "reviewed:true") {
			w.Write([]byte("Entry\nP04637\nQ15086\n"))
			return
		}
		w.Write([]byte("Entry\nA0A024R1X5\n"))
	})
	defer srv.Close()

	p, err := c.Resolve(context.Background(), "TP53")
	if err != nil {
		t.Fatal(err)
	}
	if p.UID != "P04637" {
		t.Errorf("UID = %q, want P04637", p.UID)
	}
	if len(p.Reviewed) != 1 || p.Reviewed[0] != "Q15086" {
		t.Errorf("Reviewed = %v", p.Reviewed)
	}
	if len(p.Unreviewed) != 1 || p.Unreviewed[0] != "A0A024R1X5" {
		t.Errorf("Unreviewed = %v", p.Unreviewed)
	}
}

func TestResolve_geneAlias(t *testing.T) {
	var sawAlias atomic.Bool
	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Query().Get("query"), "gene_exact:TNNI3K") {
			sawAlias.Store(true)
		}
		w.Write([]byte("Entry\nQ59H18\n"))
	})
	defer srv.Close()

	p, err := c.Resolve(context.Background(), "FPGT-TNNI3K")
	if err != nil {
		t.Fatal(err)
	}
	if !sawAlias.Load() {
		t.Error("renamed gene should be queried by its alias symbol")
	}
	// the record keeps the name found in the cohort data
	if p.Name != "FPGT-TNNI3K" {
		t.Errorf("Name = %q", p.Name)
	}
}

func TestResolve_noneFound(t *testing.T) {
	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(""))
	})
	defer srv.Close()

	if _, err := c.Resolve(context.Background(), "NOPE1"); err == nil {
		t.Error("expected an error when no accessions exist")
	}
}

func TestGet_retriesThrottling(t *testing.T) {
	var calls atomic.Int32
	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("Entry\nP04637\n"))
	})
	defer srv.Close()

	body, err := c.get(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(body, "P04637") {
		t.Errorf("body = %q", body)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

// A 200 whose body dies mid-read is a transient network failure and
// retries like one; the read error must survive into the final error.
func TestGet_retriesTruncatedBody(t *testing.T) {
	var calls atomic.Int32
	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Content-Length", "1000")
			w.Write([]byte("Entry\n"))
			return
		}
		w.Write([]byte("Entry\nP04637\n"))
	})
	defer srv.Close()

	body, err := c.get(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(body, "P04637") {
		t.Errorf("body = %q", body)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestGet_failsFastOnClientError(t *testing.T) {
	var calls atomic.Int32
	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})
	defer srv.Close()

	if _, err := c.get(context.Background(), srv.URL); err == nil {
		t.Error("expected an error for 404")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want no retries on 404", calls.Load())
	}
}

func TestParseTSVIDs(t *testing.T) {
	ids := parseTSVIDs("Entry\nP04637\n\nQ15086\t2023-01-01\n")
	if len(ids) != 2 || ids[0] != "P04637" || ids[1] != "Q15086" {
		t.Errorf("ids = %v", ids)
	}
}
