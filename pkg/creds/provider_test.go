package creds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetDownloadsOnceAndCaches(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.Write([]byte(`{"type":"service_account"}`))
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, time.Second)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		raw, err := p.Get(ctx)
		if err != nil {
			t.Fatalf("Get #%d: %v", i, err)
		}
		if string(raw) != `{"type":"service_account"}` {
			t.Errorf("Get #%d = %q", i, raw)
		}
	}
	if hits != 1 {
		t.Errorf("downloaded %d times, want 1", hits)
	}
}

func TestGetRetriesAfterFailure(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		if hits == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"type":"service_account"}`))
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, time.Second)
	ctx := context.Background()

	if _, err := p.Get(ctx); err == nil {
		t.Fatal("first Get should fail")
	}

	// A failed download must not be cached.
	raw, err := p.Get(ctx)
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if string(raw) != `{"type":"service_account"}` {
		t.Errorf("second Get = %q", raw)
	}
}
