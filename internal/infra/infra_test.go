package infra

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDoGetReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("missing Accept header")
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	body, status, err := DoGet(context.Background(), srv.Client(), srv.URL,
		map[string]string{"Accept": "application/json"})
	if err != nil {
		t.Fatalf("DoGet: %v", err)
	}
	defer body.Close()

	if status != http.StatusOK {
		t.Errorf("status = %d", status)
	}
	data, _ := io.ReadAll(body)
	if string(data) != `{"ok":true}` {
		t.Errorf("body = %q", data)
	}
}

func TestDoGetNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, status, err := DoGet(context.Background(), srv.Client(), srv.URL, nil)
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
}

func TestRateLimiterAllowsBurst(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := rl.Wait(ctx); err != nil {
			t.Fatalf("Wait %d: %v", i, err)
		}
	}
}

func TestRateLimiterBlocksWhenExhausted(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	if err := rl.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := rl.Wait(ctx); err != context.DeadlineExceeded {
		t.Errorf("err = %v, want DeadlineExceeded", err)
	}
}

func TestRateLimiterRefills(t *testing.T) {
	rl := NewRateLimiter(1, 20*time.Millisecond)
	ctx := context.Background()
	if err := rl.Wait(ctx); err != nil {
		t.Fatal(err)
	}

	ctx2, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := rl.Wait(ctx2); err != nil {
		t.Errorf("expected refill within window, got %v", err)
	}
}
