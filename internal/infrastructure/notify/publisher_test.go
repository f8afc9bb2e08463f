package notify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestWebhookPublisher_StandingsRefreshed(t *testing.T) {
	t.Parallel()

	var gotBody atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		raw, _ := io.ReadAll(r.Body)
		gotBody.Store(string(raw))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	publisher := NewWebhookPublisher(WebhookPublisherConfig{
		URL:     server.URL,
		Token:   "secret",
		Timeout: time.Second,
	})

	if err := publisher.StandingsRefreshed(context.Background(), "fra-national-2", 4); err != nil {
		t.Fatalf("publish: %v", err)
	}

	body, _ := gotBody.Load().(string)
	if !strings.Contains(body, `"event":"standings.refreshed"`) {
		t.Fatalf("unexpected payload: %s", body)
	}
	if !strings.Contains(body, `"competition_id":"fra-national-2"`) || !strings.Contains(body, `"pools":4`) {
		t.Fatalf("unexpected payload: %s", body)
	}
}

func TestWebhookPublisher_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	publisher := NewWebhookPublisher(WebhookPublisherConfig{
		URL:     server.URL,
		Timeout: time.Second,
		Retries: 2,
	})

	if err := publisher.StandingsRefreshed(context.Background(), "c1", 1); err != nil {
		t.Fatalf("transient status must be retried: %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("expected 2 attempts, got=%d", hits.Load())
	}
}

func TestWebhookPublisher_ClientErrorIsFinal(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	publisher := NewWebhookPublisher(WebhookPublisherConfig{
		URL:     server.URL,
		Timeout: time.Second,
		Retries: 3,
	})

	if err := publisher.StandingsRefreshed(context.Background(), "c1", 1); err == nil {
		t.Fatalf("expected error for 400 response")
	}
	if hits.Load() != 1 {
		t.Fatalf("client errors must not be retried, got=%d attempts", hits.Load())
	}
}

func TestWebhookPublisher_MissingURL(t *testing.T) {
	t.Parallel()

	publisher := NewWebhookPublisher(WebhookPublisherConfig{})
	if err := publisher.StandingsRefreshed(context.Background(), "c1", 1); err == nil {
		t.Fatalf("expected error without a configured url")
	}
}
