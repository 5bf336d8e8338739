package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(&Env{
		APIKey:  "test-key",
		Model:   "test/model",
		BaseURL: baseURL,
	}, "")
	if err != nil {
		t.Fatal(err)
	}
	c.maxElapsed = 5 * time.Second
	return c
}

func completionBody(content string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(body)
}

func TestPrompt(t *testing.T) {
	var gotAuth, gotPath string
	var gotReq chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(completionBody("  ACTION:READ_EVENTS(title=\"team\")\n")))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	got, err := c.Prompt(context.Background(), "what meetings do I have?")
	if err != nil {
		t.Fatalf("Prompt() error: %v", err)
	}

	if got != `ACTION:READ_EVENTS(title="team")` {
		t.Errorf("Prompt() = %q, want trimmed content", got)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotPath != "/chat/completions" {
		t.Errorf("path = %q", gotPath)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Fatalf("messages = %+v, want system then user", gotReq.Messages)
	}
	if gotReq.Messages[1].Content != "what meetings do I have?" {
		t.Errorf("user message = %q", gotReq.Messages[1].Content)
	}
	if gotReq.Model != "test/model" {
		t.Errorf("model = %q", gotReq.Model)
	}
}

func TestPrompt_EmptyReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody("   ")))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.Prompt(context.Background(), "hello")
	if !errors.Is(err, ErrEmptyReply) {
		t.Errorf("Prompt() error = %v, want ErrEmptyReply", err)
	}
}

func TestPrompt_ClientErrorsAreNotRetried(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		http.Error(w, `{"error":{"message":"invalid api key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.Prompt(context.Background(), "hello")
	if err == nil {
		t.Fatal("Prompt() succeeded against a 401")
	}
	if !strings.Contains(err.Error(), "status 401") {
		t.Errorf("error = %v, want status 401 surfaced", err)
	}
	if n := atomic.LoadInt32(&attempts); n != 1 {
		t.Errorf("server saw %d attempts, want 1", n)
	}
}

func TestPrompt_ServerErrorsAreRetried(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			http.Error(w, "upstream unavailable", http.StatusBadGateway)
			return
		}
		w.Write([]byte(completionBody("Hello!")))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	got, err := c.Prompt(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Prompt() error after retry: %v", err)
	}
	if got != "Hello!" {
		t.Errorf("Prompt() = %q", got)
	}
	if n := atomic.LoadInt32(&attempts); n < 2 {
		t.Errorf("server saw %d attempts, want at least 2", n)
	}
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	if _, err := NewClient(&Env{Model: "m"}, ""); err == nil {
		t.Error("NewClient() accepted an empty API key")
	}
}

func TestSystemPrompt(t *testing.T) {
	today := time.Date(2025, time.July, 28, 15, 4, 5, 0, time.UTC)
	prompt := SystemPrompt(today)

	if !strings.Contains(prompt, "2025-07-28") {
		t.Error("prompt does not embed the current date")
	}
	for _, action := range []string{"ACTION:CREATE_EVENT", "ACTION:READ_EVENTS", "ACTION:UPDATE_EVENT", "ACTION:DELETE_EVENT"} {
		if !strings.Contains(prompt, action) {
			t.Errorf("prompt does not teach %s", action)
		}
	}
}
