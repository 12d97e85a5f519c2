package wechatwork

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNotificationSender(t *testing.T) {
	var (
		got      WeChatWorkMessage
		gotKey   string
		requests int
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		gotKey = r.URL.Query().Get("key")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	t.Run("disabled without key", func(t *testing.T) {
		ns := NewNotificationSender("")
		ns.BaseURL = server.URL
		if err := ns.SendMarkdown("x"); err != nil {
			t.Errorf("Expected no error, but got: %v", err)
		}
		if requests != 0 {
			t.Errorf("requests = %d; want 0", requests)
		}
	})

	t.Run("markdown", func(t *testing.T) {
		ns := NewNotificationSender("abc")
		ns.BaseURL = server.URL
		if err := ns.SendMarkdown("**done**"); err != nil {
			t.Fatalf("Expected no error, but got: %v", err)
		}
		if gotKey != "abc" {
			t.Errorf("key = %q; want abc", gotKey)
		}
		if got.MsgType != "markdown" || got.Markdown == nil || got.Markdown.Content != "**done**" {
			t.Errorf("unexpected message: %+v", got)
		}
	})

	t.Run("text", func(t *testing.T) {
		ns := NewNotificationSender("abc")
		ns.BaseURL = server.URL
		if err := ns.SendText("done", []string{"@all"}); err != nil {
			t.Fatalf("Expected no error, but got: %v", err)
		}
		if got.MsgType != "text" || got.Text == nil || got.Text.Content != "done" {
			t.Errorf("unexpected message: %+v", got)
		}
	})
}

func TestNotificationSender_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	ns := NewNotificationSender("abc")
	ns.BaseURL = server.URL
	if err := ns.SendText("done", nil); err == nil {
		t.Error("Expected an error, but got nil")
	}
}
