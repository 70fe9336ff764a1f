package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func testAdapter(t *testing.T, handler http.HandlerFunc) *Adapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	a, err := New(Config{
		Token:   "test-token",
		GroupID: -100123,
		URL:     srv.URL,
		Offline: true,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func TestNewRequiresToken(t *testing.T) {
	if _, err := New(Config{Token: "  "}, zerolog.Nop()); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestSendGroupMessage(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any
	a := testAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"chat":{"id":-100123}}}`))
	})

	if err := a.SendGroupMessage(context.Background(), "🛒 *Новый заказ*"); err != nil {
		t.Fatalf("SendGroupMessage: %v", err)
	}
	if !strings.HasSuffix(gotPath, "/sendMessage") {
		t.Fatalf("path = %q", gotPath)
	}
	if gotPayload["parse_mode"] != "MarkdownV2" {
		t.Fatalf("parse_mode = %v", gotPayload["parse_mode"])
	}
	if gotPayload["chat_id"] != "-100123" && gotPayload["chat_id"] != float64(-100123) {
		t.Fatalf("chat_id = %v", gotPayload["chat_id"])
	}
}

func TestSendTextReturnsRef(t *testing.T) {
	a := testAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":99,"chat":{"id":555}}}`))
	})

	ref, err := a.SendText(context.Background(), 555, "привет")
	if err != nil {
		t.Fatalf("SendText: %v", err)
	}
	if ref.ChatID != 555 || ref.MessageID != 99 {
		t.Fatalf("ref = %+v", ref)
	}
}

func TestDeleteMessage(t *testing.T) {
	var gotPath string
	a := testAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":true}`))
	})

	err := a.DeleteMessage(context.Background(), MessageRef{ChatID: 555, MessageID: 99})
	if err != nil {
		t.Fatalf("DeleteMessage: %v", err)
	}
	if !strings.HasSuffix(gotPath, "/deleteMessage") {
		t.Fatalf("path = %q", gotPath)
	}
}

func TestSendSurfacesAPIError(t *testing.T) {
	a := testAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: can't parse entities"}`))
	})

	if err := a.SendGroupMessage(context.Background(), "broken _markdown"); err == nil {
		t.Fatal("expected error from non-ok API response")
	}
}

func TestMessageSig(t *testing.T) {
	sig, chat := MessageRef{ChatID: 12, MessageID: 34}.MessageSig()
	if sig != "34" || chat != 12 {
		t.Fatalf("MessageSig = %q, %d", sig, chat)
	}
}
