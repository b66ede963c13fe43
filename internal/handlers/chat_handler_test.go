package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "moneymind/internal/errors"
)

// --- mock chat service ---

type mockChatService struct {
	chatFn func(ctx context.Context, userID, message string) (string, error)
}

func (m *mockChatService) Chat(ctx context.Context, userID, message string) (string, error) {
	if m.chatFn != nil {
		return m.chatFn(ctx, userID, message)
	}
	return "ok", nil
}

func setupChatRouter(handler *ChatHandler) *gin.Engine {
	r := gin.New()
	r.POST("/chat", injectUserID("user-1"), handler.Send)
	return r
}

func TestChatHandler_Send(t *testing.T) {
	t.Run("returns the assistant reply", func(t *testing.T) {
		svc := &mockChatService{
			chatFn: func(_ context.Context, _, message string) (string, error) {
				if message != "How am I doing?" {
					t.Errorf("unexpected message: %q", message)
				}
				return "You have 150 left this month.", nil
			},
		}
		handler := NewChatHandler(svc)
		r := setupChatRouter(handler)

		rec := doRequest(r, http.MethodPost, "/chat", `{"message":"How am I doing?"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["reply"] != "You have 150 left this month." {
			t.Errorf("unexpected reply payload: %v", result)
		}
	})

	t.Run("returns 400 for empty message", func(t *testing.T) {
		handler := NewChatHandler(&mockChatService{})
		r := setupChatRouter(handler)

		rec := doRequest(r, http.MethodPost, "/chat", `{"message":""}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 502 when assistant unavailable", func(t *testing.T) {
		svc := &mockChatService{
			chatFn: func(_ context.Context, _, _ string) (string, error) {
				return "", apperrors.ErrChatUnavailable
			},
		}
		handler := NewChatHandler(svc)
		r := setupChatRouter(handler)

		rec := doRequest(r, http.MethodPost, "/chat", `{"message":"hello"}`)

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CHAT_UNAVAILABLE")
	})
}
