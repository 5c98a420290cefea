package controller

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"os-help-bot/internal/dto"
	"os-help-bot/internal/pkg/serverutils"
	"os-help-bot/internal/service"
	"os-help-bot/pkg/rag/state"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChatbotService struct {
	sendErr   error
	lastQuery dto.TranscriptQuery
	purged    string
	lastReq   *dto.SendMessageRequest
}

func (s *stubChatbotService) SendMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	s.lastReq = req
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	return &dto.SendMessageResponse{Reply: "Thanks!", Path: "onboarding", State: "AWAITING_HELP_TYPE"}, nil
}

func (s *stubChatbotService) GetSession(ctx context.Context, userId string) (*dto.SessionResponse, error) {
	return &dto.SessionResponse{UserId: userId, State: "READY"}, nil
}

func (s *stubChatbotService) ResetSession(ctx context.Context, userId string) (*dto.SessionResponse, error) {
	return &dto.SessionResponse{UserId: userId, State: "AWAITING_OS"}, nil
}

func (s *stubChatbotService) GetTranscript(ctx context.Context, userId string, query dto.TranscriptQuery) (*dto.TranscriptResponse, error) {
	s.lastQuery = query
	return nil, service.ErrTranscriptDisabled
}

func (s *stubChatbotService) PurgeTranscript(ctx context.Context, userId string) error {
	s.purged = userId
	return nil
}

func (s *stubChatbotService) Health(ctx context.Context) *dto.HealthResponse {
	return &dto.HealthResponse{Status: "ok"}
}

func newTestApp(svc service.IChatbotService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewChatbotController(svc).RegisterRoutes(app.Group("/api"))
	return app
}

func decode(t *testing.T, app *fiber.App, method, path, body string) (int, serverutils.BaseResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out serverutils.BaseResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestSendMessage(t *testing.T) {
	svc := &stubChatbotService{}
	app := newTestApp(svc)

	code, body := decode(t, app, "POST", "/api/chat/messages", `{"user_id":"42","message":"Windows 10"}`)

	assert.Equal(t, 200, code)
	assert.True(t, body.Success)
	require.NotNil(t, svc.lastReq)
	assert.Equal(t, "42", svc.lastReq.UserId)
	assert.Equal(t, "Windows 10", svc.lastReq.Message)
}

func TestSendMessageValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "oversized message", body: `{"user_id":"42","message":"` + strings.Repeat("a", 4001) + `"}`, want: 400},
		{name: "missing user", body: `{"message":"hi"}`, want: 400},
		{name: "malformed json", body: `{`, want: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := decode(t, newTestApp(&stubChatbotService{}), "POST", "/api/chat/messages", tt.body)
			assert.Equal(t, tt.want, code)
			assert.False(t, body.Success)
		})
	}
}

func TestSendMessageForwardsEmptyMessages(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "absent", body: `{"user_id":"42"}`, want: ""},
		{name: "empty", body: `{"user_id":"42","message":""}`, want: ""},
		{name: "blank", body: `{"user_id":"42","message":"   "}`, want: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubChatbotService{}
			code, body := decode(t, newTestApp(svc), "POST", "/api/chat/messages", tt.body)

			assert.Equal(t, 200, code)
			assert.True(t, body.Success)
			require.NotNil(t, svc.lastReq)
			assert.Equal(t, tt.want, svc.lastReq.Message)
		})
	}
}

func TestSendMessageStateViolationIs500(t *testing.T) {
	app := newTestApp(&stubChatbotService{sendErr: state.ErrSessionReady})

	code, body := decode(t, app, "POST", "/api/chat/messages", `{"user_id":"42","message":"x"}`)
	assert.Equal(t, 500, code)
	assert.False(t, body.Success)
}

func TestSessionRoutes(t *testing.T) {
	app := newTestApp(&stubChatbotService{})

	code, body := decode(t, app, "GET", "/api/chat/sessions/42", "")
	assert.Equal(t, 200, code)
	assert.Equal(t, "READY", body.Data.(map[string]interface{})["state"])

	code, body = decode(t, app, "DELETE", "/api/chat/sessions/42", "")
	assert.Equal(t, 200, code)
	assert.Equal(t, "AWAITING_OS", body.Data.(map[string]interface{})["state"])
}

func TestTranscriptRoute(t *testing.T) {
	svc := &stubChatbotService{}
	app := newTestApp(svc)

	code, _ := decode(t, app, "GET", "/api/chat/transcripts/42?limit=abc", "")
	assert.Equal(t, 400, code)

	code, _ = decode(t, app, "GET", "/api/chat/transcripts/42?role=admin", "")
	assert.Equal(t, 400, code)

	code, _ = decode(t, app, "GET", "/api/chat/transcripts/42?limit=5&role=bot", "")
	assert.Equal(t, 503, code)
	assert.Equal(t, 5, svc.lastQuery.Limit)
	assert.Equal(t, "bot", svc.lastQuery.Role)

	code, _ = decode(t, app, "DELETE", "/api/chat/transcripts/42", "")
	assert.Equal(t, 200, code)
	assert.Equal(t, "42", svc.purged)
}

func TestHealth(t *testing.T) {
	code, body := decode(t, newTestApp(&stubChatbotService{}), "GET", "/api/health", "")
	assert.Equal(t, 200, code)
	assert.True(t, body.Success)
}
