package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	UserId  string `json:"user_id" validate:"required,max=255"`
	Message string `json:"message" validate:"max=4000"`
}

type SendMessageResponse struct {
	TurnId  uuid.UUID `json:"turn_id"`
	Reply   string    `json:"reply"`
	Links   []string  `json:"links,omitempty"`
	Path    string    `json:"path"`
	State   string    `json:"state"`
	Sources []string  `json:"sources,omitempty"`
}

type SessionResponse struct {
	UserId      string    `json:"user_id"`
	State       string    `json:"state"`
	OSLabel     string    `json:"os_label"`
	HelpType    string    `json:"help_type"`
	AnswerStyle string    `json:"answer_style"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type TranscriptMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	TurnId    uuid.UUID `json:"turn_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Path      string    `json:"path,omitempty"`
	Sources   []string  `json:"sources,omitempty"`
	Links     []string  `json:"links,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TranscriptQuery filters GET /chat/transcripts/:userId.
type TranscriptQuery struct {
	Limit  int    `json:"limit" query:"limit" validate:"min=0,max=500"`
	Role   string `json:"role" query:"role" validate:"omitempty,oneof=user bot"`
	TurnId string `json:"turn_id" query:"turn_id" validate:"omitempty,uuid"`
}

type TranscriptResponse struct {
	Total    int64                        `json:"total"`
	Messages []*TranscriptMessageResponse `json:"messages"`
}

type HealthResponse struct {
	Status         string `json:"status"`
	ActiveSessions int    `json:"active_sessions"`
	Transcript     bool   `json:"transcript"`
}

// SocketMessage is the frame format of the chat websocket, both directions.
type SocketMessage struct {
	Type    string               `json:"type"` // "message", "reply", "error"
	Message string               `json:"message,omitempty"`
	Reply   *SendMessageResponse `json:"reply,omitempty"`
	Error   string               `json:"error,omitempty"`
}
