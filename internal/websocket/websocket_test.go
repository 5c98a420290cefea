package websocket

import (
	"context"
	"errors"
	"testing"
	"time"

	"os-help-bot/internal/dto"
	"os-help-bot/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubSender struct {
	got   *dto.SendMessageRequest
	reply *dto.SendMessageResponse
	err   error
}

func (s *stubSender) SendMessage(ctx context.Context, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	s.got = request
	return s.reply, s.err
}

func TestHandleFrame(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		senderErr error
		wantType  string
		wantSent  bool
		wantText  string
	}{
		{name: "json message", raw: `{"type":"message","message":"my screen is blue"}`, wantType: FrameReply, wantSent: true, wantText: "my screen is blue"},
		{name: "untyped json", raw: `{"message":"hello"}`, wantType: FrameReply, wantSent: true, wantText: "hello"},
		{name: "plain text", raw: "windows 10", wantType: FrameReply, wantSent: true, wantText: "windows 10"},
		{name: "plain text keeps spacing", raw: "  ubuntu \n", wantType: FrameReply, wantSent: true, wantText: "  ubuntu \n"},
		{name: "malformed json", raw: `{"type":`, wantType: FrameError},
		{name: "unknown type", raw: `{"type":"typing"}`, wantType: FrameError},
		{name: "blank", raw: "   ", wantType: FrameReply, wantSent: true, wantText: "   "},
		{name: "empty json message", raw: `{"type":"message","message":""}`, wantType: FrameReply, wantSent: true, wantText: ""},
		{name: "empty frame", raw: "", wantType: FrameReply, wantSent: true, wantText: ""},
		{name: "turn failure", raw: "hi", senderErr: errors.New("boom"), wantType: FrameError, wantSent: true, wantText: "hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &stubSender{reply: &dto.SendMessageResponse{Reply: "ok"}, err: tt.senderErr}

			frame := HandleFrame(context.Background(), sender, "u1", []byte(tt.raw))

			assert.Equal(t, tt.wantType, frame.Type)
			if !tt.wantSent {
				assert.Nil(t, sender.got)
			} else {
				require.NotNil(t, sender.got)
				assert.Equal(t, "u1", sender.got.UserId)
				assert.Equal(t, tt.wantText, sender.got.Message)
			}
			if frame.Type == FrameReply {
				require.NotNil(t, frame.Reply)
				assert.Equal(t, "ok", frame.Reply.Reply)
			}
		})
	}
}

func TestHubDeliversToEveryDeviceOfUser(t *testing.T) {
	hub := NewHub(nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	defer func() {
		cancel()
		<-hub.done
	}()

	phone := &Client{Hub: hub, UserID: "u1", Send: make(chan []byte, 1)}
	laptop := &Client{Hub: hub, UserID: "u1", Send: make(chan []byte, 1)}
	other := &Client{Hub: hub, UserID: "u2", Send: make(chan []byte, 1)}
	for _, c := range []*Client{phone, laptop, other} {
		require.True(t, hub.join(c))
	}
	require.Eventually(t, func() bool { return hub.ConnectedUsers() == 2 }, time.Second, 5*time.Millisecond)

	hub.SendToUser("u1", []byte(`{"type":"reply"}`))

	assert.Equal(t, `{"type":"reply"}`, string(<-phone.Send))
	assert.Equal(t, `{"type":"reply"}`, string(<-laptop.Send))
	assert.Empty(t, other.Send)

	hub.leave(phone)
	_, open := <-phone.Send
	assert.False(t, open)
	assert.Equal(t, 2, hub.ConnectedUsers())

	hub.leave(laptop)
	require.Eventually(t, func() bool { return hub.ConnectedUsers() == 1 }, time.Second, 5*time.Millisecond)
}

func TestHubJoinAfterShutdown(t *testing.T) {
	hub := NewHub(nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	cancel()
	<-hub.done

	assert.False(t, hub.join(&Client{Hub: hub, UserID: "u1", Send: make(chan []byte, 1)}))
	hub.leave(&Client{Hub: hub, UserID: "u1"})
}
