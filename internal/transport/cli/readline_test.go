package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sandevgo/skycast/internal/core"
	"github.com/sandevgo/skycast/internal/service/chatbot"
	"github.com/sandevgo/skycast/internal/service/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	messages []core.ChatMessage
	cleared  []string
	err      error
}

func (s *stubStore) GetMessages(_ context.Context, _ string, _ int) ([]core.ChatMessage, error) {
	return s.messages, s.err
}

func (s *stubStore) ClearSession(_ context.Context, sessionID string) error {
	s.cleared = append(s.cleared, sessionID)
	return s.err
}

func newTestSession() *session.Session {
	orch := chatbot.NewOrchestrator(nil, nil, core.UnitsMetric, nil)
	return session.New(orch, session.Config{SystemPrompt: "You are a weather assistant."})
}

func TestClearCommandDropsTranscript(t *testing.T) {
	sess := newTestSession()
	_, err := sess.Send(context.Background(), "is it cold?")
	require.NoError(t, err)

	store := &stubStore{}
	r := &ReadLine{session: sess, store: store}

	var out bytes.Buffer
	r.handleCommand(context.Background(), &out, "/clear")

	assert.Empty(t, sess.History())
	assert.Equal(t, []string{sess.ID()}, store.cleared)
	assert.Contains(t, out.String(), "Conversation cleared.")
}

func TestClearCommandStoreFailureStillClearsSession(t *testing.T) {
	sess := newTestSession()
	_, err := sess.Send(context.Background(), "is it cold?")
	require.NoError(t, err)

	store := &stubStore{err: errors.New("disk full")}
	r := &ReadLine{session: sess, store: store}

	var out bytes.Buffer
	r.handleCommand(context.Background(), &out, "/clear")

	assert.Empty(t, sess.History())
	assert.Contains(t, out.String(), "Conversation cleared.")
}

func TestClearCommandWithoutStore(t *testing.T) {
	sess := newTestSession()
	r := &ReadLine{session: sess}

	var out bytes.Buffer
	r.handleCommand(context.Background(), &out, "/clear")

	assert.Contains(t, out.String(), "Conversation cleared.")
}
