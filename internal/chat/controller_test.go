package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduglobal/internal/gemini"
	"eduglobal/internal/session"
)

func TestSendTurn_RejectsEmptyInput(t *testing.T) {
	store := newChatStore()
	ctrl := NewController(store, &fakeStreamer{})
	id := store.ActiveID()

	for _, input := range []string{"", "   ", "\n\t"} {
		err := ctrl.SendTurn(context.Background(), id, input)
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}

	sess, _ := store.Session(id)
	assert.Len(t, sess.Messages, 1, "no message may be appended for rejected input")
}

func TestSendTurn_RejectsUnknownSession(t *testing.T) {
	store := newChatStore()
	ctrl := NewController(store, &fakeStreamer{})

	err := ctrl.SendTurn(context.Background(), "missing", "hello")
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestSendTurn_HappyPath(t *testing.T) {
	store := newChatStore()
	fake := &fakeStreamer{fragments: []string{"Between CAD 45k ", "and 60k per year."}}
	ctrl := NewController(store, fake)
	id := store.ActiveID()

	err := ctrl.SendTurn(context.Background(), id, "What is the tuition at a sample institution?")
	require.NoError(t, err)

	sess, _ := store.Session(id)
	require.Len(t, sess.Messages, 3, "greeting, user text, streamed reply")
	assert.Equal(t, session.RoleUser, sess.Messages[1].Role)
	assert.Equal(t, "What is the tuition at a sample institution?", sess.Messages[1].Text)
	assert.Equal(t, session.RoleAssistant, sess.Messages[2].Role)
	assert.Equal(t, "Between CAD 45k and 60k per year.", sess.Messages[2].Text)
	assert.Equal(t, "What is the tuition at a sample institut…", sess.Title)
	assert.False(t, ctrl.InFlight(id))
}

func TestSendTurn_PriorTurnsExcludePromptAndPlaceholder(t *testing.T) {
	store := newChatStore()
	fake := &fakeStreamer{fragments: []string{"reply one"}}
	ctrl := NewController(store, fake)
	id := store.ActiveID()

	require.NoError(t, ctrl.SendTurn(context.Background(), id, "first question"))
	require.NoError(t, ctrl.SendTurn(context.Background(), id, "second question"))

	_, prompt, prior := fake.snapshot()
	assert.Equal(t, "second question", prompt)

	// Prior turns: greeting, first question, first reply. The second
	// question travels as the prompt and the placeholder never leaves the
	// store.
	require.Len(t, prior, 3)
	assert.Equal(t, gemini.Turn{Role: gemini.RoleAssistant, Text: session.Greeting}, prior[0])
	assert.Equal(t, gemini.Turn{Role: gemini.RoleUser, Text: "first question"}, prior[1])
	assert.Equal(t, gemini.Turn{Role: gemini.RoleAssistant, Text: "reply one"}, prior[2])
}

func TestSendTurn_RejectsConcurrentSendForSameSession(t *testing.T) {
	store := newChatStore()
	fake := &fakeStreamer{fragments: []string{"slow reply"}, release: make(chan struct{})}
	ctrl := NewController(store, fake)
	id := store.ActiveID()

	done := make(chan error, 1)
	go func() {
		done <- ctrl.SendTurn(context.Background(), id, "first")
	}()

	require.Eventually(t, func() bool { return ctrl.InFlight(id) }, time.Second, time.Millisecond)

	err := ctrl.SendTurn(context.Background(), id, "second")
	assert.ErrorIs(t, err, ErrTurnInFlight)

	close(fake.release)
	require.NoError(t, <-done)
	assert.False(t, ctrl.InFlight(id))

	// The rejected send left no trace.
	sess, _ := store.Session(id)
	require.Len(t, sess.Messages, 3)
	assert.Equal(t, "first", sess.Messages[1].Text)

	// The rejected send never reached the client.
	calls, _, _ := fake.snapshot()
	assert.Equal(t, 1, calls)
}

func TestSendTurn_OtherSessionsAreNotBlocked(t *testing.T) {
	store := newChatStore()
	blocked := &fakeStreamer{fragments: []string{"x"}, release: make(chan struct{})}
	ctrl := NewController(store, blocked)
	first := store.ActiveID()
	second := store.CreateSession()

	done := make(chan error, 1)
	go func() {
		done <- ctrl.SendTurn(context.Background(), first, "busy session")
	}()
	require.Eventually(t, func() bool { return ctrl.InFlight(first) }, time.Second, time.Millisecond)

	assert.False(t, ctrl.InFlight(second), "sessions serialize independently")

	close(blocked.release)
	require.NoError(t, <-done)
}

func TestSendTurn_StreamFailureSettlesAsFallback(t *testing.T) {
	store := newChatStore()
	fake := &fakeStreamer{fragments: []string{"Canada offers..."}, err: errors.New("network drop")}
	ctrl := NewController(store, fake)
	id := store.ActiveID()

	err := ctrl.SendTurn(context.Background(), id, "Tell me about Canada")
	require.NoError(t, err, "stream failure is settled in the transcript, not propagated")

	sess, _ := store.Session(id)
	require.Len(t, sess.Messages, 3)
	assert.Equal(t, FallbackText, sess.Messages[2].Text)
	assert.False(t, ctrl.InFlight(id))
}

func TestSendTurn_DeletingSessionMidStreamDoesNotCorruptSurvivors(t *testing.T) {
	store := newChatStore()
	fake := &fakeStreamer{fragments: []string{"late ", "fragments"}, release: make(chan struct{})}
	ctrl := NewController(store, fake)
	doomed := store.ActiveID()
	survivor := store.CreateSession()

	done := make(chan error, 1)
	go func() {
		done <- ctrl.SendTurn(context.Background(), doomed, "about to vanish")
	}()
	require.Eventually(t, func() bool { return ctrl.InFlight(doomed) }, time.Second, time.Millisecond)

	store.DeleteSession(doomed)
	close(fake.release)
	require.NoError(t, <-done)

	// The stream completed against a deleted session; its patches were
	// dropped and the surviving session is untouched.
	_, ok := store.Session(doomed)
	assert.False(t, ok)
	sess, ok := store.Session(survivor)
	require.True(t, ok)
	require.Len(t, sess.Messages, 1)
	assert.Equal(t, session.Greeting, sess.Messages[0].Text)
}
