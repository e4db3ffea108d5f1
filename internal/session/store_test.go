package session

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySlot is an in-memory Slot fake.
type memorySlot struct {
	mu         sync.Mutex
	data       []byte
	writes     int
	failWrites bool
}

func (m *memorySlot) Read() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrSlotEmpty
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, nil
}

func (m *memorySlot) Write(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return errors.New("disk full")
	}
	m.data = make([]byte, len(data))
	copy(m.data, data)
	m.writes++
	return nil
}

func newTestStore(t *testing.T) (*Store, *memorySlot) {
	t.Helper()
	slot := &memorySlot{}
	store := NewStore(slot)
	store.LoadOrInit()
	return store, slot
}

func TestLoadOrInit_FreshUser(t *testing.T) {
	store, slot := newTestStore(t)

	sessions := store.Sessions()
	require.Len(t, sessions, 1)
	require.Len(t, sessions[0].Messages, 1)
	assert.Equal(t, RoleAssistant, sessions[0].Messages[0].Role)
	assert.Equal(t, Greeting, sessions[0].Messages[0].Text)
	assert.Equal(t, sessions[0].ID, store.ActiveID())

	// The synthesized state is already durable.
	assert.Positive(t, slot.writes)
}

func TestLoadOrInit_CorruptDataTreatedAsAbsent(t *testing.T) {
	slot := &memorySlot{data: []byte("{not json")}
	store := NewStore(slot)
	store.LoadOrInit()

	sessions := store.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, Greeting, sessions[0].Messages[0].Text)
}

func TestLoadOrInit_RepairsDanglingActivePointer(t *testing.T) {
	store, slot := newTestStore(t)
	store.CreateSession()

	// Corrupt only the pointer, not the sessions.
	data, err := slot.Read()
	require.NoError(t, err)
	mangled := strings.Replace(string(data), store.ActiveID(), "gone-"+store.ActiveID()[5:], 1)

	reloaded := NewStore(&memorySlot{data: []byte(mangled)})
	reloaded.LoadOrInit()

	sessions := reloaded.Sessions()
	require.NotEmpty(t, sessions)
	assert.Equal(t, sessions[0].ID, reloaded.ActiveID())
}

func TestPersistRoundTrip(t *testing.T) {
	store, slot := newTestStore(t)
	first := store.ActiveID()
	store.AppendMessage(first, Message{Role: RoleUser, Text: "What is the tuition at U of T?"})
	store.AppendMessage(first, Message{Role: RoleAssistant, Text: "Between CAD 45k and 60k per year."})
	second := store.CreateSession()
	store.AppendMessage(second, Message{Role: RoleUser, Text: "Tell me about DAAD."})

	reloaded := NewStore(slot)
	reloaded.LoadOrInit()

	if diff := cmp.Diff(store.Sessions(), reloaded.Sessions()); diff != "" {
		t.Errorf("collection changed across reload (-want +got):\n%s", diff)
	}
	assert.Equal(t, store.ActiveID(), reloaded.ActiveID())
}

func TestCreateSession_PrependsAndActivates(t *testing.T) {
	store, _ := newTestStore(t)
	first := store.ActiveID()

	id := store.CreateSession()
	assert.NotEqual(t, first, id)
	assert.Equal(t, id, store.ActiveID())

	sessions := store.Sessions()
	require.Len(t, sessions, 2)
	assert.Equal(t, id, sessions[0].ID, "new session is prepended")
	assert.Equal(t, Greeting, sessions[0].Messages[0].Text)
}

func TestDeleteSession(t *testing.T) {
	t.Run("deleting the active session reassigns the pointer", func(t *testing.T) {
		store, _ := newTestStore(t)
		first := store.ActiveID()
		second := store.CreateSession()

		store.DeleteSession(second)

		require.Len(t, store.Sessions(), 1)
		assert.Equal(t, first, store.ActiveID())
	})

	t.Run("deleting an inactive session keeps the pointer", func(t *testing.T) {
		store, _ := newTestStore(t)
		first := store.ActiveID()
		second := store.CreateSession()

		store.DeleteSession(first)

		assert.Equal(t, second, store.ActiveID())
	})

	t.Run("deleting the only session synthesizes a replacement", func(t *testing.T) {
		store, slot := newTestStore(t)
		only := store.ActiveID()

		store.DeleteSession(only)

		sessions := store.Sessions()
		require.Len(t, sessions, 1)
		assert.NotEqual(t, only, sessions[0].ID)
		assert.Equal(t, Greeting, sessions[0].Messages[0].Text)
		assert.Equal(t, sessions[0].ID, store.ActiveID())

		// Durable state reflects the replacement.
		reloaded := NewStore(slot)
		reloaded.LoadOrInit()
		require.Len(t, reloaded.Sessions(), 1)
		assert.Equal(t, sessions[0].ID, reloaded.Sessions()[0].ID)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		store, _ := newTestStore(t)
		store.DeleteSession("missing")
		assert.Len(t, store.Sessions(), 1)
	})
}

func TestSelectSession(t *testing.T) {
	store, _ := newTestStore(t)
	first := store.ActiveID()
	second := store.CreateSession()

	store.SelectSession(first)
	assert.Equal(t, first, store.ActiveID())

	t.Run("reselecting the active id does not bump LastUpdated", func(t *testing.T) {
		before, ok := store.Session(first)
		require.True(t, ok)

		store.SelectSession(first)

		after, _ := store.Session(first)
		assert.True(t, before.LastUpdated.Equal(after.LastUpdated))
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		store.SelectSession("missing")
		assert.Equal(t, first, store.ActiveID())
	})

	store.SelectSession(second)
	assert.Equal(t, second, store.ActiveID())
}

func TestAppendMessage_TitleFreeze(t *testing.T) {
	store, _ := newTestStore(t)
	id := store.ActiveID()

	store.AppendMessage(id, Message{Role: RoleUser, Text: "What is the tuition at a sample institution?"})
	sess, ok := store.Session(id)
	require.True(t, ok)
	assert.Equal(t, "What is the tuition at a sample institut…", sess.Title)
	assert.True(t, strings.HasPrefix("What is the tuition at a sample institution?", strings.TrimSuffix(sess.Title, "…")))

	store.AppendMessage(id, Message{Role: RoleAssistant, Text: "Roughly CAD 45k-60k."})
	store.AppendMessage(id, Message{Role: RoleUser, Text: "And scholarships?"})

	sess, _ = store.Session(id)
	assert.Equal(t, "What is the tuition at a sample institut…", sess.Title, "title is frozen after first user message")
	require.Len(t, sess.Messages, 4)
}

func TestAppendMessage_ShortTitleKeptWhole(t *testing.T) {
	store, _ := newTestStore(t)
	id := store.ActiveID()

	store.AppendMessage(id, Message{Role: RoleUser, Text: "  Visa   help  "})
	sess, _ := store.Session(id)
	assert.Equal(t, "Visa help", sess.Title)
}

func TestAppendMessage_LastUpdatedMonotonic(t *testing.T) {
	store, _ := newTestStore(t)
	id := store.ActiveID()

	var prev ChatSession
	for i := 0; i < 5; i++ {
		before, _ := store.Session(id)
		store.AppendMessage(id, Message{Role: RoleUser, Text: "ping"})
		after, _ := store.Session(id)
		assert.True(t, after.LastUpdated.After(before.LastUpdated), "iteration %d", i)
		prev = after
	}
	assert.Len(t, prev.Messages, 6)
}

func TestPatchLastMessage(t *testing.T) {
	store, _ := newTestStore(t)
	id := store.ActiveID()
	store.AppendMessage(id, Message{Role: RoleUser, Text: "hi"})
	store.AppendMessage(id, Message{Role: RoleAssistant, Text: ""})

	store.PatchLastMessage(id, "Canada ")
	store.PatchLastMessage(id, "Canada offers...")

	sess, _ := store.Session(id)
	last := sess.Messages[len(sess.Messages)-1]
	assert.Equal(t, RoleAssistant, last.Role)
	assert.Equal(t, "Canada offers...", last.Text)
}

func TestPatchLastMessage_DeletedSessionIsNoOp(t *testing.T) {
	store, _ := newTestStore(t)
	survivor := store.ActiveID()
	doomed := store.CreateSession()
	store.DeleteSession(doomed)

	// A stream that outlived its session must not disturb the survivors.
	store.PatchLastMessage(doomed, "late fragment")

	sess, ok := store.Session(survivor)
	require.True(t, ok)
	assert.Equal(t, Greeting, sess.Messages[len(sess.Messages)-1].Text)
}

func TestPersistFailureIsNotFatal(t *testing.T) {
	store, slot := newTestStore(t)
	slot.failWrites = true

	id := store.CreateSession()
	store.AppendMessage(id, Message{Role: RoleUser, Text: "still works"})

	sess, ok := store.Session(id)
	require.True(t, ok)
	assert.Equal(t, "still works", sess.Messages[1].Text)
}

func TestSubscribe_NotifiedOnMutations(t *testing.T) {
	store, _ := newTestStore(t)
	var notified int
	store.Subscribe(func() { notified++ })

	id := store.CreateSession()
	store.AppendMessage(id, Message{Role: RoleUser, Text: "hello"})
	store.SelectSession(id) // already active: no mutation, no notification

	assert.Equal(t, 2, notified)
}

func TestInvariants_UnderCreateDeleteSequences(t *testing.T) {
	store, _ := newTestStore(t)

	checkInvariants := func() {
		t.Helper()
		sessions := store.Sessions()
		require.NotEmpty(t, sessions, "collection must never be empty")
		activeFound := false
		for _, sess := range sessions {
			require.NotEmpty(t, sess.Messages, "session %s must keep its greeting", sess.ID)
			if sess.ID == store.ActiveID() {
				activeFound = true
			}
		}
		require.True(t, activeFound, "active id must reference a member")
	}

	var ids []string
	for i := 0; i < 4; i++ {
		ids = append(ids, store.CreateSession())
		checkInvariants()
	}
	// Delete in an order that exercises active and inactive removal.
	for _, id := range []string{ids[1], ids[3], ids[0], ids[2]} {
		store.DeleteSession(id)
		checkInvariants()
	}
	// Nuke whatever remains, twice over.
	for i := 0; i < 3; i++ {
		store.DeleteSession(store.ActiveID())
		checkInvariants()
	}
}
