package chat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduglobal/internal/session"
)

func lastMessage(t *testing.T, store *session.Store, id string) session.Message {
	t.Helper()
	sess, ok := store.Session(id)
	require.True(t, ok)
	require.NotEmpty(t, sess.Messages)
	return sess.Messages[len(sess.Messages)-1]
}

func runStream(fragments []string, err error) (<-chan string, <-chan error) {
	content := make(chan string, len(fragments)+1)
	errs := make(chan error, 1)
	for _, frag := range fragments {
		content <- frag
	}
	if err != nil {
		errs <- err
	}
	close(content)
	close(errs)
	return content, errs
}

func TestAggregator_FoldsFragmentsIntoPlaceholder(t *testing.T) {
	store := newChatStore()
	id := store.ActiveID()

	// Record every patched value to verify live partial rendering.
	var growth []string
	store.Subscribe(func() {
		growth = append(growth, lastMessage(t, store, id).Text)
	})

	agg := NewAggregator(store)
	content, errs := runStream([]string{"Canada ", "offers ", "a PGWP."}, nil)
	err := agg.Run(id, content, errs)
	require.NoError(t, err)

	last := lastMessage(t, store, id)
	assert.Equal(t, session.RoleAssistant, last.Role)
	assert.Equal(t, "Canada offers a PGWP.", last.Text)

	// Placeholder append, then one patch per fragment, each a prefix of the next.
	require.Equal(t, []string{"", "Canada ", "Canada offers ", "Canada offers a PGWP."}, growth)

	sess, _ := store.Session(id)
	assert.Len(t, sess.Messages, 2, "greeting plus exactly one streamed reply")
}

func TestAggregator_MidStreamFailureCommitsFallback(t *testing.T) {
	store := newChatStore()
	id := store.ActiveID()

	agg := NewAggregator(store)
	content, errs := runStream([]string{"Canada offers..."}, errors.New("connection reset"))
	err := agg.Run(id, content, errs)
	require.Error(t, err)

	last := lastMessage(t, store, id)
	assert.Equal(t, FallbackText, last.Text, "partial fragment must not survive")

	sess, _ := store.Session(id)
	assert.Len(t, sess.Messages, 2, "exactly one fallback message, not two")
}

func TestAggregator_EmptyStreamCommitsFallback(t *testing.T) {
	t.Run("zero fragments with error", func(t *testing.T) {
		store := newChatStore()
		id := store.ActiveID()

		content, errs := runStream(nil, errors.New("boom"))
		err := NewAggregator(store).Run(id, content, errs)
		require.Error(t, err)

		assert.Equal(t, FallbackText, lastMessage(t, store, id).Text)
		sess, _ := store.Session(id)
		assert.Len(t, sess.Messages, 2)
	})

	t.Run("zero fragments without error", func(t *testing.T) {
		store := newChatStore()
		id := store.ActiveID()

		content, errs := runStream(nil, nil)
		err := NewAggregator(store).Run(id, content, errs)
		require.NoError(t, err)

		assert.Equal(t, FallbackText, lastMessage(t, store, id).Text)
	})
}
