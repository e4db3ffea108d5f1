// Package chat orchestrates conversation turns: it bridges the streaming
// completion client into the session store and enforces per-session turn
// serialization.
package chat

import (
	"strings"

	"eduglobal/internal/logging"
	"eduglobal/internal/session"
)

// FallbackText is committed to the placeholder whenever a stream fails or
// produces nothing, so the transcript never shows an empty bubble.
const FallbackText = "Connection issue. Please retry."

// Aggregator folds a fragment stream into the session's placeholder
// message, patching the store per fragment for live partial rendering.
type Aggregator struct {
	store *session.Store
}

// NewAggregator returns an aggregator over the given store.
func NewAggregator(store *session.Store) *Aggregator {
	return &Aggregator{store: store}
}

// Run appends the placeholder assistant message and consumes the stream.
// On success the placeholder holds the concatenated reply; on error, or if
// the stream ends without a single fragment, the placeholder is patched
// exactly once with FallbackText. The underlying stream error is returned
// for logging only; the transcript has already been settled.
func (a *Aggregator) Run(sessionID string, fragments <-chan string, errs <-chan error) error {
	a.store.AppendMessage(sessionID, session.Message{Role: session.RoleAssistant, Text: ""})

	var buf strings.Builder
	for frag := range fragments {
		buf.WriteString(frag)
		a.store.PatchLastMessage(sessionID, buf.String())
	}

	// The producer closes errs after fragments, carrying at most one error.
	err := <-errs
	if err != nil || buf.Len() == 0 {
		if err != nil {
			logging.ChatWarn("stream for session %s failed after %d bytes: %v", sessionID, buf.Len(), err)
		} else {
			logging.ChatWarn("stream for session %s ended without fragments", sessionID)
		}
		a.store.PatchLastMessage(sessionID, FallbackText)
		return err
	}

	logging.ChatDebug("stream for session %s completed: %d bytes", sessionID, buf.Len())
	return nil
}
