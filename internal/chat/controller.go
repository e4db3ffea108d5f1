package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"eduglobal/internal/gemini"
	"eduglobal/internal/session"
)

var (
	// ErrEmptyMessage rejects empty or whitespace-only user input.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrTurnInFlight rejects a send while the session is still streaming.
	ErrTurnInFlight = errors.New("a turn is already in flight for this session")
	// ErrUnknownSession rejects a send against a session id the store does
	// not hold.
	ErrUnknownSession = errors.New("unknown session")
)

// Streamer is the streaming operation the controller needs from the
// completion client.
type Streamer interface {
	ConverseStream(ctx context.Context, userText string, prior []gemini.Turn) (<-chan string, <-chan error)
}

// Controller drives one conversation turn end to end: user input, session
// mutation, completion call, stream aggregation, persisted result.
type Controller struct {
	store    *session.Store
	client   Streamer
	agg      *Aggregator
	mu       sync.Mutex
	inflight map[string]bool
}

// NewController wires a controller over the store and completion client.
func NewController(store *session.Store, client Streamer) *Controller {
	return &Controller{
		store:    store,
		client:   client,
		agg:      NewAggregator(store),
		inflight: make(map[string]bool),
	}
}

// SendTurn runs one turn against the named session and blocks until the
// reply is fully aggregated. A second send for the same session while one
// is in flight is rejected, never queued. Stream failures settle into the
// transcript as FallbackText and do not surface as errors here.
func (c *Controller) SendTurn(ctx context.Context, sessionID, userText string) error {
	userText = strings.TrimSpace(userText)
	if userText == "" {
		return ErrEmptyMessage
	}

	c.mu.Lock()
	if c.inflight[sessionID] {
		c.mu.Unlock()
		return ErrTurnInFlight
	}
	c.inflight[sessionID] = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.inflight, sessionID)
		c.mu.Unlock()
	}()

	sess, ok := c.store.Session(sessionID)
	if !ok {
		return ErrUnknownSession
	}

	// Prior turns are the history before this utterance; the placeholder is
	// appended by the aggregator and never enters the transcript sent out.
	prior := toTurns(sess.Messages)

	c.store.AppendMessage(sessionID, session.Message{Role: session.RoleUser, Text: userText})

	fragments, errs := c.client.ConverseStream(ctx, userText, prior)
	if err := c.agg.Run(sessionID, fragments, errs); err != nil {
		// Already settled as FallbackText; visible, not propagated.
		return nil
	}
	return nil
}

// InFlight reports whether the session is currently streaming a reply.
func (c *Controller) InFlight(sessionID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight[sessionID]
}

func toTurns(messages []session.Message) []gemini.Turn {
	turns := make([]gemini.Turn, 0, len(messages))
	for _, m := range messages {
		role := gemini.RoleUser
		if m.Role == session.RoleAssistant {
			role = gemini.RoleAssistant
		}
		turns = append(turns, gemini.Turn{Role: role, Text: m.Text})
	}
	return turns
}
