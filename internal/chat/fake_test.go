package chat

import (
	"context"
	"sync"

	"eduglobal/internal/gemini"
	"eduglobal/internal/session"
)

// fakeStreamer is a scripted Streamer: it emits its fragments, then its
// error, optionally waiting for release first.
type fakeStreamer struct {
	fragments []string
	err       error
	release   chan struct{} // when non-nil the stream waits before emitting

	mu         sync.Mutex
	calls      int
	lastPrompt string
	lastPrior  []gemini.Turn
}

func (f *fakeStreamer) ConverseStream(ctx context.Context, userText string, prior []gemini.Turn) (<-chan string, <-chan error) {
	f.mu.Lock()
	f.calls++
	f.lastPrompt = userText
	f.lastPrior = append([]gemini.Turn(nil), prior...)
	f.mu.Unlock()

	content := make(chan string, len(f.fragments)+1)
	errs := make(chan error, 1)

	go func() {
		defer close(content)
		defer close(errs)

		if f.release != nil {
			<-f.release
		}
		for _, frag := range f.fragments {
			select {
			case content <- frag:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
		if f.err != nil {
			errs <- f.err
		}
	}()

	return content, errs
}

func (f *fakeStreamer) snapshot() (int, string, []gemini.Turn) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls, f.lastPrompt, f.lastPrior
}

type nullSlot struct{}

func (nullSlot) Read() ([]byte, error) { return nil, session.ErrSlotEmpty }
func (nullSlot) Write([]byte) error    { return nil }

func newChatStore() *session.Store {
	store := session.NewStore(nullSlot{})
	store.LoadOrInit()
	return store
}
