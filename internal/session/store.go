package session

import (
	"encoding/json"
	"sync"
	"time"

	"eduglobal/internal/logging"
)

// Store is the single source of truth for all sessions: synchronous
// in-memory state backed by a durable slot. Persistence failures are
// logged, never fatal; in-memory state stays authoritative for the run.
type Store struct {
	mu   sync.Mutex
	slot Slot
	col  Collection
	subs []func()
}

// NewStore creates a store over the given slot. Call LoadOrInit before any
// other operation.
func NewStore(slot Slot) *Store {
	return &Store{slot: slot}
}

// LoadOrInit reads the persisted collection. Absent, corrupt or empty data
// all yield a fresh collection with one greeted session. Never fails.
func (s *Store) LoadOrInit() {
	s.mu.Lock()

	loaded := false
	if data, err := s.slot.Read(); err == nil {
		var col Collection
		if jsonErr := json.Unmarshal(data, &col); jsonErr == nil {
			s.col = sanitize(col)
			loaded = len(s.col.Sessions) > 0
		} else {
			logging.SessionDebug("discarding corrupt session slot: %v", jsonErr)
		}
	} else if err != ErrSlotEmpty {
		logging.StoreError("failed to read session slot: %v", err)
	}

	if !loaded {
		fresh := newChatSession()
		s.col = Collection{Sessions: []ChatSession{fresh}, ActiveID: fresh.ID}
	}

	s.persistLocked()
	s.checkInvariantsLocked("LoadOrInit")
	s.mu.Unlock()
	s.notify()
}

// sanitize repairs a loaded collection: message-less sessions are dropped
// and a dangling active pointer falls back to the first session.
func sanitize(col Collection) Collection {
	kept := col.Sessions[:0]
	for _, sess := range col.Sessions {
		if sess.ID == "" || len(sess.Messages) == 0 {
			continue
		}
		kept = append(kept, sess)
	}
	col.Sessions = kept
	if len(col.Sessions) == 0 {
		return Collection{}
	}

	active := false
	for _, sess := range col.Sessions {
		if sess.ID == col.ActiveID {
			active = true
			break
		}
	}
	if !active {
		col.ActiveID = col.Sessions[0].ID
	}
	return col
}

// CreateSession prepends a new greeted session and makes it active.
func (s *Store) CreateSession() string {
	s.mu.Lock()
	sess := newChatSession()
	s.col.Sessions = append([]ChatSession{sess}, s.col.Sessions...)
	s.col.ActiveID = sess.ID

	s.persistLocked()
	s.checkInvariantsLocked("CreateSession")
	s.mu.Unlock()
	s.notify()
	return sess.ID
}

// DeleteSession removes the named session. Deleting the active session
// reassigns the pointer to the new first session; deleting the last session
// synthesizes a replacement so the collection is never observably empty.
// An unknown id is a no-op.
func (s *Store) DeleteSession(id string) {
	s.mu.Lock()

	idx := -1
	for i, sess := range s.col.Sessions {
		if sess.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	s.col.Sessions = append(s.col.Sessions[:idx], s.col.Sessions[idx+1:]...)
	if len(s.col.Sessions) == 0 {
		fresh := newChatSession()
		s.col.Sessions = []ChatSession{fresh}
		s.col.ActiveID = fresh.ID
	} else if s.col.ActiveID == id {
		s.col.ActiveID = s.col.Sessions[0].ID
	}

	s.persistLocked()
	s.checkInvariantsLocked("DeleteSession")
	s.mu.Unlock()
	s.notify()
}

// SelectSession moves the active pointer. Selecting the already-active or
// an unknown id is a silent no-op; callers must re-read state rather than
// assume the selection took effect.
func (s *Store) SelectSession(id string) {
	s.mu.Lock()
	if id == s.col.ActiveID {
		s.mu.Unlock()
		return
	}

	found := false
	for _, sess := range s.col.Sessions {
		if sess.ID == id {
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return
	}

	s.col.ActiveID = id
	s.persistLocked()
	s.checkInvariantsLocked("SelectSession")
	s.mu.Unlock()
	s.notify()
}

// AppendMessage appends to the named session and bumps LastUpdated. The
// session title is derived and frozen from the first user message.
func (s *Store) AppendMessage(id string, m Message) {
	s.mu.Lock()
	sess := s.findLocked(id)
	if sess == nil {
		logging.SessionDebug("append to unknown session %s dropped", id)
		s.mu.Unlock()
		return
	}

	sess.Messages = append(sess.Messages, m)
	if m.Role == RoleUser && sess.Title == "" {
		sess.Title = deriveTitle(m.Text)
	}
	s.bumpLocked(sess)

	s.persistLocked()
	s.checkInvariantsLocked("AppendMessage")
	s.mu.Unlock()
	s.notify()
}

// PatchLastMessage replaces the text of the session's most recent message
// in place. It exists solely to grow a streaming assistant reply; patching
// a since-deleted session is a logged no-op so a stream may outlive its
// session.
func (s *Store) PatchLastMessage(id, text string) {
	s.mu.Lock()
	sess := s.findLocked(id)
	if sess == nil {
		logging.SessionDebug("patch to deleted session %s dropped", id)
		s.mu.Unlock()
		return
	}

	sess.Messages[len(sess.Messages)-1].Text = text
	s.bumpLocked(sess)

	s.persistLocked()
	s.checkInvariantsLocked("PatchLastMessage")
	s.mu.Unlock()
	s.notify()
}

// Sessions returns a newest-first deep-copied snapshot.
func (s *Store) Sessions() []ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.col.clone().Sessions
}

// ActiveID returns the id of the active session.
func (s *Store) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.col.ActiveID
}

// Active returns a deep copy of the active session.
func (s *Store) Active() (ChatSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess := s.findLocked(s.col.ActiveID); sess != nil {
		return sess.clone(), true
	}
	return ChatSession{}, false
}

// Session returns a deep copy of the named session.
func (s *Store) Session(id string) (ChatSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess := s.findLocked(id); sess != nil {
		return sess.clone(), true
	}
	return ChatSession{}, false
}

// Subscribe registers a change callback, invoked after every committed
// mutation. Callbacks run outside the store lock and must not block.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) findLocked(id string) *ChatSession {
	for i := range s.col.Sessions {
		if s.col.Sessions[i].ID == id {
			return &s.col.Sessions[i]
		}
	}
	return nil
}

// bumpLocked advances LastUpdated monotonically even when the wall clock
// has not ticked between mutations.
func (s *Store) bumpLocked(sess *ChatSession) {
	now := time.Now()
	if !now.After(sess.LastUpdated) {
		now = sess.LastUpdated.Add(time.Nanosecond)
	}
	sess.LastUpdated = now
}

func (s *Store) persistLocked() {
	data, err := json.Marshal(s.col)
	if err != nil {
		logging.StoreError("failed to serialize session collection: %v", err)
		return
	}
	if err := s.slot.Write(data); err != nil {
		logging.StoreError("failed to persist session collection: %v", err)
	}
}

func (s *Store) checkInvariantsLocked(op string) {
	if len(s.col.Sessions) == 0 {
		logging.StoreError("invariant violated after %s: empty collection", op)
		return
	}
	active := false
	for _, sess := range s.col.Sessions {
		if len(sess.Messages) == 0 {
			logging.StoreError("invariant violated after %s: session %s has no messages", op, sess.ID)
		}
		if sess.ID == s.col.ActiveID {
			active = true
		}
	}
	if !active {
		logging.StoreError("invariant violated after %s: active id %s not in collection", op, s.col.ActiveID)
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
