// Package autosave implements the debounced answer buffer: in-progress text
// for a question is held until input has been quiet for a fixed interval,
// then committed once through the save pipeline. Each (user, question) pair
// has its own independent buffer and timer.
package autosave

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Status projects the outcome of a buffer's last commit attempt. It never
// reports StatusSaved after a failed persist.
type Status string

const (
	StatusIdle   Status = "idle"
	StatusSaving Status = "saving"
	StatusSaved  Status = "saved"
	StatusError  Status = "error"
)

// CommitFunc persists one quiesced answer. Errors flip the buffer to
// StatusError; the next push retries naturally.
type CommitFunc func(userID, sectionID, questionID uint, answer string) error

type bufferKey struct {
	userID     uint
	questionID uint
}

type buffer struct {
	sectionID uint
	text      string
	committed string
	status    Status
	timer     *time.Timer
	// gen invalidates expired timers that lost the Stop race: a fire
	// carrying a stale generation must not commit the fresh text early.
	gen uint64
}

// Manager owns all live buffers. Buffers for different questions are
// independent; there is no ordering guarantee across their commits.
type Manager struct {
	mu      sync.Mutex
	quiet   time.Duration
	commit  CommitFunc
	buffers map[bufferKey]*buffer
	closed  bool
}

func NewManager(quiet time.Duration, commit CommitFunc) *Manager {
	return &Manager{
		quiet:   quiet,
		commit:  commit,
		buffers: make(map[bufferKey]*buffer),
	}
}

// Push records the latest text for a question and restarts its quiet timer.
// A commit is emitted only after the buffer has been quiet for the full
// interval, and only if the quiesced value differs from the last committed
// value and is non-empty after trimming.
func (m *Manager) Push(userID, sectionID, questionID uint, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}

	key := bufferKey{userID: userID, questionID: questionID}
	b, ok := m.buffers[key]
	if !ok {
		b = &buffer{status: StatusIdle}
		m.buffers[key] = b
	}
	b.sectionID = sectionID
	b.text = text
	b.gen++

	// Stop may return false if the old timer already expired; its pending
	// fire still aborts on the generation check below.
	if b.timer != nil {
		b.timer.Stop()
	}
	gen := b.gen
	b.timer = time.AfterFunc(m.quiet, func() {
		m.fire(key, gen)
	})
}

// Reset seeds the committed value for a buffer, e.g. after loading an
// existing answer when a question comes into view. It never emits a commit.
func (m *Manager) Reset(userID, sectionID, questionID uint, initial string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}

	key := bufferKey{userID: userID, questionID: questionID}
	b, ok := m.buffers[key]
	if !ok {
		b = &buffer{status: StatusIdle}
		m.buffers[key] = b
	}
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.gen++
	b.sectionID = sectionID
	b.text = initial
	b.committed = initial
	b.status = StatusIdle
}

// Status reports the current indicator state for a question's buffer.
// Unknown buffers are idle.
func (m *Manager) Status(userID, questionID uint) Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.buffers[bufferKey{userID: userID, questionID: questionID}]
	if !ok {
		return StatusIdle
	}
	return b.status
}

// CloseBuffer abandons one buffer, suppressing any pending commit.
func (m *Manager) CloseBuffer(userID, questionID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := bufferKey{userID: userID, questionID: questionID}
	if b, ok := m.buffers[key]; ok {
		if b.timer != nil {
			b.timer.Stop()
		}
		delete(m.buffers, key)
	}
}

// Close tears down the manager. No commit fires after Close returns.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	for _, b := range m.buffers {
		if b.timer != nil {
			b.timer.Stop()
		}
	}
	m.buffers = make(map[bufferKey]*buffer)
}

func (m *Manager) fire(key bufferKey, gen uint64) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	b, ok := m.buffers[key]
	if !ok || b.gen != gen {
		// Stale timer: the buffer was pushed, reset, or abandoned since
		// this fire was scheduled. The newer timer owns the commit.
		m.mu.Unlock()
		return
	}
	text := b.text
	sectionID := b.sectionID
	if text == b.committed || strings.TrimSpace(text) == "" {
		m.mu.Unlock()
		return
	}
	b.status = StatusSaving
	m.mu.Unlock()

	err := m.commit(key.userID, sectionID, key.questionID, text)

	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok = m.buffers[key]
	if !ok || m.closed {
		// Buffer was abandoned while the commit was in flight.
		return
	}
	if err != nil {
		log.Error().Err(err).
			Uint("userID", key.userID).
			Uint("questionID", key.questionID).
			Msg("Auto-save commit failed")
		if b.gen == gen {
			b.status = StatusError
		}
		return
	}
	// The value was persisted even if a newer push arrived meanwhile;
	// recording it keeps the newer fire from re-committing the same text.
	b.committed = text
	if b.gen == gen {
		b.status = StatusSaved
	}
}
