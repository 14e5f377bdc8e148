package game

import "github.com/samdwyer/boardwalk/internal/board"

// LastNodeStore is the persistence collaborator: it supplies the
// player's last known node when the board is re-entered.
type LastNodeStore interface {
	// LastNode returns the persisted node id, or board.NoNode when
	// nothing has been saved.
	LastNode() board.NodeID
	// SetLastNode records the player's position after each segment.
	SetLastNode(id board.NodeID)
}

// MemoryStore is the in-process LastNodeStore used by the demo game.
type MemoryStore struct {
	last board.NodeID
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{last: board.NoNode}
}

// LastNode returns the stored node id, board.NoNode when unset.
func (s *MemoryStore) LastNode() board.NodeID {
	return s.last
}

// SetLastNode records id.
func (s *MemoryStore) SetLastNode(id board.NodeID) {
	s.last = id
}

// MessageLog is a bounded list of player-facing messages.
type MessageLog struct {
	lines []string
	max   int
}

// NewMessageLog creates a log keeping the most recent max lines.
func NewMessageLog(max int) *MessageLog {
	if max <= 0 {
		max = 5
	}
	return &MessageLog{max: max}
}

// Push appends a message, discarding the oldest past the cap.
func (l *MessageLog) Push(msg string) {
	l.lines = append(l.lines, msg)
	if len(l.lines) > l.max {
		l.lines = l.lines[len(l.lines)-l.max:]
	}
}

// Lines returns the retained messages, oldest first.
func (l *MessageLog) Lines() []string {
	return l.lines
}
