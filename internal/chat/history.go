package chat

import "sync"

// DefaultTail is the number of records served per channel when no explicit
// limit is configured.
const DefaultTail = 100

// HistoryStore is an append-only, per-channel log of records. Storage grows
// without bound; readers only ever see a bounded suffix via Tail.
type HistoryStore struct {
	mu   sync.Mutex
	logs map[string][]Record
}

// NewHistoryStore creates an empty history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{logs: make(map[string][]Record)}
}

// Append adds a record to the end of a channel's log.
func (s *HistoryStore) Append(channelKey string, rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logs[channelKey] = append(s.logs[channelKey], rec)
}

// Tail returns a copy of the last n records for a channel in original order.
// Unknown keys yield an empty slice, never an error. n <= 0 falls back to
// DefaultTail.
func (s *HistoryStore) Tail(channelKey string, n int) []Record {
	if n <= 0 {
		n = DefaultTail
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.logs[channelKey]
	if len(log) > n {
		log = log[len(log)-n:]
	}

	out := make([]Record, len(log))
	copy(out, log)
	return out
}

// Len returns the number of records stored for a channel.
func (s *HistoryStore) Len(channelKey string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.logs[channelKey])
}
