package checkout

import (
	"strconv"
	"sync"
	"time"
)

// OrderPrefix starts every order number.
const OrderPrefix = "MT"

// Sequencer issues order numbers of the form "MT<unix millis>". Numbers
// never repeat: a request in the same millisecond as the previous one gets
// the previous value plus one.
type Sequencer struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewSequencer creates a Sequencer reading time from now.
func NewSequencer(now func() time.Time) *Sequencer {
	if now == nil {
		now = time.Now
	}
	return &Sequencer{now: now}
}

// Next returns the next order number.
func (s *Sequencer) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.now().UnixMilli()
	if n <= s.last {
		n = s.last + 1
	}
	s.last = n
	return OrderPrefix + strconv.FormatInt(n, 10)
}
