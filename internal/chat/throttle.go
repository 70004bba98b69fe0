package chat

import (
	"math"
	"sync"
	"time"
)

// frameThrottle bounds how fast one session's inbound frames are processed.
// A session starts with its full burst allowance; spent allowance grows back
// continuously over the refill window, and frames beyond it are discarded.
type frameThrottle struct {
	mu     sync.Mutex
	level  float64
	burst  float64
	perSec float64
	last   time.Time
}

func newFrameThrottle(burst int, window time.Duration) *frameThrottle {
	if burst <= 0 {
		burst = 1
	}
	if window <= 0 {
		window = time.Second
	}
	return &frameThrottle{
		level:  float64(burst),
		burst:  float64(burst),
		perSec: float64(burst) / window.Seconds(),
		last:   time.Now(),
	}
}

// permit consumes one unit of allowance. It reports false when the burst is
// exhausted and the frame must be dropped.
func (t *frameThrottle) permit() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	if d := now.Sub(t.last); d > 0 {
		t.level = math.Min(t.burst, t.level+d.Seconds()*t.perSec)
	}
	t.last = now

	if t.level < 1 {
		return false
	}
	t.level--
	return true
}
