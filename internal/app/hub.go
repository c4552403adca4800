package app

import (
	"sync"

	"playstyle-quiz-service/internal/domain"
)

// dashboardHub fans dashboard snapshots out to subscribers. Each subscriber
// holds at most one pending snapshot; newer ones replace older ones.
type dashboardHub struct {
	mu          sync.Mutex
	subscribers map[chan domain.DashboardStats]struct{}
}

func newDashboardHub() *dashboardHub {
	return &dashboardHub{subscribers: make(map[chan domain.DashboardStats]struct{})}
}

func (h *dashboardHub) subscribe() (<-chan domain.DashboardStats, func()) {
	ch := make(chan domain.DashboardStats, 1)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *dashboardHub) active() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers) > 0
}

func (h *dashboardHub) broadcast(stats domain.DashboardStats) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		select {
		case ch <- stats:
		default:
			// Slow reader: drop the stale snapshot.
			select {
			case <-ch:
			default:
			}
			ch <- stats
		}
	}
}
