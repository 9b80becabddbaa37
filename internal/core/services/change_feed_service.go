package services

import (
	"context"
	"sync"

	portssvc "github.com/willbanks/load-coordinator/internal/core/ports/services"
)

// subscriberBuffer bounds each subscriber channel. A subscriber that falls
// this far behind starts dropping events; clients treat events as a reload
// hint, so drops are acceptable.
const subscriberBuffer = 16

type changeFeedService struct {
	mu          sync.Mutex
	subscribers map[int]chan portssvc.LoadChangeEvent
	nextID      int
}

// NewChangeFeedService creates the in-process change event hub.
func NewChangeFeedService() portssvc.ChangeFeedSvc {
	return &changeFeedService{
		subscribers: make(map[int]chan portssvc.LoadChangeEvent),
	}
}

func (s *changeFeedService) Subscribe(ctx context.Context) (<-chan portssvc.LoadChangeEvent, func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	ch := make(chan portssvc.LoadChangeEvent, subscriberBuffer)
	s.subscribers[id] = ch
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
			close(ch)
		})
	}

	go func() {
		<-ctx.Done()
		cancel()
	}()

	return ch, cancel
}

func (s *changeFeedService) Publish(event portssvc.LoadChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}
