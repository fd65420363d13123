package session

import "context"

// watchBuffer is the per-watcher channel capacity. Slow watchers drop
// intermediate snapshots rather than block state updates; the latest snapshot
// is always available via Snapshot.
const watchBuffer = 8

type watcher struct {
	ch chan Snapshot
}

// Subscribe returns a channel receiving every published snapshot. The
// subscription ends when ctx is cancelled or the session closes, at which
// point the channel is closed. Sends never block: a watcher that falls behind
// misses intermediate snapshots.
func (s *Session) Subscribe(ctx context.Context) <-chan Snapshot {
	w := &watcher{ch: make(chan Snapshot, watchBuffer)}

	s.watchMu.Lock()
	if s.closed {
		s.watchMu.Unlock()
		close(w.ch)
		return w.ch
	}
	s.watchers[w] = struct{}{}
	s.watchMu.Unlock()

	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			s.unsubscribe(w)
		}()
	}

	return w.ch
}

// Close ends all subscriptions. Pending actions finish but publish to nobody;
// later Refetch, Checkout and Billing calls record ErrClosed. Close is
// idempotent.
func (s *Session) Close() error {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	for w := range s.watchers {
		delete(s.watchers, w)
		close(w.ch)
	}
	return nil
}

func (s *Session) isClosed() bool {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	return s.closed
}

func (s *Session) unsubscribe(w *watcher) {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	if _, ok := s.watchers[w]; ok {
		delete(s.watchers, w)
		close(w.ch)
	}
}

// publish fans the current snapshot out to all watchers, dropping for any
// whose buffer is full.
func (s *Session) publish() {
	snap := s.Snapshot()

	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	for w := range s.watchers {
		select {
		case w.ch <- snap:
		default:
		}
	}
}
