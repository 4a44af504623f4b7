package pgstore

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	listenBackoffMin = 100 * time.Millisecond
	listenBackoffMax = 5 * time.Second
)

// startListener launches the LISTEN loop once. ready closes after the first
// successful LISTEN so no change committed after Subscribe returns is missed.
func (s *Store) startListener() {
	s.listenOnce.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		s.stop = cancel
		go func() {
			defer close(s.stopped)
			s.listen(ctx)
		}()
	})
}

func (s *Store) listen(ctx context.Context) {
	backoff := listenBackoffMin
	for ctx.Err() == nil {
		err := s.listenConn(ctx)
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn("document change listener disconnected", "error", err, "retry_in", backoff)

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, listenBackoffMax)
	}
}

func (s *Store) listenConn(ctx context.Context) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer releaseListener(conn)

	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		return err
	}
	select {
	case <-s.ready:
		// changes may have been missed while disconnected
		s.broadcaster.NotifyAll()
	default:
		close(s.ready)
	}

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		s.broadcaster.Notify(n.Payload)
	}
}

func releaseListener(conn *pgxpool.Conn) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := conn.Exec(ctx, "UNLISTEN *"); err != nil {
		// a broken connection must not go back to the pool
		_ = conn.Conn().Close(ctx)
	}
	conn.Release()
}
