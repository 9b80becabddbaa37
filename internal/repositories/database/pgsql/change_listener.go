package pgsql

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	portssvc "github.com/willbanks/load-coordinator/internal/core/ports/services"
)

// ChangeListener holds a dedicated connection on LISTEN loads_changed and
// republishes every notification into the in-process change feed. A pooled
// connection cannot be used because LISTEN binds to one session.
type ChangeListener struct {
	databaseURL string
	feed        portssvc.ChangeFeedSvc
	logger      *slog.Logger
}

// NewChangeListener creates a listener that feeds the given change feed.
func NewChangeListener(databaseURL string, feed portssvc.ChangeFeedSvc, logger *slog.Logger) *ChangeListener {
	return &ChangeListener{databaseURL: databaseURL, feed: feed, logger: logger}
}

// Run blocks until the context is cancelled, reconnecting with a small
// backoff whenever the listening connection drops.
func (l *ChangeListener) Run(ctx context.Context) {
	for {
		if err := l.listen(ctx); err != nil && ctx.Err() == nil {
			l.logger.Warn("Change listener connection lost, reconnecting",
				slog.String("error", err.Error()))
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(3 * time.Second):
		}
	}
}

func (l *ChangeListener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.databaseURL)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+loadChangedChannel); err != nil {
		return err
	}
	l.logger.Info("Listening for load changes", slog.String("channel", loadChangedChannel))

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}

		var event portssvc.LoadChangeEvent
		if err := json.Unmarshal([]byte(notification.Payload), &event); err != nil {
			l.logger.Warn("Discarding malformed change notification",
				slog.String("payload", notification.Payload))
			continue
		}
		l.feed.Publish(event)
	}
}
