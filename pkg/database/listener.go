package database

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	listenerMinReconnect = 10 * time.Second
	listenerMaxReconnect = time.Minute
	listenerPingInterval = 90 * time.Second
)

// Listen subscribes to a Postgres notification channel and calls handle with
// every payload until ctx is done. pq.Listener reconnects by itself.
func Listen(ctx context.Context, url, channel string, handle func(payload string)) error {
	listener := pq.NewListener(url, listenerMinReconnect, listenerMaxReconnect, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Warn().Err(err).Str("channel", channel).Int("event", int(ev)).Msg("postgres listener event")
		}
	})
	if err := listener.Listen(channel); err != nil {
		listener.Close()
		return fmt.Errorf("failed to listen on %s: %w", channel, err)
	}

	go func() {
		defer listener.Close()
		ticker := time.NewTicker(listenerPingInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case n := <-listener.Notify:
				// nil after a reconnect; changes may have been missed.
				if n == nil {
					handle("")
					continue
				}
				handle(n.Extra)
			case <-ticker.C:
				go listener.Ping()
			}
		}
	}()
	return nil
}
