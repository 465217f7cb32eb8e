package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/valkey-io/valkey-go"
)

// Limiter is a fixed-window per-sender message limiter backed by valkey.
// It fails open: if valkey is unreachable the message is let through, so
// chat traffic never blocks on the limiter.
type Limiter struct {
	client valkey.Client
	window time.Duration
	max    int64
	log    *log.Logger
}

// NewLimiter connects to valkey and verifies the connection with a ping.
func NewLimiter(addr, password string, window time.Duration, max int64, logger *log.Logger) (*Limiter, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
		Password:    password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pingCmd := client.B().Ping().Build()
	if err := client.Do(ctx, pingCmd).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping valkey: %w", err)
	}

	return &Limiter{
		client: client,
		window: window,
		max:    max,
		log:    logger,
	}, nil
}

// Allow reports whether the sender is still inside their window budget.
func (l *Limiter) Allow(ctx context.Context, senderID int64) bool {
	key := WindowKey(senderID, time.Now(), l.window)

	incrCmd := l.client.B().Incr().Key(key).Build()
	n, err := l.client.Do(ctx, incrCmd).AsInt64()
	if err != nil {
		l.log.Warn("rate limiter unavailable, letting message through", "error", err)
		return true
	}

	// First hit in the window owns setting the expiry.
	if n == 1 {
		expireCmd := l.client.B().Expire().
			Key(key).
			Seconds(int64(l.window.Seconds()) + 1).
			Build()
		if err := l.client.Do(ctx, expireCmd).Error(); err != nil {
			l.log.Warn("failed to set rate limit window expiry", "key", key, "error", err)
		}
	}

	return n <= l.max
}

func (l *Limiter) Close() {
	l.client.Close()
}

// WindowKey buckets a sender into the fixed window containing now.
func WindowKey(senderID int64, now time.Time, window time.Duration) string {
	bucket := now.Unix() / int64(window.Seconds())
	return fmt.Sprintf("ratelimit:%d:%d", senderID, bucket)
}
