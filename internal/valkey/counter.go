// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package valkey

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// counterKeyPrefix namespaces rate-limit counters in Valkey.
const counterKeyPrefix = "ratelimit:"

// WindowCounter counts hits per key in fixed windows. Each window is its
// own Valkey key that expires with the window, so no cleanup is needed.
type WindowCounter struct {
	client *redis.Client
	window time.Duration
	now    func() time.Time
}

// NewWindowCounter returns a counter over client with the given window.
// A non-positive window means one minute.
func NewWindowCounter(client *redis.Client, window time.Duration) *WindowCounter {
	if window <= 0 {
		window = time.Minute
	}
	return &WindowCounter{client: client, window: window, now: time.Now}
}

// Hit records one hit for key in the current window and returns the
// window's total including this hit.
func (c *WindowCounter) Hit(ctx context.Context, key string) (int64, error) {
	k := c.key(key)

	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, c.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("valkey counter %s: %w", key, err)
	}
	return incr.Val(), nil
}

// key builds the Valkey key of the window that contains now.
func (c *WindowCounter) key(key string) string {
	slot := c.now().UnixNano() / int64(c.window)
	return counterKeyPrefix + key + ":" + strconv.FormatInt(slot, 10)
}
