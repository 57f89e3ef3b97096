package cache

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// MessageRateLimit caps how many messages a user may send per window
type MessageRateLimit struct {
	MaxMessages int
	Window      time.Duration
}

// DefaultMessageRateLimit returns the default message rate limit
func DefaultMessageRateLimit() MessageRateLimit {
	return MessageRateLimit{
		MaxMessages: 20,
		Window:      1 * time.Minute,
	}
}

// CheckMessageRateLimit reports whether the user may send another message.
// Without Redis the limit is not enforced.
func CheckMessageRateLimit(userID string, limit MessageRateLimit) (bool, error) {
	if rdb == nil {
		return true, nil
	}

	key := fmt.Sprintf("rate:message:%s", userID)

	count, err := rdb.Get(ctx, key).Int()
	if err == redis.Nil {
		return true, nil
	} else if err != nil {
		return false, err
	}

	return count < limit.MaxMessages, nil
}

// RecordMessage counts a sent message toward the user's window
func RecordMessage(userID string, limit MessageRateLimit) error {
	if rdb == nil {
		return nil
	}

	key := fmt.Sprintf("rate:message:%s", userID)

	count, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if count == 1 {
		rdb.Expire(ctx, key, limit.Window)
	}
	return nil
}
