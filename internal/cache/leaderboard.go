package cache

import (
	"time"

	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "cache:leaderboard"
const leaderboardTTL = 30 * time.Second

// GetLeaderboard returns the cached leaderboard JSON, or "" on miss
func GetLeaderboard() string {
	if rdb == nil {
		return ""
	}
	val, err := rdb.Get(ctx, leaderboardKey).Result()
	if err == redis.Nil || err != nil {
		return ""
	}
	return val
}

// SetLeaderboard stores the leaderboard JSON with a short TTL
func SetLeaderboard(payload string) {
	if rdb == nil {
		return
	}
	rdb.Set(ctx, leaderboardKey, payload, leaderboardTTL)
}

// InvalidateLeaderboard drops the cached leaderboard after XP changes
func InvalidateLeaderboard() {
	if rdb == nil {
		return
	}
	rdb.Del(ctx, leaderboardKey)
}
