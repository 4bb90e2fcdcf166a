package blacklist

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ログアウト済みトークンのjtiをRedisに持つ。
// TTLをトークンの残り有効期間に合わせれば、期限切れと同時に勝手に消える。
type RedisTokenBlacklist struct {
	client *redis.Client
}

// DI
func NewRedisTokenBlacklist(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

func NewRedisClient(addr string, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
}

func key(jti string) string {
	return "token_blacklist:" + jti
}

func (b *RedisTokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// 期限切れトークンは放っておいてよい
		return nil
	}
	return b.client.Set(ctx, key(jti), "1", ttl).Err()
}

func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, key(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
