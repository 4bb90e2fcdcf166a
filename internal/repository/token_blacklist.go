package repository

import (
	"context"
	"time"
)

// ログアウト済みアクセストークンの失効リスト。
// jti単位で、トークンの残り有効期間だけ保持すればよい。
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
