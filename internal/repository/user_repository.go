package repository

import (
	"context"
	"errors"
	"time"

	"shop/internal/domain/model"
)

// email重複を統一
var ErrDuplicateEmail = errors.New("email already exists")

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error

	FindByID(ctx context.Context, userID int64) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)

	//プロフィール更新。更新できる列は許可リストで固定する
	UpdateProfile(ctx context.Context, userID int64, login, firstName, lastName, phone string) error

	//ログアウト時刻の記録
	UpdateLastLogout(ctx context.Context, userID int64, at time.Time) error
}
