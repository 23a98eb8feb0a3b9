package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
)

var (
	ErrNotFound = errors.New("not found")
	//一意制約違反（注文番号・メールアドレス等）
	ErrConflict = errors.New("conflict")
)

// ユーザーの保存・取得を約束
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	//username重複チェック用
	UsernameExists(ctx context.Context, username string) (bool, error)
	//最終ログイン時刻の更新
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
}
