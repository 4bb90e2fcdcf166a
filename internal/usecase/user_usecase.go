package usecase

import (
	"context"
	"net/http"
	"strings"

	repo "shop/internal/repository"
)

type UserUsecase struct {
	users repo.UserRepository
}

func NewUserUsecase(users repo.UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

// nilの項目は「送られてこなかった」扱いで現在値を保つ
type UpdateProfileInput struct {
	Login     *string
	FirstName *string
	LastName  *string
	Phone     *string
}

// Me はログイン中ユーザー自身のプロフィールを返す。
func (u *UserUsecase) Me(ctx context.Context, userID int64) (UserOutput, error) {
	if userID <= 0 {
		return UserOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return UserOutput{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserOutput(user), nil
}

// UpdateProfile は部分更新。emailとroleはここでは変えられない
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (UserOutput, error) {
	if userID <= 0 {
		return UserOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if in.Login == nil && in.FirstName == nil && in.LastName == nil && in.Phone == nil {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "nothing to update")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return UserOutput{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//送られてきた項目だけ上書き。残りは現在値のまま
	if in.Login != nil {
		user.Login = strings.TrimSpace(*in.Login)
	}
	if in.FirstName != nil {
		user.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		user.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Phone != nil {
		user.Phone = strings.TrimSpace(*in.Phone)
	}

	if err := u.users.UpdateProfile(ctx, userID, user.Login, user.FirstName, user.LastName, user.Phone); err != nil {
		if err == repo.ErrNotFound {
			return UserOutput{}, NewHTTPError(http.StatusNotFound, "user not found")
		}
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserOutput(user), nil
}
