package usecase

import (
	"context"
	"testing"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func strPtr(s string) *string { return &s }

func TestUserUsecase_Me_NotFound(t *testing.T) {
	users := new(UserRepoMock)
	uc := NewUserUsecase(users)

	users.On("FindByID", mock.Anything, int64(1)).Return(model.User{}, repo.ErrNotFound)

	_, err := uc.Me(context.Background(), 1)

	assertErrContains(t, err, "user not found")
	he, ok := AsHTTPError(err)
	if assert.True(t, ok) {
		assert.Equal(t, 404, he.Status)
	}
}

func TestUserUsecase_UpdateProfile_PartialKeepsOtherFields(t *testing.T) {
	users := new(UserRepoMock)
	uc := NewUserUsecase(users)

	users.On("FindByID", mock.Anything, int64(1)).Return(model.User{
		ID:        1,
		Email:     "taro@example.com",
		Login:     "oldlogin",
		FirstName: "Taro",
		LastName:  "Yamada",
		Phone:     "090-0000-0000",
	}, nil)
	users.On("UpdateProfile", mock.Anything, int64(1), "newlogin", "Taro", "Yamada", "090-0000-0000").Return(nil)

	out, err := uc.UpdateProfile(context.Background(), 1, UpdateProfileInput{Login: strPtr("newlogin")})

	assert.NoError(t, err)
	assert.Equal(t, "newlogin", out.Login)
	assert.Equal(t, "Taro", out.FirstName)
	assert.Equal(t, "Yamada", out.LastName)
	assert.Equal(t, "090-0000-0000", out.Phone)

	//loginだけのPATCHで他の列が空文字に潰れない
	users.AssertCalled(t, "UpdateProfile", mock.Anything, int64(1), "newlogin", "Taro", "Yamada", "090-0000-0000")
}

func TestUserUsecase_UpdateProfile_ExplicitEmptyClearsField(t *testing.T) {
	users := new(UserRepoMock)
	uc := NewUserUsecase(users)

	users.On("FindByID", mock.Anything, int64(1)).Return(model.User{
		ID:    1,
		Login: "oldlogin",
		Phone: "090-0000-0000",
	}, nil)
	users.On("UpdateProfile", mock.Anything, int64(1), "oldlogin", "", "", "").Return(nil)

	//空文字を明示的に送った項目は消せる
	out, err := uc.UpdateProfile(context.Background(), 1, UpdateProfileInput{Phone: strPtr("")})

	assert.NoError(t, err)
	assert.Equal(t, "oldlogin", out.Login)
	assert.Equal(t, "", out.Phone)
}

func TestUserUsecase_UpdateProfile_EmptyBody(t *testing.T) {
	users := new(UserRepoMock)
	uc := NewUserUsecase(users)

	_, err := uc.UpdateProfile(context.Background(), 1, UpdateProfileInput{})

	assertErrContains(t, err, "nothing to update")
	users.AssertNotCalled(t, "UpdateProfile",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
