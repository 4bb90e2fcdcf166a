package usecase

import (
	"context"
	"testing"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test_secret"

func newAuthTestEnv() (*AuthUsecase, *TxManagerMock, *UserRepoMock, *CartRepoMock, *BlacklistMock) {
	users := new(UserRepoMock)
	carts := new(CartRepoMock)
	blacklist := new(BlacklistMock)

	tx := &TxManagerMock{Repos: &TxReposMock{
		users: users,
		carts: carts,
	}}
	tx.On("WithinTx", mock.Anything).Return(nil)

	uc := NewAuthUsecase(tx, users, blacklist, testSecret)
	return uc, tx, users, carts, blacklist
}

// =====================
// Register
// =====================

func TestAuthUsecase_Register_Success(t *testing.T) {
	uc, _, users, carts, _ := newAuthTestEnv()

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		//パスワードは平文で保存されない
		return u.Email == "alice@example.com" && u.PasswordHash != "password123" && u.Role == model.RoleUser
	})).Return(nil)
	carts.On("Create", mock.Anything, int64(1)).Return(model.Cart{ID: 7, UserID: 1}, nil)

	out, err := uc.Register(context.Background(), RegisterInput{
		Email:    "Alice@Example.com",
		Password: "password123",
		Login:    "alice",
	})

	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", out.Email)
	assert.Equal(t, "USER", out.Role)

	//ユーザーと同時にカートも作られる
	carts.AssertCalled(t, "Create", mock.Anything, int64(1))
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	uc, _, users, carts, _ := newAuthTestEnv()

	users.On("Create", mock.Anything, mock.Anything).Return(repo.ErrDuplicateEmail)

	_, err := uc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Password: "password123",
	})

	assertErrContains(t, err, "email already exists")
	he, ok := AsHTTPError(err)
	if assert.True(t, ok) {
		assert.Equal(t, 409, he.Status)
	}
	carts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Register_InvalidEmail(t *testing.T) {
	uc, _, _, _, _ := newAuthTestEnv()

	_, err := uc.Register(context.Background(), RegisterInput{Email: "not-an-email", Password: "password123"})

	assertErrContains(t, err, "invalid email format")
}

func TestAuthUsecase_Register_ShortPassword(t *testing.T) {
	uc, _, _, _, _ := newAuthTestEnv()

	_, err := uc.Register(context.Background(), RegisterInput{Email: "alice@example.com", Password: "short"})

	assertErrContains(t, err, "at least 8 characters")
}

// =====================
// Login
// =====================

func TestAuthUsecase_Login_Success(t *testing.T) {
	uc, _, users, _, _ := newAuthTestEnv()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	users.On("FindByEmail", mock.Anything, "alice@example.com").Return(model.User{
		ID: 1, Email: "alice@example.com", PasswordHash: string(hash), Role: model.RoleUser,
	}, nil)

	out, err := uc.Login(context.Background(), "alice@example.com", "password123")

	assert.NoError(t, err)
	assert.Equal(t, "Bearer", out.TokenType)

	//発行されたトークンを検証してclaimsを確かめる
	token, err := jwt.Parse(out.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	if assert.True(t, ok) {
		assert.Equal(t, float64(1), claims["sub"])
		assert.Equal(t, "USER", claims["role"])
		assert.NotEmpty(t, claims["jti"])
	}
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	uc, _, users, _, _ := newAuthTestEnv()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	users.On("FindByEmail", mock.Anything, "alice@example.com").Return(model.User{
		ID: 1, Email: "alice@example.com", PasswordHash: string(hash),
	}, nil)

	_, err := uc.Login(context.Background(), "alice@example.com", "wrong-password")

	assertErrContains(t, err, "invalid email or password")
	he, ok := AsHTTPError(err)
	if assert.True(t, ok) {
		assert.Equal(t, 401, he.Status)
	}
}

func TestAuthUsecase_Login_UnknownEmail(t *testing.T) {
	uc, _, users, _, _ := newAuthTestEnv()

	users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(model.User{}, repo.ErrNotFound)

	_, err := uc.Login(context.Background(), "nobody@example.com", "password123")

	//存在しないメールでも文言は同じ
	assertErrContains(t, err, "invalid email or password")
}

// =====================
// Logout
// =====================

func TestAuthUsecase_Logout_RevokesToken(t *testing.T) {
	uc, _, users, _, blacklist := newAuthTestEnv()

	exp := time.Now().Add(10 * time.Minute)
	blacklist.On("Revoke", mock.Anything, "some-jti", mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 9*time.Minute && ttl <= 10*time.Minute
	})).Return(nil)
	users.On("UpdateLastLogout", mock.Anything, int64(1), mock.Anything).Return(nil)

	err := uc.Logout(context.Background(), 1, "some-jti", exp)

	assert.NoError(t, err)
	blacklist.AssertCalled(t, "Revoke", mock.Anything, "some-jti", mock.Anything)
	users.AssertCalled(t, "UpdateLastLogout", mock.Anything, int64(1), mock.Anything)
}

func TestAuthUsecase_Logout_EmptyJTI(t *testing.T) {
	uc, _, _, _, blacklist := newAuthTestEnv()

	err := uc.Logout(context.Background(), 1, "", time.Now())

	assertErrContains(t, err, "invalid token")
	blacklist.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything, mock.Anything)
}
