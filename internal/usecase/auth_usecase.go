package usecase

import (
	"context"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenTTL = 15 * time.Minute

type AuthUsecase struct {
	tx        repo.TransactionManager
	users     repo.UserRepository
	blacklist repo.TokenBlacklist
	jwtSecret []byte
}

func NewAuthUsecase(tx repo.TransactionManager, users repo.UserRepository, blacklist repo.TokenBlacklist, jwtSecret string) *AuthUsecase {
	return &AuthUsecase{
		tx:        tx,
		users:     users,
		blacklist: blacklist,
		jwtSecret: []byte(jwtSecret),
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	Login     string
	FirstName string
	LastName  string
	Phone     string
}

type UserOutput struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Login     string `json:"login"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

type TokenOutput struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Register は会員登録。ユーザーとカートを同時に作る。
// どちらか片方だけ残る状態は作らない
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (UserOutput, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "invalid email format")
	}
	if len(in.Password) < 8 {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to hash password")
	}

	user := model.User{
		Email:        email,
		PasswordHash: string(hash),
		Login:        strings.TrimSpace(in.Login),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         model.RoleUser,
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Users().Create(ctx, &user); err != nil {
			if err == repo.ErrDuplicateEmail {
				return NewHTTPError(http.StatusConflict, "email already exists")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if _, err := r.Carts().Create(ctx, user.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
	if err != nil {
		return UserOutput{}, err
	}

	return toUserOutput(user), nil
}

// Login はJWTアクセストークンを発行する。
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (TokenOutput, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := u.users.FindByEmail(ctx, email)
	if err == repo.ErrNotFound {
		//メールの有無は漏らさない
		return TokenOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}
	if err != nil {
		return TokenOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return TokenOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	token, err := u.issueToken(user)
	if err != nil {
		return TokenOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to issue token")
	}

	return TokenOutput{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(accessTokenTTL.Seconds()),
	}, nil
}

// Logout はトークンのjtiを失効リストに入れる。
// 以降、同じトークンは期限内でも弾かれる
func (u *AuthUsecase) Logout(ctx context.Context, userID int64, jti string, exp time.Time) error {
	if jti == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid token")
	}

	ttl := time.Until(exp)
	if err := u.blacklist.Revoke(ctx, jti, ttl); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "failed to revoke token")
	}

	if err := u.users.UpdateLastLogout(ctx, userID, time.Now()); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AuthUsecase) issueToken(user model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(accessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(u.jwtSecret)
}

func toUserOutput(user model.User) UserOutput {
	return UserOutput{
		ID:        user.ID,
		Email:     user.Email,
		Login:     user.Login,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		Role:      string(user.Role),
	}
}
