package service

import (
	"context"
	"testing"
	"time"

	"github.com/agrovia/farm-api/internal/domain"
	"github.com/agrovia/farm-api/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthService(userRepo *MockUserRepository) *AuthService {
	jwtManager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute, 7*24*time.Hour)
	return NewAuthService(userRepo, jwtManager, newTestRegistry())
}

func TestAuthRegister_EmailTaken(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo)

	userRepo.On("EmailExists", mock.Anything, "ana@example.com").Return(true, nil)

	_, err := svc.Register(context.Background(), domain.UserCreate{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestAuthRegister_HashesPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo)

	userRepo.On("EmailExists", mock.Anything, "ana@example.com").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "ana@example.com" &&
			u.StateID == userActive &&
			u.PasswordHash != "" &&
			u.PasswordHash != "password123"
	})).Return(nil)

	user, err := svc.Register(context.Background(), domain.UserCreate{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.True(t, security.CheckPassword("password123", user.PasswordHash))
	userRepo.AssertExpectations(t)
}

func TestAuthLogin_InvalidCredentials(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo)

	userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, nil)

	_, err := svc.Login(context.Background(), domain.UserLogin{Email: "ana@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo)

	hash, err := security.HashPassword("correct-password")
	require.NoError(t, err)
	user := &domain.User{Email: "ana@example.com", PasswordHash: hash}
	userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(user, nil)

	_, err = svc.Login(context.Background(), domain.UserLogin{Email: "ana@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthLogin_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo)

	hash, err := security.HashPassword("correct-password")
	require.NoError(t, err)
	user := &domain.User{Email: "ana@example.com", PasswordHash: hash}
	userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(user, nil)

	tokens, err := svc.Login(context.Background(), domain.UserLogin{Email: "ana@example.com", Password: "correct-password"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, int64(900), tokens.ExpiresIn)
}
