package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gymapi/internal/auth"
	"gymapi/internal/authz"
	"gymapi/internal/errors"
	"gymapi/internal/model"
)

func TestAuthService_Register(t *testing.T) {
	admin := authz.Caller{ID: 1, Role: authz.RoleAdmin}

	tests := []struct {
		name          string
		caller        authz.Caller
		input         RegisterInput
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:   "successful registration",
			caller: admin,
			input:  RegisterInput{Username: "newbie", Email: "newbie@gym.local", Password: "password123", Role: authz.RoleTrainee},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "newbie").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:   "username already taken",
			caller: admin,
			input:  RegisterInput{Username: "existing", Password: "password123", Role: authz.RoleTrainee},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "existing").Return(&model.User{Username: "existing"}, nil)
			},
			expectedError: errors.ErrUserAlreadyExists,
		},
		{
			name:          "non-admin caller rejected",
			caller:        authz.Caller{ID: 2, Role: authz.RoleTrainer},
			input:         RegisterInput{Username: "newbie", Password: "password123", Role: authz.RoleTrainee},
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrForbidden,
		},
		{
			name:          "unknown role rejected",
			caller:        admin,
			input:         RegisterInput{Username: "newbie", Password: "password123", Role: authz.Role("coach")},
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrInvalidRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			mockTokenStore := new(MockTokenStore)

			service := NewAuthService(mockRepo, jwtService, mockTokenStore)
			user, err := service.Register(context.Background(), tt.caller, tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.input.Username, user.Username)
				assert.Equal(t, tt.input.Role, user.Role)
				assert.True(t, user.IsActive)
				assert.NotEmpty(t, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "trainer1",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByUsername", mock.Anything, "trainer1").Return(&model.User{
					ID:           7,
					Username:     "trainer1",
					PasswordHash: string(hashed),
					Role:         authz.RoleTrainer,
					IsActive:     true,
				}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(7), "trainer1", authz.RoleTrainer, mock.Anything).Return(nil)
			},
		},
		{
			name:     "user not found",
			username: "ghost",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "trainer1",
			password: "nope",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByUsername", mock.Anything, "trainer1").Return(&model.User{
					ID:           7,
					Username:     "trainer1",
					PasswordHash: string(hashed),
					IsActive:     true,
				}, nil)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:     "deactivated account",
			username: "benched",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByUsername", mock.Anything, "benched").Return(&model.User{
					ID:           8,
					Username:     "benched",
					PasswordHash: string(hashed),
					Role:         authz.RoleTrainee,
					IsActive:     false,
				}, nil)
			},
			expectedError: errors.ErrUserInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockTokenStore)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, mockTokenStore)

			accessToken, refreshToken, user, err := service.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)

				claims, err := jwtService.ValidateToken(accessToken)
				assert.NoError(t, err)
				assert.Equal(t, user.ID, claims.UserID)
				assert.Equal(t, user.Role, claims.Role)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")

	t.Run("valid refresh token", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockTokenStore := new(MockTokenStore)
		service := NewAuthService(mockRepo, jwtService, mockTokenStore)

		tokenID, refresh, err := jwtService.GenerateRefreshToken(7, "trainer1", "trainer1@gym.local", authz.RoleTrainer)
		assert.NoError(t, err)

		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(7), "trainer1", authz.RoleTrainer, nil)

		access, err := service.RefreshToken(context.Background(), refresh)
		assert.NoError(t, err)

		claims, err := jwtService.ValidateToken(access)
		assert.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
		assert.Equal(t, authz.RoleTrainer, claims.Role)
	})

	t.Run("unknown token id", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockTokenStore := new(MockTokenStore)
		service := NewAuthService(mockRepo, jwtService, mockTokenStore)

		tokenID, refresh, err := jwtService.GenerateRefreshToken(7, "trainer1", "trainer1@gym.local", authz.RoleTrainer)
		assert.NoError(t, err)

		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(0), "", authz.Role(""), assert.AnError)

		_, err = service.RefreshToken(context.Background(), refresh)
		assert.ErrorIs(t, err, errors.ErrInvalidRefreshToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockTokenStore := new(MockTokenStore)
		service := NewAuthService(mockRepo, jwtService, mockTokenStore)

		_, err := service.RefreshToken(context.Background(), "not-a-jwt")
		assert.ErrorIs(t, err, errors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	mockRepo := new(MockUserRepository)
	mockTokenStore := new(MockTokenStore)
	service := NewAuthService(mockRepo, jwtService, mockTokenStore)

	tokenID, refresh, err := jwtService.GenerateRefreshToken(7, "trainer1", "trainer1@gym.local", authz.RoleTrainer)
	assert.NoError(t, err)

	mockTokenStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)

	assert.NoError(t, service.Logout(context.Background(), refresh))
	mockTokenStore.AssertExpectations(t)
}
