package service

import (
	"context"
	"testing"

	"github.com/Talha-Ak/clucker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCredentialService_Verify(t *testing.T) {
	ctx := context.Background()

	hash, err := HashPassword("Password123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		stored   *models.User
		wantUser bool
	}{
		{
			name:     "Correct Credentials",
			username: "@johndoe",
			password: "Password123",
			stored:   &models.User{ID: 1, Username: "@johndoe", Password: hash, IsActive: true},
			wantUser: true,
		},
		{
			name:     "Unknown Username",
			username: "@nobody",
			password: "Password123",
			stored:   nil,
		},
		{
			name:     "Wrong Password",
			username: "@johndoe",
			password: "WrongPass1",
			stored:   &models.User{ID: 1, Username: "@johndoe", Password: hash, IsActive: true},
		},
		{
			name:     "Inactive Account With Correct Password",
			username: "@johndoe",
			password: "Password123",
			stored:   &models.User{ID: 1, Username: "@johndoe", Password: hash, IsActive: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			repo.On("GetByUsername", mock.Anything, tt.username).Return(tt.stored, nil)

			svc := NewCredentialService(repo)
			user, err := svc.Verify(ctx, tt.username, tt.password)
			require.NoError(t, err)

			if tt.wantUser {
				require.NotNil(t, user)
				assert.Equal(t, tt.stored.ID, user.ID)
			} else {
				assert.Nil(t, user)
			}
		})
	}
}

func TestCredentialService_SetPassword(t *testing.T) {
	ctx := context.Background()

	oldHash, err := HashPassword("OldPassword1")
	require.NoError(t, err)
	user := &models.User{ID: 1, Username: "@johndoe", Password: oldHash, IsActive: true}

	repo := new(MockUserRepository)
	repo.On("Update", mock.Anything, user).Return(nil)

	svc := NewCredentialService(repo)
	require.NoError(t, svc.SetPassword(ctx, user, "NewPassword1"))

	assert.NotEqual(t, oldHash, user.Password)
	assert.True(t, CheckPassword(user.Password, "NewPassword1"))
	assert.False(t, CheckPassword(user.Password, "OldPassword1"))
	repo.AssertExpectations(t)
}

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Password123")
	require.NoError(t, err)

	assert.NotEqual(t, "Password123", hash)
	assert.True(t, CheckPassword(hash, "Password123"))
	assert.False(t, CheckPassword(hash, "password123"))
}
