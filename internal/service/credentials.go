// Package service implements the application's domain logic over the
// repository layer: credential checks, the follow graph rules, feed
// composition, and account lifecycle flows.
package service

import (
	"context"

	"github.com/Talha-Ak/clucker/internal/models"
	"github.com/Talha-Ak/clucker/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// CredentialService verifies and updates stored credentials.
type CredentialService struct {
	userRepo repository.UserRepository
}

// NewCredentialService returns a CredentialService over the given repository.
func NewCredentialService(userRepo repository.UserRepository) *CredentialService {
	return &CredentialService{userRepo: userRepo}
}

// Verify looks up the user by exact username and checks the password against
// the stored bcrypt hash. It returns (nil, nil) for an unknown username, an
// inactive account, or a wrong password; the three cases are deliberately
// indistinguishable to the caller.
func (s *CredentialService) Verify(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		// Burn a comparison so timing does not reveal whether the account exists.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$0000000000000000000000000000000000000000000000000000"), []byte(password))
		return nil, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil
	}
	return user, nil
}

// SetPassword re-hashes and stores the new password. It touches nothing else:
// in particular the caller's current session token stays valid.
func (s *CredentialService) SetPassword(ctx context.Context, user *models.User, newPassword string) error {
	hash, err := HashPassword(newPassword)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.Password = hash
	return s.userRepo.Update(ctx, user)
}

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
