package service

import (
	"context"

	"github.com/Talha-Ak/clucker/internal/models"
	"github.com/Talha-Ak/clucker/internal/repository"
	"github.com/Talha-Ak/clucker/internal/validation"
)

// SignUpInput carries the fields collected by the sign-up form.
type SignUpInput struct {
	Username             string `json:"username" form:"username"`
	FirstName            string `json:"first_name" form:"first_name"`
	LastName             string `json:"last_name" form:"last_name"`
	Email                string `json:"email" form:"email"`
	Bio                  string `json:"bio" form:"bio"`
	Password             string `json:"password" form:"password"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation"`
}

// ProfileInput carries the editable profile fields. The username is fixed at
// sign-up and cannot be changed here.
type ProfileInput struct {
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	Email     string `json:"email" form:"email"`
	Bio       string `json:"bio" form:"bio"`
}

// AccountService handles registration and profile maintenance.
type AccountService struct {
	userRepo    repository.UserRepository
	credentials *CredentialService
}

// NewAccountService returns an AccountService over the given dependencies.
func NewAccountService(userRepo repository.UserRepository, credentials *CredentialService) *AccountService {
	return &AccountService{userRepo: userRepo, credentials: credentials}
}

// SignUp validates the input, hashes the password and creates the account.
// All field errors are collected into a single ValidationErrors so the form
// can show every problem at once.
func (s *AccountService) SignUp(ctx context.Context, in SignUpInput) (*models.User, error) {
	verrs := models.NewValidationErrors()

	if err := validation.ValidateUsername(in.Username); err != nil {
		verrs.Add("username", err.Error())
	}
	if err := validation.ValidateName(in.FirstName); err != nil {
		verrs.Add("first_name", err.Error())
	}
	if err := validation.ValidateName(in.LastName); err != nil {
		verrs.Add("last_name", err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		verrs.Add("email", err.Error())
	}
	if err := validation.ValidateBio(in.Bio); err != nil {
		verrs.Add("bio", err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		verrs.Add("password", err.Error())
	}
	if in.Password != in.PasswordConfirmation {
		verrs.Add("password_confirmation", "Confirmation does not match password.")
	}
	if verrs.HasErrors() {
		return nil, verrs
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Bio:       in.Bio,
		Password:  hash,
		IsActive:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the editable fields to the user's record. Uniqueness
// of the new email is enforced by the database and surfaces as a field error.
func (s *AccountService) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*models.User, error) {
	verrs := models.NewValidationErrors()

	if err := validation.ValidateName(in.FirstName); err != nil {
		verrs.Add("first_name", err.Error())
	}
	if err := validation.ValidateName(in.LastName); err != nil {
		verrs.Add("last_name", err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		verrs.Add("email", err.Error())
	}
	if err := validation.ValidateBio(in.Bio); err != nil {
		verrs.Add("bio", err.Error())
	}
	if verrs.HasErrors() {
		return nil, verrs
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Email = in.Email
	user.Bio = in.Bio
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before applying the new one.
// A wrong current password is a field error, not an authorization failure;
// the session that made the request stays valid either way.
func (s *AccountService) ChangePassword(ctx context.Context, userID uint, current, newPassword, confirmation string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	verrs := models.NewValidationErrors()
	if !CheckPassword(user.Password, current) {
		verrs.Add("password", "Current password is incorrect.")
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		verrs.Add("new_password", err.Error())
	}
	if newPassword != confirmation {
		verrs.Add("password_confirmation", "Confirmation does not match password.")
	}
	if verrs.HasErrors() {
		return verrs
	}

	return s.credentials.SetPassword(ctx, user, newPassword)
}
