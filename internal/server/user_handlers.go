package server

import (
	"errors"
	"strconv"

	"github.com/Talha-Ak/clucker/internal/models"
	"github.com/Talha-Ak/clucker/internal/service"

	"github.com/gofiber/fiber/v2"
)

const defaultPageSize = 25

// ListUsers handles GET /users/: every account, ordered by username.
func (s *Server) ListUsers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultPageSize)
	offset := c.QueryInt("offset", 0)
	if limit < 1 || limit > 100 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.userRepo.List(c.Context(), limit, offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"users":  users,
		"limit":  limit,
		"offset": offset,
	})
}

// ShowUser handles GET /user/:id/, a profile with its posts, follower and
// followee counts, and whether the viewer currently follows it. A profile
// that does not exist redirects back to the user list rather than erroring.
func (s *Server) ShowUser(c *fiber.Ctx) error {
	viewerID := c.Locals("userID").(uint)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Redirect("/users/", fiber.StatusFound)
	}

	user, err := s.userRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		if models.IsNotFound(err) {
			return c.Redirect("/users/", fiber.StatusFound)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	posts, err := s.postRepo.GetByAuthor(c.Context(), user.ID, defaultPageSize, 0)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	stats, err := s.follows.Stats(c.Context(), user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	following, err := s.follows.IsFollowing(c.Context(), viewerID, user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"user":      user,
		"posts":     posts,
		"followers": stats.Followers,
		"followees": stats.Followees,
		"following": following,
		// Viewing your own profile offers no follow button.
		"followable": viewerID != user.ID,
	})
}

// EditProfile handles GET /update_profile/, the current values for the
// profile form.
func (s *Server) EditProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"username":   user.Username,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"email":      user.Email,
		"bio":        user.Bio,
	})
}

// UpdateProfile handles POST /update_profile/. The username is fixed for
// life; everything else on the profile can change here. Success lands back
// on the feed.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req service.ProfileInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if _, err := s.accounts.UpdateProfile(c.Context(), userID, req); err != nil {
		var verrs *models.ValidationErrors
		if errors.As(err, &verrs) {
			return models.RespondWithError(c, fiber.StatusBadRequest, verrs)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Redirect(s.config.LoggedInURL, fiber.StatusFound)
}

// EditPassword handles GET /update_password/, the password form context.
func (s *Server) EditPassword(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Change your password",
		"fields":  []string{"password", "new_password", "password_confirmation"},
	})
}

// UpdatePassword handles POST /update_password/. The current password must
// be supplied and correct; a successful change lands back on the feed and
// leaves the current session logged in.
func (s *Server) UpdatePassword(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Password             string `json:"password" form:"password"`
		NewPassword          string `json:"new_password" form:"new_password"`
		PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	err := s.accounts.ChangePassword(c.Context(), userID, req.Password, req.NewPassword, req.PasswordConfirmation)
	if err != nil {
		var verrs *models.ValidationErrors
		if errors.As(err, &verrs) {
			return models.RespondWithError(c, fiber.StatusBadRequest, verrs)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Redirect(s.config.LoggedInURL, fiber.StatusFound)
}
