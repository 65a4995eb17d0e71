package server

import (
	"errors"

	"github.com/Talha-Ak/clucker/internal/middleware"
	"github.com/Talha-Ak/clucker/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Feed handles GET /feed/: the viewer's own posts interleaved with their
// followees', newest first. The feed is recomputed on every request.
func (s *Server) Feed(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	limit := c.QueryInt("limit", defaultPageSize)
	offset := c.QueryInt("offset", 0)
	if limit < 1 || limit > 100 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	posts, err := s.feeds.Compose(c.Context(), userID, limit, offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"posts":  posts,
		"limit":  limit,
		"offset": offset,
	})
}

// NewPost handles POST /new_post/. The author is always the logged-in user;
// a valid submission redirects back to the feed where the post now appears.
func (s *Server) NewPost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Text string `json:"text" form:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if _, err := s.feeds.CreatePost(c.Context(), userID, req.Text); err != nil {
		var verrs *models.ValidationErrors
		if errors.As(err, &verrs) {
			return models.RespondWithError(c, fiber.StatusBadRequest, verrs)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	middleware.PostsCreated.Inc()

	return c.Redirect(s.config.LoggedInURL, fiber.StatusFound)
}
