package server

import (
	"strconv"

	"github.com/Talha-Ak/clucker/internal/middleware"
	"github.com/Talha-Ak/clucker/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowToggle handles POST /follow_toggle/:id/. Following an unfollowed
// user creates the edge, toggling again removes it; toggling yourself does
// nothing. Either way the visitor lands back on the profile they acted on;
// unless it no longer exists, in which case they land on the user list.
func (s *Server) FollowToggle(c *fiber.Ctx) error {
	followerID := c.Locals("userID").(uint)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Redirect("/users/", fiber.StatusFound)
	}
	followeeID := uint(id)

	if followerID == followeeID {
		middleware.FollowToggles.WithLabelValues("noop").Inc()
		return c.Redirect("/user/"+c.Params("id")+"/", fiber.StatusFound)
	}

	following, err := s.follows.Toggle(c.Context(), followerID, followeeID)
	if err != nil {
		if models.IsNotFound(err) {
			return c.Redirect("/users/", fiber.StatusFound)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if following {
		middleware.FollowToggles.WithLabelValues("followed").Inc()
	} else {
		middleware.FollowToggles.WithLabelValues("unfollowed").Inc()
	}

	return c.Redirect("/user/"+c.Params("id")+"/", fiber.StatusFound)
}
