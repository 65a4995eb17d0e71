package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/Talha-Ak/clucker/internal/middleware"
	"github.com/Talha-Ak/clucker/internal/models"
	"github.com/Talha-Ak/clucker/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Home handles GET /, the landing page shown to visitors. A logged-in user
// never reaches it; the anonymous gate redirects them to their feed first.
func (s *Server) Home(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Welcome to Clucker",
		"log_in":  s.config.LoginURL,
		"sign_up": "/sign_up/",
	})
}

// LogInPrompt handles GET /log_in/, the page the authenticated gate
// redirects anonymous visitors to. It echoes back the "next" target so the
// client can round-trip it through the log-in form.
func (s *Server) LogInPrompt(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Log in to continue",
		"next":    c.Query("next"),
	})
}

// SignUpPrompt handles GET /sign_up/, the registration form context.
func (s *Server) SignUpPrompt(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Create an account",
		"fields":  []string{"username", "first_name", "last_name", "email", "bio", "password", "password_confirmation"},
	})
}

// SignUp handles POST /sign_up/. A valid submission creates the account,
// logs the new user in and redirects to the feed; a failed one returns
// every field error at once so the form can be re-rendered.
func (s *Server) SignUp(c *fiber.Ctx) error {
	var req service.SignUpInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.accounts.SignUp(c.Context(), req)
	if err != nil {
		var verrs *models.ValidationErrors
		if errors.As(err, &verrs) {
			return models.RespondWithError(c, fiber.StatusBadRequest, verrs)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	s.setSessionCookie(c, token)

	return c.Redirect(s.config.LoggedInURL, fiber.StatusFound)
}

// LogIn handles POST /log_in/. On success the session cookie is set and the
// user is redirected to the sanitized "next" target (or the feed). Unknown
// usernames, wrong passwords and deactivated accounts all produce the same
// 401 response.
func (s *Server) LogIn(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
		Next     string `json:"next" form:"next"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if next := c.Query("next"); next != "" && req.Next == "" {
		req.Next = next
	}

	user, err := s.credentials.Verify(c.Context(), req.Username, req.Password)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		middleware.LoginAttempts.WithLabelValues("failure").Inc()
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("The credentials provided were invalid"))
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	s.setSessionCookie(c, token)
	middleware.LoginAttempts.WithLabelValues("success").Inc()

	return c.Redirect(s.sanitizeNext(req.Next), fiber.StatusFound)
}

// LogOut handles POST /log_out/. The session's token ID is revoked for the
// remainder of its lifetime, the cookie is cleared, and the visitor lands
// back on the home page.
func (s *Server) LogOut(c *fiber.Ctx) error {
	if jti, ttl, err := s.sessionRevocation(c); err == nil && jti != "" {
		if err := s.sessions.Revoke(c.Context(), jti, ttl); err != nil {
			middleware.Logger.WarnContext(c.UserContext(), "session revocation failed",
				"error", err.Error())
		}
	}
	s.clearSessionCookie(c)

	return c.Redirect(s.config.HomeURL, fiber.StatusFound)
}

// sessionRevocation re-parses the (already gate-validated) session token and
// returns its ID plus its remaining lifetime, which bounds how long the
// revocation entry needs to live.
func (s *Server) sessionRevocation(c *fiber.Ctx) (string, time.Duration, error) {
	tokenString := s.tokenFromRequest(c)
	if tokenString == "" {
		return "", 0, fmt.Errorf("no session token on request")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", 0, fmt.Errorf("invalid session token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", 0, fmt.Errorf("unexpected claims type")
	}
	jti, _ := claims["jti"].(string)

	ttl := time.Duration(0)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		ttl = time.Until(exp.Time)
	}
	return jti, ttl, nil
}
