package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Talha-Ak/clucker/internal/cache"
	"github.com/Talha-Ak/clucker/internal/config"
	"github.com/Talha-Ak/clucker/internal/models"
	"github.com/Talha-Ak/clucker/internal/repository"
	"github.com/Talha-Ak/clucker/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:   "test_secret",
		Port:        "0",
		Env:         "test",
		LoginURL:    "/log_in/",
		LoggedInURL: "/feed/",
		HomeURL:     "/",
	}
}

// newTestServer builds a Server over a fresh in-memory database and returns
// it with a Fiber app that has the full route table mounted. The Prometheus
// HTTP middleware is left out so repeated setups don't fight over collector
// registration.
func newTestServer(t *testing.T, redisClient *redis.Client) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Follow{}))

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	followRepo := repository.NewFollowRepository(db)

	s := &Server{
		config:     testConfig(),
		db:         db,
		redis:      redisClient,
		sessions:   cache.NewSessionStore(redisClient),
		userRepo:   userRepo,
		postRepo:   postRepo,
		followRepo: followRepo,
	}
	s.credentials = service.NewCredentialService(userRepo)
	s.accounts = service.NewAccountService(userRepo, s.credentials)
	s.follows = service.NewFollowService(followRepo, userRepo)
	s.feeds = service.NewFeedService(postRepo)

	app := fiber.New()
	s.SetupRoutes(app)

	return s, app
}

// createTestUser inserts a user directly into the store with the given
// handle. Every test user shares the password "Password123".
func createTestUser(t *testing.T, s *Server, handle string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.MinCost)
	require.NoError(t, err)

	u := &models.User{
		Username:  "@" + handle,
		FirstName: "Test",
		LastName:  "User",
		Email:     handle + "@example.org",
		Password:  string(hash),
		IsActive:  true,
	}
	require.NoError(t, s.db.Create(u).Error)
	return u
}

// logIn performs the log-in request for a test user and returns the session
// cookie value.
func logIn(t *testing.T, app *fiber.App, username string) string {
	t.Helper()

	resp := postForm(t, app, "/log_in/", url.Values{
		"username": {username},
		"password": {"Password123"},
	}, "")
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == sessionCookieName {
			return c.Value
		}
	}
	t.Fatalf("log in for %s did not set a session cookie", username)
	return ""
}

// postForm sends a form-encoded POST through the app, optionally with a
// session cookie.
func postForm(t *testing.T, app *fiber.App, path string, form url.Values, session string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if session != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: session})
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

// get sends a GET through the app, optionally with a session cookie.
func get(t *testing.T, app *fiber.App, path, session string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if session != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: session})
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}
