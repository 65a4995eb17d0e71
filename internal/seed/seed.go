// Package seed provides database seeding utilities for development and demos.
// Seeded accounts carry the reserved "@seed-" username prefix so they can be
// removed again without touching organically created data.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/Talha-Ak/clucker/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// seedPrefix marks usernames created by the seeder. Unseed deletes exactly
// the users whose handle starts with it.
const seedPrefix = "@seed-"

// defaultPassword is the shared password for every seeded account.
const defaultPassword = "Password123"

// Options configuration for the seeder
type Options struct {
	NumUsers     int
	PostsPerUser int
	// FollowRatio is the probability that any ordered pair of seeded users
	// gets a follow edge.
	FollowRatio float64
	ShouldClean bool
}

// DefaultOptions returns the seeding defaults used by the CLI.
func DefaultOptions() Options {
	return Options{
		NumUsers:     100,
		PostsPerUser: 10,
		FollowRatio:  0.1,
	}
}

// fixtureUsers are well-known accounts created on every run, mirroring the
// demo walkthrough: johndoe follows janedoe, and petrapickles follows no one.
var fixtureUsers = []models.User{
	{Username: seedPrefix + "johndoe", FirstName: "John", LastName: "Doe", Email: "john.doe@example.org"},
	{Username: seedPrefix + "janedoe", FirstName: "Jane", LastName: "Doe", Email: "jane.doe@example.org"},
	{Username: seedPrefix + "petrapickles", FirstName: "Petra", LastName: "Pickles", Email: "petra.pickles@example.org"},
}

// Seed populates the database with demo users, a follow mesh and posts.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding %d users with ~%d posts each...", opts.NumUsers, opts.PostsPerUser)
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := Unseed(db); err != nil {
			return fmt.Errorf("failed to clean existing seed data: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	users, err := createUsers(db, opts.NumUsers, string(hash))
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	edges, err := createFollowMesh(db, users, opts.FollowRatio)
	if err != nil {
		return fmt.Errorf("failed to create follow mesh: %w", err)
	}
	log.Printf("created %d follow edges", edges)

	posts, err := createPosts(db, users, opts.PostsPerUser)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", posts)

	log.Printf("Seeding complete. All seeded accounts log in with password %q.", defaultPassword)
	return nil
}

// Unseed removes every seeded user; their posts and follow edges go with
// them via cascade. Organic accounts are untouched.
func Unseed(db *gorm.DB) error {
	var users []models.User
	if err := db.Where("username LIKE ?", seedPrefix+"%").Find(&users).Error; err != nil {
		return fmt.Errorf("failed to list seeded users: %w", err)
	}
	if len(users) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	// SQLite in the test profile does not always enforce cascades, so the
	// dependent rows are removed explicitly first.
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id IN ?", ids).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id IN ? OR followee_id IN ?", ids, ids).Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", ids).Delete(&models.User{}).Error; err != nil {
			return err
		}
		log.Printf("removed %d seeded users", len(users))
		return nil
	})
}

func createUsers(db *gorm.DB, count int, passwordHash string) ([]models.User, error) {
	users := make([]models.User, 0, count+len(fixtureUsers))

	for _, fixture := range fixtureUsers {
		u := fixture
		u.Bio = gofakeit.Sentence(12)
		u.Password = passwordHash
		u.IsActive = true
		if err := upsertUser(db, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	for i := len(users); i < count; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		u := models.User{
			Username:  seedUsername(first, last, i),
			FirstName: first,
			LastName:  last,
			Email:     fmt.Sprintf("%s.%s.%d@example.org", strings.ToLower(first), strings.ToLower(last), i),
			Bio:       gofakeit.Sentence(12),
			Password:  passwordHash,
			IsActive:  true,
		}
		if err := db.Create(&u).Error; err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, nil
}

// seedUsername builds a prefixed handle that stays inside the 30 char limit.
func seedUsername(first, last string, n int) string {
	handle := strings.ToLower(first + last)
	suffix := fmt.Sprintf("%d", n)
	max := 30 - len(seedPrefix) - len(suffix)
	if len(handle) > max {
		handle = handle[:max]
	}
	return seedPrefix + handle + suffix
}

func upsertUser(db *gorm.DB, u *models.User) error {
	var existing models.User
	err := db.Where("username = ?", u.Username).First(&existing).Error
	if err == nil {
		*u = existing
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return db.Create(u).Error
}

func createFollowMesh(db *gorm.DB, users []models.User, ratio float64) (int, error) {
	if ratio <= 0 {
		ratio = 0.1
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	edges := make([]models.Follow, 0)
	for _, follower := range users {
		for _, followee := range users {
			if follower.ID == followee.ID {
				continue
			}
			// The demo walkthrough relies on johndoe following janedoe.
			demo := follower.Username == seedPrefix+"johndoe" && followee.Username == seedPrefix+"janedoe"
			if demo || r.Float64() < ratio {
				edges = append(edges, models.Follow{FollowerID: follower.ID, FolloweeID: followee.ID})
			}
		}
	}

	if len(edges) == 0 {
		return 0, nil
	}
	if err := db.Create(&edges).Error; err != nil {
		return 0, err
	}
	return len(edges), nil
}

func createPosts(db *gorm.DB, users []models.User, perUser int) (int, error) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	total := 0

	for _, u := range users {
		n := r.Intn(perUser*2 + 1) // 0..2*perUser, averaging perUser
		posts := make([]models.Post, 0, n)
		for i := 0; i < n; i++ {
			text := gofakeit.Sentence(r.Intn(20) + 3)
			if len(text) > models.MaxPostLength {
				text = text[:models.MaxPostLength]
			}
			// Spread timestamps back over 90 days so feeds interleave.
			age := time.Duration(r.Intn(90*24))*time.Hour + time.Duration(r.Intn(60))*time.Minute
			posts = append(posts, models.Post{
				AuthorID:  u.ID,
				Text:      text,
				CreatedAt: time.Now().Add(-age),
			})
		}
		if len(posts) == 0 {
			continue
		}
		if err := db.Create(&posts).Error; err != nil {
			return total, err
		}
		total += len(posts)
	}

	return total, nil
}
