// Command main runs the database seeder for Clucker.
package main

import (
	"flag"
	"log"

	"github.com/Talha-Ak/clucker/internal/config"
	"github.com/Talha-Ak/clucker/internal/database"
	"github.com/Talha-Ak/clucker/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 100, "Number of users to create")
	postsPerUser := flag.Int("posts", 10, "Average number of posts per user")
	followRatio := flag.Float64("follow-ratio", 0.1, "Probability of a follow edge per user pair")
	shouldClean := flag.Bool("clean", false, "Remove existing seeded data before seeding")
	unseedOnly := flag.Bool("unseed", false, "Only remove seeded data, then exit")
	preset := flag.String("preset", "", "Path to a YAML preset file (overrides other flags)")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *unseedOnly {
		if err := seed.Unseed(db); err != nil {
			log.Fatalf("Unseeding failed: %v", err)
		}
		log.Println("Unseeding complete.")
		return
	}

	opts := seed.Options{
		NumUsers:     *numUsers,
		PostsPerUser: *postsPerUser,
		FollowRatio:  *followRatio,
		ShouldClean:  *shouldClean,
	}
	if *preset != "" {
		opts, err = seed.LoadPreset(*preset)
		if err != nil {
			log.Fatalf("Failed to load preset: %v", err)
		}
		log.Printf("Applying preset %s (ignoring other flags)", *preset)
	}

	if err := seed.Seed(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
