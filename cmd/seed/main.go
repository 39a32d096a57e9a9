// Command main runs the database seeder for Corkboard.
package main

import (
	"flag"
	"log"

	"corkboard/internal/config"
	"corkboard/internal/database"
	"corkboard/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of accounts to create")
	numPosts := flag.Int("posts", 100, "Number of posts to create")
	anonRatio := flag.Float64("anon", 0.4, "Fraction of posts and comments created anonymously")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	fastHash := flag.Bool("fast", false, "Use a cheap bcrypt cost (development only)")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d posts, anon=%.2f, clean=%v\n", *numUsers, *numPosts, *anonRatio, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, seed.Options{
		NumUsers:       *numUsers,
		NumPosts:       *numPosts,
		AnonymousRatio: *anonRatio,
		FastHash:       *fastHash,
	})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("All done. Every seeded credential is %q.", seed.DemoCredential)
}
