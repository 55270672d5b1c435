// Command main runs the demo-data seeder for Ripple.
package main

import (
	"context"
	"flag"
	"log"

	"ripple/internal/config"
	"ripple/internal/seed"
	"ripple/internal/store"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numPosts := flag.Int("posts", 100, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Start from an empty snapshot before seeding")
	flag.Parse()

	log.Println("🌱 Snapshot Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d posts, clean=%v\n", *numUsers, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var st *store.Store
	if *shouldClean {
		st = store.New(store.NewFileWriter(cfg.SnapshotPath))
	} else {
		st, err = store.Open(cfg.SnapshotPath)
		if err != nil {
			log.Fatalf("Failed to open snapshot: %v", err)
		}
	}

	s := seed.NewSeeder(st, seed.Options{Users: *numUsers, Posts: *numPosts})
	users, err := s.Run(context.Background())
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	st.Touch(context.Background())
	if err := st.LastPersistError(); err != nil {
		log.Fatalf("❌ Snapshot write failed: %v", err)
	}

	log.Printf("✅ Seeded %d users into %s\n", len(users), cfg.SnapshotPath)
}
