// Command main runs the database seeder for HireHub.
package main

import (
	"flag"
	"log"

	"hirehub/internal/config"
	"hirehub/internal/database"
	"hirehub/internal/seed"
)

func main() {
	// Parse command line flags
	numEmployers := flag.Int("employers", 5, "Number of employer accounts to create")
	numSeekers := flag.Int("seekers", 20, "Number of job seeker accounts to create")
	numJobs := flag.Int("jobs", 30, "Number of job postings to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	preset := flag.String("preset", "", "Apply a specific seeder preset (e.g., MegaPopulated)")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	if *preset != "" {
		log.Printf("Applying preset: %s (ignoring other flags)\n", *preset)
	} else {
		log.Printf("Target: %d employers, %d seekers, %d postings, clean=%v\n",
			*numEmployers, *numSeekers, *numJobs, *shouldClean)
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	_, err = database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run seeder
	s := seed.NewSeeder(database.DB)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("❌ Cleanup failed: %v", err)
		}
	}

	if err := seed.Categories(database.DB); err != nil {
		log.Fatalf("❌ Built-in category seeding failed: %v", err)
	}
	if err := seed.AdminAccount(database.DB); err != nil {
		log.Fatalf("❌ Admin account seeding failed: %v", err)
	}

	if *preset != "" {
		if err := s.ApplyPreset(*preset); err != nil {
			log.Fatalf("❌ Preset seeding failed: %v", err)
		}
	} else {
		if _, _, err := s.SeedJobBoard(*numEmployers, *numSeekers, *numJobs); err != nil {
			log.Fatalf("❌ Job board seeding failed: %v", err)
		}
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test users have the password: password123")
}
