package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/sahilchouksey/online-lms/config"
	"github.com/sahilchouksey/online-lms/database"
	"github.com/sahilchouksey/online-lms/utils/logger"
)

func main() {
	if err := config.LoadENV(); err != nil {
		log.Fatalf("Failed to load .env: %v", err)
	}

	cfg, err := config.Get()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	store, err := database.StartGORM(cfg, zl)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	separator := strings.Repeat("=", 60)
	fmt.Println(separator)
	fmt.Println("Online LMS - Database Seeding")
	fmt.Println(separator)

	if err := database.NewSeeder(store.GetDB(), cfg.Seed, zl).SeedAll(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	fmt.Println(separator)
	fmt.Println("Seeding completed.")
	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		fmt.Println("ADMIN_EMAIL or ADMIN_PASSWORD not set, admin user skipped.")
	}
	fmt.Println(separator)
}
