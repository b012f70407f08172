package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gymapi/internal/authz"
	"gymapi/internal/config"
	"gymapi/internal/db"
	"gymapi/internal/model"
	"gymapi/internal/repository"
)

// machineFixtures is the default equipment list for a fresh installation.
var machineFixtures = []model.Machine{
	{Code: "M0001", Name: "Treadmill", Description: "Cardio treadmill with incline"},
	{Code: "M0002", Name: "Rowing Machine", Description: "Concept-style indoor rower"},
	{Code: "M0003", Name: "Leg Press", Description: "45-degree plate-loaded leg press"},
	{Code: "M0004", Name: "Lat Pulldown", Description: "Cable lat pulldown station"},
	{Code: "M0005", Name: "Bench Press", Description: "Olympic flat bench with rack"},
	{Code: "M0006", Name: "Cable Crossover", Description: "Dual adjustable pulley station"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Machine{}, &model.Plan{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	machineRepo := repository.NewMachineRepository(gormDB)

	if err := seedAdmin(ctx, userRepo, cfg); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	created, updated, err := seedMachines(ctx, machineRepo, machineFixtures)
	if err != nil {
		log.Fatalf("Failed to seed machines: %v", err)
	}

	if os.Getenv("SEED_DEMO") == "true" {
		if err := seedDemoUsers(ctx, userRepo); err != nil {
			log.Fatalf("Failed to seed demo users: %v", err)
		}
		log.Println("Demo trainer and trainee created")
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Machines created: %d", created)
	log.Printf("  - Machines updated: %d", updated)
}

// seedAdmin ensures the configured admin account exists.
func seedAdmin(ctx context.Context, repo repository.UserRepository, cfg *config.Config) error {
	existing, err := repo.FindByUsername(ctx, cfg.AdminUsername)
	if err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check admin: %w", err)
	}
	if existing != nil && err == nil {
		log.Printf("Admin %q already exists, skipping", cfg.AdminUsername)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), 10)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := &model.User{
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         authz.RoleAdmin,
		IsActive:     true,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	log.Printf("Admin %q created", cfg.AdminUsername)
	return nil
}

// seedMachines creates or updates the fixture machines, keyed by code.
func seedMachines(ctx context.Context, repo repository.MachineRepository, machines []model.Machine) (created int, updated int, err error) {
	for _, machine := range machines {
		existing, err := repo.FindByCode(ctx, machine.Code)
		if err != nil && err != gorm.ErrRecordNotFound {
			return created, updated, fmt.Errorf("error checking machine %s: %w", machine.Code, err)
		}

		if existing != nil && err == nil {
			existing.Name = machine.Name
			existing.Description = machine.Description
			if err := repo.Update(ctx, existing); err != nil {
				return created, updated, fmt.Errorf("error updating machine %s: %w", machine.Code, err)
			}
			updated++
		} else {
			machine.IsActive = true
			if err := repo.Create(ctx, &machine); err != nil {
				return created, updated, fmt.Errorf("error creating machine %s: %w", machine.Code, err)
			}
			created++
		}
	}
	return created, updated, nil
}

// seedDemoUsers creates a demo trainer and trainee for local development.
func seedDemoUsers(ctx context.Context, repo repository.UserRepository) error {
	demo := []model.User{
		{Username: "trainer1", Email: "trainer1@gym.local", FirstName: "Demo", LastName: "Trainer", Role: authz.RoleTrainer},
		{Username: "trainee1", Email: "trainee1@gym.local", FirstName: "Demo", LastName: "Trainee", Role: authz.RoleTrainee},
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), 10)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}
	for _, user := range demo {
		existing, err := repo.FindByUsername(ctx, user.Username)
		if err != nil && err != gorm.ErrRecordNotFound {
			return fmt.Errorf("check user %s: %w", user.Username, err)
		}
		if existing != nil && err == nil {
			continue
		}
		user.PasswordHash = string(hash)
		user.IsActive = true
		if err := repo.Create(ctx, &user); err != nil {
			return fmt.Errorf("create user %s: %w", user.Username, err)
		}
	}
	return nil
}
