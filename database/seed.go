package database

import (
	"fmt"

	"github.com/sahilchouksey/online-lms/config"
	"github.com/sahilchouksey/online-lms/model"
	"github.com/sahilchouksey/online-lms/utils/auth"
	"github.com/sahilchouksey/online-lms/utils/logger"
	"gorm.io/gorm"
)

// DefaultCategories are created on first seed
var DefaultCategories = []model.Category{
	{Name: "Programming", Description: "Software development and computer science"},
	{Name: "Data Science", Description: "Statistics, machine learning and analytics"},
	{Name: "Design", Description: "UI, UX and graphic design"},
	{Name: "Business", Description: "Management, marketing and finance"},
	{Name: "Languages", Description: "Spoken and written languages"},
}

// Seeder handles database seeding operations
type Seeder struct {
	db  *gorm.DB
	cfg config.SeedConfig
	log *logger.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg config.SeedConfig, log *logger.Logger) *Seeder {
	if log == nil {
		log = logger.Nop()
	}
	return &Seeder{db: db, cfg: cfg, log: log}
}

// SeedAll runs all seed functions. Safe to run repeatedly.
func (s *Seeder) SeedAll() error {
	s.log.Info("starting database seeding")

	if err := s.SeedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	s.log.Info("database seeding completed")
	return nil
}

// SeedCategories creates any missing default category
func (s *Seeder) SeedCategories() error {
	created := 0
	for _, c := range DefaultCategories {
		cat := c
		res := s.db.Where(model.Category{Name: cat.Name}).FirstOrCreate(&cat)
		if res.Error != nil {
			return res.Error
		}
		created += int(res.RowsAffected)
	}
	s.log.Info("categories seeded", "created", created)
	return nil
}

// SeedAdminUser creates the default admin user from ADMIN_EMAIL / ADMIN_PASSWORD
func (s *Seeder) SeedAdminUser() error {
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		s.log.Info("admin user already exists, skipping")
		return nil
	}

	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		s.log.Warn("ADMIN_EMAIL and ADMIN_PASSWORD not set, skipping admin user creation")
		return nil
	}

	passwordHash, err := auth.HashPassword(s.cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.User{
		FirstName:    "System",
		LastName:     "Administrator",
		Email:        s.cfg.AdminEmail,
		Username:     "admin",
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	s.log.Info("created admin user", "email", admin.Email)
	return nil
}
