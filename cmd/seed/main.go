package main

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"traveldesk/internal/config"
	"traveldesk/internal/db"
	"traveldesk/internal/model"
	"traveldesk/internal/repository"
	"traveldesk/internal/service"
)

const seedPassword = "password123"

type seedUser struct {
	name  string
	email string
	role  model.Role
}

var seedUsers = []seedUser{
	{name: "Employee User", email: "employee@example.com", role: model.RoleEmployee},
	{name: "Manager User", email: "manager@example.com", role: model.RoleManager},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewSQLite(cfg.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.TravelRequest{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	requestRepo := repository.NewTravelRequestRepository(gormDB)
	userService := service.NewUserService(userRepo)
	ctx := context.Background()

	employee, err := ensureUsers(ctx, userRepo, userService)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	if err := ensureSampleRequests(ctx, requestRepo, employee); err != nil {
		log.Fatalf("Failed to seed travel requests: %v", err)
	}

	log.Println("Seed completed successfully!")
}

// ensureUsers creates the fixture users if missing and returns the employee,
// who owns the sample requests.
func ensureUsers(ctx context.Context, repo repository.UserRepository, svc service.UserService) (*model.User, error) {
	var employee *model.User
	for _, u := range seedUsers {
		existing, err := repo.FindByEmail(ctx, u.email)
		if err == nil {
			log.Printf("User %s already exists, skipping", u.email)
			if u.role == model.RoleEmployee {
				employee = existing
			}
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}

		created, err := svc.CreateUser(ctx, u.name, u.email, seedPassword, u.role)
		if err != nil {
			return nil, err
		}
		log.Printf("Created user %s (%s)", created.Email, created.Role)
		if u.role == model.RoleEmployee {
			employee = created
		}
	}
	return employee, nil
}

// ensureSampleRequests populates example requests once, so restarts do not
// duplicate data.
func ensureSampleRequests(ctx context.Context, repo repository.TravelRequestRepository, employee *model.User) error {
	existing, err := repo.ListAll(ctx, "")
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Println("Travel requests already exist, skipping population")
		return nil
	}

	samples := []model.TravelRequest{
		{
			RequesterID:   employee.ID,
			Destination:   "Paris, France",
			StartDate:     time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
			EndDate:       time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
			EstimatedCost: decimal.NewFromFloat(2500.00),
			Reason:        "Annual Global Tech Conference",
			Status:        model.StatusPending,
		},
		{
			RequesterID:    employee.ID,
			Destination:    "Tokyo, Japan",
			StartDate:      time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			EndDate:        time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC),
			EstimatedCost:  decimal.NewFromFloat(3200.50),
			Reason:         "Meeting with Asian Pacific partners",
			Status:         model.StatusApproved,
			ManagerComment: "Budget approved for Q3.",
		},
		{
			RequesterID:    employee.ID,
			Destination:    "Austin, Texas",
			StartDate:      time.Date(2024, 11, 12, 0, 0, 0, 0, time.UTC),
			EndDate:        time.Date(2024, 11, 14, 0, 0, 0, 0, time.UTC),
			EstimatedCost:  decimal.NewFromFloat(600.00),
			Reason:         "Domestic Sales Training",
			Status:         model.StatusDenied,
			ManagerComment: "Travel freeze in effect for domestic trips.",
		},
	}

	for i := range samples {
		if err := repo.Create(ctx, &samples[i]); err != nil {
			return err
		}
	}
	log.Printf("Created %d sample travel requests", len(samples))
	return nil
}
