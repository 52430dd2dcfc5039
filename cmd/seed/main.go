package main

import (
	"log"
	"os"

	"civicvoice-be/internal/model"
	"civicvoice-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type seedUser struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

var seedUsers = []seedUser{
	{Email: "admin@civicvoice.local", Password: "admin12345", FirstName: "Portal", LastName: "Admin", Role: "ADMIN"},
	{Email: "jane@example.com", Password: "civilian123", FirstName: "Jane", LastName: "Doe", Role: "CIVILIAN"},
	{Email: "arif@example.com", Password: "civilian123", FirstName: "Arif", LastName: "Rahman", Role: "CIVILIAN"},
}

type seedFeedback struct {
	OwnerEmail  string
	Title       string
	Description string
	Category    string
	Status      string
	Urgency     string
	Location    string
	Upvotes     int
}

var seedFeedbacks = []seedFeedback{
	{
		OwnerEmail:  "jane@example.com",
		Title:       "Broken streetlight on Elm Street",
		Description: "The streetlight near the crossing has been out for two weeks, the corner is dangerous at night.",
		Category:    "Infrastructure",
		Status:      "PENDING",
		Urgency:     "High",
		Location:    "Elm Street & 4th Ave",
		Upvotes:     12,
	},
	{
		OwnerEmail:  "jane@example.com",
		Title:       "Overflowing trash bins at Riverside Park",
		Description: "Bins have not been emptied since last weekend and the area attracts pests.",
		Category:    "Sanitation",
		Status:      "IN PROGRESS",
		Urgency:     "Medium",
		Location:    "Riverside Park",
		Upvotes:     7,
	},
	{
		OwnerEmail:  "arif@example.com",
		Title:       "Pothole on Main Street",
		Description: "Deep pothole right before the bus stop, already caused two flat tires.",
		Category:    "Roads",
		Status:      "RESOLVED",
		Urgency:     "High",
		Location:    "Main Street, block 200",
		Upvotes:     23,
	},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding portal accounts...")
	owners := seedAccounts(db)

	color.Cyan("Seeding sample feedback...")
	seedSampleFeedback(db, owners)

	color.Green("Seeding completed!")
}

func seedAccounts(db *gorm.DB) map[string]model.User {
	owners := make(map[string]model.User)

	for _, u := range seedUsers {
		var existing model.User
		if err := db.Where("email = ?", u.Email).First(&existing).Error; err == nil {
			color.Yellow("Account '%s' already exists, skipping...", u.Email)
			owners[u.Email] = existing
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Error hashing password for %s: %v", u.Email, err)
		}
		hashStr := string(hash)

		user := model.User{
			Email:        u.Email,
			PasswordHash: &hashStr,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			Role:         u.Role,
			Status:       "active",
		}
		if err := db.Create(&user).Error; err != nil {
			color.Red("Error creating account '%s': %v", u.Email, err)
			continue
		}
		owners[u.Email] = user
		color.Green("Created %s account: %s", u.Role, u.Email)
	}

	return owners
}

func seedSampleFeedback(db *gorm.DB, owners map[string]model.User) {
	for _, fb := range seedFeedbacks {
		owner, ok := owners[fb.OwnerEmail]
		if !ok {
			color.Red("No owner account for feedback '%s', skipping", fb.Title)
			continue
		}

		var existing model.Feedback
		if err := db.Where("title = ? AND user_id = ?", fb.Title, owner.Id).First(&existing).Error; err == nil {
			color.Yellow("Feedback '%s' already exists, skipping...", fb.Title)
			continue
		}

		feedback := model.Feedback{
			UserId:      owner.Id,
			Title:       fb.Title,
			Description: fb.Description,
			Category:    fb.Category,
			Status:      fb.Status,
			Urgency:     fb.Urgency,
			Location:    fb.Location,
			Upvotes:     fb.Upvotes,
			Attachments: datatypes.JSON([]byte(`[]`)),
		}
		if err := db.Create(&feedback).Error; err != nil {
			color.Red("Error creating feedback '%s': %v", fb.Title, err)
			continue
		}
		color.Green("Created feedback: %s (%s)", fb.Title, fb.Status)
	}
}
