package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"slotbook/config"
	"slotbook/database"
	bookingRepo "slotbook/database/repository/booking"
	providerRepo "slotbook/database/repository/provider"
	"slotbook/models"
	"slotbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Seeds demo providers with weekly availability, offerings and a few
// bookings, half of them written with the legacy string providerId.
func main() {
	count := flag.Int("providers", 5, "number of providers to create")
	reset := flag.Bool("reset", false, "drop existing providers and bookings first")
	flag.Parse()

	config.LoadConfig()
	database.InitDB()
	db := database.Database()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *reset {
		for _, name := range []string{"providers", "bookings"} {
			if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
				log.Fatalf("Failed to clear %s collection: %v", name, err)
			}
		}
	}

	provRepo := providerRepo.NewMongoProviderRepo(db)
	bookRepo := bookingRepo.NewMongoBookingRepo(db)
	if err := provRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal(err)
	}
	if err := bookRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal(err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	durations := []int{15, 30, 45, 60, 90}
	loc := config.Location()

	for i := 1; i <= *count; i++ {
		var weekly []models.WeeklyAvailabilityEntry
		for day := 1; day <= 5; day++ {
			weekly = append(weekly,
				models.WeeklyAvailabilityEntry{DayOfWeek: day, StartTime: "09:00", EndTime: "12:00"},
				models.WeeklyAvailabilityEntry{DayOfWeek: day, StartTime: "13:00", EndTime: "17:00"},
			)
		}
		session := durations[rng.Intn(len(durations))]

		p := &models.Provider{
			Name:               fmt.Sprintf("Demo Provider %d", i),
			Email:              fmt.Sprintf("provider_%d_%s@example.com", i, uuid.NewString()[:8]),
			WeeklyAvailability: weekly,
			BlockedRanges:      []models.BlockedRange{},
			Offerings: []models.Offering{
				{ID: uuid.NewString(), Name: "Standard session", DurationMinutes: session, BreakMinutes: rng.Intn(4) * 5},
			},
		}
		if err := provRepo.Create(ctx, p); err != nil {
			log.Fatalf("Failed to create provider: %v", err)
		}

		// Next weekday at 09:00 in the provider timezone.
		day := time.Now().In(loc).AddDate(0, 0, 1)
		for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, 1)
		}
		date := day.Format("2006-01-02")
		end := fmt.Sprintf("%02d:%02d", 9+session/60, session%60)

		now := time.Now().UTC()
		if i%2 == 0 {
			// legacy document shape: providerId as hex string; the server rewrites these on startup
			_, err := db.Collection("bookings").InsertOne(ctx, bson.M{
				"_id":               primitive.NewObjectID(),
				"providerId":        p.ID.String(),
				"clientName":        "Legacy Client",
				"clientEmail":       "legacy@example.com",
				"date":              date,
				"startTime":         "09:00",
				"endTime":           end,
				"status":            models.StatusConfirmed,
				"cancellationToken": uuid.NewString(),
				"createdAt":         now,
				"updatedAt":         now,
			})
			if err != nil {
				log.Fatalf("Failed to insert legacy booking: %v", err)
			}
		} else {
			b := &models.Booking{
				ProviderID:        p.ID,
				OfferingID:        p.Offerings[0].ID,
				ClientName:        "Seed Client",
				ClientEmail:       "seed@example.com",
				Date:              date,
				StartTime:         "09:00",
				EndTime:           end,
				Status:            models.StatusConfirmed,
				CancellationToken: uuid.NewString(),
				CreatedAt:         now,
				UpdatedAt:         now,
			}
			if err := bookRepo.Create(ctx, b); err != nil {
				log.Fatalf("Failed to insert booking: %v", err)
			}
		}

		token, err := utils.GenerateToken(p.ID.String(), p.Email, 30*24*time.Hour)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s  %s  session=%dm  token=%s\n", p.ID, p.Name, session, token)
	}
}
