package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/stemsi/roster/internal/config"
	"github.com/stemsi/roster/internal/database"
	"github.com/stemsi/roster/internal/logger"
	"github.com/stemsi/roster/internal/model"
	"github.com/stemsi/roster/internal/query"
	"github.com/stemsi/roster/internal/repository"
	"github.com/stemsi/roster/internal/service"
	"github.com/stemsi/roster/internal/view"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open the student database")
	}
	defer db.Close()

	if _, err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to create the student table")
	}

	studentService := service.NewStudentService(
		repository.NewStudentRepository(db),
		query.NewBuilder(db.Dialect),
		view.NewTracker(),
		log,
	)

	names := []string{
		"Budi Santoso", "Siti Aminah", "Andi Pratama", "Rina Wati", "Joko Susilo",
		"Ayu Lestari", "Dodi Kusuma", "Eka Putri", "Fahri Hamzah", "Gita Savitri",
		"Hendra Gunawan", "Ika Sari", "Jamal Mirdad", "Kiki Fatmala", "Lukman Hakim",
		"Maya Septiana", "Nanda Pratama", "Oki Setiana", "Putri Dian", "Qori Maharani",
	}

	fmt.Printf("=== Seeding %d Students ===\n", len(names))

	successCount := 0
	for i, name := range names {
		in := model.StudentInput{
			ID:    strconv.Itoa(i + 1),
			Name:  name,
			Grade: strconv.Itoa(55 + (i*17)%46),
		}

		r := studentService.Insert(ctx, in)
		if !r.OK() {
			fmt.Printf("Error creating student %s (ID: %s): %s\n", name, in.ID, r.Message)
			continue
		}
		successCount++
		if (i+1)%5 == 0 {
			fmt.Printf("Created %d students...\n", i+1)
		}
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d students.\n", successCount, len(names))
}
