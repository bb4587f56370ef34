package migration

import (
	"Aahar-Backend/entities"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";").Error; err != nil {
		return fmt.Errorf("create uuid-ossp extension: %w", err)
	}

	models := []struct {
		name  string
		model any
	}{
		{"user", &entities.User{}},
		{"donor profile", &entities.DonorProfile{}},
		{"volunteer profile", &entities.VolunteerProfile{}},
		{"donation", &entities.Donation{}},
		{"tracking entry", &entities.TrackingEntry{}},
		{"reward event", &entities.RewardEvent{}},
		{"tax certificate", &entities.TaxCertificate{}},
		{"review", &entities.Review{}},
		{"event", &entities.Event{}},
		{"event participant", &entities.EventParticipant{}},
		{"report", &entities.Report{}},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("migrate %s table: %w", m.name, err)
		}
	}

	log.Info("Database migration complete")
	return nil
}
