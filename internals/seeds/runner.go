package seeds

import (
	"log"

	"gorm.io/gorm"

	"campusvibe_backend/internals/configs"
	academics "campusvibe_backend/internals/seeds/academics"
	users "campusvibe_backend/internals/seeds/users/auth"
)

// RunAllSeeds creates the admin account from ADMIN_EMAIL/ADMIN_PASSWORD and
// loads the academics file named by SEED_ACADEMICS_FILE when set.
func RunAllSeeds(db *gorm.DB) error {
	//* Admin
	if email := configs.GetEnv("ADMIN_EMAIL"); email != "" {
		if _, err := users.SeedAdmin(db, email, configs.GetEnv("ADMIN_PASSWORD")); err != nil {
			return err
		}
	} else {
		log.Println("⚠️ ADMIN_EMAIL not set, admin seed skipped")
	}

	//* Academics
	if path := configs.GetEnv("SEED_ACADEMICS_FILE"); path != "" {
		if err := academics.SeedAcademicsFromJSON(db, path); err != nil {
			return err
		}
	}
	return nil
}
