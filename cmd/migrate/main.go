// Standalone migration runner for environments where the API binary should
// not migrate on startup.
package main

import (
	"os"

	"clinical-office-api/config"
	"clinical-office-api/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
)

func main() {
	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	switch direction {
	case "up":
		if err := database.RunMigrations(db); err != nil {
			logrus.Fatalf("Migration failed: %v", err)
		}
		logrus.Info("Migrations applied")
	case "down":
		if err := database.RollbackMigration(db); err != nil {
			logrus.Fatalf("Rollback failed: %v", err)
		}
		logrus.Info("Last migration rolled back")
	default:
		logrus.Fatalf("Unknown direction %q, use up or down", direction)
	}
}
