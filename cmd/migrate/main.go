package main

import (
	"log"

	"os-help-bot/internal/config"
	"os-help-bot/internal/model"
	"os-help-bot/pkg/database"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, true)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Setting up extensions...")
	// gen_random_uuid() default on support_messages.id
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
	}

	log.Println("Step 2: Running AutoMigrate for transcript tables...")
	if err := db.AutoMigrate(&model.SupportMessage{}); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Step 3: Creating indexes and views...")
	postMigrationSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_support_messages_user_created
		 ON support_messages (user_id, created_at DESC);`,

		// One row per resolved turn, bot side, for reporting
		`CREATE OR REPLACE VIEW support_turn_paths AS
		 SELECT turn_id, user_id, path, created_at
		 FROM support_messages
		 WHERE role = 'bot' AND deleted_at IS NULL;`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Transcript migration completed.")
}
