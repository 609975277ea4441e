package main

import (
	"log"
	"os"

	"marknote-be/internal/model"
	"marknote-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// searchVectors are generated columns backing the free-text filter. The
// 'simple' configuration matches the query side.
var searchVectors = map[string]string{
	"notes":     `to_tsvector('simple', coalesce(title, '') || ' ' || coalesce(content, ''))`,
	"bookmarks": `to_tsvector('simple', coalesce(title, '') || ' ' || coalesce(description, '') || ' ' || coalesce(url, ''))`,
}

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn, false)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("Starting GORM Migration...")

	// 3. Pre-Migration: Extensions
	color.Yellow("Step 1: Setting up Extensions...")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		color.Red("Warn: Failed to create pgcrypto: %v. Continuing...", err)
	}

	// Widening a varchar notes.title needs the generated column out of the
	// way; step 3 recreates it.
	var titleType string
	db.Raw(`SELECT data_type FROM information_schema.columns WHERE table_name = 'notes' AND column_name = 'title'`).Scan(&titleType)
	if titleType == "character varying" {
		if err := db.Exec(`ALTER TABLE notes DROP COLUMN IF EXISTS search_vector;`).Error; err != nil {
			color.Red("Warn: Failed to drop notes.search_vector: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate
	color.Yellow("Step 2: Running AutoMigrate...")
	if err := db.AutoMigrate(&model.Note{}, &model.Bookmark{}); err != nil {
		color.Red("Error: AutoMigrate failed: %v", err)
		os.Exit(1)
	}

	// 5. Post-Migration: search vectors and GIN indexes
	color.Yellow("Step 3: Creating search columns and indexes...")

	var postMigrationSQL []string
	for _, table := range []string{"notes", "bookmarks"} {
		postMigrationSQL = append(postMigrationSQL,
			`ALTER TABLE `+table+` ADD COLUMN IF NOT EXISTS search_vector tsvector GENERATED ALWAYS AS (`+searchVectors[table]+`) STORED;`,
			`CREATE INDEX IF NOT EXISTS idx_`+table+`_search_vector ON `+table+` USING GIN (search_vector);`,
			`CREATE INDEX IF NOT EXISTS idx_`+table+`_tags ON `+table+` USING GIN (tags);`,
			`CREATE INDEX IF NOT EXISTS idx_`+table+`_user_created ON `+table+` (user_id, created_at DESC);`,
		)
	}

	failed := 0
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			failed++
			color.Red("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	if failed > 0 {
		color.Yellow("Migration finished with %d warnings.", failed)
		return
	}
	color.Green("✅ Success: Database migration completed successfully via GORM.")
}
