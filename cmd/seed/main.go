package main

import (
	"database/sql"
	"log"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/zagroshq/cmms-api/config"
	"github.com/zagroshq/cmms-api/pkg/helpers"
)

// seed creates a development admin account and a small demo dataset.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	hash, err := helpers.HashPassword("admin12345")
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var adminID string
	err = db.QueryRow(`
		INSERT INTO users (id, email, password_hash, first_name, last_name, roles)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE SET first_name = EXCLUDED.first_name
		RETURNING id
	`, uuid.NewString(), "admin@example.com", hash, "Admin", "User", `["user","admin"]`).Scan(&adminID)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	log.Printf("admin user: admin@example.com (id=%s)", adminID)

	var categoryID string
	err = db.QueryRow(`
		INSERT INTO asset_categories (id, name, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING
		RETURNING id
	`, uuid.NewString(), "HVAC", "Heating, ventilation and air conditioning").Scan(&categoryID)
	if err != nil {
		log.Fatalf("failed to seed category: %v", err)
	}

	var locationID string
	err = db.QueryRow(`
		INSERT INTO locations (id, name, address, type)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
		RETURNING id
	`, uuid.NewString(), "Plant 1", "1 Factory Road", "site").Scan(&locationID)
	if err != nil {
		log.Fatalf("failed to seed location: %v", err)
	}

	demoAssets := []struct {
		code string
		name string
	}{
		{"AHU-001", "Air Handling Unit 1"},
		{"CHLR-001", "Chiller 1"},
		{"PUMP-001", "Condenser Water Pump 1"},
	}
	for _, a := range demoAssets {
		_, err = db.Exec(`
			INSERT INTO assets (id, code, name, category_id, location_id, status, criticality)
			VALUES ($1, $2, $3, $4, $5, 'operational', 3)
			ON CONFLICT (code) DO NOTHING
		`, uuid.NewString(), a.code, a.name, categoryID, locationID)
		if err != nil {
			log.Fatalf("failed to seed asset %s: %v", a.code, err)
		}
	}

	log.Println("seed complete")
}
