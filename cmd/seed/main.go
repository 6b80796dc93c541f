package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/nasirhussainn/qwork-admin-dashboard/config"
	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/helpers"
)

type seedAccount struct {
	id        int64
	email     string
	firstName string
	lastName  string
	city      string
	state     string
	status    string
	premium   bool
}

type seedPortfolio struct {
	id          int64
	userID      int64
	title       string
	description string
	status      string
	keywords    string
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@qwork.us"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var adminID string
	err = db.QueryRow(`
		INSERT INTO admins (email, password_hash, name, avatar_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, email, hash, "Q-Work Admin", "").Scan(&adminID)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", adminID, email, password)

	accounts := []seedAccount{
		{136, "fatima.shafiee@example.com", "Fatima", "Shafiee", "Houston", "TX", "pending", false},
		{137, "john.doe@example.com", "John", "Doe", "Austin", "TX", "approved", true},
	}
	for _, a := range accounts {
		_, err := db.Exec(`
			INSERT INTO accounts (id, email, is_premium, is_active, status, first_name, last_name, city, state, interests)
			VALUES ($1, $2, $3, true, $4, $5, $6, $7, $8, '[]'::jsonb)
			ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status
		`, a.id, a.email, a.premium, a.status, a.firstName, a.lastName, a.city, a.state)
		if err != nil {
			log.Fatalf("failed to seed account %d: %v", a.id, err)
		}
		fmt.Printf("seeded account: id=%d email=%s status=%s\n", a.id, a.email, a.status)
	}

	portfolios := []seedPortfolio{
		{115, 136, "Residential Electrical Work", "Panel upgrades and rewiring for residential clients.", "pending", `[{"id":1,"keyword":"electrical"}]`},
		{116, 137, "Commercial HVAC Installs", "Rooftop unit installs and maintenance contracts.", "approved", `[{"id":2,"keyword":"hvac"}]`},
	}
	for _, p := range portfolios {
		_, err := db.Exec(`
			INSERT INTO portfolios (id, user_id, title, description, status, images, keywords)
			VALUES ($1, $2, $3, $4, $5, '[]'::jsonb, $6::jsonb)
			ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status
		`, p.id, p.userID, p.title, p.description, p.status, p.keywords)
		if err != nil {
			log.Fatalf("failed to seed portfolio %d: %v", p.id, err)
		}
		fmt.Printf("seeded portfolio: id=%d user_id=%d status=%s\n", p.id, p.userID, p.status)
	}

	// Keep the sequences ahead of the fixed ids
	if _, err := db.Exec(`SELECT setval(pg_get_serial_sequence('accounts','id'), GREATEST((SELECT MAX(id) FROM accounts), 1000))`); err != nil {
		log.Fatalf("failed to bump accounts sequence: %v", err)
	}
	if _, err := db.Exec(`SELECT setval(pg_get_serial_sequence('portfolios','id'), GREATEST((SELECT MAX(id) FROM portfolios), 1000))`); err != nil {
		log.Fatalf("failed to bump portfolios sequence: %v", err)
	}
	fmt.Println("seed complete")
}
