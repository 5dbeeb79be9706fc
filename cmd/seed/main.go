package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/contentdesk/contentdesk-api/config"
	"github.com/contentdesk/contentdesk-api/pkg/helpers"
)

// Seeds a demo team, one manager, one member, and a couple of contents
// for the member. Safe to re-run: users upsert on email, team on name.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	var teamID string
	if err := db.QueryRow(`
		INSERT INTO teams (name) VALUES ('Editorial')
		ON CONFLICT (name) DO UPDATE SET updated_at = now()
		RETURNING id
	`).Scan(&teamID); err != nil {
		log.Fatalf("failed to seed team: %v", err)
	}
	fmt.Printf("team ensured: id=%s name=Editorial\n", teamID)

	managerID := seedUser(db, "Maya Tanaka", "manager@example.com", "password123", "manager", &teamID)
	memberID := seedUser(db, "Jon Rivera", "member@example.com", "password123", "member", &teamID)

	for _, title := range []string{"Launch announcement", "Quarterly roundup"} {
		var contentID string
		if err := db.QueryRow(`
			INSERT INTO contents (user_id, title, description, status)
			VALUES ($1, $2, $3, 'draft')
			RETURNING id
		`, memberID, title, "Seeded draft for "+title).Scan(&contentID); err != nil {
			log.Fatalf("failed to seed content: %v", err)
		}
		fmt.Printf("content seeded: id=%s title=%q\n", contentID, title)
	}

	fmt.Printf("seeded manager=%s member=%s password=password123\n", managerID, memberID)
}

func seedUser(db *sql.DB, fullName, email, password, role string, teamID *string) string {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	var id string
	if err := db.QueryRow(`
		INSERT INTO users (full_name, email, password, role, team_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET full_name = EXCLUDED.full_name, role = EXCLUDED.role, team_id = EXCLUDED.team_id
		RETURNING id
	`, fullName, email, hash, role, teamID).Scan(&id); err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	fmt.Printf("user ensured: id=%s email=%s role=%s\n", id, email, role)
	return id
}
