package main

import (
	"database/sql"
	"log"

	_ "github.com/lib/pq"

	"local-services-server/config"
	"local-services-server/utils"
)

type demoAccount struct {
	FullName string
	Email    string
	Phone    string
	Password string
	Role     string
	Skill    string
	City     string
}

// seedDemoAccounts inserts a handful of demo users for local development.
// Runs only when SEED_DEMO=true, after migrations, over a plain SQL
// connection so it can be pointed at any environment's database.
func seedDemoAccounts() {
	db, err := sql.Open("postgres", config.AppConfig.Database.URL)
	if err != nil {
		log.Printf("❌ Demo seed: failed to open database: %v", err)
		return
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Printf("❌ Demo seed: failed to ping database: %v", err)
		return
	}

	accounts := []demoAccount{
		{FullName: "Demo Customer", Email: "customer@demo.local", Phone: "+923000000001", Password: "demo1234", Role: "customer"},
		{FullName: "Demo Plumber", Email: "plumber@demo.local", Phone: "+923000000002", Password: "demo1234", Role: "worker", Skill: "Plumber", City: "Lahore"},
		{FullName: "Demo Electrician", Email: "electrician@demo.local", Phone: "+923000000003", Password: "demo1234", Role: "worker", Skill: "Electrician", City: "Karachi"},
		{FullName: "Demo Admin", Email: "admin@demo.local", Phone: "+923000000004", Password: "demo1234", Role: "admin"},
	}

	for _, account := range accounts {
		var exists int
		err := db.QueryRow("SELECT COUNT(*) FROM users WHERE email = $1", account.Email).Scan(&exists)
		if err != nil {
			log.Printf("❌ Demo seed: failed to check %s: %v", account.Email, err)
			return
		}
		if exists > 0 {
			log.Printf("⏭️  Demo account already exists: %s", account.Email)
			continue
		}

		hash, err := utils.HashPassword(account.Password)
		if err != nil {
			log.Printf("❌ Demo seed: failed to hash password: %v", err)
			return
		}

		var userID uint
		err = db.QueryRow(`
			INSERT INTO users (full_name, email, phone, password_hash, role, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, true, NOW(), NOW())
			RETURNING id`,
			account.FullName, account.Email, account.Phone, hash, account.Role).Scan(&userID)
		if err != nil {
			log.Printf("❌ Demo seed: failed to create %s: %v", account.Email, err)
			return
		}

		if account.Role == "worker" {
			_, err = db.Exec(`
				INSERT INTO worker_profiles (user_id, skill, city, verification_status, is_available, created_at, updated_at)
				VALUES ($1, $2, $3, 'approved', true, NOW(), NOW())`,
				userID, account.Skill, account.City)
			if err != nil {
				log.Printf("❌ Demo seed: failed to create worker profile for %s: %v", account.Email, err)
				return
			}
		}

		log.Printf("✅ Demo account created: %s (%s)", account.Email, account.Role)
	}
}
