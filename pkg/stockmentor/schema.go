package stockmentor

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

func initDatabase(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := exec(tx, `
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			name TEXT,
			knowledge_level TEXT,
			risk_tolerance TEXT,
			financial_goals TEXT NOT NULL DEFAULT '[]',
			watchlist TEXT NOT NULL DEFAULT '[]',
			roadmap_progress TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return err
	}

	if err := exec(tx, `
		CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			expires_at DATETIME NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return err
	}

	if err := exec(tx, `
		CREATE TABLE IF NOT EXISTS accounts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			account_type TEXT NOT NULL,
			review_date DATETIME NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return err
	}

	if err := exec(tx, `
		CREATE TABLE IF NOT EXISTS roadmap_steps (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			resources TEXT NOT NULL DEFAULT '[]',
			step_order INTEGER NOT NULL
		)
	`); err != nil {
		return err
	}

	if err := seedRoadmapSteps(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func exec(tx *sql.Tx, query string, args ...any) error {
	if _, err := tx.Exec(query, args...); err != nil {
		return fmt.Errorf("exec %.40q: %w", query, err)
	}
	return nil
}

// seedRoadmapSteps installs the starter curriculum on first run.
func seedRoadmapSteps(tx *sql.Tx) error {
	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM roadmap_steps").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for i, step := range defaultRoadmapSteps {
		resources, err := json.Marshal(step.Resources)
		if err != nil {
			return err
		}
		if err := exec(tx, `
			INSERT INTO roadmap_steps (title, description, resources, step_order)
			VALUES (?, ?, ?, ?)
		`, step.Title, step.Description, string(resources), i+1); err != nil {
			return err
		}
	}
	return nil
}

var defaultRoadmapSteps = []RoadmapStep{
	{
		Title:       "Build an emergency fund",
		Description: "Before investing, set aside three to six months of living expenses in an easily accessible savings account.",
		Resources: []RoadmapResource{
			{Title: "Emergency funds explained", URL: "https://www.investor.gov/additional-resources/general-resources/publications-research/info-sheets/save-and-invest", Type: "article"},
		},
	},
	{
		Title:       "Pay down high-interest debt",
		Description: "Interest on credit cards usually outpaces market returns. Clearing expensive debt is a guaranteed return on your money.",
	},
	{
		Title:       "Understand stocks and funds",
		Description: "Learn what owning a share means, how index funds pool many stocks, and why diversification reduces risk.",
		Resources: []RoadmapResource{
			{Title: "Stocks basics", URL: "https://www.investor.gov/introduction-investing/investing-basics/investment-products/stocks", Type: "article"},
		},
	},
	{
		Title:       "Open an investment account",
		Description: "Compare brokerage and retirement accounts, their tax treatment, and their fees before opening one.",
	},
	{
		Title:       "Make your first investment",
		Description: "Start small with a broad, low-cost fund and add to it regularly rather than trying to time the market.",
	},
	{
		Title:       "Review and rebalance",
		Description: "Check your portfolio and financial accounts on a regular schedule and bring allocations back in line with your goals.",
	},
}
