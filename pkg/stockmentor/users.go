package stockmentor

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 30 * 24 * time.Hour

// RegisterUser creates a user with a bcrypt-hashed password and returns it.
func (c *Core) RegisterUser(email, password, name string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, NewError(ErrCodeInvalidInput, "a valid email is required")
	}
	if len(password) < 8 {
		return nil, NewError(ErrCodeInvalidInput, "password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, WrapError(ErrCodeInternal, "hash password", err)
	}

	result, err := c.db.Exec(`
		INSERT INTO users (email, password_hash, name)
		VALUES (?, ?, ?)
	`, email, string(hash), strings.TrimSpace(name))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, NewError(ErrCodeDuplicate, "email is already registered")
		}
		return nil, WrapError(ErrCodeDatabase, "insert user", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "read user id", err)
	}
	return c.GetUser(id)
}

// AuthenticateUser verifies credentials and returns the user.
func (c *Core) AuthenticateUser(email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var id int64
	var hash string
	err := c.db.QueryRow("SELECT id, password_hash FROM users WHERE email = ?", email).Scan(&id, &hash)
	if err == sql.ErrNoRows {
		return nil, NewError(ErrCodeUnauthorized, "invalid email or password")
	}
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "query user", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, NewError(ErrCodeUnauthorized, "invalid email or password")
	}
	return c.GetUser(id)
}

// CreateSession issues a bearer token for the user.
func (c *Core) CreateSession(userID int64) (string, error) {
	token := uuid.NewString()
	expires := time.Now().Add(sessionTTL).UTC().Format(time.RFC3339)
	if _, err := c.db.Exec(`
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES (?, ?, ?)
	`, token, userID, expires); err != nil {
		return "", WrapError(ErrCodeDatabase, "insert session", err)
	}
	return token, nil
}

// UserBySession resolves a bearer token to its user. Expired sessions are
// removed and reported as ErrSessionExpired.
func (c *Core) UserBySession(token string) (*User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, NewError(ErrCodeUnauthorized, "missing bearer token")
	}

	var userID int64
	var expiresAt string
	err := c.db.QueryRow("SELECT user_id, expires_at FROM sessions WHERE token = ?", token).Scan(&userID, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, NewError(ErrCodeUnauthorized, "invalid bearer token")
	}
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "query session", err)
	}

	expires, err := time.Parse(time.RFC3339, expiresAt)
	if err != nil || time.Now().After(expires) {
		_, _ = c.db.Exec("DELETE FROM sessions WHERE token = ?", token)
		return nil, ErrSessionExpired
	}
	return c.GetUser(userID)
}

// DeleteSession invalidates a bearer token.
func (c *Core) DeleteSession(token string) error {
	_, err := c.db.Exec("DELETE FROM sessions WHERE token = ?", token)
	if err != nil {
		return WrapError(ErrCodeDatabase, "delete session", err)
	}
	return nil
}

// GetUser loads a user by id.
func (c *Core) GetUser(id int64) (*User, error) {
	var user User
	var name, knowledgeLevel, riskTolerance, createdAt sql.NullString
	var goalsJSON, watchlistJSON, progressJSON string

	err := c.db.QueryRow(`
		SELECT id, email, name, knowledge_level, risk_tolerance, financial_goals, watchlist, roadmap_progress, created_at
		FROM users WHERE id = ?
	`, id).Scan(&user.ID, &user.Email, &name, &knowledgeLevel, &riskTolerance, &goalsJSON, &watchlistJSON, &progressJSON, &createdAt)
	if err == sql.ErrNoRows {
		return nil, NewError(ErrCodeNotFound, fmt.Sprintf("user %d not found", id))
	}
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "query user", err)
	}

	user.Profile = UserProfile{
		Name:           name.String,
		KnowledgeLevel: knowledgeLevel.String,
		RiskTolerance:  riskTolerance.String,
	}
	if err := json.Unmarshal([]byte(goalsJSON), &user.Profile.FinancialGoals); err != nil {
		user.Profile.FinancialGoals = nil
	}
	if err := json.Unmarshal([]byte(watchlistJSON), &user.Watchlist); err != nil {
		user.Watchlist = nil
	}
	if user.Watchlist == nil {
		user.Watchlist = []string{}
	}
	if err := json.Unmarshal([]byte(progressJSON), &user.RoadmapProgress); err != nil {
		user.RoadmapProgress = nil
	}
	if user.RoadmapProgress == nil {
		user.RoadmapProgress = []int64{}
	}
	user.CreatedAt = createdAt.String
	return &user, nil
}

// UpdateProfile applies a partial profile update: only the fields present in
// the request change, everything else is preserved.
func (c *Core) UpdateProfile(userID int64, update UserProfile) (*User, error) {
	user, err := c.GetUser(userID)
	if err != nil {
		return nil, err
	}

	profile := user.Profile
	if strings.TrimSpace(update.Name) != "" {
		profile.Name = strings.TrimSpace(update.Name)
	}
	if level := normalizeChoice(update.KnowledgeLevel, KnowledgeLevels); level != "" {
		profile.KnowledgeLevel = level
	}
	if tolerance := normalizeChoice(update.RiskTolerance, RiskTolerances); tolerance != "" {
		profile.RiskTolerance = tolerance
	}
	if update.FinancialGoals != nil {
		profile.FinancialGoals = update.FinancialGoals
	}

	goalsJSON, err := json.Marshal(profile.FinancialGoals)
	if err != nil {
		return nil, WrapError(ErrCodeInternal, "marshal financial goals", err)
	}
	if _, err := c.db.Exec(`
		UPDATE users SET name = ?, knowledge_level = ?, risk_tolerance = ?, financial_goals = ?
		WHERE id = ?
	`, profile.Name, profile.KnowledgeLevel, profile.RiskTolerance, string(goalsJSON), userID); err != nil {
		return nil, WrapError(ErrCodeDatabase, "update profile", err)
	}
	return c.GetUser(userID)
}

// GetWatchlist returns the user's watchlist symbols.
func (c *Core) GetWatchlist(userID int64) ([]string, error) {
	user, err := c.GetUser(userID)
	if err != nil {
		return nil, err
	}
	return user.Watchlist, nil
}

// AddToWatchlist adds a symbol to the user's watchlist if not already present
// and returns the updated list.
func (c *Core) AddToWatchlist(userID int64, symbol string) ([]string, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return nil, NewError(ErrCodeInvalidInput, "symbol is required")
	}
	return c.mutateWatchlist(userID, func(list []string) []string {
		for _, existing := range list {
			if existing == symbol {
				return list
			}
		}
		return append(list, symbol)
	})
}

// RemoveFromWatchlist removes a symbol and returns the updated list.
func (c *Core) RemoveFromWatchlist(userID int64, symbol string) ([]string, error) {
	symbol = normalizeSymbol(symbol)
	return c.mutateWatchlist(userID, func(list []string) []string {
		filtered := make([]string, 0, len(list))
		for _, existing := range list {
			if existing != symbol {
				filtered = append(filtered, existing)
			}
		}
		return filtered
	})
}

func (c *Core) mutateWatchlist(userID int64, mutate func([]string) []string) ([]string, error) {
	user, err := c.GetUser(userID)
	if err != nil {
		return nil, err
	}
	updated := mutate(user.Watchlist)
	encoded, err := json.Marshal(updated)
	if err != nil {
		return nil, WrapError(ErrCodeInternal, "marshal watchlist", err)
	}
	if _, err := c.db.Exec("UPDATE users SET watchlist = ? WHERE id = ?", string(encoded), userID); err != nil {
		return nil, WrapError(ErrCodeDatabase, "update watchlist", err)
	}
	return updated, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
