package stockmentor

import (
	"database/sql"
	"strings"
	"time"
)

// defaultReviewLead is how far out a new account's review date is scheduled
// when the caller does not supply one.
const defaultReviewLead = 90 * 24 * time.Hour

// AddAccount inserts a financial account owned by the user.
func (c *Core) AddAccount(userID int64, name, accountType, reviewDate string) (*Account, error) {
	name = strings.TrimSpace(name)
	accountType = strings.TrimSpace(accountType)
	if name == "" || accountType == "" {
		return nil, NewError(ErrCodeInvalidInput, "name and type are required")
	}

	review := strings.TrimSpace(reviewDate)
	if review == "" {
		review = time.Now().Add(defaultReviewLead).UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", review); err != nil {
		return nil, NewError(ErrCodeInvalidInput, "reviewDate must be YYYY-MM-DD")
	}

	result, err := c.db.Exec(`
		INSERT INTO accounts (user_id, name, account_type, review_date)
		VALUES (?, ?, ?, ?)
	`, userID, name, accountType, review)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "insert account", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "read account id", err)
	}
	return c.getAccount(id)
}

// GetAccounts returns every account owned by the user.
func (c *Core) GetAccounts(userID int64) ([]Account, error) {
	rows, err := c.db.Query(`
		SELECT id, user_id, name, account_type, review_date, created_at
		FROM accounts WHERE user_id = ? ORDER BY id
	`, userID)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "query accounts", err)
	}
	defer rows.Close()

	accounts := []Account{}
	for rows.Next() {
		acc, err := scanAccount(rows.Scan)
		if err != nil {
			return nil, WrapError(ErrCodeDatabase, "scan account", err)
		}
		accounts = append(accounts, *acc)
	}
	return accounts, rows.Err()
}

// DeleteAccount removes an account. Deleting an account owned by another
// user is reported as unauthorized, not as missing.
func (c *Core) DeleteAccount(userID, accountID int64) error {
	acc, err := c.getAccount(accountID)
	if err != nil {
		return err
	}
	if acc.UserID != userID {
		return NewError(ErrCodeUnauthorized, "not authorized to delete this account")
	}
	if _, err := c.db.Exec("DELETE FROM accounts WHERE id = ?", accountID); err != nil {
		return WrapError(ErrCodeDatabase, "delete account", err)
	}
	return nil
}

func (c *Core) getAccount(id int64) (*Account, error) {
	row := c.db.QueryRow(`
		SELECT id, user_id, name, account_type, review_date, created_at
		FROM accounts WHERE id = ?
	`, id)
	acc, err := scanAccount(row.Scan)
	if err == sql.ErrNoRows {
		return nil, NewError(ErrCodeNotFound, "account not found")
	}
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "scan account", err)
	}
	return acc, nil
}

func scanAccount(scan func(...any) error) (*Account, error) {
	var acc Account
	var createdAt sql.NullString
	if err := scan(&acc.ID, &acc.UserID, &acc.Name, &acc.Type, &acc.ReviewDate, &createdAt); err != nil {
		return nil, err
	}
	acc.CreatedAt = createdAt.String
	return &acc, nil
}
