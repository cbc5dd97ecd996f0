package stockmentor

import (
	"testing"
	"time"
)

func registerTestUser(t *testing.T, core *Core, email string) *User {
	t.Helper()
	user, err := core.RegisterUser(email, "password123", "")
	assertNoError(t, err, "register "+email)
	return user
}

func TestAddAccountDefaults(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()
	user := registerTestUser(t, core, "a@b.com")

	account, err := core.AddAccount(user.ID, "Brokerage", "investment", "")
	assertNoError(t, err, "add account")
	if account.Name != "Brokerage" || account.Type != "investment" {
		t.Errorf("account = %+v", account)
	}

	want := time.Now().Add(defaultReviewLead).UTC().Format("2006-01-02")
	if account.ReviewDate != want {
		t.Errorf("review date = %q, want %q", account.ReviewDate, want)
	}
}

func TestAddAccountValidation(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()
	user := registerTestUser(t, core, "a@b.com")

	_, err := core.AddAccount(user.ID, "", "investment", "")
	assertErrorCode(t, err, ErrCodeInvalidInput, "blank name")

	_, err = core.AddAccount(user.ID, "Brokerage", "investment", "not-a-date")
	assertErrorCode(t, err, ErrCodeInvalidInput, "bad review date")

	account, err := core.AddAccount(user.ID, "ISA", "savings", "2026-12-01")
	assertNoError(t, err, "explicit review date")
	if account.ReviewDate != "2026-12-01" {
		t.Errorf("review date = %q", account.ReviewDate)
	}
}

func TestGetAccountsScopedToOwner(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()
	alice := registerTestUser(t, core, "alice@b.com")
	bob := registerTestUser(t, core, "bob@b.com")

	_, err := core.AddAccount(alice.ID, "Alice Brokerage", "investment", "")
	assertNoError(t, err, "alice account")
	_, err = core.AddAccount(bob.ID, "Bob Savings", "savings", "")
	assertNoError(t, err, "bob account")

	accounts, err := core.GetAccounts(alice.ID)
	assertNoError(t, err, "alice accounts")
	if len(accounts) != 1 || accounts[0].Name != "Alice Brokerage" {
		t.Errorf("alice accounts = %+v", accounts)
	}
}

func TestDeleteAccountOwnership(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()
	alice := registerTestUser(t, core, "alice@b.com")
	bob := registerTestUser(t, core, "bob@b.com")

	account, err := core.AddAccount(alice.ID, "Brokerage", "investment", "")
	assertNoError(t, err, "add account")

	err = core.DeleteAccount(bob.ID, account.ID)
	assertErrorCode(t, err, ErrCodeUnauthorized, "cross-user delete")

	err = core.DeleteAccount(alice.ID, account.ID)
	assertNoError(t, err, "owner delete")

	err = core.DeleteAccount(alice.ID, account.ID)
	assertErrorCode(t, err, ErrCodeNotFound, "already deleted")
}
