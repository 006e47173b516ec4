package model

// Patient is the profile tied 1:1 to an account. Name, phone and email
// are copied from the account at registration and may diverge later
// through direct edits.
type Patient struct {
	ID          int64  `json:"id" db:"id"`
	AccountID   int64  `json:"account_id" db:"account_id"`
	DisplayName string `json:"display_name" db:"display_name"`
	Phone       string `json:"phone" db:"phone"`
	Email       string `json:"email" db:"email"`
}
