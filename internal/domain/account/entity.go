package account

import "time"

type Account struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
