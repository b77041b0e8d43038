// Package models defines server-side data models persisted in the database.
package models

import "time"

// Account is a confirmed, login-capable identity. Email and nickname are
// unique among accounts.
type Account struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	Nickname     string    `db:"nickname"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// PendingAccount is a signup awaiting email confirmation. Nothing about it is
// unique except its ID.
type PendingAccount struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	Nickname     string    `db:"nickname"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
