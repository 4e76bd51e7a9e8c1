// Package models contains the persisted entity types shared by repositories
// and services.
package models

import "time"

// User is an account that can log in. PasswordHash is a bcrypt hash;
// the plaintext never reaches this struct.
//
// PreRegID is set only for students created by redeeming a pre-registration
// and points back at the voucher that was consumed.
type User struct {
	ID           string
	Email        string
	Name         string
	LastName     string
	PasswordHash string
	Role         Role
	PreRegID     *int64
	CreatedAt    time.Time
}
