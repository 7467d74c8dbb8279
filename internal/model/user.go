package model

import "time"

// User represents an application user record as stored in the
// `users` table. The PasswordHash column is only populated for
// accounts created through the auth endpoints; it is never
// serialized in responses.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  Login        – short handle; must not contain spaces.
//  Name         – display name; defaults to Login when blank.
//  Birthday     – date of birth; must not lie in the future.
//  PasswordHash – bcrypt hashed password (empty for users created via plain CRUD).
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	Login        string    `json:"login"`
	Name         string    `json:"name"`
	Birthday     time.Time `json:"birthday"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}
