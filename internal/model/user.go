package model

import "time"

// User represents an application user record as stored in the `users` table.
// The json tags are omitted because these structs are used internally by the
// repository layer; handlers define separate response types with appropriate
// JSON tags so the password hash can never leak into a response body.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Name         – display name.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Name         string    // users.name
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
