package user

import "errors"

// ErrNotFound is returned by repositories when no user matches the requested ID.
var ErrNotFound = errors.New("user not found")

// User represents a user entity in the system.
type User struct {
	ID    int64  // ID is assigned by the directory, never by clients
	Name  string // Name is the full name of the user
	Email string // Email is the contact address of the user (not format-checked)
	Age   *int   // Age is optional; nil means absent
}

// Clone returns a deep copy so callers never share the stored Age pointer.
func (u User) Clone() User {
	if u.Age != nil {
		age := *u.Age
		u.Age = &age
	}
	return u
}
