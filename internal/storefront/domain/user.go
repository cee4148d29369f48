package domain

import "time"

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string // argon2id PHC string, or bcrypt for imported accounts
	FullName     *string
	Address      *string
	Phone        *string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is a User without its password hash. It is the only shape that
// leaves the service layer.
type PublicUser struct {
	ID        int64
	Username  string
	Email     string
	FullName  *string
	Address   *string
	Phone     *string
	IsAdmin   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Public drops the password hash.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Address:   u.Address,
		Phone:     u.Phone,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewUser is what the store needs to insert a user; the id and timestamps
// are assigned by the store.
type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
	FullName     *string
}

// Registration is the input to account creation, before hashing.
type Registration struct {
	Username string
	Email    string
	Password string
	FullName string
}
