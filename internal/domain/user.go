package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// User-specific validation errors
var (
	// ErrUserIDEmpty is returned when a user ID is empty or nil.
	ErrUserIDEmpty = errors.New("user ID cannot be empty")

	// ErrUsernameEmpty is returned when a username is empty.
	ErrUsernameEmpty = errors.New("username cannot be empty")

	// ErrPasswordTooShort is returned when a plaintext password is below the
	// minimum length.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)

// minPasswordLength is the shortest plaintext password accepted at registration.
const minPasswordLength = 8

// User represents a registered account. HashedPassword holds the bcrypt
// hash; the plaintext password is never stored.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	FirstName      string    `json:"fname"`
	LastName       string    `json:"lname"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser creates a new User with a fresh UUID and creation timestamp.
// The caller is responsible for hashing the password before persisting.
func NewUser(username, firstName, lastName string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrUserIDEmpty
	}
	if u.Username == "" {
		return ErrUsernameEmpty
	}
	return nil
}

// ValidatePlaintextPassword checks a candidate password against the
// registration requirements.
func ValidatePlaintextPassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
