package domain

import (
	"errors"
	"time"
)

// Role determines the scope of task visibility and mutation rights a user
// has. Admins operate on the full task collection, regular users only on
// their own tasks.
type Role string

// Possible user roles.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Common validation errors for User.
var (
	ErrEmptyNickname    = errors.New("nickname cannot be empty")
	ErrNicknameTooShort = errors.New("nickname must be at least 3 characters long")
	ErrNicknameTooLong  = errors.New("nickname must be at most 30 characters long")
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong  = errors.New("password must be at most 72 characters long")
)

// User represents a registered account. A user owns zero or more tasks and
// carries the role consulted by the access policy.
type User struct {
	ID             int64     `json:"id"`
	Nickname       string    `json:"nickname"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext password, used temporarily during registration/updates
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserWithTaskCount pairs a user with the number of tasks they own.
// Produced by the admin user listing.
type UserWithTaskCount struct {
	ID        int64  `json:"id"`
	Nickname  string `json:"nickname"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	TaskCount int    `json:"task_count"`
}

// NewUser creates a new User with the given nickname, email and password.
// New accounts always start with the regular user role; promotion to admin
// happens out of band. The ID is assigned by storage on creation.
//
// NOTE: This function only sets up the user structure with the plaintext
// password. The store is responsible for hashing it before persistence.
func NewUser(nickname, email, password string) (*User, error) {
	user := &User{
		Nickname:  nickname,
		Email:     email,
		Password:  password, // Plaintext password - must be hashed before storage
		Role:      RoleUser,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.Nickname == "" {
		return ErrEmptyNickname
	}
	if len(u.Nickname) < 3 {
		return ErrNicknameTooShort
	}
	if len(u.Nickname) > 30 {
		return ErrNicknameTooLong
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if !IsValidRole(u.Role) {
		return ErrInvalidRole
	}

	// During user creation/update we need to validate the provided password.
	if u.Password != "" {
		if len(u.Password) < 8 {
			return ErrPasswordTooShort
		}
		if len(u.Password) > 72 { // bcrypt's practical limit
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		// Existing users loaded from storage carry only the hash.
		return ErrEmptyPassword
	}

	return nil
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsValidRole checks if the given role is a recognized Role.
func IsValidRole(role Role) bool {
	switch role {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// validateEmailFormat performs basic validation of email format.
// Returns true if the email appears to be in a valid format.
// Request-level validation uses a stricter validator tag; this is the
// last-resort check for users constructed outside the API layer.
func validateEmailFormat(email string) bool {
	atIndex := -1
	for i, char := range email {
		if char == '@' {
			atIndex = i
			break
		}
	}

	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}

	// Check for a dot in the domain part, not immediately after @ and not
	// at the end.
	domainPart := email[atIndex+1:]
	dotIndex := -1
	for i, char := range domainPart {
		if char == '.' {
			dotIndex = i
			break
		}
	}

	return dotIndex > 0 && dotIndex < len(domainPart)-1
}
