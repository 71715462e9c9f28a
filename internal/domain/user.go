package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Handle       string    `json:"handle"`
	AvatarPath   *string   `json:"avatarPath,omitempty"`
	Age          *int      `json:"age,omitempty"`
	City         *string   `json:"city,omitempty"`
	Sex          *string   `json:"sex,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Initials returns up to two upper-case letters taken from the first two words of Name.
func (u User) Initials() string {
	parts := strings.Fields(u.Name)
	var out []rune
	for i := 0; i < len(parts) && i < 2; i++ {
		r := []rune(parts[i])
		out = append(out, r[0])
	}
	return strings.ToUpper(string(out))
}

type CreateUserRequest struct {
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Name       string  `json:"name"`
	Handle     string  `json:"handle"`
	AvatarPath *string `json:"avatarPath,omitempty"`
	Age        *int    `json:"age,omitempty"`
	City       *string `json:"city,omitempty"`
	Sex        *string `json:"sex,omitempty"`
}

// NormalizeEmail is the canonical form used for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Now is the timestamp source for stored records: UTC, whole seconds.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
