package domain

import (
	"time"

	"github.com/google/uuid"
)

const LookIDPrefix = "look_"

type LookAuthor struct {
	Name       string  `json:"name"`
	AvatarPath *string `json:"avatarPath,omitempty"`
}

type Look struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Author      LookAuthor `json:"author"`
	ProductIDs  []string   `json:"productIDs"`
	CoverPath   string     `json:"coverPath"`
	Description *string    `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// NewLookID returns a collision-resistant look id.
func NewLookID() string { return LookIDPrefix + uuid.NewString() }
