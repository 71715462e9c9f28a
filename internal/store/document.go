package store

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Document is the whole persisted state. Field order follows the json keys
// alphabetically so encoded output has sorted keys at every level.
type Document struct {
	Carts         map[uuid.UUID]map[string]int `json:"carts"`
	Likes         map[uuid.UUID]IDSet          `json:"likes"`
	Looks         []LookRecord                 `json:"looks"`
	Orders        map[uuid.UUID][]OrderRecord  `json:"orders"`
	SessionUserID *uuid.UUID                   `json:"sessionUserID"`
	Users         []UserRecord                 `json:"users"`
	Wardrobe      map[uuid.UUID]IDSet          `json:"wardrobe"`
}

type UserRecord struct {
	Age          *int      `json:"age,omitempty"`
	AvatarPath   *string   `json:"avatarPath,omitempty"`
	City         *string   `json:"city,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	Email        string    `json:"email"`
	Handle       string    `json:"handle"`
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"passwordHash"`
	Sex          *string   `json:"sex,omitempty"`
}

type LookAuthorRecord struct {
	AvatarPath *string `json:"avatarPath,omitempty"`
	Name       string  `json:"name"`
}

type LookRecord struct {
	Author      LookAuthorRecord `json:"author"`
	CoverPath   string           `json:"coverPath"`
	CreatedAt   time.Time        `json:"createdAt"`
	Description *string          `json:"description,omitempty"`
	ID          string           `json:"id"`
	ProductIDs  []string         `json:"productIDs"`
	Title       string           `json:"title"`
}

type OrderRecord struct {
	Brand     string    `json:"brand"`
	CreatedAt time.Time `json:"createdAt"`
	ID        uuid.UUID `json:"id"`
	ProductID string    `json:"productID"`
	Size      string    `json:"size"`
	Status    string    `json:"status"`
	Title     string    `json:"title"`
}

// NewDocument returns an empty document with every collection allocated.
func NewDocument() *Document {
	d := &Document{}
	d.normalize()
	return d
}

func (d *Document) normalize() {
	if d.Carts == nil {
		d.Carts = map[uuid.UUID]map[string]int{}
	}
	for id, lines := range d.Carts {
		if lines == nil {
			d.Carts[id] = map[string]int{}
			continue
		}
		for pid, q := range lines {
			if q <= 0 {
				delete(lines, pid)
			}
		}
	}
	if d.Likes == nil {
		d.Likes = map[uuid.UUID]IDSet{}
	}
	if d.Wardrobe == nil {
		d.Wardrobe = map[uuid.UUID]IDSet{}
	}
	if d.Orders == nil {
		d.Orders = map[uuid.UUID][]OrderRecord{}
	}
	if d.Looks == nil {
		d.Looks = []LookRecord{}
	}
	if d.Users == nil {
		d.Users = []UserRecord{}
	}
}

// UserIndex returns the position of the user with id, or -1.
func (d *Document) UserIndex(id uuid.UUID) int {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return i
		}
	}
	return -1
}

// UserByEmail expects an already normalised email.
func (d *Document) UserByEmail(email string) int {
	for i := range d.Users {
		if d.Users[i].Email == email {
			return i
		}
	}
	return -1
}

func (d *Document) LookIndex(id string) int {
	for i := range d.Looks {
		if d.Looks[i].ID == id {
			return i
		}
	}
	return -1
}

// IDSet is a set of ids stored as a sorted JSON array.
type IDSet map[string]struct{}

func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in ascending order.
func (s IDSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s IDSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *IDSet) UnmarshalJSON(b []byte) error {
	var ids []string
	if err := json.Unmarshal(b, &ids); err != nil {
		return err
	}
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	*s = set
	return nil
}
