package domain

import "time"

type Role string

const (
	RoleStudent     Role = "student"
	RoleJuniorAdmin Role = "junior_admin"
	RoleAdmin       Role = "admin"
)

type Profile struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      Role      `json:"role"`
	AvatarURL string    `json:"avatar_url"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Actor is the authenticated identity passed explicitly into every lifecycle
// operation instead of being read from ambient request state.
type Actor struct {
	UserID uint `json:"user_id"`
	Role   Role `json:"role"`
}

// HasAdminAccess reports whether the actor may use the admin surfaces.
// Junior admins share the whole admin area with full admins.
func (a Actor) HasAdminAccess() bool {
	return a.Role == RoleAdmin || a.Role == RoleJuniorAdmin
}
