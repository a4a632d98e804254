package models

// Role distinguishes administrators from invited artists.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleArtist Role = "artist"
)

// Valid reports whether the role is one of the two supported values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleArtist
}

// User is an authenticated account. The role is fixed at creation time:
// admins are seeded, artists register through invitations.
type User struct {
	BaseModel

	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"not null" json:"role"`
	Timezone string `gorm:"default:Europe/Paris" json:"timezone"`

	Profile *ArtistProfile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}
