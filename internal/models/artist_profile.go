package models

import "gorm.io/datatypes"

// Category classifies an artist act. The empty string means unset.
type Category string

const (
	CategoryDJ    Category = "DJ"
	CategoryGroup Category = "Group"
)

// Valid reports whether the category is one of the assignable values.
func (c Category) Valid() bool {
	return c == CategoryDJ || c == CategoryGroup
}

// MaxGalleryImages caps the number of gallery references per profile.
const MaxGalleryImages = 5

// ArtistProfile holds public-facing artist metadata, created lazily on the
// first profile write or admin category assignment.
type ArtistProfile struct {
	BaseModel

	UserID      string   `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	StageName   string   `gorm:"not null" json:"stage_name"`
	Phone       string   `json:"phone,omitempty"`
	Link        string   `json:"link,omitempty"`
	NightlyRate string   `json:"nightly_rate,omitempty"`
	Category    Category `json:"category,omitempty"`
	Bio         string   `gorm:"size:500" json:"bio,omitempty"`

	LogoURL string                      `json:"logo_url,omitempty"`
	Gallery datatypes.JSONSlice[string] `json:"gallery_urls"`
}
