package models

// DefaultAvailabilityColor is applied when a toggle omits a colour.
const DefaultAvailabilityColor = "#3b82f6"

// MaxNoteLength caps availability and blocked-date notes.
const MaxNoteLength = 280

// AvailabilityDay marks a single calendar day an artist is available. Dates
// are stored as ISO YYYY-MM-DD strings with no time component. The composite
// unique index keeps at most one record per (artist, date) even when
// concurrent toggles race.
type AvailabilityDay struct {
	BaseModel

	ArtistID string `gorm:"type:uuid;not null;uniqueIndex:idx_artist_date" json:"artist_id"`
	Date     string `gorm:"size:10;not null;uniqueIndex:idx_artist_date;index" json:"date"`
	Note     string `gorm:"size:280" json:"note,omitempty"`
	Color    string `gorm:"size:16;not null" json:"color"`
}
