package models

// BlockedDate is an admin-designated date on which no artist may hold or
// create an availability record. Blocking purges existing availabilities for
// the date; unblocking does not restore them.
type BlockedDate struct {
	BaseModel

	Date string `gorm:"size:10;uniqueIndex;not null" json:"date"`
	Note string `gorm:"size:280" json:"note,omitempty"`
}
