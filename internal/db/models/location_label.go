package models

// LocationLabel binds one Todoist label to a geofence. When a task carrying
// the label is added or updated, a location reminder with these parameters is
// attached to the task. LabelID is deliberately non-unique: several rules may
// fire for the same label (e.g. "groceries" near two different stores).
type LocationLabel struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	UserID     int64   `gorm:"not null;index" json:"user_id"`
	LabelID    int64   `gorm:"not null;index" json:"label_id"`
	Name       string  `gorm:"not null" json:"name"`
	Long       float64 `gorm:"not null" json:"long"`
	Lat        float64 `gorm:"not null" json:"lat"`
	LocTrigger string  `gorm:"not null" json:"loc_trigger"` // "on_enter" or "on_leave", opaque to us
	Radius     float64 `gorm:"not null" json:"radius"`      // meters
}
