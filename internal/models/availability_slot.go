package models

// AvailabilitySlot declares a weekly window. Weekday runs 1 (Monday) to
// 7 (Sunday); times are wall-clock "HH:MM" with no timezone.
type AvailabilitySlot struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	SitterProfileID uint `gorm:"index;not null" json:"sitter_profile_id"`

	Weekday   int    `gorm:"not null;check:weekday >= 1 AND weekday <= 7" json:"weekday"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`
}
