package model

// Weekday is a teaching day. The catalog covers Monday through Friday only.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
)

// TimeSlot is a schedulable wall-clock window within one day.
// DurationMinutes is always recomputed from StartTime/EndTime on write,
// never trusted from caller input.
type TimeSlot struct {
	TimeSlotID      string         `gorm:"type:varchar(80);primaryKey" json:"id"`
	Day             Weekday        `gorm:"type:varchar(10);not null"   json:"day"`
	StartTime       string         `gorm:"type:varchar(5);not null"    json:"start_time"` // "09:00"
	EndTime         string         `gorm:"type:varchar(5);not null"    json:"end_time"`   // "11:00"
	DurationMinutes int            `gorm:"not null"                    json:"duration_minutes"`
	Status          ResourceStatus `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	BaseModel
}

// TableName pins the table name.
func (TimeSlot) TableName() string { return "time_slots" }
