package model

// ResourceStatus marks a catalog resource usable or not for scheduling.
type ResourceStatus string

const (
	StatusAvailable   ResourceStatus = "available"
	StatusUnavailable ResourceStatus = "unavailable"
)

// Classroom is a catalog resource a later scheduler assigns lectures to.
// The id is caller-assigned (e.g. S1, S2) and immutable.
type Classroom struct {
	ClassroomID string         `gorm:"type:varchar(50);primaryKey"  json:"id"`
	Name        string         `gorm:"type:varchar(100);not null"   json:"name"`
	Capacity    int            `gorm:"not null"                     json:"capacity"`
	Equipment   string         `gorm:"type:text"                    json:"equipment,omitempty"`
	Status      ResourceStatus `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	BaseModel
}

// TableName pins the table name.
func (Classroom) TableName() string { return "classrooms" }
