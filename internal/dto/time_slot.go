package dto

// ── Time-slot module DTOs ──

// CreateTimeSlotRequest creates a time slot. When ID is omitted the
// service generates one from the day and creation time. Duration is never
// accepted from the caller; it is computed from start/end.
type CreateTimeSlotRequest struct {
	ID        string `json:"id"         binding:"omitempty,max=80"`
	Day       string `json:"day"        binding:"required,oneof=Monday Tuesday Wednesday Thursday Friday"`
	StartTime string `json:"start_time" binding:"required"` // "09:00"
	EndTime   string `json:"end_time"   binding:"required"` // "11:00"
	Status    string `json:"status"     binding:"omitempty,oneof=available unavailable"`
}

// UpdateTimeSlotRequest replaces a time slot's mutable fields. Any id in
// the body is ignored; the path id wins.
type UpdateTimeSlotRequest struct {
	ID        string `json:"id"         binding:"omitempty"`
	Day       string `json:"day"        binding:"required,oneof=Monday Tuesday Wednesday Thursday Friday"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time"   binding:"required"`
	Status    string `json:"status"     binding:"omitempty,oneof=available unavailable"`
}

// TimeSlotResponse is one time slot.
type TimeSlotResponse struct {
	ID              string `json:"id"`
	Day             string `json:"day"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// TimeSlotListResponse is the complete catalog, insertion-ordered. Every
// time-slot write returns it in full.
type TimeSlotListResponse struct {
	List []TimeSlotResponse `json:"list"`
}
