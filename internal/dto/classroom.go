package dto

// ── Classroom module DTOs ──

// CreateClassroomRequest creates a classroom. The id is caller-assigned
// (e.g. "S1") and checked for uniqueness.
type CreateClassroomRequest struct {
	ID        string `json:"id"        binding:"required,max=50"`
	Name      string `json:"name"      binding:"required,max=100"`
	Capacity  int    `json:"capacity"  binding:"required"`
	Equipment string `json:"equipment"`
	Status    string `json:"status"    binding:"omitempty,oneof=available unavailable"`
}

// UpdateClassroomRequest replaces a classroom's mutable fields. Any id in
// the body is ignored; the path id wins.
type UpdateClassroomRequest struct {
	ID        string `json:"id"        binding:"omitempty"`
	Name      string `json:"name"      binding:"required,max=100"`
	Capacity  int    `json:"capacity"  binding:"required"`
	Equipment string `json:"equipment"`
	Status    string `json:"status"    binding:"omitempty,oneof=available unavailable"`
}

// ClassroomResponse is one classroom.
type ClassroomResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
	Equipment string `json:"equipment,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ClassroomListResponse is the complete catalog, insertion-ordered. Every
// classroom write returns it in full.
type ClassroomListResponse struct {
	List []ClassroomResponse `json:"list"`
}
