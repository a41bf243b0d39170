package dto

// Raw-table projections for the audit endpoints. Dates are formatted as
// ISO-8601 date strings; optional dates are empty when absent.

type UserDTO struct {
	ID           uint64 `json:"id"`
	Username     string `json:"username"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date,omitempty"`
	BusinessUnit string `json:"business_unit"`
	Manager      string `json:"manager"`
	LastUpdate   string `json:"last_update"`
	IsExternal   bool   `json:"is_external"`
}

type CourseDTO struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	Link         string `json:"link"`
	CreationDate string `json:"creation_date"`
}

type AssignmentDTO struct {
	ID             uint64 `json:"id"`
	Username       string `json:"username"`
	CourseID       uint64 `json:"course_id"`
	CompletionDate string `json:"completion_date,omitempty"`
	AssignmentDate string `json:"assignment_date"`
}

type MetricSnapshotDTO struct {
	ID             uint64  `json:"id"`
	CheckpointDate string  `json:"checkpoint_date"`
	BusinessUnit   string  `json:"business_unit"`
	ActiveRate     float64 `json:"active_rate"`
	ExternalRate   float64 `json:"external_rate"`
	CompletionRate float64 `json:"completion_rate"`
}
