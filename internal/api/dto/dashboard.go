package dto

// SeriesQueryDTO filters the dashboard reads. An empty unit list means all
// business units.
type SeriesQueryDTO struct {
	Units []string `form:"units"`
	Year  int      `form:"year" binding:"omitempty,min=2000,max=2100"`
}

// RefreshDTO triggers an aggregation run for a year.
type RefreshDTO struct {
	Year int `json:"year" binding:"omitempty,min=2000,max=2100"`
}

// SeedDTO triggers fixture generation.
type SeedDTO struct {
	Users int `json:"users" binding:"omitempty,min=1,max=5000"`
}
