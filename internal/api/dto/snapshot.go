package dto

// SnapshotPointDTO is one (checkpoint, unit) cell of the monthly series.
type SnapshotPointDTO struct {
	Date           string  `json:"date"`  // checkpoint, e.g. "2024-01-31"
	Month          string  `json:"month"` // display label, e.g. "Ene 2024"
	BusinessUnit   string  `json:"business_unit"`
	ActiveRate     float64 `json:"active_rate"`
	ExternalRate   float64 `json:"external_rate"`
	CompletionRate float64 `json:"completion_rate"`
}

// PivotRowDTO is one month of the unit-by-month completion table. Units
// without a snapshot that month are simply absent from Values.
type PivotRowDTO struct {
	Month  string             `json:"month"`
	Values map[string]float64 `json:"values"`
}

type CompletionPivotDTO struct {
	Units []string       `json:"units"`
	Rows  []*PivotRowDTO `json:"rows"`
}

// UnitProportionDTO renormalizes the yearly mean of active/external rates
// over the active base, so internal + external sum to 100 per unit.
type UnitProportionDTO struct {
	BusinessUnit  string  `json:"business_unit"`
	InternalShare float64 `json:"internal_share"`
	ExternalShare float64 `json:"external_share"`
}

type RankingEntryDTO struct {
	BusinessUnit      string  `json:"business_unit"`
	AvgCompletionRate float64 `json:"avg_completion_rate"`
}

type UnitRankingDTO struct {
	Entries []*RankingEntryDTO `json:"entries"`
	Top     string             `json:"top"`
	Bottom  string             `json:"bottom"`
}
