package domain

import "time"

// Indicator defines one KPI: its owning area, measurement unit, expected
// reporting frequency and whether reported values are broken down by program.
type Indicator struct {
	ID                       int64     `db:"id" json:"id"`
	AreaID                   int64     `db:"area_id" json:"area_id"`
	SubUnitID                *int64    `db:"sub_unit_id" json:"sub_unit_id,omitempty"`
	CategoryID               *int64    `db:"category_id" json:"category_id,omitempty"`
	Code                     string    `db:"code" json:"code"`
	Name                     string    `db:"name" json:"name"`
	Description              *string   `db:"description" json:"description,omitempty"`
	Formula                  *string   `db:"formula" json:"formula,omitempty"`
	UnitID                   int64     `db:"unit_id" json:"unit_id"`
	FrequencyID              int64     `db:"frequency_id" json:"frequency_id"`
	SourceID                 *int64    `db:"source_id" json:"source_id,omitempty"`
	RequiresProgramBreakdown bool      `db:"requires_program_breakdown" json:"requires_program_breakdown"`
	Active                   bool      `db:"active" json:"active"`
	CreatedAt                time.Time `db:"created_at" json:"created_at"`
	UpdatedAt                time.Time `db:"updated_at" json:"updated_at"`
}
