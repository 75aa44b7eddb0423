package domain

import "time"

type Area struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Program is a sub-division under one specific area; names are unique per area.
type Program struct {
	ID          int64     `db:"id" json:"id"`
	AreaID      int64     `db:"area_id" json:"area_id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type Unit struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type Frequency struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type Source struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Period is one reporting window. Monthly, quarterly, semestral and annual
// shapes share the entity through nullable discriminators; Label is the unique
// human handle ("2025-1", "2025-08").
type Period struct {
	ID          int64      `db:"id" json:"id"`
	Label       string     `db:"label" json:"label"`
	Year        int        `db:"year" json:"year"`
	Month       *int       `db:"month" json:"month,omitempty"`
	Quarter     *int       `db:"quarter" json:"quarter,omitempty"`
	Semester    *int       `db:"semester" json:"semester,omitempty"`
	FrequencyID int64      `db:"frequency_id" json:"frequency_id"`
	StartsOn    *time.Time `db:"starts_on" json:"starts_on,omitempty"`
	EndsOn      *time.Time `db:"ends_on" json:"ends_on,omitempty"`
}
