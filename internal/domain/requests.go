package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type UpsertValueRequest struct {
	IndicatorID int64           `json:"indicator_id" validate:"required"`
	PeriodID    int64           `json:"period_id" validate:"required"`
	ProgramID   *int64          `json:"program_id,omitempty"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Note        *string         `json:"note,omitempty"`
	BatchID     *uuid.UUID      `json:"batch_id,omitempty"`
}

type UpsertTargetRequest struct {
	IndicatorID int64           `json:"indicator_id" validate:"required"`
	PeriodID    int64           `json:"period_id" validate:"required"`
	ProgramID   *int64          `json:"program_id,omitempty"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Comment     *string         `json:"comment,omitempty"`
}

type OpenBatchRequest struct {
	AreaID      int64   `json:"area_id" validate:"required"`
	Origin      *string `json:"origin,omitempty"`
	Description *string `json:"description,omitempty"`
}

type RecordFileRequest struct {
	Filename string  `json:"filename" validate:"required"`
	FileType string  `json:"file_type" validate:"required,oneof=csv xlsx"`
	Path     *string `json:"path,omitempty"`
}

type RecordRowErrorRequest struct {
	RowNumber int     `json:"row_number" validate:"required,min=1"`
	Message   string  `json:"message" validate:"required"`
	Payload   *string `json:"payload,omitempty"`
}

type BumpCountersRequest struct {
	RowsOK    int `json:"rows_ok" validate:"min=0"`
	RowsError int `json:"rows_error" validate:"min=0"`
}

type LoadValuesRequest struct {
	Rows []LoadValueRow `json:"rows" validate:"required,min=1,dive"`
}

type LoadValueRow struct {
	RowNumber   int             `json:"row_number" validate:"required,min=1"`
	IndicatorID int64           `json:"indicator_id" validate:"required"`
	PeriodID    int64           `json:"period_id" validate:"required"`
	ProgramID   *int64          `json:"program_id,omitempty"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Note        *string         `json:"note,omitempty"`
}

// LoadReport is the outcome of a bulk load; failed rows are reported, never
// thrown, and do not undo rows that already committed.
type LoadReport struct {
	Inserted int            `json:"inserted"`
	Updated  int            `json:"updated"`
	Failed   []LoadRowError `json:"failed,omitempty"`
}

type LoadRowError struct {
	RowNumber int    `json:"row_number"`
	Message   string `json:"message"`
}

type CreateAreaRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
}

type CreateProgramRequest struct {
	AreaID      int64   `json:"area_id" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
}

type CreatePeriodRequest struct {
	Label       string `json:"label" validate:"required"`
	Year        int    `json:"year" validate:"required,min=2000,max=2100"`
	Month       *int   `json:"month,omitempty" validate:"omitempty,min=1,max=12"`
	Quarter     *int   `json:"quarter,omitempty" validate:"omitempty,min=1,max=4"`
	Semester    *int   `json:"semester,omitempty" validate:"omitempty,min=1,max=2"`
	FrequencyID int64  `json:"frequency_id" validate:"required"`
}

type CreateIndicatorRequest struct {
	AreaID                   int64   `json:"area_id" validate:"required"`
	SubUnitID                *int64  `json:"sub_unit_id,omitempty"`
	CategoryID               *int64  `json:"category_id,omitempty"`
	Code                     string  `json:"code" validate:"required"`
	Name                     string  `json:"name" validate:"required"`
	Description              *string `json:"description,omitempty"`
	Formula                  *string `json:"formula,omitempty"`
	UnitID                   int64   `json:"unit_id" validate:"required"`
	FrequencyID              int64   `json:"frequency_id" validate:"required"`
	SourceID                 *int64  `json:"source_id,omitempty"`
	RequiresProgramBreakdown bool    `json:"requires_program_breakdown"`
}
