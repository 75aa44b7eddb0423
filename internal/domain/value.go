package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NoProgramKey is the sentinel uniqueness key for values and targets reported
// without a program. Real program ids start at 1, so the sentinel can never
// collide and "no program" counts as one distinct key.
const NoProgramKey int64 = 0

// ProgramKey maps an optional program reference onto the uniqueness key column.
func ProgramKey(programID *int64) int64 {
	if programID == nil {
		return NoProgramKey
	}
	return *programID
}

// Value is one reported measurement: the ledger fact row. AreaID is always the
// owning indicator's area, never caller-supplied.
type Value struct {
	ID          int64           `db:"id" json:"id"`
	IndicatorID int64           `db:"indicator_id" json:"indicator_id"`
	PeriodID    int64           `db:"period_id" json:"period_id"`
	AreaID      int64           `db:"area_id" json:"area_id"`
	ProgramID   *int64          `db:"program_id" json:"program_id,omitempty"`
	ProgramKey  int64           `db:"program_key" json:"-"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Note        *string         `db:"note" json:"note,omitempty"`
	BatchID     *uuid.UUID      `db:"batch_id" json:"batch_id,omitempty"`
	UserID      int64           `db:"user_id" json:"user_id"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// UpsertResult reports the written row and whether the write inserted a new
// row or replaced an existing one; batch loaders reconcile their counters on it.
type UpsertResult struct {
	ID       int64 `json:"id"`
	Inserted bool  `json:"inserted"`
}

// Target is a goal value keyed exactly like the ledger.
type Target struct {
	ID          int64           `db:"id" json:"id"`
	IndicatorID int64           `db:"indicator_id" json:"indicator_id"`
	PeriodID    int64           `db:"period_id" json:"period_id"`
	ProgramID   *int64          `db:"program_id" json:"program_id,omitempty"`
	ProgramKey  int64           `db:"program_key" json:"-"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Comment     *string         `db:"comment" json:"comment,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}
