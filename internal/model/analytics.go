package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnalyticsSnapshot is a persisted dashboard summary captured by the
// nightly job. Payload holds the serialized aggregate.Summary so the
// dashboard can show the previous close without recomputing.
type AnalyticsSnapshot struct {
	gorm.Model
	CapturedAt time.Time      `json:"captured_at" gorm:"index"`
	TotalCount int            `json:"total_count"`
	Payload    datatypes.JSON `json:"payload"`
}
