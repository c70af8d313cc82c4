// pkg/cron/analytics_snapshot.go
package cron

import (
	"encoding/json"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/datatypes"

	"homevista_backend/internal/model"
	"homevista_backend/pkg/aggregate"
	"homevista_backend/pkg/database"
)

// InitAnalyticsSnapshotCron captures a dashboard summary every night so
// the back office can show the previous close next to live numbers.
func InitAnalyticsSnapshotCron() {
	c := cron.New()

	// Her gece saat 02:00
	_, err := c.AddFunc("0 2 * * *", CaptureAnalyticsSnapshot)
	if err != nil {
		log.Printf("Could not initialize analytics snapshot cron: %v", err)
		return
	}

	c.Start()
}

// CaptureAnalyticsSnapshot recomputes the summary over the full catalogue
// and persists it as an AnalyticsSnapshot row.
func CaptureAnalyticsSnapshot() {
	var properties []model.Property
	if err := database.GetDB().Find(&properties).Error; err != nil {
		log.Printf("Error fetching properties for analytics snapshot: %v", err)
		return
	}

	now := time.Now()
	summary := aggregate.Summarize(model.ToListings(properties), now)

	payload, err := json.Marshal(summary)
	if err != nil {
		log.Printf("Error serializing analytics snapshot: %v", err)
		return
	}

	snapshot := model.AnalyticsSnapshot{
		CapturedAt: now,
		TotalCount: summary.TotalCount,
		Payload:    datatypes.JSON(payload),
	}

	if err := database.GetDB().Create(&snapshot).Error; err != nil {
		log.Printf("Error saving analytics snapshot: %v", err)
	}
}
