package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"homevista_backend/internal/model"
	"homevista_backend/pkg/aggregate"
	"homevista_backend/pkg/database"
)

// GetDashboardSummary recomputes the aggregate analytics over the full
// catalogue. Nothing here is persisted; the nightly cron stores its own
// snapshots.
func GetDashboardSummary(c *fiber.Ctx) error {
	var properties []model.Property
	if err := database.GetDB().Find(&properties).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": database.MapError(err),
		})
	}

	summary := aggregate.Summarize(model.ToListings(properties), time.Now())

	return c.JSON(summary)
}

// ListAnalyticsSnapshots returns the most recent nightly snapshots,
// newest first.
func ListAnalyticsSnapshots(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 30)
	if limit < 1 || limit > 180 {
		limit = 30
	}

	var snapshots []model.AnalyticsSnapshot
	if err := database.GetDB().
		Order("captured_at desc").
		Limit(limit).
		Find(&snapshots).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": database.MapError(err),
		})
	}

	return c.JSON(snapshots)
}
