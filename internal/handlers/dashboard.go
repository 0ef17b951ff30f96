package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ElephaSolutions/rtoappfrontend/internal/models"
	"github.com/ElephaSolutions/rtoappfrontend/internal/service"
)

type activityRow struct {
	Label         string
	Color         string
	VehicleNumber string
	TimeAgo       string
}

type dashboardData struct {
	pageData
	Metadata  models.FleetMetadata
	Activity  []activityRow
	LoadError bool
}

// Dashboard renders the summary cards, themed quick actions, and the recent
// activity feed. A backend failure degrades to an error banner; the page
// itself still renders.
func (h *PageHandler) Dashboard(c *gin.Context) {
	data := dashboardData{pageData: h.basePageData(c)}
	cookies := cookiesFrom(c)

	metadata, err := h.client.FleetMetadata(c.Request.Context(), cookies)
	if err != nil {
		h.logger.Warn("Failed to load fleet metadata", zap.Error(err))
		data.LoadError = true
	} else {
		data.Metadata = *metadata
	}

	entries, err := h.client.RecentActivity(c.Request.Context(), cookies)
	if err != nil {
		h.logger.Warn("Failed to load recent activity", zap.Error(err))
		data.LoadError = true
	} else {
		now := time.Now()
		for _, entry := range entries {
			data.Activity = append(data.Activity, activityRow{
				Label:         service.ActivityLabel(entry.RevisionType),
				Color:         service.ActivityColor(entry.RevisionType),
				VehicleNumber: entry.VehicleNumber,
				TimeAgo:       service.RelativeTime(entry.Timestamp, now),
			})
		}
	}

	if data.LoadError && data.Alert == "" {
		data.Alert = "Failed to load dashboard data"
	}

	c.HTML(http.StatusOK, "dashboard.html", data)
}
