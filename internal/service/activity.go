package service

import (
	"fmt"
	"math"
	"time"

	"github.com/ElephaSolutions/rtoappfrontend/internal/models"
)

// RelativeTime renders an activity timestamp the way the dashboard feed
// shows it. Differences round up: 90 minutes ago reads "2 hours ago".
func RelativeTime(t, now time.Time) string {
	diff := now.Sub(t)

	if hours := diff.Hours(); hours > 1 {
		return fmt.Sprintf("%d hours ago", int(math.Ceil(hours)))
	}
	if minutes := diff.Minutes(); minutes > 1 {
		return fmt.Sprintf("%d minutes ago", int(math.Ceil(minutes)))
	}
	seconds := math.Ceil(diff.Seconds())
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d seconds ago", int(seconds))
}

// ActivityLabel is the verb shown next to a feed row. The mixed casing
// matches the original UI copy.
func ActivityLabel(kind models.RevisionKind) string {
	switch kind {
	case models.RevisionAdded:
		return "Added"
	case models.RevisionModified:
		return "updated"
	case models.RevisionDeleted:
		return "deleted"
	default:
		return "changed"
	}
}

// ActivityColor is the CSS class suffix for the feed row's indicator dot.
func ActivityColor(kind models.RevisionKind) string {
	switch kind {
	case models.RevisionAdded:
		return "green"
	case models.RevisionModified:
		return "orange"
	case models.RevisionDeleted:
		return "red"
	default:
		return "gray"
	}
}
