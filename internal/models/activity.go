package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RevisionKind is the category of change recorded in the activity feed.
// The backend declares only add/modify but emits a third delete variant;
// here it is an explicit three-value enumeration.
type RevisionKind int

const (
	RevisionUnknown RevisionKind = iota
	RevisionAdded
	RevisionModified
	RevisionDeleted
)

func (k RevisionKind) String() string {
	switch k {
	case RevisionAdded:
		return "ADD"
	case RevisionModified:
		return "MODIFY"
	case RevisionDeleted:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// UnmarshalJSON accepts the spellings the backend has been seen to emit.
func (k *RevisionKind) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "ADD", "ADDED", "CREATE", "CREATED":
		*k = RevisionAdded
	case "MODIFY", "MODIFIED", "UPDATE", "UPDATED":
		*k = RevisionModified
	case "DELETE", "DELETED", "REMOVE", "REMOVED":
		*k = RevisionDeleted
	default:
		*k = RevisionUnknown
	}
	return nil
}

func (k RevisionKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// ActivityEntry is one row of the dashboard's recent-activity feed.
type ActivityEntry struct {
	RevisionType  RevisionKind `json:"revisionType"`
	VehicleNumber string       `json:"vehicleNumber"`
	Timestamp     time.Time    `json:"timestamp"`
}

// UnmarshalJSON implements custom unmarshaling so the timestamp survives
// both ISO 8601 strings and epoch-millisecond numbers.
func (a *ActivityEntry) UnmarshalJSON(data []byte) error {
	type Alias ActivityEntry
	aux := &struct {
		Timestamp interface{} `json:"timestamp"`
		*Alias
	}{
		Alias: (*Alias)(a),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if aux.Timestamp != nil {
		ts, err := parseFlexibleTime(aux.Timestamp)
		if err != nil {
			return fmt.Errorf("invalid timestamp: %w", err)
		}
		a.Timestamp = *ts
	}

	return nil
}

// parseFlexibleTime handles both ISO 8601 strings and Unix timestamps (milliseconds)
func parseFlexibleTime(v interface{}) (*time.Time, error) {
	switch val := v.(type) {
	case string:
		formats := []string{
			time.RFC3339,
			time.RFC3339Nano,
			"2006-01-02T15:04:05Z",
			"2006-01-02T15:04:05.000Z",
			"2006-01-02T15:04:05",
		}
		for _, format := range formats {
			if t, err := time.Parse(format, val); err == nil {
				return &t, nil
			}
		}
		if ms, err := strconv.ParseInt(val, 10, 64); err == nil {
			t := time.UnixMilli(ms)
			return &t, nil
		}
		return nil, fmt.Errorf("unable to parse timestamp string: %s", val)
	case float64:
		// JSON numbers are parsed as float64
		t := time.UnixMilli(int64(val))
		return &t, nil
	case int64:
		t := time.UnixMilli(val)
		return &t, nil
	default:
		return nil, fmt.Errorf("unsupported timestamp type: %T", v)
	}
}
