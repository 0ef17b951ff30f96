package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevisionKindUnmarshal(t *testing.T) {
	cases := []struct {
		raw  string
		want RevisionKind
	}{
		{`"ADD"`, RevisionAdded},
		{`"added"`, RevisionAdded},
		{`"CREATE"`, RevisionAdded},
		{`"MODIFY"`, RevisionModified},
		{`"updated"`, RevisionModified},
		{`"DELETE"`, RevisionDeleted},
		{`"removed"`, RevisionDeleted},
		{`" delete "`, RevisionDeleted},
		{`"something-else"`, RevisionUnknown},
	}

	for _, tc := range cases {
		var kind RevisionKind
		require.NoError(t, json.Unmarshal([]byte(tc.raw), &kind))
		assert.Equal(t, tc.want, kind, "raw %s", tc.raw)
	}
}

func TestRevisionKindMarshal(t *testing.T) {
	data, err := json.Marshal(RevisionDeleted)
	require.NoError(t, err)
	assert.Equal(t, `"DELETE"`, string(data))
}

func TestActivityEntryUnmarshalISOTimestamp(t *testing.T) {
	raw := `{"revisionType":"ADD","vehicleNumber":"KA05MX1234","timestamp":"2026-08-29T10:30:00Z"}`

	var entry ActivityEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &entry))
	assert.Equal(t, RevisionAdded, entry.RevisionType)
	assert.Equal(t, "KA05MX1234", entry.VehicleNumber)
	assert.Equal(t, time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC), entry.Timestamp)
}

func TestActivityEntryUnmarshalMillisTimestamp(t *testing.T) {
	raw := `{"revisionType":"DELETE","vehicleNumber":"UP12AB5678","timestamp":1787000000000}`

	var entry ActivityEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &entry))
	assert.Equal(t, RevisionDeleted, entry.RevisionType)
	assert.Equal(t, time.UnixMilli(1787000000000).Unix(), entry.Timestamp.Unix())
}

func TestActivityEntryUnmarshalBadTimestamp(t *testing.T) {
	raw := `{"revisionType":"ADD","vehicleNumber":"X","timestamp":"yesterday"}`

	var entry ActivityEntry
	err := json.Unmarshal([]byte(raw), &entry)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid timestamp")
}

func TestVehicleListPageDecode(t *testing.T) {
	raw := `{"vehicles":[{"vehicleNumber":"KA05MX1234","fcExpiryDate":"2026-10-01","insuranceExpiryDate":"2026-11-15","permitExpiryDate":"2027-01-20","taxDueDate":"2026-09-30","pollutionCertificateExpiryDate":"2026-12-05","contactNumber":"+919876543210"}],"totalVehicles":24}`

	var page VehicleListPage
	require.NoError(t, json.Unmarshal([]byte(raw), &page))
	assert.Equal(t, 24, page.TotalVehicles)
	require.Len(t, page.Vehicles, 1)
	assert.Equal(t, "KA05MX1234", page.Vehicles[0].VehicleNumber)
	assert.Equal(t, "2026-12-05", page.Vehicles[0].PollutionCertificateExpiryDate)
}
