package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/edarmartinez/job-hunt-os/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSONRoundTrip(t *testing.T) {
	d := models.NewDate(2025, time.September, 5)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-09-05"`, string(data))

	var parsed models.Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, d.Time, parsed.Time)
}

func TestDate_UnmarshalRejectsBadInput(t *testing.T) {
	var d models.Date
	assert.Error(t, json.Unmarshal([]byte(`"05/09/2025"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20250905`), &d))
}

func TestDate_ScanAcceptsTimeAndString(t *testing.T) {
	var d models.Date
	require.NoError(t, d.Scan(time.Date(2025, time.September, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-09-05", d.String())

	var d2 models.Date
	require.NoError(t, d2.Scan("2025-09-05"))
	assert.Equal(t, "2025-09-05", d2.String())

	var d3 models.Date
	assert.Error(t, d3.Scan(42))
}

func TestEnums_IsValid(t *testing.T) {
	assert.True(t, models.EmploymentFullTime.IsValid())
	assert.True(t, models.EmploymentContract.IsValid())
	assert.True(t, models.EmploymentIntern.IsValid())
	assert.False(t, models.EmploymentType("gig").IsValid())

	for _, s := range []models.Stage{
		models.StageWishlist, models.StageApplied, models.StageOA, models.StagePhone,
		models.StageOnsite, models.StageOffer, models.StageRejected, models.StageGhosted,
	} {
		assert.True(t, s.IsValid(), "stage %s", s)
	}
	assert.False(t, models.Stage("daydreaming").IsValid())

	assert.True(t, models.StatusActive.IsValid())
	assert.True(t, models.StatusClosed.IsValid())
	assert.False(t, models.Status("paused").IsValid())
}

func TestEnums_ScanRejectsUnknownValues(t *testing.T) {
	var stage models.Stage
	require.NoError(t, stage.Scan("applied"))
	assert.Equal(t, models.StageApplied, stage)
	assert.Error(t, stage.Scan("daydreaming"))

	var status models.Status
	require.NoError(t, status.Scan([]byte("active")))
	assert.Equal(t, models.StatusActive, status)
	assert.Error(t, status.Scan(7))
}
