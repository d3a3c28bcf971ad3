package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"shareit/internal/models"
)

func TestWriteReport(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	bookings := []*models.BookingResponse{
		{
			ID:     1,
			Start:  start,
			End:    start.Add(48 * time.Hour),
			Status: "APPROVED",
			Item:   models.ItemSummary{ID: 3, Name: "Drill"},
			Booker: models.UserSummary{ID: 5, Name: "Alice", Email: "alice@example.com"},
		},
		{
			ID:     2,
			Start:  start.Add(-time.Hour),
			End:    start,
			Status: "WAITING",
			Item:   models.ItemSummary{ID: 4, Name: "Saw"},
			Booker: models.UserSummary{ID: 6, Name: "Bob", Email: "bob@example.com"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, bookings))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Bookings")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "Status", rows[0][6])

	assert.Equal(t, "Drill", rows[1][1])
	assert.Equal(t, "Alice", rows[1][2])
	assert.Equal(t, "APPROVED", rows[1][6])

	assert.Equal(t, "Saw", rows[2][1])
	assert.Equal(t, "WAITING", rows[2][6])
}

func TestWriteReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, nil))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Bookings")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
