package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateTime_MarshalJSON_NoZone(t *testing.T) {
	d := NewDateTime(time.Date(2020, 5, 1, 14, 30, 0, 0, time.UTC))

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2020-05-01T14:30:00"`, string(b))
}

func TestDateTime_NewDateTime_KeepsWallClock(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	d := NewDateTime(time.Date(2020, 5, 1, 23, 59, 0, 0, tokyo))

	assert.Equal(t, time.Date(2020, 5, 1, 23, 59, 0, 0, time.UTC), d.Time)
}

func TestDateTime_UnmarshalJSON(t *testing.T) {
	var d DateTime
	require.NoError(t, json.Unmarshal([]byte(`"1997-06-26T14:30:00"`), &d))
	assert.Equal(t, time.Date(1997, 6, 26, 14, 30, 0, 0, time.UTC), d.Time)

	assert.Error(t, json.Unmarshal([]byte(`"1997-06-26T14:30:00Z"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`12`), &d))
}

func TestDateTime_ScanTimestamp(t *testing.T) {
	var d DateTime
	require.NoError(t, d.ScanTimestamp(pgtype.Timestamp{Time: time.Date(2001, 3, 3, 12, 0, 0, 0, time.UTC), Valid: true}))
	assert.Equal(t, "2001-03-03T12:00:00", d.Format(DateTimeLayout))

	assert.Error(t, d.ScanTimestamp(pgtype.Timestamp{}))
}

func TestBook_PublishDateJSON(t *testing.T) {
	b, err := json.Marshal(Book{PublishDate: NewDateTime(time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC))})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"PublishDate":"2020-05-01T00:00:00"`)
}
