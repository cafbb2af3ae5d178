package entity

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DateTimeLayout is the wire format of a zone-less timestamp.
const DateTimeLayout = "2006-01-02T15:04:05"

// DateTime is a timestamp column value. The column stores no zone, so the
// JSON form carries none either.
type DateTime struct {
	time.Time
}

func NewDateTime(t time.Time) DateTime {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	return DateTime{Time: time.Date(y, mo, d, h, mi, s, t.Nanosecond(), time.UTC)}
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateTimeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("datetime: expected a JSON string, got %s", b)
	}
	t, err := time.Parse(DateTimeLayout, string(b[1:len(b)-1]))
	if err != nil {
		return fmt.Errorf("datetime: %w", err)
	}
	d.Time = t
	return nil
}

// ScanTimestamp lets pgx scan a timestamp column directly.
func (d *DateTime) ScanTimestamp(v pgtype.Timestamp) error {
	if !v.Valid {
		return fmt.Errorf("datetime: cannot scan NULL")
	}
	*d = NewDateTime(v.Time)
	return nil
}

func (d DateTime) TimestampValue() (pgtype.Timestamp, error) {
	return pgtype.Timestamp{Time: d.Time, Valid: true}, nil
}

// Value is used by query builders that render literals through driver.Valuer.
func (d DateTime) Value() (driver.Value, error) {
	return d.Time, nil
}
