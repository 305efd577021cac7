package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"
)

// DateFormat is the ISO calendar-date layout used everywhere a date crosses a
// boundary (JSON, redis keys, blocked-date sets).
const DateFormat = "2006-01-02"

// DateKey formats a time as its calendar date.
func DateKey(t time.Time) string {
	return t.Format(DateFormat)
}

// DateSet is the set of administratively blocked ISO dates, stored as a JSONB
// array. Add and Remove are idempotent set union/difference, so concurrent
// admin edits commute by construction.
type DateSet map[string]struct{}

// NewDateSet builds a set from the given ISO dates.
func NewDateSet(dates ...string) DateSet {
	s := DateSet{}
	s.Add(dates...)
	return s
}

// Add inserts the given dates. Adding a present date is a no-op.
func (s DateSet) Add(dates ...string) {
	for _, d := range dates {
		s[d] = struct{}{}
	}
}

// Remove deletes the given dates. Removing an absent date is a no-op.
func (s DateSet) Remove(dates ...string) {
	for _, d := range dates {
		delete(s, d)
	}
}

// Contains reports membership of an ISO date.
func (s DateSet) Contains(date string) bool {
	_, ok := s[date]
	return ok
}

// Sorted returns the dates in ascending order.
func (s DateSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy of the set.
func (s DateSet) Clone() DateSet {
	out := make(DateSet, len(s))
	for d := range s {
		out[d] = struct{}{}
	}
	return out
}

// MarshalJSON encodes the set as a sorted array of ISO dates.
func (s DateSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array of ISO dates.
func (s *DateSet) UnmarshalJSON(data []byte) error {
	var dates []string
	if err := json.Unmarshal(data, &dates); err != nil {
		return err
	}
	*s = NewDateSet(dates...)
	return nil
}

// Value implements driver.Valuer for JSONB storage
func (s DateSet) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner
func (s *DateSet) Scan(value interface{}) error {
	if value == nil {
		*s = DateSet{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}
	return s.UnmarshalJSON(bytes)
}

// ExpandRange returns the inclusive list of ISO dates between start and end.
// Returns an error when end precedes start.
func ExpandRange(start, end time.Time) ([]string, error) {
	start = start.Truncate(24 * time.Hour)
	end = end.Truncate(24 * time.Hour)
	if end.Before(start) {
		return nil, errors.New("range end precedes start")
	}

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, DateKey(d))
	}
	return dates, nil
}

// BlockedDateCalendar is the process-wide singleton holding the blocked-date
// set. A single versioned row (ID = 1) is read, mutated through Add/Remove
// and written back whole. Two admin sessions saving concurrently resolve as
// last-writer-wins on the full set; since every operation is an idempotent
// union or difference, replaying a lost edit converges to the same set.
type BlockedDateCalendar struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Fechas    DateSet   `gorm:"type:jsonb;not null" json:"fechas"`
	Version   int       `gorm:"not null;default:0" json:"version"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BlockedDateCalendar) TableName() string {
	return "fechas_bloqueadas"
}

// BlockedDateCalendarID is the fixed primary key of the singleton row.
const BlockedDateCalendarID = 1
