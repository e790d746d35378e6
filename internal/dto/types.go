package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateOnlyLayout is the calendar-date form accepted for due dates.
const DateOnlyLayout = "2006-01-02"

var ErrInvalidDate = errors.New("date must be RFC3339 or YYYY-MM-DD")

// ParseDate parses an RFC3339 timestamp or a calendar date. Calendar dates
// are taken as midnight UTC. The result is always in UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.ParseInLocation(DateOnlyLayout, s, time.UTC); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// OptionalTime distinguishes an absent JSON field from an explicit null.
// Set reports the field was present; Null reports it was null or "".
type OptionalTime struct {
	Set  bool
	Null bool
	Time time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidDate
	}
	if strings.TrimSpace(s) == "" {
		o.Null = true
		return nil
	}

	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	o.Time = t
	return nil
}

// Ptr returns the time when a value was given, nil otherwise.
func (o OptionalTime) Ptr() *time.Time {
	if !o.Set || o.Null {
		return nil
	}
	t := o.Time
	return &t
}

// ID is a record identifier accepted as a JSON number or numeric string.
type ID uint64

var ErrInvalidID = errors.New("id must be a positive integer")

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*id = 0
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}

	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return ErrInvalidID
	}
	*id = ID(v)
	return nil
}

// MessageResponse is a plain confirmation body
type MessageResponse struct {
	Message string `json:"message"`
}

func firstID(ids ...*ID) uint64 {
	for _, id := range ids {
		if id != nil && *id != 0 {
			return uint64(*id)
		}
	}
	return 0
}
