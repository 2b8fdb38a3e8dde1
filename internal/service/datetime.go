package service

import (
	"errors"
	"strings"
	"time"
)

// ErrBadDateTime reports user input that matched none of the known
// date/time layouts.
var ErrBadDateTime = errors.New("unrecognized date/time format")

// Layouts accepted for user-entered deadlines, day-first forms before
// ISO ones.
var dateTimeLayouts = []string{
	"02.01.2006 15:04",
	"02.01.2006",
	"02 Jan 2006 15:04",
	"02 Jan 2006",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC3339,
}

// ParseDateTime parses free-form date/time input and normalizes it to
// UTC. Input without an explicit zone is taken as UTC.
func ParseDateTime(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, ErrBadDateTime
	}
	for _, layout := range dateTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, text, time.UTC); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, ErrBadDateTime
}
