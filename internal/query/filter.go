// Package query turns task search text and due-date buckets into SQL predicates.
//
// Predicates built here are owner-agnostic. Callers must always AND them with
// an owner constraint before running them against the tasks table.
package query

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// DueDateBucket names a fixed due-date range relative to the current day.
type DueDateBucket string

const (
	BucketAll      DueDateBucket = "all"
	BucketToday    DueDateBucket = "today"
	BucketThisWeek DueDateBucket = "this-week"
	BucketUpcoming DueDateBucket = "upcoming"
	BucketOverdue  DueDateBucket = "overdue"
)

const likeEscape = "!"

// ParseBucket maps a query-string value to a bucket. Empty and unknown
// values mean no date constraint.
func ParseBucket(s string) DueDateBucket {
	switch b := DueDateBucket(strings.ToLower(strings.TrimSpace(s))); b {
	case BucketToday, BucketThisWeek, BucketUpcoming, BucketOverdue:
		return b
	default:
		return BucketAll
	}
}

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// BucketRange returns the half-open [from, to) due-date range of bucket
// relative to now. A nil bound is open.
func BucketRange(bucket DueDateBucket, now time.Time) (from, to *time.Time) {
	today := StartOfDay(now)

	switch bucket {
	case BucketToday:
		tomorrow := today.AddDate(0, 0, 1)
		return &today, &tomorrow
	case BucketThisWeek:
		sunday := today.AddDate(0, 0, -int(today.Weekday()))
		nextSunday := sunday.AddDate(0, 0, 7)
		return &sunday, &nextSunday
	case BucketUpcoming:
		return &today, nil
	case BucketOverdue:
		return nil, &today
	default:
		return nil, nil
	}
}

// BuildPredicate combines a case-insensitive title/description search and a
// due-date bucket with AND. Overdue additionally excludes completed tasks.
func BuildPredicate(search string, bucket DueDateBucket, now time.Time) sq.Sqlizer {
	pred := sq.And{}

	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		pred = append(pred, sq.Or{
			sq.Expr("LOWER(tasks.title) LIKE ? ESCAPE '"+likeEscape+"'", pattern),
			sq.Expr("LOWER(tasks.description) LIKE ? ESCAPE '"+likeEscape+"'", pattern),
		})
	}

	from, to := BucketRange(bucket, now)
	if from != nil {
		pred = append(pred, sq.GtOrEq{"tasks.due_date": *from})
	}
	if to != nil {
		pred = append(pred, sq.Lt{"tasks.due_date": *to})
	}
	if bucket == BucketOverdue {
		pred = append(pred, sq.Eq{"tasks.completed": false})
	}

	return pred
}

func escapeLike(s string) string {
	r := strings.NewReplacer(
		likeEscape, likeEscape+likeEscape,
		"%", likeEscape+"%",
		"_", likeEscape+"_",
	)
	return r.Replace(s)
}
