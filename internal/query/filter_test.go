package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Friday 2026-10-16 15:30 UTC
var now = time.Date(2026, 10, 16, 15, 30, 0, 0, time.UTC)

func TestParseBucket(t *testing.T) {
	assert.Equal(t, BucketToday, ParseBucket("today"))
	assert.Equal(t, BucketThisWeek, ParseBucket("This-Week"))
	assert.Equal(t, BucketUpcoming, ParseBucket(" upcoming "))
	assert.Equal(t, BucketOverdue, ParseBucket("overdue"))
	assert.Equal(t, BucketAll, ParseBucket("all"))
	assert.Equal(t, BucketAll, ParseBucket(""))
	assert.Equal(t, BucketAll, ParseBucket("next-year"))
}

func TestStartOfDay_UsesUTC(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2026-10-17 02:00 JST is still 2026-10-16 in UTC.
	local := time.Date(2026, 10, 17, 2, 0, 0, 0, tokyo)

	assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), StartOfDay(local))
}

func TestBucketRange(t *testing.T) {
	today := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC)
	nextSunday := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

	from, to := BucketRange(BucketToday, now)
	require.NotNil(t, from)
	require.NotNil(t, to)
	assert.Equal(t, today, *from)
	assert.Equal(t, tomorrow, *to)

	from, to = BucketRange(BucketThisWeek, now)
	assert.Equal(t, sunday, *from)
	assert.Equal(t, nextSunday, *to)

	from, to = BucketRange(BucketUpcoming, now)
	assert.Equal(t, today, *from)
	assert.Nil(t, to)

	from, to = BucketRange(BucketOverdue, now)
	assert.Nil(t, from)
	assert.Equal(t, today, *to)

	from, to = BucketRange(BucketAll, now)
	assert.Nil(t, from)
	assert.Nil(t, to)
}

func TestBucketRange_ThisWeekOnSunday(t *testing.T) {
	sunday := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	from, to := BucketRange(BucketThisWeek, sunday)
	assert.Equal(t, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), *from)
	assert.Equal(t, time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC), *to)
}

func TestBuildPredicate_NoConstraints(t *testing.T) {
	sql, args, err := BuildPredicate("", BucketAll, now).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(1=1)", sql)
	assert.Empty(t, args)
}

func TestBuildPredicate_Search(t *testing.T) {
	sql, args, err := BuildPredicate("  Ship ", BucketAll, now).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "((LOWER(tasks.title) LIKE ? ESCAPE '!' OR LOWER(tasks.description) LIKE ? ESCAPE '!'))", sql)
	assert.Equal(t, []interface{}{"%ship%", "%ship%"}, args)
}

func TestBuildPredicate_SearchEscapesWildcards(t *testing.T) {
	_, args, err := BuildPredicate("100%_done!", BucketAll, now).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "%100!%!_done!!%", args[0])
}

func TestBuildPredicate_Today(t *testing.T) {
	sql, args, err := BuildPredicate("", BucketToday, now).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(tasks.due_date >= ? AND tasks.due_date < ?)", sql)
	require.Len(t, args, 2)
	assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), args[0])
	assert.Equal(t, time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), args[1])
}

func TestBuildPredicate_OverdueExcludesCompleted(t *testing.T) {
	sql, args, err := BuildPredicate("", BucketOverdue, now).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(tasks.due_date < ? AND tasks.completed = ?)", sql)
	assert.Equal(t, []interface{}{time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), false}, args)
}

func TestBuildPredicate_SearchAndBucketCompose(t *testing.T) {
	sql, args, err := BuildPredicate("report", BucketUpcoming, now).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "((LOWER(tasks.title) LIKE ? ESCAPE '!' OR LOWER(tasks.description) LIKE ? ESCAPE '!') AND tasks.due_date >= ?)", sql)
	assert.Len(t, args, 3)
}

func TestOrder(t *testing.T) {
	assert.Equal(t, OrderCreatedDesc, ParseOrder(""))
	assert.Equal(t, OrderCreatedDesc, ParseOrder("whatever"))
	assert.Equal(t, OrderDueDate, ParseOrder("due_date"))
	assert.Equal(t, OrderDueDate, ParseOrder("dueDate"))

	assert.Equal(t, "tasks.created_at DESC, tasks.id DESC", OrderCreatedDesc.Clause())
	assert.Contains(t, OrderDueDate.Clause(), "tasks.due_date ASC")
}
