package parser

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDate(t *testing.T) {
	t.Run("day month year inside text", func(t *testing.T) {
		line := "04 Oct 2025 Grocery Store -450.00"
		d, span, ok := FindDate(line)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC), d)
		assert.Equal(t, "04 Oct 2025", line[span.Start:span.End])
	})

	t.Run("iso preferred over later grammars", func(t *testing.T) {
		line := "Paid 12 Jan 2024 settled 2024-01-15"
		d, _, ok := FindDate(line)
		require.True(t, ok)
		assert.Equal(t, 15, d.Day())
	})

	t.Run("unparseable match falls through to next grammar", func(t *testing.T) {
		line := "2025-13-45 ref, 3 March 2025 Cafe 10.00"
		d, _, ok := FindDate(line)
		require.True(t, ok)
		assert.Equal(t, time.March, d.Month())
	})

	t.Run("no date", func(t *testing.T) {
		_, _, ok := FindDate("Opening balance 1,000.00")
		assert.False(t, ok)
	})
}

func TestFindLastAmount(t *testing.T) {
	t.Run("keeps the right-most token", func(t *testing.T) {
		line := "Cafe 12.00 tip 3.00 total -15.00"
		amt, span, ok := FindLastAmount(line)
		require.True(t, ok)
		assert.True(t, decimal.RequireFromString("-15.00").Equal(amt))
		assert.Equal(t, "-15.00", line[span.Start:span.End])
	})

	t.Run("trailing date wins over an earlier amount", func(t *testing.T) {
		line := "-450.00 Grocery Store 2025-10-04"
		_, dateSpan, ok := FindDate(line)
		require.True(t, ok)

		_, span, ok := FindLastAmount(line)
		require.True(t, ok)
		assert.True(t, span.Overlaps(dateSpan))
	})

	t.Run("amount followed by a suffix", func(t *testing.T) {
		line := "Grocery 450.00Dr DEBIT"
		amt, span, ok := FindLastAmount(line)
		require.True(t, ok)
		assert.True(t, decimal.RequireFromString("450").Equal(amt))
		assert.Equal(t, "450.00", line[span.Start:span.End])
	})

	t.Run("no digits", func(t *testing.T) {
		_, _, ok := FindLastAmount("Opening balance")
		assert.False(t, ok)
	})
}

func TestSpan(t *testing.T) {
	a := Span{Start: 0, End: 5}
	b := Span{Start: 5, End: 9}
	c := Span{Start: 4, End: 6}

	assert.False(t, a.Overlaps(b))
	assert.True(t, a.Before(b))
	assert.True(t, a.Overlaps(c))
	assert.False(t, b.Before(a))
}
