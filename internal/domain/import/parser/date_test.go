package parser

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_EquivalentGrammars(t *testing.T) {
	want := time.Date(2025, time.October, 4, 0, 0, 0, 0, time.UTC)

	inputs := []string{
		"2025-10-04",
		"04/10/2025",
		"04-Oct-2025",
		"04-oct-25",
		"04 Oct 2025",
		"4 October 2025",
		"4 OCTOBER 2025",
		"Oct 04, 2025",
		"Oct 4, 2025",
		"  04   Oct  2025 ",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got, err := ParseDate(input)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
		})
	}
}

func TestParseDate_TwoDigitYearPivot(t *testing.T) {
	got, err := ParseDate("01-Jan-68")
	require.NoError(t, err)
	assert.Equal(t, 2068, got.Year())

	got, err = ParseDate("01-Jan-69")
	require.NoError(t, err)
	assert.Equal(t, 1969, got.Year())
}

func TestParseDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "tomorrow", "10/04", "2025-13-01", "31/02/2025", "Octember 4, 2025"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDate(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidDate))
		})
	}
}

func TestIsDateLike(t *testing.T) {
	assert.True(t, IsDateLike("2025-10-04"))
	assert.True(t, IsDateLike("04/10/2025"))
	assert.True(t, IsDateLike("04-Oct-25"))
	assert.True(t, IsDateLike("4 October 2025"))
	assert.True(t, IsDateLike("Oct 4, 2025"))
	assert.False(t, IsDateLike("150.00"))
	assert.False(t, IsDateLike("Date"))
	assert.False(t, IsDateLike("04 Oct 2025 Cafe"))
}
