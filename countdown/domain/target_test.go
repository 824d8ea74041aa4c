package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndOfMonth(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)

	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"meio do mes", time.Date(2026, time.October, 15, 9, 30, 0, 0, saoPaulo), time.Date(2026, time.October, 31, 23, 59, 59, 0, saoPaulo)},
		{"fevereiro bissexto", time.Date(2028, time.February, 3, 0, 0, 0, 0, time.UTC), time.Date(2028, time.February, 29, 23, 59, 59, 0, time.UTC)},
		{"fevereiro comum", time.Date(2026, time.February, 28, 23, 59, 59, 0, time.UTC), time.Date(2026, time.February, 28, 23, 59, 59, 0, time.UTC)},
		{"dezembro vira o ano", time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, time.December, 31, 23, 59, 59, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EndOfMonth(tc.now)
			assert.True(t, got.Equal(tc.want), "got %s want %s", got, tc.want)
			assert.Equal(t, tc.now.Location(), got.Location())
		})
	}
}

func TestParseTarget_EpochMillis(t *testing.T) {
	got, err := ParseTarget("1793516399000", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, int64(1793516399000), got.UnixMilli())
}

func TestParseTarget_Layouts(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)

	got, err := ParseTarget("2026-10-31T23:59:59-03:00", nil)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2026, time.October, 31, 23, 59, 59, 0, loc)))

	got, err = ParseTarget("2026-10-31 23:59:59", loc)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2026, time.October, 31, 23, 59, 59, 0, loc)))

	got, err = ParseTarget(" 2026-11-01 ", loc)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2026, time.November, 1, 0, 0, 0, 0, loc)))
}

func TestParseTarget_Invalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "amanhã", "NaN", "-5", "2026-13-45"} {
		_, err := ParseTarget(raw, time.UTC)
		assert.True(t, errors.Is(err, ErrInvalidTarget), "raw=%q", raw)
	}
}
