package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

func TestCompute_BreaksDownWholeUnits(t *testing.T) {
	// 90061 = 86400 + 3600 + 60 + 1
	got := Compute(base.Add(90061*time.Second), base)
	assert.Equal(t, Remaining{Days: 1, Hours: 1, Minutes: 1, Seconds: 1}, got)
}

func TestCompute_PastTargetIsZero(t *testing.T) {
	got := Compute(base.Add(-5*time.Second), base)
	assert.True(t, got.IsZero())
	assert.Equal(t, Remaining{}, got)
}

func TestCompute_EqualTargetIsZero(t *testing.T) {
	assert.True(t, Compute(base, base).IsZero())
}

func TestCompute_ZeroTargetIsElapsed(t *testing.T) {
	assert.True(t, Compute(time.Time{}, base).IsZero())
}

func TestCompute_TruncatesSubSecond(t *testing.T) {
	got := Compute(base.Add(1999*time.Millisecond), base)
	assert.Equal(t, Remaining{Seconds: 1}, got)

	got = Compute(base.Add(400*time.Millisecond), base)
	assert.True(t, got.IsZero(), "menos de 1s deve exibir zero")
}

func TestCompute_IsPure(t *testing.T) {
	target := base.Add(37*time.Hour + 12*time.Minute + 5*time.Second)
	a := Compute(target, base)
	b := Compute(target, base)
	assert.Equal(t, a, b)
}

func TestCompute_FieldRanges(t *testing.T) {
	for s := int64(1); s < 3*secondsPerDay; s += 997 {
		r := Compute(base.Add(time.Duration(s)*time.Second), base)
		require.GreaterOrEqual(t, r.Days, 0)
		require.True(t, r.Hours >= 0 && r.Hours <= 23, "hours=%d", r.Hours)
		require.True(t, r.Minutes >= 0 && r.Minutes <= 59, "minutes=%d", r.Minutes)
		require.True(t, r.Seconds >= 0 && r.Seconds <= 59, "seconds=%d", r.Seconds)
		require.Equal(t, s, r.TotalSeconds())
	}
}

func TestCompute_MonotonicAsNowAdvances(t *testing.T) {
	target := base.Add(2*time.Hour + 300*time.Millisecond)
	prev := Compute(target, base).TotalSeconds()
	for now := base; now.Before(target.Add(10 * time.Second)); now = now.Add(733 * time.Millisecond) {
		cur := Compute(target, now).TotalSeconds()
		require.LessOrEqual(t, cur, prev, "now=%s", now)
		prev = cur
	}
	assert.Equal(t, int64(0), prev)
}

func TestRemaining_String(t *testing.T) {
	assert.Equal(t, "01:01:01:01", Remaining{Days: 1, Hours: 1, Minutes: 1, Seconds: 1}.String())
	assert.Equal(t, "00:00:00:00", Remaining{}.String())
	assert.Equal(t, "123:23:59:09", Remaining{Days: 123, Hours: 23, Minutes: 59, Seconds: 9}.String())
}

func TestPad2(t *testing.T) {
	assert.Equal(t, "07", Pad2(7))
	assert.Equal(t, "00", Pad2(0))
	assert.Equal(t, "42", Pad2(42))
	assert.Equal(t, "100", Pad2(100))
}

func TestStateOf(t *testing.T) {
	assert.Equal(t, StateComplete, StateOf(Remaining{}))
	assert.Equal(t, StateRunning, StateOf(Remaining{Seconds: 1}))
	assert.Equal(t, "complete", StateComplete.String())
	assert.Equal(t, "running", StateRunning.String())
}
