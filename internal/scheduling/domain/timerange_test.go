package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTimeRange_RejectsInvertedAndEmpty(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	_, err := NewTimeRange(now, now)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = NewTimeRange(now.Add(time.Hour), now)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestTimeRange_OverlapsIsSymmetric(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		a, b TimeRange
		want bool
	}{
		{
			name: "partial overlap",
			a:    TimeRange{Start: base, End: base.Add(time.Hour)},
			b:    TimeRange{Start: base.Add(30 * time.Minute), End: base.Add(2 * time.Hour)},
			want: true,
		},
		{
			name: "containment",
			a:    TimeRange{Start: base, End: base.Add(2 * time.Hour)},
			b:    TimeRange{Start: base.Add(30 * time.Minute), End: base.Add(time.Hour)},
			want: true,
		},
		{
			name: "touching boundaries do not overlap",
			a:    TimeRange{Start: base, End: base.Add(time.Hour)},
			b:    TimeRange{Start: base.Add(time.Hour), End: base.Add(2 * time.Hour)},
			want: false,
		},
		{
			name: "disjoint",
			a:    TimeRange{Start: base, End: base.Add(time.Hour)},
			b:    TimeRange{Start: base.Add(3 * time.Hour), End: base.Add(4 * time.Hour)},
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a))
		})
	}
}

func TestTimeRange_Intersect(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	a := TimeRange{Start: base, End: base.Add(time.Hour)}
	b := TimeRange{Start: base.Add(30 * time.Minute), End: base.Add(2 * time.Hour)}

	got := a.Intersect(b)
	assert.Equal(t, base.Add(30*time.Minute), got.Start)
	assert.Equal(t, base.Add(time.Hour), got.End)
}

func TestTimeRange_GapTo(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	a := TimeRange{Start: base, End: base.Add(time.Hour)}
	later := TimeRange{Start: base.Add(70 * time.Minute), End: base.Add(2 * time.Hour)}

	assert.Equal(t, 10*time.Minute, a.GapTo(later))
	assert.Equal(t, 10*time.Minute, later.GapTo(a))

	touching := TimeRange{Start: base.Add(time.Hour), End: base.Add(2 * time.Hour)}
	assert.Equal(t, time.Duration(0), a.GapTo(touching))
	assert.True(t, a.Touches(touching))
}
