package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestAlternative_NeverProposesConflictTime(t *testing.T) {
	for _, slot := range alternativeTimes {
		got, err := SuggestAlternative(slot, PolicyClosest)
		require.NoError(t, err)
		assert.NotEqual(t, slot, got)
	}
}

func TestSuggestAlternative_ClosestPolicy(t *testing.T) {
	tests := []struct {
		conflictTime string
		want         string
	}{
		{"09:00", "08:00"}, // 08:00 is 60 minutes away; 16:00 is 7 hours
		{"06:00", "07:00"},
		{"19:00", "18:00"},
		{"16:00", "17:00"}, // 17:00 (60m) beats 09:00 (7h)
		{"12:00", "09:00"}, // not in the pool; nearest slot wins
	}
	for _, tt := range tests {
		t.Run(tt.conflictTime, func(t *testing.T) {
			got, err := SuggestAlternative(tt.conflictTime, PolicyClosest)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSuggestAlternative_ClosestTieBreaksEarlier(t *testing.T) {
	// 08:00 and 16:00 are not equidistant from anything in the pool, but
	// 12:30 sits 210 minutes from 09:00 and 210 minutes from 16:00.
	got, err := SuggestAlternative("12:30", PolicyClosest)
	require.NoError(t, err)
	assert.Equal(t, "09:00", got)
}

func TestSuggestAlternative_FirstAvailablePolicy(t *testing.T) {
	got, err := SuggestAlternative("06:00", PolicyFirstAvailable)
	require.NoError(t, err)
	assert.Equal(t, "07:00", got)

	got, err = SuggestAlternative("10:00", PolicyFirstAvailable)
	require.NoError(t, err)
	assert.Equal(t, "06:00", got)
}

func TestSuggestAlternative_Deterministic(t *testing.T) {
	first, err := SuggestAlternative("09:00", PolicyClosest)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		got, err := SuggestAlternative("09:00", PolicyClosest)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestSuggestAlternative_UnparseableTimeFallsBack(t *testing.T) {
	got, err := SuggestAlternative("not-a-time", PolicyClosest)
	require.NoError(t, err)
	assert.Equal(t, "06:00", got)
}
