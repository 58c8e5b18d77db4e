package polar

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTable(t *testing.T) {
	t.Parallel()

	content := "TWA\\TWS 0 6 8 10\n" +
		"45 0 5.1 6.2 6.9\n"

	points, err := ParseTable(content)
	require.NoError(t, err)

	want := []Point{
		{TrueWindAngle: 45, TrueWindSpeed: 6, BoatSpeed: 5.1},
		{TrueWindAngle: 45, TrueWindSpeed: 8, BoatSpeed: 6.2},
		{TrueWindAngle: 45, TrueWindSpeed: 10, BoatSpeed: 6.9},
	}
	if diff := cmp.Diff(want, points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTableSkipsBadLinesAndCells(t *testing.T) {
	t.Parallel()

	content := `TWA\TWS 0 6 8
45 0 5.1 6.2
not-an-angle 0 9.9 9.9
60 0 bad 7.0

90 0 6.5 7.5
`
	points, err := ParseTable(content)
	require.NoError(t, err)

	// Line 3 dropped whole; the bad cell on line 4 dropped individually.
	want := []Point{
		{TrueWindAngle: 45, TrueWindSpeed: 6, BoatSpeed: 5.1},
		{TrueWindAngle: 45, TrueWindSpeed: 8, BoatSpeed: 6.2},
		{TrueWindAngle: 60, TrueWindSpeed: 8, BoatSpeed: 7.0},
		{TrueWindAngle: 90, TrueWindSpeed: 6, BoatSpeed: 6.5},
		{TrueWindAngle: 90, TrueWindSpeed: 8, BoatSpeed: 7.5},
	}
	assert.Equal(t, want, points)
}

func TestParseTableFormatErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"empty input", ""},
		{"header only", "TWA\\TWS 0 6 8\n"},
		{"blank lines only", "\n\n\n"},
		{"no usable wind-speed columns", "TWA\\TWS 0 a b c\n45 0 5.1 6.2 6.9\n"},
		{"header too short", "TWA\\TWS\n45 0 5.1\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseTable(tt.content)
			assert.ErrorIs(t, err, ErrFormat)
		})
	}
}

func TestParseTableTabDelimited(t *testing.T) {
	t.Parallel()

	content := "TWA\\TWS\t0\t10\t20\n52\t0\t6.2\t7.8\n"
	points, err := ParseTable(content)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, Point{TrueWindAngle: 52, TrueWindSpeed: 10, BoatSpeed: 6.2}, points[0])
	assert.Equal(t, Point{TrueWindAngle: 52, TrueWindSpeed: 20, BoatSpeed: 7.8}, points[1])
}

func TestGroupByWindSpeed(t *testing.T) {
	t.Parallel()

	points := []Point{
		{TrueWindAngle: 90, TrueWindSpeed: 10, BoatSpeed: 7.5},
		{TrueWindAngle: 45, TrueWindSpeed: 6, BoatSpeed: 5.1},
		{TrueWindAngle: 45, TrueWindSpeed: 10, BoatSpeed: 6.9},
		{TrueWindAngle: 90, TrueWindSpeed: 6, BoatSpeed: 6.5},
	}

	curves := GroupByWindSpeed(points)
	require.Len(t, curves, 2)

	assert.Equal(t, 6.0, curves[0].TrueWindSpeed)
	assert.Equal(t, []CurvePoint{{Angle: 45, BoatSpeed: 5.1}, {Angle: 90, BoatSpeed: 6.5}}, curves[0].Points)

	assert.Equal(t, 10.0, curves[1].TrueWindSpeed)
	assert.Equal(t, []CurvePoint{{Angle: 45, BoatSpeed: 6.9}, {Angle: 90, BoatSpeed: 7.5}}, curves[1].Points)

	assert.Empty(t, GroupByWindSpeed(nil))
}
