package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSemicolonCSV(t *testing.T) {
	data := "\"fixed acidity\";\"quality\"\r\n7.4;5\r\n\r\n7.8;6\r\n"

	raw, err := ParseSemicolonCSV(data)
	require.NoError(t, err)
	require.Equal(t, []string{"fixed acidity", "quality"}, raw.Header)
	require.Equal(t, [][]string{{"7.4", "5"}, {"7.8", "6"}}, raw.Rows)
}

func TestParseSemicolonCSV_BareLF(t *testing.T) {
	raw, err := ParseSemicolonCSV("a;b\n1;2\n")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, raw.Header)
	require.Len(t, raw.Rows, 1)
}

func TestParseSemicolonCSV_Empty(t *testing.T) {
	_, err := ParseSemicolonCSV("\r\n\r\n")
	require.Error(t, err)
}

func TestParseSemicolonCSV_RaggedRow(t *testing.T) {
	_, err := ParseSemicolonCSV("a;b\r\n1;2;3\r\n")
	require.Error(t, err)
	require.Contains(t, err.Error(), "fields")
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"fixed acidity", "fixed_acidity"},
		{"  quality  ", "quality"},
		{" free sulfur dioxide ", "free_sulfur_dioxide"},
		{"pH", "pH"},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFrameFromRaw_NormalizedUniqueNames(t *testing.T) {
	raw, err := ParseSemicolonCSV("\"fixed acidity\"; volatile acidity ;quality\r\n7.4;0.7;5\r\n")
	require.NoError(t, err)

	frame, err := FrameFromRaw(raw)
	require.NoError(t, err)

	for _, name := range frame.ColumnNames() {
		require.Equal(t, strings.TrimSpace(name), name)
		require.NotContains(t, name, " ")
	}
	require.Equal(t, []string{"fixed_acidity", "volatile_acidity", "quality"}, frame.ColumnNames())
}

func TestFrameFromRaw_DuplicateAfterNormalization(t *testing.T) {
	raw, err := ParseSemicolonCSV("a b;a  b\r\n1;2\r\n")
	require.NoError(t, err)
	// "a b" and "a  b" both normalize around spaces; only exact
	// duplicates collide.
	_, err = FrameFromRaw(raw)
	require.NoError(t, err)

	raw, err = ParseSemicolonCSV("a b; a b\r\n1;2\r\n")
	require.NoError(t, err)
	_, err = FrameFromRaw(raw)
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate")
}

func TestWineTransform(t *testing.T) {
	frame := wineFrame(t, "7.4;0.70;0.00;1.9;0.076;11;34;0.9978;3.51;0.56;9.4;5")

	typed, err := WineTransform(frame)
	require.NoError(t, err)

	for _, name := range WineMeasurementColumns {
		col, ok := typed.Column(name)
		require.True(t, ok, name)
		require.Equal(t, TypeFloat, col.Type, name)
	}
	label, ok := typed.Column(WineLabelColumn)
	require.True(t, ok)
	require.Equal(t, TypeInt, label.Type)
	require.Equal(t, []int{5}, label.Ints())
}

func TestWineTransform_InvalidCell(t *testing.T) {
	frame := wineFrame(t, "bad;0.70;0.00;1.9;0.076;11;34;0.9978;3.51;0.56;9.4;5")

	_, err := WineTransform(frame)
	require.Error(t, err)
	require.Contains(t, err.Error(), "fixed_acidity")
}

// wineFrame builds a single-row frame with the full wine header.
func wineFrame(t *testing.T, row string) *Frame {
	t.Helper()
	header := "fixed acidity;volatile acidity;citric acid;residual sugar;chlorides;" +
		"free sulfur dioxide;total sulfur dioxide;density;pH;sulphates;alcohol;quality"
	raw, err := ParseSemicolonCSV(header + "\r\n" + row + "\r\n")
	require.NoError(t, err)
	frame, err := FrameFromRaw(raw)
	require.NoError(t, err)
	return frame
}
