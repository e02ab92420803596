package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "Squat", 10, "Squat"},
		{"exact", "Squat", 5, "Squat"},
		{"cut", "Romanian deadlift", 8, "Romania…"},
		{"zero width", "Squat", 0, ""},
		{"only ellipsis", "Squat", 1, "…"},
		{"wide runes", "ベンチプレス", 5, "ベン…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.width)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, VisualWidth(got), max(tt.width, 0))
		})
	}
}

func TestPadRightVisual(t *testing.T) {
	assert.Equal(t, "ID   ", PadRightVisual("ID", 5))
	assert.Equal(t, "Exer…", PadRightVisual("Exercise", 5))
	assert.Equal(t, "日本 ", PadRightVisual("日本", 5))
}

func TestSingleLine(t *testing.T) {
	assert.Equal(t, "felt strong today", SingleLine("felt strong\n today"))
	assert.Equal(t, "a b", SingleLine("a\tb"))
	assert.Equal(t, "plain", SingleLine("plain"))
}
