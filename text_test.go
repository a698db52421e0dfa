package noticeharvest_test

import (
	"testing"

	"github.com/fwojciec/noticeharvest"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"strips punctuation and joins words", "Amoxicillin 500mg (Batch #2)", "Amoxicillin_500mg_Batch_2"},
		{"keeps hyphens and underscores", "Para-cetamol_Syrup", "Para-cetamol_Syrup"},
		{"trims surrounding space", "  Ibuprofen  ", "Ibuprofen"},
		{"drops path separators", "../etc/passwd", "etcpasswd"},
		{"keeps accented letters", "Crème 5%", "Crème_5"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, noticeharvest.SanitizeFilename(tt.in))
		})
	}
}

func TestToLatin1(t *testing.T) {
	t.Parallel()

	t.Run("keeps latin-1 characters", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Café déjà vu", noticeharvest.ToLatin1("Café déjà vu"))
	})

	t.Run("replaces characters outside latin-1", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Batch ? 20?", noticeharvest.ToLatin1("Batch → 20℃"))
	})

	t.Run("replaces smart quotes rather than dropping them", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "?recall?", noticeharvest.ToLatin1("“recall”"))
	})

	t.Run("replaces invalid utf-8", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "a?b", noticeharvest.ToLatin1("a\xffb"))
	})
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"05/03/2023", "2023-03-05", true},
		{"5/3/2023", "2023-03-05", true},
		{"05-03-2023", "2023-03-05", true},
		{"2023-03-05", "2023-03-05", true},
		{"2023/03/05", "2023-03-05", true},
		{"2023-03", "2023-03-01", true},
		{"2021", "2021-01-01", true},
		{"12 June 2024", "2024-06-12", true},
		{"June 12, 2024", "2024-06-12", true},
		{" 05/03/2023 ", "2023-03-05", true},
		{"not a date", "", false},
		{"31/02/2023", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, ok := noticeharvest.ParseDate(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
