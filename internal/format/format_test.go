package format

import (
	"math"
	"testing"

	"golang.org/x/text/language"
)

func TestFormatters(t *testing.T) {
	tests := []struct {
		name string
		fn   func(float64) string
		in   float64
		want string
	}{
		{"number", Number, 1234567, "1,234,567"},
		{"number zero", Number, 0, "0"},
		{"currency", Currency, 1234.5, "$1,234.50"},
		{"currency negative", Currency, -20, "-$20.00"},
		{"percent", Percent, 12.34, "12.3%"},
		{"signed positive", Signed, 5, "+5.0%"},
		{"signed negative", Signed, -2.5, "-2.5%"},
		{"signed zero", Signed, 0, "0.0%"},
		{"compact small", Compact, 950, "950"},
		{"compact thousands", Compact, 1500, "1.5K"},
		{"compact millions", Compact, 2_400_000, "2.4M"},
		{"compact billions", Compact, 3e9, "3.0B"},
		{"compact negative", Compact, -1500, "-1.5K"},
		{"nan", Currency, math.NaN(), "$0.00"},
		{"inf", Percent, math.Inf(1), "0.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNew_Locale(t *testing.T) {
	p := New(language.German)
	if got := p.Number(1234567); got != "1.234.567" {
		t.Errorf("German Number = %q", got)
	}
}
