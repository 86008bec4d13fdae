// Package format renders dashboard numbers for terminals and tables.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Printer formats numbers for one locale.
type Printer struct {
	p *message.Printer
}

// New returns a Printer for tag.
func New(tag language.Tag) *Printer {
	return &Printer{p: message.NewPrinter(tag)}
}

var std = New(language.AmericanEnglish)

// Default returns the en-US printer used by the CLI.
func Default() *Printer { return std }

// Number renders n rounded to a whole number with grouping separators.
func (f *Printer) Number(n float64) string {
	return f.p.Sprintf("%.0f", clean(n))
}

// Currency renders n as dollars and cents.
func (f *Printer) Currency(n float64) string {
	n = clean(n)
	if n < 0 {
		return "-" + f.p.Sprintf("$%.2f", -n)
	}
	return f.p.Sprintf("$%.2f", n)
}

// Percent renders a value already expressed in percent, e.g. 12.5 -> "12.5%".
func (f *Printer) Percent(n float64) string {
	return f.p.Sprintf("%.1f%%", clean(n))
}

// Signed renders a percent change with an explicit sign.
func (f *Printer) Signed(n float64) string {
	n = clean(n)
	if n > 0 {
		return "+" + f.Percent(n)
	}
	return f.Percent(n)
}

// Compact renders n with a K/M/B suffix for chart axes and summary cards.
func (f *Printer) Compact(n float64) string {
	n = clean(n)
	abs := math.Abs(n)
	switch {
	case abs >= 1e9:
		return f.p.Sprintf("%.1fB", n/1e9)
	case abs >= 1e6:
		return f.p.Sprintf("%.1fM", n/1e6)
	case abs >= 1e3:
		return f.p.Sprintf("%.1fK", n/1e3)
	default:
		return f.p.Sprintf("%.0f", n)
	}
}

// clean maps NaN and infinities to zero.
func clean(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

func Number(n float64) string   { return std.Number(n) }
func Currency(n float64) string { return std.Currency(n) }
func Percent(n float64) string  { return std.Percent(n) }
func Signed(n float64) string   { return std.Signed(n) }
func Compact(n float64) string  { return std.Compact(n) }
