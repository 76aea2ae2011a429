package analyzer

import (
	"fmt"
	"unicode"
)

// TextStats summarises the text extracted from a page
type TextStats struct {
	Text string
	// Length counts characters (code points), not bytes
	Length int
	// Alphanumeric counts letters and numeric characters
	Alphanumeric int
}

// NewTextStats computes the statistics for text
func NewTextStats(text string) TextStats {
	s := TextStats{Text: text}
	for _, r := range text {
		s.Length++
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			s.Alphanumeric++
		}
	}
	return s
}

// Preview returns the first n characters of the text
func (s TextStats) Preview(n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s.Text {
		if i == n {
			return s.Text[:pos]
		}
		i++
	}
	return s.Text
}

// QualityRatio returns the alphanumeric share of the text as a
// percentage. ok is false for empty text.
func (s TextStats) QualityRatio() (ratio float64, ok bool) {
	if s.Length == 0 {
		return 0, false
	}
	return float64(s.Alphanumeric) / float64(s.Length) * 100, true
}

// FormatQualityRatio renders the ratio with one decimal, or "0%" for empty text
func (s TextStats) FormatQualityRatio() string {
	ratio, ok := s.QualityRatio()
	if !ok {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", ratio)
}
