package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanContentText(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "single Tj",
			content:  "BT /F1 12 Tf 72 720 Td (Hello World) Tj ET",
			expected: "Hello World",
		},
		{
			name:     "lines separated by Td",
			content:  "BT /F1 12 Tf 72 720 Td (first) Tj 0 -14 Td (second) Tj ET",
			expected: "first\nsecond",
		},
		{
			name:     "TJ with kerning",
			content:  "BT [(Hel) 20 (lo) -300 (there)] TJ ET",
			expected: "Hello there",
		},
		{
			name:     "escapes and nesting",
			content:  `BT (a \(b\) \\ \101 (c)) Tj ET`,
			expected: `a (b) \ A (c)`,
		},
		{
			name:     "hex string",
			content:  "BT <48656C6C6F> Tj ET",
			expected: "Hello",
		},
		{
			name:     "quote operator starts a new line",
			content:  "BT (one) Tj (two) ' ET",
			expected: "one\ntwo",
		},
		{
			name:     "comments and marked content are skipped",
			content:  "% comment (not text) Tj\n/Span <</ActualText (x)>> BDC BT (kept) Tj ET EMC",
			expected: "kept",
		},
		{
			name:     "graphics only",
			content:  "0 0 m 100 100 l S",
			expected: "",
		},
		{
			name:     "inline image data is skipped",
			content:  "BI /W 1 /H 1 ID \x00(Tj)\x01 EI BT (after) Tj ET",
			expected: "after",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, scanContentText([]byte(tc.content), nil))
		})
	}
}

func TestScanContentText_ToUnicodeFonts(t *testing.T) {
	fonts := map[string]*toUnicodeCMap{"F2": parseToUnicode([]byte(identityCMap))}

	content := "BT /F2 10 Tf <00240044> Tj [<0045> -500 <0046>] TJ /F1 10 Tf (plain) ' ET"
	assert.Equal(t, "Aab c\nplain", scanContentText([]byte(content), fonts))
}
