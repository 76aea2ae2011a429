package pdf

import (
	"bytes"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
)

// decodeTextString decodes a PDF text string: UTF-16BE or UTF-8 when the
// matching byte order mark is present, PDFDocEncoding otherwise.
// PDFDocEncoding is approximated by ISO 8859-1, which agrees on the
// printable ASCII and Latin-1 ranges.
func decodeTextString(b []byte) string {
	switch {
	case bytes.HasPrefix(b, bomUTF16BE):
		out, err := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().Bytes(b)
		if err == nil {
			return string(out)
		}
	case bytes.HasPrefix(b, bomUTF8):
		return string(b[len(bomUTF8):])
	}

	return decodeLatin1(b)
}

func decodeLatin1(b []byte) string {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
