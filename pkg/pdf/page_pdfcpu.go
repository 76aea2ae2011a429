package pdf

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pyhub-apps/pdfinspect/internal/logger"
)

const wordGapThousandths = 200

// PDFCPUPage implements the Page interface using pdfcpu
type PDFCPUPage struct {
	ctx        *model.Context
	pageNumber int
}

// GetPageNumber returns the page number (1-based)
func (p *PDFCPUPage) GetPageNumber() int {
	return p.pageNumber
}

// ExtractText decodes the page content stream and collects the strings
// shown by text operators. Fonts with a ToUnicode map are decoded through
// it; other string bytes are read as Latin-1.
func (p *PDFCPUPage) ExtractText() (string, error) {
	if p.ctx == nil {
		return "", fmt.Errorf("page %d: document closed", p.pageNumber)
	}

	r, err := pdfcpu.ExtractPageContent(p.ctx, p.pageNumber)
	if err != nil {
		return "", fmt.Errorf("failed to extract content of page %d: %w", p.pageNumber, err)
	}
	if r == nil {
		return "", nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read content of page %d: %w", p.pageNumber, err)
	}

	return scanContentText(data, p.fontMaps()), nil
}

// fontMaps loads the ToUnicode maps of the page fonts, keyed by resource name
func (p *PDFCPUPage) fontMaps() map[string]*toUnicodeCMap {
	_, _, attrs, err := p.ctx.PageDict(p.pageNumber, false)
	if err != nil || attrs == nil || attrs.Resources == nil {
		return nil
	}

	obj, found := attrs.Resources.Find("Font")
	if !found {
		return nil
	}
	fonts, err := p.ctx.DereferenceDict(obj)
	if err != nil || fonts == nil {
		return nil
	}

	maps := make(map[string]*toUnicodeCMap)
	for name, ref := range fonts {
		font, err := p.ctx.DereferenceDict(ref)
		if err != nil || font == nil {
			continue
		}
		tu, found := font.Find("ToUnicode")
		if !found {
			continue
		}
		o, err := p.ctx.Dereference(tu)
		if err != nil {
			continue
		}
		sd, ok := o.(types.StreamDict)
		if !ok {
			continue
		}
		if err := sd.Decode(); err != nil {
			logger.Debug("pdfcpu: page %d font %s: %v", p.pageNumber, name, err)
			continue
		}
		maps[name] = parseToUnicode(sd.Content)
	}
	return maps
}

// operand is a content stream operand the text scanner cares about
type operand struct {
	str     []byte
	name    string
	decoded bool // str holds text already decoded, as for a TJ array
}

// scanContentText walks a content stream and returns the text shown by
// Tj, TJ, ' and ". Line moving operators start a new line.
func scanContentText(data []byte, fonts map[string]*toUnicodeCMap) string {
	var (
		out      strings.Builder
		operands []operand
		inArray  bool
		array    strings.Builder
		font     *toUnicodeCMap
		atLine   = true
	)

	decode := func(raw []byte) string {
		if font != nil {
			return font.decode(raw)
		}
		return decodeLatin1(raw)
	}
	str := func(raw []byte) {
		if inArray {
			array.WriteString(decode(raw))
		} else {
			operands = append(operands, operand{str: raw})
		}
	}
	show := func(text string) {
		if text != "" {
			out.WriteString(text)
			atLine = false
		}
	}
	showLast := func() {
		if len(operands) == 0 {
			return
		}
		last := operands[len(operands)-1]
		if last.decoded {
			show(string(last.str))
		} else {
			show(decode(last.str))
		}
	}
	newline := func() {
		if !atLine {
			out.WriteByte('\n')
			atLine = true
		}
	}

	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case isPDFSpace(c):
			i++
		case c == '%':
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		case c == '(':
			raw, n := readLiteral(data[i:])
			i += n
			str(raw)
		case c == '<' && i+1 < len(data) && data[i+1] == '<',
			c == '>' && i+1 < len(data) && data[i+1] == '>':
			// dictionary operands of marked content and inline images
			i += 2
		case c == '<':
			raw, n := readHexString(data[i:])
			i += n
			str(raw)
		case c == '[':
			inArray = true
			array.Reset()
			i++
		case c == ']':
			inArray = false
			operands = append(operands, operand{str: []byte(array.String()), decoded: true})
			i++
		case c == '/':
			start := i + 1
			i++
			for i < len(data) && !isPDFSpace(data[i]) && !isPDFDelimiter(data[i]) {
				i++
			}
			if !inArray {
				operands = append(operands, operand{name: string(data[start:i])})
			}
		case isPDFDelimiter(c):
			i++
		default:
			start := i
			for i < len(data) && !isPDFSpace(data[i]) && !isPDFDelimiter(data[i]) {
				i++
			}
			tok := string(data[start:i])

			if inArray {
				// TJ kerning, in thousandths of text space; a wide gap reads as a space
				if f, err := strconv.ParseFloat(tok, 64); err == nil && f <= -wordGapThousandths {
					array.WriteByte(' ')
				}
				continue
			}
			if _, err := strconv.ParseFloat(tok, 64); err == nil {
				operands = append(operands, operand{})
				continue
			}

			switch tok {
			case "Tf":
				font = nil
				if len(operands) >= 2 {
					font = fonts[operands[len(operands)-2].name]
				}
			case "Tj", "TJ":
				showLast()
			case "'", "\"":
				newline()
				showLast()
			case "T*", "Td", "TD", "ET":
				newline()
			case "BI":
				i = skipInlineImage(data, i)
			}
			operands = operands[:0]
		}
	}

	return strings.TrimRight(out.String(), "\n")
}

// readLiteral reads a balanced (...) string starting at b[0] and
// returns its unescaped bytes and the number of bytes consumed.
func readLiteral(b []byte) ([]byte, int) {
	var raw []byte
	depth := 0
	i := 0
	for ; i < len(b); i++ {
		c := b[i]
		switch c {
		case '\\':
			if i+1 < len(b) {
				n, consumed := unescapeByte(b[i+1:])
				if consumed > 0 {
					if n >= 0 {
						raw = append(raw, byte(n))
					}
					i += consumed
				}
			}
			continue
		case '(':
			depth++
			if depth == 1 {
				continue
			}
		case ')':
			depth--
			if depth == 0 {
				return raw, i + 1
			}
		}
		raw = append(raw, c)
	}
	return raw, i
}

// unescapeByte resolves the escape following a backslash. It returns -1
// for a line continuation.
func unescapeByte(b []byte) (int, int) {
	switch b[0] {
	case 'n':
		return '\n', 1
	case 'r':
		return '\r', 1
	case 't':
		return '\t', 1
	case 'b':
		return '\b', 1
	case 'f':
		return '\f', 1
	case '\n':
		return -1, 1
	case '\r':
		if len(b) > 1 && b[1] == '\n' {
			return -1, 2
		}
		return -1, 1
	}
	if b[0] >= '0' && b[0] <= '7' {
		v, n := 0, 0
		for n < 3 && n < len(b) && b[n] >= '0' && b[n] <= '7' {
			v = v*8 + int(b[n]-'0')
			n++
		}
		return v & 0xFF, n
	}
	return int(b[0]), 1
}

func readHexString(b []byte) ([]byte, int) {
	end := 1
	for end < len(b) && b[end] != '>' {
		end++
	}
	var digits []byte
	for _, c := range b[1:end] {
		if !isPDFSpace(c) {
			digits = append(digits, c)
		}
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	decoded, err := hex.DecodeString(string(digits))
	if err != nil {
		return nil, end + 1
	}
	return decoded, end + 1
}

// skipInlineImage advances past the binary data of an inline image
func skipInlineImage(data []byte, i int) int {
	for j := i; j+1 < len(data); j++ {
		if data[j] == 'E' && data[j+1] == 'I' && isPDFSpace(data[j-1]) &&
			(j+2 == len(data) || isPDFSpace(data[j+2])) {
			return j + 2
		}
	}
	return len(data)
}

func isPDFSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', 0:
		return true
	}
	return false
}

func isPDFDelimiter(c byte) bool {
	return strings.IndexByte("()<>[]{}/%", c) >= 0
}
