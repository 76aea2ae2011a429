package pdf

import (
	"encoding/hex"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

var (
	codespaceRe = regexp.MustCompile(`begincodespacerange\s*<([0-9A-Fa-f]+)>`)
	bfcharRe    = regexp.MustCompile(`(?s)beginbfchar(.*?)endbfchar`)
	bfcharPair  = regexp.MustCompile(`<([0-9A-Fa-f]+)>\s*<([0-9A-Fa-f]*)>`)
	bfrangeRe   = regexp.MustCompile(`(?s)beginbfrange(.*?)endbfrange`)
	bfrangeRow  = regexp.MustCompile(`<([0-9A-Fa-f]+)>\s*<([0-9A-Fa-f]+)>\s*(?:<([0-9A-Fa-f]*)>|\[([^\]]*)\])`)
	hexTokenRe  = regexp.MustCompile(`<([0-9A-Fa-f]*)>`)
)

// toUnicodeCMap maps character codes of a font to Unicode text, as
// described by the font's ToUnicode stream
type toUnicodeCMap struct {
	codeLen int
	chars   map[uint32]string
	ranges  []cmapRange
}

type cmapRange struct {
	lo, hi uint32
	start  []rune   // destination of lo; later codes increment the last rune
	values []string // explicit destinations, one per code
}

// parseToUnicode parses a ToUnicode CMap program
func parseToUnicode(data []byte) *toUnicodeCMap {
	content := string(data)
	cmap := &toUnicodeCMap{codeLen: 2, chars: make(map[uint32]string)}

	if m := codespaceRe.FindStringSubmatch(content); m != nil && len(m[1]) >= 2 {
		cmap.codeLen = len(m[1]) / 2
	}

	for _, section := range bfcharRe.FindAllStringSubmatch(content, -1) {
		for _, pair := range bfcharPair.FindAllStringSubmatch(section[1], -1) {
			code, ok := hexCode(pair[1])
			if !ok {
				continue
			}
			cmap.chars[code] = utf16Hex(pair[2])
		}
	}

	for _, section := range bfrangeRe.FindAllStringSubmatch(content, -1) {
		for _, row := range bfrangeRow.FindAllStringSubmatch(section[1], -1) {
			lo, ok1 := hexCode(row[1])
			hi, ok2 := hexCode(row[2])
			if !ok1 || !ok2 || hi < lo {
				continue
			}
			r := cmapRange{lo: lo, hi: hi}
			if row[4] != "" {
				for _, v := range hexTokenRe.FindAllStringSubmatch(row[4], -1) {
					r.values = append(r.values, utf16Hex(v[1]))
				}
			} else {
				r.start = []rune(utf16Hex(row[3]))
			}
			cmap.ranges = append(cmap.ranges, r)
		}
	}

	return cmap
}

// lookup maps a single character code
func (c *toUnicodeCMap) lookup(code uint32) (string, bool) {
	if s, ok := c.chars[code]; ok {
		return s, true
	}
	for _, r := range c.ranges {
		if code < r.lo || code > r.hi {
			continue
		}
		offset := code - r.lo
		if r.values != nil {
			if int(offset) < len(r.values) {
				return r.values[offset], true
			}
			return "", false
		}
		if len(r.start) == 0 {
			return "", false
		}
		out := append([]rune(nil), r.start...)
		out[len(out)-1] += rune(offset)
		return string(out), true
	}
	return "", false
}

// decode maps a shown string to text. Unmapped codes fall back to their
// single byte Latin-1 reading.
func (c *toUnicodeCMap) decode(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); {
		n := c.codeLen
		if i+n > len(raw) {
			n = len(raw) - i
		}
		var code uint32
		for _, b := range raw[i : i+n] {
			code = code<<8 | uint32(b)
		}
		if s, ok := c.lookup(code); ok {
			sb.WriteString(s)
		} else {
			sb.WriteString(decodeLatin1(raw[i : i+n]))
		}
		i += n
	}
	return sb.String()
}

func hexCode(s string) (uint32, bool) {
	b, err := hex.DecodeString(evenHex(s))
	if err != nil || len(b) == 0 || len(b) > 4 {
		return 0, false
	}
	var code uint32
	for _, x := range b {
		code = code<<8 | uint32(x)
	}
	return code, true
}

// utf16Hex decodes a hex encoded UTF-16BE destination string
func utf16Hex(s string) string {
	b, err := hex.DecodeString(evenHex(s))
	if err != nil {
		return ""
	}
	out, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return string(out)
}

func evenHex(s string) string {
	if len(s)%2 == 1 {
		return s + "0"
	}
	return s
}
