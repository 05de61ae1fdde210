package text

import (
	"strconv"
	"strings"

	"github.com/pagestamp/pagestamp/model"
)

// widthFactor is the crude average-character-width heuristic shared with
// the placement code: half the font size per character.
const widthFactor = 0.5

// Scan interprets a decoded page content stream and returns the text spans
// it shows. fonts maps content-stream font resource names (the operand of
// Tf, without the leading slash) to base font names; unknown resources
// keep their resource name. pageIndex is recorded on every span.
func Scan(content string, fonts map[string]string, pageIndex int) []Span {
	s := &scanner{
		src:       content,
		fonts:     fonts,
		pageIndex: pageIndex,
	}
	s.run()
	return s.spans
}

type scanner struct {
	src       string
	pos       int
	fonts     map[string]string
	pageIndex int

	operands []token
	spans    []Span

	inText   bool
	x, y     float64 // current text position
	lineX    float64 // start of current line
	lineY    float64
	leading  float64
	fontName string
	fontSize float64
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokString
	tokName
	tokArray
)

type token struct {
	kind tokenKind
	num  float64
	str  string
	arr  []token
}

func (s *scanner) run() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0:
			s.pos++
		case c == '%':
			s.skipComment()
		case c == '(':
			lit, n := ParseLiteral(s.src[s.pos:])
			s.pos += n
			s.push(token{kind: tokString, str: lit})
		case c == '<':
			if s.pos+1 < len(s.src) && s.src[s.pos+1] == '<' {
				s.skipDict()
			} else {
				hex, n := parseHex(s.src[s.pos:])
				s.pos += n
				s.push(token{kind: tokString, str: hex})
			}
		case c == '/':
			name, n := parseName(s.src[s.pos:])
			s.pos += n
			s.push(token{kind: tokName, str: name})
		case c == '[':
			arr, n := s.parseArray(s.src[s.pos:])
			s.pos += n
			s.push(token{kind: tokArray, arr: arr})
		case c == ']' || c == '>' || c == ')' || c == '{' || c == '}':
			// Stray delimiter; malformed streams contribute nothing here.
			s.pos++
		case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
			num, n := parseNumber(s.src[s.pos:])
			s.pos += n
			s.push(token{kind: tokNumber, num: num})
		default:
			op := s.readOperator()
			s.apply(op)
			s.operands = s.operands[:0]
		}
	}
}

func (s *scanner) push(t token) {
	// Bound the operand window; no operator takes more than 6 operands.
	if len(s.operands) > 8 {
		s.operands = s.operands[1:]
	}
	s.operands = append(s.operands, t)
}

func (s *scanner) readOperator() string {
	start := s.pos
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if isDelimiter(c) || isWhitespace(c) {
			break
		}
		s.pos++
	}
	return s.src[start:s.pos]
}

func (s *scanner) apply(op string) {
	switch op {
	case "BT":
		s.inText = true
		s.x, s.y, s.lineX, s.lineY = 0, 0, 0, 0
	case "ET":
		s.inText = false
	case "Tf":
		if n, str, ok := s.nameNumber(); ok {
			s.fontSize = n
			s.fontName = str
			if base, found := s.fonts[str]; found {
				s.fontName = base
			}
		}
	case "TL":
		if n, ok := s.lastNumbers(1); ok {
			s.leading = n[0]
		}
	case "Tm":
		if n, ok := s.lastNumbers(6); ok {
			s.x, s.y = n[4], n[5]
			s.lineX, s.lineY = n[4], n[5]
		}
	case "Td":
		if n, ok := s.lastNumbers(2); ok {
			s.lineX += n[0]
			s.lineY += n[1]
			s.x, s.y = s.lineX, s.lineY
		}
	case "TD":
		if n, ok := s.lastNumbers(2); ok {
			s.leading = -n[1]
			s.lineX += n[0]
			s.lineY += n[1]
			s.x, s.y = s.lineX, s.lineY
		}
	case "T*":
		s.nextLine()
	case "Tj":
		if str, ok := s.lastString(); ok {
			s.show(str)
		}
	case "'":
		if str, ok := s.lastString(); ok {
			s.nextLine()
			s.show(str)
		}
	case "\"":
		if str, ok := s.lastString(); ok {
			s.nextLine()
			s.show(str)
		}
	case "TJ":
		if arr, ok := s.lastArray(); ok {
			var b strings.Builder
			for _, t := range arr {
				if t.kind == tokString {
					b.WriteString(t.str)
				}
			}
			s.show(b.String())
		}
	}
}

func (s *scanner) nextLine() {
	s.lineY -= s.leading
	s.x, s.y = s.lineX, s.lineY
}

func (s *scanner) show(str string) {
	if !s.inText {
		return
	}
	width := float64(len([]rune(str))) * s.fontSize * widthFactor
	height := s.fontSize
	if strings.TrimSpace(str) != "" {
		s.spans = append(s.spans, Span{
			Text:      str,
			PageIndex: s.pageIndex,
			BBox:      model.NewBBox(s.x, s.y, width, height),
			FontSize:  s.fontSize,
			FontName:  s.fontName,
		})
	}
	s.x += width
}

func (s *scanner) lastNumbers(n int) ([]float64, bool) {
	if len(s.operands) < n {
		return nil, false
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		t := s.operands[len(s.operands)-n+i]
		if t.kind != tokNumber {
			return nil, false
		}
		out[i] = t.num
	}
	return out, true
}

func (s *scanner) lastString() (string, bool) {
	for i := len(s.operands) - 1; i >= 0; i-- {
		if s.operands[i].kind == tokString {
			return s.operands[i].str, true
		}
	}
	return "", false
}

func (s *scanner) lastArray() ([]token, bool) {
	for i := len(s.operands) - 1; i >= 0; i-- {
		if s.operands[i].kind == tokArray {
			return s.operands[i].arr, true
		}
	}
	return nil, false
}

func (s *scanner) nameNumber() (float64, string, bool) {
	if len(s.operands) < 2 {
		return 0, "", false
	}
	last := s.operands[len(s.operands)-1]
	prev := s.operands[len(s.operands)-2]
	if last.kind != tokNumber || prev.kind != tokName {
		return 0, "", false
	}
	return last.num, prev.str, true
}

func (s *scanner) skipComment() {
	for s.pos < len(s.src) && s.src[s.pos] != '\n' && s.src[s.pos] != '\r' {
		s.pos++
	}
}

// skipDict consumes a balanced << ... >> dictionary, including any nested
// dictionaries and strings.
func (s *scanner) skipDict() {
	depth := 0
	for s.pos < len(s.src) {
		switch {
		case strings.HasPrefix(s.src[s.pos:], "<<"):
			depth++
			s.pos += 2
		case strings.HasPrefix(s.src[s.pos:], ">>"):
			depth--
			s.pos += 2
			if depth == 0 {
				return
			}
		case s.src[s.pos] == '(':
			_, n := ParseLiteral(s.src[s.pos:])
			s.pos += n
		default:
			s.pos++
		}
	}
}

// parseArray consumes a [ ... ] operand, returning its string and number
// elements. Nested arrays are flattened; anything else is skipped.
func (s *scanner) parseArray(src string) ([]token, int) {
	var out []token
	i := 1 // past '['
	for i < len(src) {
		c := src[i]
		switch {
		case c == ']':
			return out, i + 1
		case isWhitespace(c):
			i++
		case c == '(':
			lit, n := ParseLiteral(src[i:])
			out = append(out, token{kind: tokString, str: lit})
			i += n
		case c == '<':
			hex, n := parseHex(src[i:])
			out = append(out, token{kind: tokString, str: hex})
			i += n
		case c == '[':
			inner, n := s.parseArray(src[i:])
			out = append(out, inner...)
			i += n
		case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
			num, n := parseNumber(src[i:])
			out = append(out, token{kind: tokNumber, num: num})
			i += n
		default:
			i++
		}
	}
	return out, i
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func parseNumber(src string) (float64, int) {
	i := 0
	for i < len(src) && (src[i] == '+' || src[i] == '-' || src[i] == '.' || (src[i] >= '0' && src[i] <= '9')) {
		i++
	}
	n, err := strconv.ParseFloat(src[:i], 64)
	if err != nil {
		return 0, i
	}
	return n, i
}

func parseName(src string) (string, int) {
	// src[0] is '/'
	i := 1
	for i < len(src) && !isWhitespace(src[i]) && !isDelimiter(src[i]) {
		i++
	}
	return src[1:i], i
}
