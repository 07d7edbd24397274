package pdfcpu

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

var utf16BE = unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)

// ExtractText returns the text shown by a decoded content stream.
//
// Tj and TJ append their strings. ' and " start a new line first, as does
// T*. Td and TD insert a single space. Everything else is ignored.
func ExtractText(data []byte) string {
	var (
		sb      strings.Builder
		pending []string
	)

	s := &scanner{data: data}
	for {
		tok, kind := s.next()
		if kind == tokEOF {
			break
		}

		switch kind {
		case tokString:
			pending = append(pending, tok)
			continue
		case tokOperator:
		default:
			continue
		}

		switch tok {
		case "Tj", "TJ":
			for _, p := range pending {
				sb.WriteString(p)
			}
		case "'", `"`:
			sb.WriteByte('\n')
			for _, p := range pending {
				sb.WriteString(p)
			}
		case "T*":
			sb.WriteByte('\n')
		case "Td", "TD":
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		}
		pending = pending[:0]
	}
	return sb.String()
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokString
	tokOperator
	tokOther
)

type scanner struct {
	data []byte
	pos  int
}

func (s *scanner) next() (string, tokenKind) {
	s.skipSpace()
	if s.pos >= len(s.data) {
		return "", tokEOF
	}

	c := s.data[s.pos]
	switch {
	case c == '(':
		s.pos++
		return decodeString(s.literal()), tokString
	case c == '<' && s.peek(1) == '<':
		s.pos += 2
		return "<<", tokOther
	case c == '>' && s.peek(1) == '>':
		s.pos += 2
		return ">>", tokOther
	case c == '<':
		s.pos++
		return decodeString(s.hex()), tokString
	case c == '[' || c == ']' || c == '{' || c == '}':
		s.pos++
		return string(c), tokOther
	case c == '/':
		s.pos++
		return "/" + s.word(), tokOther
	case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
		return s.word(), tokOther
	default:
		w := s.word()
		if w == "" {
			s.pos++
			return string(c), tokOther
		}
		if w == "BI" {
			s.skipInlineImage()
		}
		return w, tokOperator
	}
}

func (s *scanner) peek(n int) byte {
	if s.pos+n < len(s.data) {
		return s.data[s.pos+n]
	}
	return 0
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if c == '%' {
			for s.pos < len(s.data) && s.data[s.pos] != '\n' && s.data[s.pos] != '\r' {
				s.pos++
			}
			continue
		}
		if !isSpace(c) {
			return
		}
		s.pos++
	}
}

func (s *scanner) word() string {
	start := s.pos
	for s.pos < len(s.data) && !isSpace(s.data[s.pos]) && !isDelim(s.data[s.pos]) {
		s.pos++
	}
	return string(s.data[start:s.pos])
}

// literal reads a parenthesized string body, resolving escapes and
// balanced nested parentheses. The opening paren is already consumed.
func (s *scanner) literal() []byte {
	var out []byte
	depth := 1
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		s.pos++
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return out
			}
		case '\\':
			out = s.escape(out)
			continue
		}
		out = append(out, c)
	}
	return out
}

func (s *scanner) escape(out []byte) []byte {
	if s.pos >= len(s.data) {
		return out
	}
	c := s.data[s.pos]
	s.pos++
	switch c {
	case 'n':
		return append(out, '\n')
	case 'r':
		return append(out, '\r')
	case 't':
		return append(out, '\t')
	case 'b':
		return append(out, '\b')
	case 'f':
		return append(out, '\f')
	case '\r':
		if s.peek(0) == '\n' {
			s.pos++
		}
		return out
	case '\n':
		return out
	}
	if c >= '0' && c <= '7' {
		val := int(c - '0')
		for n := 0; n < 2 && s.pos < len(s.data); n++ {
			d := s.data[s.pos]
			if d < '0' || d > '7' {
				break
			}
			val = val*8 + int(d-'0')
			s.pos++
		}
		return append(out, byte(val))
	}
	return append(out, c)
}

// hex reads a hex string body up to '>'. An odd final digit is padded
// with zero.
func (s *scanner) hex() []byte {
	var out []byte
	hi, have := byte(0), false
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		s.pos++
		if c == '>' {
			break
		}
		v, ok := hexValue(c)
		if !ok {
			continue
		}
		if have {
			out = append(out, hi<<4|v)
			have = false
		} else {
			hi, have = v, true
		}
	}
	if have {
		out = append(out, hi<<4)
	}
	return out
}

// skipInlineImage jumps past binary image data up to the EI operator.
func (s *scanner) skipInlineImage() {
	for s.pos+2 < len(s.data) {
		if s.data[s.pos] == 'E' && s.data[s.pos+1] == 'I' && isSpace(s.data[s.pos-1]) &&
			(s.pos+2 == len(s.data) || isSpace(s.data[s.pos+2])) {
			s.pos += 2
			return
		}
		s.pos++
	}
	s.pos = len(s.data)
}

// decodeString turns raw string bytes into text: UTF-16BE when the string
// carries a byte order mark, UTF-8 when valid, Latin-1 otherwise.
func decodeString(raw []byte) string {
	if len(raw) >= 2 && raw[0] == 0xfe && raw[1] == 0xff {
		if out, err := utf16BE.NewDecoder().Bytes(raw); err == nil {
			return string(out)
		}
	}
	if utf8.Valid(raw) {
		return string(raw)
	}
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes)
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', 0:
		return true
	}
	return false
}

func isDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}
