package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/njalerikson/tomlkit/pkg/errors"
	"github.com/njalerikson/tomlkit/pkg/items"
)

var (
	reHexInt   = regexp.MustCompile(`^[+-]?0x[0-9A-Fa-f](_?[0-9A-Fa-f])*$`)
	reOctInt   = regexp.MustCompile(`^[+-]?0o[0-7](_?[0-7])*$`)
	reBinInt   = regexp.MustCompile(`^[+-]?0b[01](_?[01])*$`)
	reDecInt   = regexp.MustCompile(`^[+-]?(0|[1-9](_?[0-9])*)$`)
	reFloat    = regexp.MustCompile(`^[+-]?(0|[1-9](_?[0-9])*)(\.[0-9](_?[0-9])*)?([eE][+-]?[0-9](_?[0-9])*)?$`)
	reSpecial  = regexp.MustCompile(`^[+-]?(inf|nan)$`)
	reDateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reTimeOnly = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}(\.\d{1,6})?$`)
	reDateTime = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})[T ](\d{2}):(\d{2}):(\d{2})(\.(\d{1,6}))?(Z|[+-]\d{2}:\d{2})?$`)
)

// tokenChar is the charset a number/date/time literal's raw lexeme may
// be drawn from; the whole token is consumed first, then classified —
// the "unified numdate parser" design spec.md §4.2 calls for.
func tokenChar(b byte) bool {
	if isDigit(b) {
		return true
	}
	if (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F') {
		return true // covers hex digits and the e/E exponent marker
	}
	switch b {
	case '_', '.', ':', '+', '-', 'T', 'Z', 'x', 'o', 'i', 'n':
		return true
	}
	return false
}

// parseNumberOrDate implements the unified branch of spec.md §4.2.
func (p *Parser) parseNumberOrDate() (*items.Scalar, error) {
	start := p.cur.Idx()
	tok, err := p.cur.Consume(tokenChar, 1, -1)
	if err != nil {
		return nil, err
	}

	// "YYYY-MM-DD HH:MM:SS" — the space separator is not in tokenChar,
	// so a date immediately followed by " \d\d:" is stitched together.
	if reDateOnly.MatchString(tok) && p.cur.Current() == ' ' && isDigit(p.cur.Peek(1)) && isDigit(p.cur.Peek(2)) && p.cur.Peek(3) == ':' {
		if err := p.cur.Inc(false); err != nil {
			return nil, err
		}
		rest, err := p.cur.Consume(tokenChar, 1, -1)
		if err != nil {
			return nil, err
		}
		tok = tok + " " + rest
	}

	raw := p.cur.Slice(start, p.cur.Idx())

	switch {
	case reSpecial.MatchString(tok):
		return p.scalarFromSpecialFloat(tok, raw)
	case reDateTime.MatchString(tok):
		return p.scalarFromDateTime(tok, raw)
	case reDateOnly.MatchString(tok):
		return p.scalarFromDate(tok, raw)
	case reTimeOnly.MatchString(tok) && !strings.ContainsAny(tok, "+-"):
		return p.scalarFromTime(tok, raw)
	case reHexInt.MatchString(tok):
		return p.scalarFromInt(tok, raw, 16, "0x")
	case reOctInt.MatchString(tok):
		return p.scalarFromInt(tok, raw, 8, "0o")
	case reBinInt.MatchString(tok):
		return p.scalarFromInt(tok, raw, 2, "0b")
	case reFloat.MatchString(tok) && strings.ContainsAny(tok, ".eE"):
		return p.scalarFromFloat(tok, raw)
	case reDecInt.MatchString(tok):
		return p.scalarFromInt(tok, raw, 10, "")
	default:
		return nil, p.cur.ParseError(errors.UnexpectedChar, "invalid number or date literal: %s", tok)
	}
}

func stripUnderscores(s string) (string, bool) {
	if !strings.Contains(s, "_") {
		return s, false
	}
	return strings.ReplaceAll(s, "_", ""), true
}

func checkLeadingZero(digits string) error {
	neg := strings.TrimLeft(digits, "+-")
	if len(neg) > 1 && neg[0] == '0' {
		return errors.NewNoPos(errors.LeadingZero, "leading zero in "+digits)
	}
	return nil
}

func (p *Parser) scalarFromInt(tok, raw string, base int, prefix string) (*items.Scalar, error) {
	body := tok
	sign := ""
	if len(body) > 0 && (body[0] == '+' || body[0] == '-') {
		sign = string(body[0])
		body = body[1:]
	}
	if prefix != "" {
		body = body[len(prefix):]
	} else if err := checkLeadingZero(body); err != nil {
		return nil, err
	}
	clean, thousands := stripUnderscores(body)
	v, err := strconv.ParseInt(clean, base, 64)
	if err != nil {
		return nil, p.cur.ParseError(errors.UnexpectedChar, "invalid integer literal: %s", tok)
	}
	if sign == "-" {
		v = -v
	}
	return items.NewInteger(v, base, thousands).WithRaw(raw), nil
}

func (p *Parser) scalarFromFloat(tok, raw string) (*items.Scalar, error) {
	intPart := tok
	if len(intPart) > 0 && (intPart[0] == '+' || intPart[0] == '-') {
		intPart = intPart[1:]
	}
	if i := strings.IndexAny(intPart, ".eE"); i >= 0 {
		intPart = intPart[:i]
	}
	if err := checkLeadingZero(intPart); err != nil {
		return nil, err
	}
	clean, thousands := stripUnderscores(tok)
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return nil, p.cur.ParseError(errors.UnexpectedChar, "invalid float literal: %s", tok)
	}
	scientific := strings.ContainsAny(tok, "eE")
	return items.NewFloat(v, thousands, scientific).WithRaw(raw), nil
}

func (p *Parser) scalarFromSpecialFloat(tok, raw string) (*items.Scalar, error) {
	neg := strings.HasPrefix(tok, "-")
	var v float64
	switch {
	case strings.HasSuffix(tok, "nan"):
		v = nan()
	case neg:
		v = negInf()
	default:
		v = posInf()
	}
	return items.NewFloat(v, false, false).WithRaw(raw), nil
}

func nan() float64    { var z float64; return z / z }
func posInf() float64 { var z float64; return 1 / z }
func negInf() float64 { var z float64; return -1 / z }

func (p *Parser) scalarFromDate(tok, raw string) (*items.Scalar, error) {
	d, err := parseDateParts(tok)
	if err != nil {
		return nil, p.cur.ParseError(errors.UnexpectedChar, "%s", err.Error())
	}
	return items.NewDate(d).WithRaw(raw), nil
}

func (p *Parser) scalarFromTime(tok, raw string) (*items.Scalar, error) {
	tm, err := parseTimeParts(tok)
	if err != nil {
		return nil, p.cur.ParseError(errors.UnexpectedChar, "%s", err.Error())
	}
	return items.NewTime(tm).WithRaw(raw), nil
}

func (p *Parser) scalarFromDateTime(tok, raw string) (*items.Scalar, error) {
	m := reDateTime.FindStringSubmatch(tok)
	if m == nil {
		return nil, p.cur.ParseError(errors.UnexpectedChar, "invalid datetime literal: %s", tok)
	}
	d, err := parseDateParts(m[1] + "-" + m[2] + "-" + m[3])
	if err != nil {
		return nil, p.cur.ParseError(errors.UnexpectedChar, "%s", err.Error())
	}
	tm, err := parseTimeParts(m[4] + ":" + m[5] + ":" + m[6] + m[7])
	if err != nil {
		return nil, p.cur.ParseError(errors.UnexpectedChar, "%s", err.Error())
	}
	dt := items.DateTime{Date: d, HasTime: true, Time: tm}
	if off := m[9]; off != "" {
		dt.HasOffset = true
		if off == "Z" {
			dt.OffsetZ = true
		} else {
			sign := 1
			if off[0] == '-' {
				sign = -1
			}
			oh, _ := strconv.Atoi(off[1:3])
			om, _ := strconv.Atoi(off[4:6])
			if oh > 23 || om > 59 {
				return nil, p.cur.ParseError(errors.UnexpectedChar, "offset out of range")
			}
			dt.OffsetMinutes = sign * (oh*60 + om)
		}
	}
	return items.NewDateTime(dt).WithRaw(raw), nil
}

func parseDateParts(tok string) (items.Date, error) {
	m := reDateOnly.FindString(tok)
	if m == "" {
		return items.Date{}, fmt.Errorf("invalid date: %s", tok)
	}
	year, _ := strconv.Atoi(tok[0:4])
	month, _ := strconv.Atoi(tok[5:7])
	day, _ := strconv.Atoi(tok[8:10])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return items.Date{}, fmt.Errorf("date out of range: %s", tok)
	}
	return items.Date{Year: year, Month: month, Day: day}, nil
}

func parseTimeParts(tok string) (items.Time, error) {
	hour, _ := strconv.Atoi(tok[0:2])
	minute, _ := strconv.Atoi(tok[3:5])
	second, _ := strconv.Atoi(tok[6:8])
	if hour > 23 || minute > 59 || second > 59 {
		return items.Time{}, fmt.Errorf("time out of range: %s", tok)
	}
	tm := items.Time{Hour: hour, Minute: minute, Second: second}
	if len(tok) > 8 && tok[8] == '.' {
		frac := tok[9:]
		tm.FracDigits = len(frac)
		for len(frac) < 6 {
			frac += "0"
		}
		micro, _ := strconv.Atoi(frac[:6])
		tm.MicroSecond = micro
	}
	return tm, nil
}
