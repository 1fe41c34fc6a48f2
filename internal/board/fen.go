package board

import (
	"fmt"
	"strconv"
	"strings"
)

// FEN renders p in Portable Draughts Notation: side to move, then each
// color's section as the color letter followed by "[K]square[,[K]square]...",
// sections separated by ':'. Squares are 1-indexed display squares, each
// king marked by its own K; ranges are never emitted. Example: the initial
// position is
// "B:W21,22,23,24,25,26,27,28,29,30,31,32:B1,2,3,4,5,6,7,8,9,10,11,12".
func (p Position) FEN() string {
	var sb strings.Builder
	if p.Turn == Black {
		sb.WriteString("B:")
	} else {
		sb.WriteString("W:")
	}
	sb.WriteString(colorSection('W', p.White, p.Kings))
	sb.WriteString(":")
	sb.WriteString(colorSection('B', p.Black, p.Kings))
	return sb.String()
}

func colorSection(tag byte, mask, kings Bitboard) string {
	var sb strings.Builder
	sb.WriteByte(tag)
	first := true
	mask.ForEach(func(s Square) {
		if !first {
			sb.WriteByte(',')
		}
		first = false
		if kings.Has(s) {
			sb.WriteByte('K')
		}
		sb.WriteString(strconv.Itoa(s.Display()))
	})
	return sb.String()
}

// ParseFEN parses the form produced by FEN, accepting either section
// order ("B:W...:B..." or "B:B...:W...") and "a-b" square ranges, and
// rejecting malformed input with a *ParseError. A K prefix marks only the
// square or range it is attached to.
func ParseFEN(s string) (Position, error) {
	fields := strings.Split(s, ":")
	if len(fields) != 3 {
		return Position{}, &ParseError{Input: s, Field: "fields", Err: fmt.Errorf("want 3 colon-separated fields, got %d", len(fields))}
	}
	var pos Position
	switch strings.ToUpper(strings.TrimSpace(fields[0])) {
	case "B":
		pos.Turn = Black
	case "W":
		pos.Turn = White
	default:
		return Position{}, &ParseError{Input: s, Field: "turn", Err: fmt.Errorf("expected B or W, got %q", fields[0])}
	}

	for _, section := range fields[1:] {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}
		color, mask, kings, err := parseSection(section)
		if err != nil {
			return Position{}, &ParseError{Input: s, Field: "section", Err: err}
		}
		if color == Black {
			pos.Black |= mask
		} else {
			pos.White |= mask
		}
		pos.Kings |= kings
	}

	if pos.Black&pos.White != 0 {
		return Position{}, &ParseError{Input: s, Field: "occupancy", Err: fmt.Errorf("a square is listed for both colors")}
	}
	if pos.Kings&^(pos.Black|pos.White) != 0 {
		return Position{}, &ParseError{Input: s, Field: "kings", Err: fmt.Errorf("a king square has no piece")}
	}
	return pos, nil
}

func parseSection(section string) (Color, Bitboard, Bitboard, error) {
	tag := section[0]
	var color Color
	switch tag {
	case 'B', 'b':
		color = Black
	case 'W', 'w':
		color = White
	default:
		return 0, 0, 0, fmt.Errorf("section %q must start with B or W", section)
	}
	rest := section[1:]
	var mask, kings Bitboard
	if rest == "" {
		return color, mask, kings, nil
	}
	for _, tok := range strings.Split(rest, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		isKing := false
		if tok[0] == 'K' || tok[0] == 'k' {
			isKing = true
			tok = tok[1:]
		}
		lo, hi, err := parseSquareOrRange(tok)
		if err != nil {
			return 0, 0, 0, err
		}
		for n := lo; n <= hi; n++ {
			sq, err := ParseDisplaySquare(n)
			if err != nil {
				return 0, 0, 0, err
			}
			mask = mask.Set(sq)
			if isKing {
				kings = kings.Set(sq)
			}
		}
	}
	return color, mask, kings, nil
}

func parseSquareOrRange(tok string) (lo, hi int, err error) {
	if i := strings.Index(tok, "-"); i > 0 {
		lo, err = strconv.Atoi(tok[:i])
		if err != nil {
			return 0, 0, fmt.Errorf("bad range start %q: %w", tok, err)
		}
		hi, err = strconv.Atoi(tok[i+1:])
		if err != nil {
			return 0, 0, fmt.Errorf("bad range end %q: %w", tok, err)
		}
		return lo, hi, nil
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, 0, fmt.Errorf("bad square %q: %w", tok, err)
	}
	return n, n, nil
}
