package vecedit

import (
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

// paramCount returns how many numeric arguments a command letter takes.
func paramCount(op CommandOp) int {
	switch op {
	case MoveTo, LineTo:
		return 2
	case CubicTo:
		return 6
	default:
		return 0
	}
}

func opForLetter(b byte) (CommandOp, bool) {
	switch b {
	case 'M', 'm':
		return MoveTo, true
	case 'L', 'l':
		return LineTo, true
	case 'C', 'c':
		return CubicTo, true
	case 'Z', 'z':
		return ClosePath, true
	default:
		return 0, false
	}
}

// Parse interprets path text into commands. The tokenizer is tolerant:
// unparseable tokens are skipped rather than reported, unknown letters are
// ignored, and numbers appearing before any command letter are dropped.
// Only absolute M/L/C/Z commands are recognized. A command letter stays in
// effect for repeated argument groups ("L 1 2 3 4" yields two LineTo
// commands).
func Parse(text string) []Command {
	var (
		cmds []Command
		op   CommandOp
		args []float64
	)
	b := []byte(text)
	for i := 0; i < len(b); {
		ch := b[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == ',':
			i++
		case ch >= 'A' && ch <= 'Z' || ch >= 'a' && ch <= 'z':
			if next, ok := opForLetter(ch); ok {
				op = next
				if op == ClosePath {
					cmds = append(cmds, Close())
				}
			} else {
				// Unknown command: skip it and drop its arguments
				// rather than misattributing them to the previous
				// command.
				op = 0
			}
			args = args[:0]
			i++
		default:
			v, n := strconv.ParseFloat(b[i:])
			if n == 0 {
				i++
				continue
			}
			i += n
			if op == 0 || op == ClosePath {
				continue
			}
			args = append(args, v)
			if len(args) == paramCount(op) {
				cmds = append(cmds, commandFromArgs(op, args))
				args = args[:0]
			}
		}
	}
	return cmds
}

func commandFromArgs(op CommandOp, args []float64) Command {
	switch op {
	case MoveTo:
		return Move(Pt(args[0], args[1]))
	case LineTo:
		return Line(Pt(args[0], args[1]))
	case CubicTo:
		return Cubic(Pt(args[0], args[1]), Pt(args[2], args[3]), Pt(args[4], args[5]))
	default:
		return Close()
	}
}

// CommandsToString serializes commands to path text with fixed-precision
// coordinates (never scientific notation). Parse(CommandsToString(c))
// reproduces c within that precision.
func CommandsToString(commands []Command) string {
	var sb strings.Builder
	for i, c := range commands {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.Op.Letter())
		switch c.Op {
		case MoveTo, LineTo:
			writeCoords(&sb, c.Position)
		case CubicTo:
			writeCoords(&sb, c.Control1)
			writeCoords(&sb, c.Control2)
			writeCoords(&sb, c.Position)
		}
	}
	return sb.String()
}

func writeCoords(sb *strings.Builder, p Point) {
	sb.WriteByte(' ')
	sb.WriteString(formatCoord(p.X))
	sb.WriteByte(' ')
	sb.WriteString(formatCoord(p.Y))
}
