package vecedit

import "log/slog"

// SubPath is one maximal run of commands starting at a MoveTo, together
// with its serialized text and its index range (inclusive) in the original
// command list.
type SubPath struct {
	Commands   []Command
	Text       string
	StartIndex int
	EndIndex   int
}

// ExtractSubpaths splits a command list at every MoveTo with index > 0.
// A trailing subpath without a closing Z is returned like any other.
// Commands preceding the first MoveTo form their own run so that nothing
// is silently dropped from malformed input.
func ExtractSubpaths(commands []Command) []SubPath {
	if len(commands) == 0 {
		return nil
	}
	var subpaths []SubPath
	start := 0
	for i := 1; i <= len(commands); i++ {
		if i == len(commands) || commands[i].Op == MoveTo {
			run := CloneCommands(commands[start:i])
			subpaths = append(subpaths, SubPath{
				Commands:   run,
				Text:       CommandsToString(run),
				StartIndex: start,
				EndIndex:   i - 1,
			})
			start = i
		}
	}
	return subpaths
}

// NormalizeCommands drops commands carrying any non-finite coordinate and
// collapses consecutive ClosePath commands into one. A result consisting
// solely of a single ClosePath becomes empty. The operation is idempotent.
func NormalizeCommands(commands []Command) []Command {
	out := make([]Command, 0, len(commands))
	dropped := 0
	for _, c := range commands {
		if !c.IsFinite() {
			dropped++
			continue
		}
		if c.Op == ClosePath && len(out) > 0 && out[len(out)-1].Op == ClosePath {
			continue
		}
		out = append(out, c)
	}
	if dropped > 0 {
		Logger().Warn("dropped non-finite commands during normalization",
			slog.Int("count", dropped))
	}
	if len(out) == 1 && out[0].Op == ClosePath {
		return []Command{}
	}
	return out
}
