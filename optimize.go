package braille

import (
	"strings"
)

// SparsityRatio is the largest share of non-blank cells a line may have and
// still be dropped as noise.
const SparsityRatio = 0.05

// Optimize compacts encoded lines into the final document text:
//
//  1. lines with non-blank cells <= SparsityRatio of their length are dropped
//  2. leading and trailing all-blank lines are dropped
//  3. trailing blank cells are stripped from each line; leading ones are indentation
//  4. the survivors are joined with '\n'
//
// Running Optimize over its own output, split on '\n', returns it unchanged.
func Optimize(lines []Line) string {
	kept := OptimizeLines(lines)
	if len(kept) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, line := range kept {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// OptimizeLines applies the filtering and trimming steps of Optimize without
// joining. The returned lines share memory with the input.
func OptimizeLines(lines []Line) []Line {
	filtered := make([]Line, 0, len(lines))
	for _, line := range lines {
		if float64(line.NonBlank()) > float64(len(line))*SparsityRatio {
			filtered = append(filtered, line)
		}
	}

	start, end := 0, len(filtered)
	for start < end && filtered[start].NonBlank() == 0 {
		start++
	}
	for end > start && filtered[end-1].NonBlank() == 0 {
		end--
	}

	trimmed := filtered[start:end]
	for i, line := range trimmed {
		trimmed[i] = trimTrailingBlank(line)
	}
	return trimmed
}

// SplitLines parses document text back into lines
func SplitLines(text string) []Line {
	if text == "" {
		return nil
	}
	parts := strings.Split(text, "\n")
	lines := make([]Line, len(parts))
	for i, p := range parts {
		lines[i] = Line(p)
	}
	return lines
}

func trimTrailingBlank(line Line) Line {
	last := len(line) - 1
	for last >= 0 && line[last] == BlankCell {
		last--
	}
	return line[:last+1]
}
