package common

import "strings"

// Reindent trims blank lines around text, removes the indentation shared by
// its non-blank lines and pads every non-blank line with n spaces. Trailing
// whitespace is stripped and blank lines stay empty.
func Reindent(n int, text string) string {
	lines := strings.Split(strings.Trim(text, "\r\n"), "\n")
	shared := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		if w := len(line) - len(trimmed); shared < 0 || w < shared {
			shared = w
		}
	}
	if shared < 0 {
		return ""
	}

	pad := strings.Repeat(" ", n)
	for i, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			lines[i] = ""
			continue
		}
		lines[i] = pad + line[shared:]
	}
	return strings.Join(lines, "\n")
}
