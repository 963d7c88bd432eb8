package transform

import (
	"regexp"
	"strings"
)

// methodSignature matches a method declaration on a single line:
// return type, name, parameters, an optional const and an optional body.
var methodSignature = regexp.MustCompile(
	`^(\s*)([A-Za-z_][\w:<>,\s\*&~]*?)\s+([A-Za-z_]\w*)\s*\(([^;]*)\)\s*(const)?(\s*\{.*)?$`,
)

// notReturnTypes start lines that look like signatures but declare something else.
var notReturnTypes = []string{"static", "enum", "struct"}

// addConstQualifiers marks every top-level method const unless it follows the
// mutating sentinel, is the constructor, or is const already. Sentinel lines
// are removed.
func addConstQualifiers(src string, opts Options) string {
	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines))
	depth := 0
	mutating := false

	for _, line := range lines {
		if strings.TrimSpace(line) == mutatingSentinel {
			mutating = true
			continue
		}

		if depth == 0 && !startsWithWord(strings.TrimSpace(line), notReturnTypes...) {
			if m := methodSignature.FindStringSubmatchIndex(line); m != nil {
				name := line[m[6]:m[7]]
				hasConst := m[10] >= 0
				hasBody := m[12] >= 0
				isConstructor := opts.StructName != "" && name == opts.StructName

				if !mutating && !hasConst && !isConstructor {
					if hasBody {
						body := strings.TrimLeft(line[m[12]:], " \t")
						line = strings.TrimRight(line[:m[12]], " \t") + " const " + body
					} else {
						line = strings.TrimRight(line, " \t") + " const"
					}
				}
				mutating = false
			}
		}

		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth < 0 {
			depth = 0
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// startsWithWord reports whether s begins with one of words as a whole word.
func startsWithWord(s string, words ...string) bool {
	for _, w := range words {
		if !strings.HasPrefix(s, w) {
			continue
		}
		if len(s) == len(w) || !isWordByte(s[len(w)]) {
			return true
		}
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
