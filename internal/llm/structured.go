package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Validator checks a decoded value. A nil Validator accepts everything.
type Validator[T any] func(T) error

// ExtractJSON decodes the first JSON object found in raw model output.
// Markdown fences, surrounding prose and // comments are tolerated.
func ExtractJSON[T any](raw string, validate Validator[T]) (T, error) {
	var zero T

	block := firstObject(stripFences(raw))
	if block == "" {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}

	var out T
	if err := json.Unmarshal([]byte(stripLineComments(block)), &out); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if validate != nil {
		if err := validate(out); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}
	return out, nil
}

func stripFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// scanJSON walks s calling visit for every byte outside string literals.
// visit returns false to stop.
func scanJSON(s string, visit func(i int) bool) {
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case !inString:
			if !visit(i) {
				return
			}
		}
	}
}

// firstObject returns the first balanced {...} block of s.
func firstObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}
	depth, end := 0, -1
	scanJSON(s[start:], func(i int) bool {
		switch s[start+i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				end = start + i + 1
				return false
			}
		}
		return true
	})
	if end == -1 {
		return ""
	}
	return s[start:end]
}

func stripLineComments(s string) string {
	var cuts [][2]int
	skipTo := -1
	scanJSON(s, func(i int) bool {
		if i < skipTo {
			return true
		}
		if s[i] == '/' && i+1 < len(s) && s[i+1] == '/' {
			end := strings.IndexByte(s[i:], '\n')
			if end == -1 {
				end = len(s) - i
			}
			cuts = append(cuts, [2]int{i, i + end})
			skipTo = i + end
		}
		return true
	})
	if len(cuts) == 0 {
		return s
	}
	var b strings.Builder
	prev := 0
	for _, c := range cuts {
		b.WriteString(s[prev:c[0]])
		prev = c[1]
	}
	b.WriteString(s[prev:])
	return b.String()
}
