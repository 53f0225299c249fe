package builder

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

// headerLinePattern matches a header directive line at the top of a script,
// e.g. "-- Require: feature1, feature2". Keys are hyphen-separated
// identifiers; values run to the end of the line.
var headerLinePattern = regexp.MustCompile(
	`^--+\s+((?:[a-zA-Z][a-zA-Z0-9]*)(?:-[a-zA-Z][a-zA-Z0-9]*)*):\s+(.*)$`,
)

// ParseHeaders reads the contiguous run of header directive lines at the
// start of a script and returns them as a key/value map. Keys are
// lower-cased, values trimmed. Scanning stops at the first line that is not
// a directive; unrecognized keys are kept but carry no meaning here.
func ParseHeaders(r io.Reader) (map[string]string, error) {
	headers := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		m := headerLinePattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			break
		}
		headers[strings.ToLower(m[1])] = strings.TrimSpace(m[2])
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return headers, nil
}

// SplitRequires splits a comma-separated requirement list from a "require"
// header value. An empty or whitespace-only value means no requirements.
func SplitRequires(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		names = append(names, strings.TrimSpace(p))
	}
	return names
}
