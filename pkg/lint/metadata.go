package lint

import (
	"fmt"
	"strconv"
	"strings"
)

// DocsBaseURL is the hosted rule documentation site.
const DocsBaseURL = "https://sharplint.dev/rules"

// HelpLink returns the documentation URL of a rule: "<base-url>/<id>.html".
func HelpLink(id string) string {
	return fmt.Sprintf("%s/%s.html", DocsBaseURL, id)
}

// formatMessage substitutes positional placeholders {0}, {1}, ... with the
// text of args. Placeholders without an argument are left as written.
func formatMessage(format string, args []any) string {
	if len(args) == 0 || !strings.Contains(format, "{") {
		return format
	}
	var sb strings.Builder
	for i := 0; i < len(format); i++ {
		if format[i] == '{' {
			if end := strings.IndexByte(format[i:], '}'); end > 1 {
				if n, err := strconv.Atoi(format[i+1 : i+end]); err == nil && n >= 0 && n < len(args) {
					fmt.Fprint(&sb, args[n])
					i += end
					continue
				}
			}
		}
		sb.WriteByte(format[i])
	}
	return sb.String()
}
