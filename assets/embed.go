package assets

import (
	"embed"
	"strings"
)

//go:embed messages.txt
var messagesFS embed.FS

// Messages returns the built-in daily message pool, one message per
// non-empty line of messages.txt.
func Messages() []string {
	raw, err := messagesFS.ReadFile("messages.txt")
	if err != nil {
		// Embedded at build time; missing file is a build defect.
		panic(err)
	}
	var out []string
	for _, line := range strings.Split(string(raw), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
