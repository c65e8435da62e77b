// Copyright © 2024 The ELPS authors

// Package docs embeds the fixkit user guide for use by the CLI.
package docs

import (
	_ "embed"
	"strings"
)

//go:embed guide.md
var Guide string

// Section returns the body of the guide section with the given title, without
// its heading.
func Section(title string) (string, bool) {
	heading := "## " + title + "\n"
	i := strings.Index(Guide, heading)
	if i < 0 {
		return "", false
	}
	body := Guide[i+len(heading):]
	if j := strings.Index(body, "\n## "); j >= 0 {
		body = body[:j]
	}
	return strings.TrimSpace(body), true
}

// Titles returns the section titles of the guide in order.
func Titles() []string {
	var out []string
	for _, line := range strings.Split(Guide, "\n") {
		if title, ok := strings.CutPrefix(line, "## "); ok {
			out = append(out, title)
		}
	}
	return out
}
