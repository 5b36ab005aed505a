// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ideagen

import (
	"strings"

	"github.com/pdiddy/idea-swipe/pkg/types"
)

const (
	titleLabel       = "Title: "
	descriptionLabel = "Description: "
)

// ParseIdea splits raw model output into an Idea. The first line is the
// title and the last line the description, each with its label removed.
// Parsing is lossy and never fails: a single line fills both fields, and
// an empty body yields an empty Idea.
func ParseIdea(raw string) types.Idea {
	lines := strings.Split(raw, "\n")
	return types.Idea{
		Title:       strings.ReplaceAll(lines[0], titleLabel, ""),
		Description: strings.ReplaceAll(lines[len(lines)-1], descriptionLabel, ""),
	}
}
