// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"time"

	"github.com/google/uuid"
)

// Idea is a generated title/description pair shown as one card.
// It is held only for the current display cycle and is never persisted
// without an explicit accept.
type Idea struct {
	// Title is the short card heading (2-4 words when the model follows the format).
	Title string `json:"title" yaml:"title"`

	// Description is one or two sentences describing the activity.
	Description string `json:"description" yaml:"description"`
}

// IsEmpty reports whether neither field carries text. A zero Idea means no
// card has been generated yet.
func (i Idea) IsEmpty() bool {
	return i.Title == "" && i.Description == ""
}

// ErrorIdea is the static card shown in place of an idea when generation fails.
var ErrorIdea = Idea{
	Title:       "Error",
	Description: "Failed to generate idea. Please try again.",
}

// untitledIdea is displayed for saved ideas whose title parsed empty.
const untitledIdea = "Untitled Idea"

// SavedIdea is a user-accepted idea in local storage. It is created on accept,
// never mutated, and removed only by explicit user action.
type SavedIdea struct {
	ID          uuid.UUID `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// DisplayTitle returns the title, or a placeholder when it is empty.
func (s SavedIdea) DisplayTitle() string {
	if s.Title == "" {
		return untitledIdea
	}
	return s.Title
}
