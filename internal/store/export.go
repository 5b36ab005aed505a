// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/idea-swipe/pkg/types"
)

// Export is the document written by ExportYAML and ExportJSON.
type Export struct {
	ExportedAt string            `json:"exported_at" yaml:"exported_at"`
	Count      int               `json:"count" yaml:"count"`
	Ideas      []types.SavedIdea `json:"ideas" yaml:"ideas"`
}

func (s *Store) exportDoc(ctx context.Context) (Export, error) {
	ideas, err := s.List(ctx)
	if err != nil {
		return Export{}, fmt.Errorf("querying for export: %w", err)
	}
	if ideas == nil {
		ideas = []types.SavedIdea{}
	}
	return Export{
		ExportedAt: s.now().UTC().Format(time.RFC3339),
		Count:      len(ideas),
		Ideas:      ideas,
	}, nil
}

// ExportYAML writes every saved idea to w as YAML.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	doc, err := s.exportDoc(ctx)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes every saved idea to w as indented JSON.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer) error {
	doc, err := s.exportDoc(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}
