// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/idea-swipe/internal/ideagen"
	"github.com/pdiddy/idea-swipe/internal/retry"
	"github.com/pdiddy/idea-swipe/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate date ideas without saving them",
	Long: `Generate asks the API for one or more ideas and prints them. All ideas
in one run share a recency list, so later ideas avoid earlier titles.

Failed calls are not retried unless --retries is set; only network errors,
429, and 5xx responses are retried.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	retries, _ := cmd.Flags().GetInt("retries")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	if count <= 0 {
		return fmt.Errorf("--count must be positive, got %d", count)
	}

	gen, err := newGenerator(viper.GetViper())
	if err != nil {
		return err
	}

	ideas, err := generateIdeas(cmd.Context(), gen, count, retries)
	if err != nil && len(ideas) == 0 {
		return err
	}
	if werr := formatIdeas(cmd.OutOrStdout(), ideas, jsonOutput); werr != nil {
		return werr
	}
	return err
}

// generateIdeas calls gen count times, retrying each call per the retries
// budget. It stops at the first call that still fails and returns the ideas
// gathered so far with the error.
func generateIdeas(ctx context.Context, gen ideagen.Generator, count, retries int) ([]types.Idea, error) {
	policy := retry.Policy{
		MaxRetries: retries,
		Retryable:  ideagen.Retryable,
		OnRetry: func(attempt int, wait time.Duration, err error) {
			logger.Warn("retrying idea generation",
				zap.Int("attempt", attempt), zap.Duration("wait", wait), zap.Error(err))
		},
	}

	ideas := make([]types.Idea, 0, count)
	for i := 0; i < count; i++ {
		var idea types.Idea
		err := retry.Do(ctx, policy, func(ctx context.Context) error {
			var err error
			idea, err = gen.GenerateIdea(ctx)
			return err
		})
		if err != nil {
			logger.Error("generating idea failed", zap.Int("index", i), zap.Error(err))
			return ideas, err
		}
		ideas = append(ideas, idea)
	}
	return ideas, nil
}

func formatIdeas(w io.Writer, ideas []types.Idea, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ideas)
	}
	for i, idea := range ideas {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\n  %s\n", idea.Title, idea.Description)
	}
	return nil
}

func init() {
	generateCmd.Flags().IntP("count", "n", 1, "number of ideas to generate")
	generateCmd.Flags().Int("retries", 0, "extra attempts per idea on transient failures")
	generateCmd.Flags().Bool("json", false, "output ideas as JSON")

	rootCmd.AddCommand(generateCmd)
}
