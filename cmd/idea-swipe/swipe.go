// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/idea-swipe/internal/ideagen"
	"github.com/pdiddy/idea-swipe/internal/session"
	"github.com/pdiddy/idea-swipe/pkg/types"
)

var swipeCmd = &cobra.Command{
	Use:   "swipe",
	Short: "Browse ideas one card at a time, saving the ones you like",
	Long: `Swipe shows one idea at a time. Answer each card with:

  l, like     save the idea and show the next one
  d, dislike  skip to the next idea
  r, retry    ask again after an error card
  q, quit     stop

Saved ideas are listed with "idea-swipe saved list".`,
	RunE: runSwipe,
}

func runSwipe(cmd *cobra.Command, args []string) error {
	gen, err := newGenerator(viper.GetViper())
	if err != nil {
		return err
	}
	st, err := openStore(viper.GetViper())
	if err != nil {
		return err
	}
	defer st.Close()

	sess := session.New(gen, st, logger)
	return swipeLoop(cmd.Context(), sess, cmd.InOrStdin(), cmd.OutOrStdout())
}

// swipeLoop reads one command per line from in and applies it to sess.
// Generation failures show the error card and keep the loop running; a
// failure to save ends the loop.
func swipeLoop(ctx context.Context, sess *session.Session, in io.Reader, out io.Writer) error {
	// On failure the session already holds the error card.
	_, _ = sess.Next(ctx)
	printCard(out, sess)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "[l]ike / [d]islike / [r]etry / [q]uit > ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		var err error
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "l", "like":
			var saved types.SavedIdea
			saved, err = sess.Accept(ctx)
			if saved.ID != uuid.Nil {
				fmt.Fprintf(out, "saved %q (%s)\n", saved.DisplayTitle(), saved.ID)
			}
		case "d", "dislike":
			_, err = sess.Dismiss(ctx)
		case "r", "retry":
			_, err = sess.Next(ctx)
		case "q", "quit", "exit":
			return nil
		case "":
			continue
		default:
			fmt.Fprintln(out, "unknown command")
			continue
		}
		switch {
		case errors.Is(err, session.ErrNothingToSave):
			fmt.Fprintln(out, "nothing to save: press d or r for a new idea")
			continue
		case err != nil && !errors.As(err, new(*ideagen.GenerationError)):
			return err
		}
		printCard(out, sess)
	}
}

func printCard(out io.Writer, sess *session.Session) {
	idea := sess.Current()
	fmt.Fprintf(out, "\n%s\n%s\n%s\n\n", idea.Title, strings.Repeat("-", len(idea.Title)), idea.Description)
}

func init() {
	rootCmd.AddCommand(swipeCmd)
}
