// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/idea-swipe/pkg/types"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage saved ideas (list, delete, clear, export)",
	Long: `Saved manages the local database of ideas you liked. Use subcommands
to list them, delete one, clear everything, or export to YAML or JSON.`,
}

// --- list subcommand ---

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved ideas in the order they were saved",
	RunE:  runSavedList,
}

func runSavedList(cmd *cobra.Command, args []string) error {
	st, err := openStore(viper.GetViper())
	if err != nil {
		return err
	}
	defer st.Close()

	ideas, err := st.List(cmd.Context())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSavedList(cmd.OutOrStdout(), ideas, jsonOutput)
}

func formatSavedList(w io.Writer, ideas []types.SavedIdea, jsonOutput bool) error {
	if jsonOutput {
		if ideas == nil {
			ideas = []types.SavedIdea{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ideas)
	}

	if len(ideas) == 0 {
		fmt.Fprintln(w, "No saved ideas.")
		return nil
	}

	fmt.Fprintf(w, "%-36s  %-16s  %-30s  %s\n", "ID", "Saved", "Title", "Description")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, idea := range ideas {
		title := truncate(idea.DisplayTitle(), 30)
		desc := truncate(idea.Description, 40)
		fmt.Fprintf(w, "%-36s  %-16s  %-30s  %s\n",
			idea.ID, idea.CreatedAt.Local().Format("2006-01-02 15:04"), title, desc)
	}
	fmt.Fprintf(w, "\n%d saved\n", len(ideas))
	return nil
}

// truncate shortens s to at most limit runes, ending in "..." when cut.
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}

// --- delete subcommand ---

var savedDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one saved idea",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid idea id %q: %w", args[0], err)
		}
		st, err := openStore(viper.GetViper())
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
		return nil
	},
}

// --- clear subcommand ---

var savedClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all saved ideas",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to clear saved ideas without --yes")
		}
		st, err := openStore(viper.GetViper())
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.Clear(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d saved idea(s)\n", n)
		return nil
	},
}

// --- export subcommand ---

var savedExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved ideas to YAML or JSON",
	Long: `Export writes every saved idea to stdout, or to --out when given.`,
	RunE: runSavedExport,
}

func runSavedExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")

	st, err := openStore(viper.GetViper())
	if err != nil {
		return err
	}
	defer st.Close()

	w := cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "yaml", "":
		err = st.ExportYAML(cmd.Context(), w)
	case "json":
		err = st.ExportJSON(cmd.Context(), w)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	if outPath != "" {
		fmt.Fprintln(os.Stderr, "Exported to", outPath)
	}
	return nil
}

func init() {
	savedListCmd.Flags().Bool("json", false, "output saved ideas as JSON")
	savedClearCmd.Flags().Bool("yes", false, "confirm deleting every saved idea")
	savedExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	savedExportCmd.Flags().String("out", "", "write the export to this file instead of stdout")

	savedCmd.AddCommand(savedListCmd)
	savedCmd.AddCommand(savedDeleteCmd)
	savedCmd.AddCommand(savedClearCmd)
	savedCmd.AddCommand(savedExportCmd)

	rootCmd.AddCommand(savedCmd)
}
