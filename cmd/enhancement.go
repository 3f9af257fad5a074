package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"lumen/internal/client"
)

// Enhancement-specific flags
var (
	enhanceKind  string
	enhanceMime  string
	enhanceNotes string
)

// enhancementCmd represents the enhancement command group
var enhancementCmd = &cobra.Command{
	Use:     "enhancement",
	Aliases: []string{"enh"},
	Short:   "Create and inspect enhancements",
	Long: `Create and inspect enhancements.

An enhancement is a processed capture: the backend takes an uploaded photo
or audio payload and derives a transcript and insights from it. All
enhancement commands require a signed-in credential.

Examples:
  lumen enhancement create photo.jpg --kind photo --mime image/jpeg
  lumen enhancement get <id>
  lumen enhancement list`,
}

var enhancementCreateCmd = &cobra.Command{
	Use:   "create <file>",
	Short: "Upload a captured payload for processing",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnhancementCreate,
}

var enhancementGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Fetch a single enhancement",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnhancementGet,
}

var enhancementListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all enhancements",
	Args:  cobra.NoArgs,
	RunE:  runEnhancementList,
}

func init() {
	enhancementCreateCmd.Flags().StringVar(&enhanceKind, "kind", "photo", "Capture kind (photo or audio)")
	enhancementCreateCmd.Flags().StringVar(&enhanceMime, "mime", "", "MIME type of the payload")
	enhancementCreateCmd.Flags().StringVar(&enhanceNotes, "notes", "", "Free-form notes to attach")

	enhancementCmd.AddCommand(enhancementCreateCmd)
	enhancementCmd.AddCommand(enhancementGetCmd)
	enhancementCmd.AddCommand(enhancementListCmd)
}

func runEnhancementCreate(cmd *cobra.Command, args []string) error {
	payload, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read payload file: %w", err)
	}

	a, err := buildApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Uploading capture..."
	s.Start()
	enh, err := a.api.CreateEnhancement(cmd.Context(), client.CreateEnhancementRequest{
		Kind:     enhanceKind,
		Payload:  payload,
		MimeType: enhanceMime,
		Notes:    enhanceNotes,
	})
	s.Stop()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created enhancement %s (status: %s)\n", enh.ID, enh.Status)
	return nil
}

func runEnhancementGet(cmd *cobra.Command, args []string) error {
	a, err := buildApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	enh, err := a.api.GetEnhancement(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:        %s\n", enh.ID)
	fmt.Fprintf(out, "Kind:      %s\n", enh.Kind)
	fmt.Fprintf(out, "Status:    %s\n", enh.Status)
	fmt.Fprintf(out, "Created:   %s\n", enh.CreatedAt.Format(time.RFC3339))
	if enh.Transcript != "" {
		fmt.Fprintf(out, "Transcript:\n  %s\n", enh.Transcript)
	}
	for _, insight := range enh.Insights {
		fmt.Fprintf(out, "Insight: %s\n  %s\n", insight.Title, insight.Body)
	}
	return nil
}

func runEnhancementList(cmd *cobra.Command, args []string) error {
	a, err := buildApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	enhancements, err := a.api.ListEnhancements(cmd.Context())
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"ID", "Kind", "Status", "Created", "Insights"})
	for _, enh := range enhancements {
		t.AppendRow(table.Row{
			enh.ID, enh.Kind, enh.Status,
			enh.CreatedAt.Format("2006-01-02 15:04"),
			len(enh.Insights),
		})
	}
	t.Render()
	return nil
}
