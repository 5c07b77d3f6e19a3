package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/routine-assistant/internal"
	"github.com/iksnae/routine-assistant/internal/export"
	"github.com/spf13/cobra"
)

var (
	format    string
	outputDir string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the session to a file",
	Long: `Export the conversation and the selected products to one of
jsonl, md, yaml, json or html.

The file is written to the output directory as session_<id>.<ext>.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		transcript := s.assistant.Transcript()
		path, err := writeTranscript(exporter, transcript, outputDir)
		if err != nil {
			return &internal.ExportError{Format: format, Path: path, Err: err}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d message(s) and %d product(s) to %s\n",
			transcript.Metadata.MessageCount, transcript.Metadata.SelectedCount, path)
		return nil
	},
}

func writeTranscript(exporter export.Exporter, transcript *internal.Transcript, dir string) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("session_%s.%s", transcript.ID, exporter.Extension()))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return path, fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return path, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := exporter.Export(transcript, file); err != nil {
		return path, err
	}
	return path, nil
}

func init() {
	exportCmd.Flags().StringVarP(&format, "format", "f", "jsonl", "Export format (jsonl, md, yaml, json, html)")
	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "./exports", "Output directory")
	rootCmd.AddCommand(exportCmd)
}
