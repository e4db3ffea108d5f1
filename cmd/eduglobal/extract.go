package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"eduglobal/internal/gemini"
)

// maxUploadBytes caps CV uploads before they are base64-inlined into the
// request body.
const maxUploadBytes = 5 << 20

var extractInstruction string

var extractCmd = &cobra.Command{
	Use:   "extract [cv-file]",
	Short: "Extract a student profile from a CV (PDF or image)",
	Long: `Uploads a CV and prints the extracted profile as JSON. Supported
formats: PDF, PNG, JPEG. Fields the document does not support are omitted
rather than guessed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		mediaType, err := mediaTypeFor(path)
		if err != nil {
			return err
		}

		doc, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if len(doc) > maxUploadBytes {
			return fmt.Errorf("%s is %d bytes; limit is %d", path, len(doc), maxUploadBytes)
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		profile, err := client.ExtractStructured(cmd.Context(), doc, mediaType, extractInstruction)
		if err != nil {
			return fmt.Errorf("extraction failed: %w", err)
		}

		out, err := json.MarshalIndent(profile, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func mediaTypeFor(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return gemini.MediaTypePDF, nil
	case ".png":
		return gemini.MediaTypePNG, nil
	case ".jpg", ".jpeg":
		return gemini.MediaTypeJPEG, nil
	default:
		return "", fmt.Errorf("unsupported file type %q (want .pdf, .png, .jpg)", filepath.Ext(path))
	}
}

func init() {
	extractCmd.Flags().StringVar(&extractInstruction, "instruction", "", "Override the extraction instruction")
}
