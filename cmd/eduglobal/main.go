// Package main provides the EduGlobal CLI entry point: an interactive
// consultation chat plus one-shot assessment, CV extraction and SOP
// drafting commands.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"eduglobal/internal/config"
	"eduglobal/internal/gemini"
	"eduglobal/internal/logging"
	"eduglobal/internal/prompt"
	"eduglobal/internal/session"
)

var (
	// Global flags
	flagAPIKey  string
	flagModel   string
	flagDataDir string
	flagStore   string
	flagCountry string
	flagDebug   bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "eduglobal",
	Short: "EduGlobal - AI Study Abroad Consultant",
	Long: `EduGlobal is a conversational study-abroad consultancy assistant.

Run without arguments to start an interactive consultation chat with
persistent sessions. One-shot commands cover profile assessment, CV
extraction and statement-of-purpose drafting.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			// A missing config dir still yields usable defaults.
			cfg = config.DefaultConfig()
			cfg = applyFlagOverrides(cfg)
			return logging.Initialize(cfg.Debug || flagDebug)
		}
		cfg = applyFlagOverrides(cfg)
		return logging.Initialize(cfg.Debug)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd)
	},
}

func applyFlagOverrides(c config.Config) config.Config {
	if flagAPIKey != "" {
		c.APIKey = flagAPIKey
	}
	if flagModel != "" {
		c.Model = flagModel
	}
	if flagDataDir != "" {
		c.DataDir = flagDataDir
	}
	if flagDebug {
		c.Debug = true
	}
	return c
}

// dataDir resolves where the session slot lives.
func dataDir() (string, error) {
	if cfg.DataDir != "" {
		return cfg.DataDir, nil
	}
	return config.ConfigDir()
}

// openSlot opens the configured session slot. The returned closer is a
// no-op for file slots.
func openSlot() (session.Slot, func() error, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, nil, fmt.Errorf("resolving data directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating data directory: %w", err)
	}

	switch flagStore {
	case "sqlite":
		slot, err := session.OpenSQLiteSlot(filepath.Join(dir, "sessions.db"))
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite slot: %w", err)
		}
		return slot, slot.Close, nil
	case "file", "":
		slot := session.NewFileSlot(filepath.Join(dir, "sessions.json"))
		return slot, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q (want file or sqlite)", flagStore)
	}
}

// newClient builds a Gemini client with the catalog-enriched consultant
// instruction. focus narrows the instruction to one destination country.
func newClient() (*gemini.Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("no API key: set GEMINI_API_KEY, --api-key, or api_key in config.json")
	}
	gc := gemini.DefaultConfig(cfg.APIKey)
	gc.Model = cfg.Model
	if cfg.BaseURL != "" {
		gc.BaseURL = cfg.BaseURL
	}
	gc.SystemInstruction = prompt.ConsultantInstruction(focusCountry())
	return gemini.NewClientWithConfig(gc), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "Gemini API key (or set GEMINI_API_KEY env)")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "Model override")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Directory for session storage")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "file", "Session storage backend: file or sqlite")
	rootCmd.PersistentFlags().StringVar(&flagCountry, "country", "", "Focus the consultant on one destination country")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "Enable debug logging")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(sopCmd)
	rootCmd.AddCommand(catalogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
