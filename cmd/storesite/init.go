package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ukaji3/storesite-go/internal/config"
	"github.com/ukaji3/storesite-go/pkg/storesite"
)

//go:embed templates/storesite.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file and an optional starter workbook",
		Long: `Init writes a commented .storesite.yaml in the current directory.

With --workbook it also creates a starter workbook holding the recognised
header row and one example listing.

Examples:
  # Create .storesite.yaml
  storesite init

  # Also create listings.xlsx
  storesite init --workbook listings.xlsx

  # Force overwrite existing files
  storesite init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().String("workbook", "",
		"Also write a starter workbook to this path")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing files")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	workbookPath, err := cmd.Flags().GetString("workbook")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		for _, p := range []string{outputPath, workbookPath} {
			if p == "" {
				continue
			}
			if _, err := os.Stat(p); err == nil {
				return fmt.Errorf("file already exists: %s (use -f to overwrite)", p)
			}
		}
	}

	content, err := configTemplate.ReadFile("templates/storesite.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}
	if err := ensureDir(outputPath); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", outputPath)

	if workbookPath != "" {
		if err := ensureDir(workbookPath); err != nil {
			return err
		}
		if err := storesite.WriteSampleWorkbook(workbookPath); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created starter workbook: %s\n", workbookPath)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\nAdd one row per listing, then run: storesite build")
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}
