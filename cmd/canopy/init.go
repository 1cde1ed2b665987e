package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/epruesse/gocanopy/internal/config"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a canopy configuration file",
		Long: `Generate a documented canopy configuration file with sensible defaults.

By default, creates .canopy.yaml in the current directory with full
documentation. Use --interactive for a guided setup wizard.

Examples:
  # Create .canopy.yaml in current directory
  canopy init

  # Custom output path
  canopy init --config custom.yaml

  # Overwrite existing file
  canopy init --force

  # Generate smaller config with essential options only
  canopy init --minimal

  # Interactive setup wizard
  canopy init --interactive
  canopy init -i`,
		RunE: runInit,
	}

	cmd.Flags().StringP("config", "c", ".canopy.yaml",
		"Output path for the config file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing config file")
	cmd.Flags().Bool("minimal", false,
		"Generate minimal config with essential options only")
	cmd.Flags().BoolP("interactive", "i", false,
		"Interactive setup wizard")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")
	minimal, _ := cmd.Flags().GetBool("minimal")
	interactive, _ := cmd.Flags().GetBool("interactive")

	profile := config.RadiiProfileMetagenomic

	if interactive {
		var err error
		var interactiveConfigPath string
		profile, interactiveConfigPath, err = runInteractiveSetup(configPath)
		if err != nil {
			return err
		}
		configPath = interactiveConfigPath
	}

	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
		}
	}

	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
	}

	var content string
	if minimal {
		content = config.GetMinimalConfigTemplate()
	} else {
		content = config.GetFullConfigTemplate(profile)
	}

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	displayPath := configPath
	if absPath, err := filepath.Abs(configPath); err == nil {
		displayPath = absPath
	}
	fmt.Printf("Created %s\n", displayPath)
	fmt.Println("\nRun 'canopy cluster <profile-file>...' to cluster your profiles.")

	return nil
}

func runInteractiveSetup(defaultConfigPath string) (config.RadiiProfile, string, error) {
	fmt.Println()
	fmt.Println("canopy Configuration Setup")
	fmt.Println("==========================")
	fmt.Println()

	profiles := []struct {
		Label       string
		Description string
		Value       config.RadiiProfile
	}{
		{"Metagenomic (recommended)", "Reference radii, tuned for sparse gene-abundance profiles", config.RadiiProfileMetagenomic},
		{"Tight", "More, smaller canopies", config.RadiiProfileTight},
		{"Loose", "Fewer, larger canopies", config.RadiiProfileLoose},
	}

	profileTemplates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "\U0001F449 {{ .Label | cyan }} - {{ .Description | faint }}",
		Inactive: "   {{ .Label | white }} - {{ .Description | faint }}",
		Selected: "\U00002705 {{ .Label | green }}",
	}

	profilePrompt := promptui.Select{
		Label:     "Which radii preset fits your data?",
		Items:     profiles,
		Templates: profileTemplates,
	}

	profileIdx, _, err := profilePrompt.Run()
	if err != nil {
		return "", "", fmt.Errorf("profile selection cancelled: %w", err)
	}
	selectedProfile := profiles[profileIdx].Value

	fmt.Println()

	outputPrompt := promptui.Prompt{
		Label:   "Output file path",
		Default: defaultConfigPath,
	}

	outputPath, err := outputPrompt.Run()
	if err != nil {
		return "", "", fmt.Errorf("output path input cancelled: %w", err)
	}
	if outputPath == "" {
		outputPath = defaultConfigPath
	}

	fmt.Println()
	fmt.Printf("Creating %s... ", outputPath)

	return selectedProfile, outputPath, nil
}
