package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/jot/internal/config"
	"github.com/xolan/jot/internal/storage"
	"github.com/xolan/jot/internal/tui/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for jot.

jot works without a configuration file. All settings have defaults:
  - storage_path: journal.csv next to the config file
  - timezone: Local (system timezone)
  - time_format: 2006-01-02 15:04 (a Go time layout)
  - theme: dracula

Examples:
  jot config                   Show all current settings
  jot config --init            Write a commented sample config file
  jot config --themes          List the available color themes
  jot config --theme nord      Save the color theme

Configuration file location:
  ~/.config/jot/config.toml          Linux
  %APPDATA%\jot\config.toml          Windows`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		initFile, _ := cmd.Flags().GetBool("init")
		listThemes, _ := cmd.Flags().GetBool("themes")
		theme, _ := cmd.Flags().GetString("theme")

		switch {
		case initFile:
			initConfig()
		case listThemes:
			printThemes()
		case theme != "":
			setTheme(theme)
		default:
			showConfig()
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().Bool("init", false, "Write a sample config file if none exists")
	configCmd.Flags().Bool("themes", false, "List available color themes")
	configCmd.Flags().String("theme", "", "Save the color theme in the config file")
	configCmd.MarkFlagsMutuallyExclusive("init", "themes", "theme")
	_ = configCmd.RegisterFlagCompletionFunc("theme", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return ui.NewThemeProvider(deps.Config.Theme).AvailableThemes(), cobra.ShellCompDirectiveNoFileComp
	})
}

// configPath returns the config file path, reporting failures itself.
func configPath() (string, bool) {
	path, err := deps.ConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config file location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that your home directory is accessible")
		deps.Exit(1)
		return "", false
	}
	return path, true
}

// configFileExists reports whether the config file is present
func configFileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// loadConfigFile loads the config file, reporting failures itself.
func loadConfigFile(path string) (config.Config, bool) {
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load configuration")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that your config file is valid TOML format: %s\n", path)
		_, _ = fmt.Fprintln(deps.Stderr, "Valid timezone examples: Local, UTC, America/New_York, Europe/London")
		deps.Exit(1)
		return config.Config{}, false
	}
	return cfg, true
}

// showConfig displays the current effective configuration
func showConfig() {
	path, ok := configPath()
	if !ok {
		return
	}
	fileExists := configFileExists(path)

	cfg, ok := loadConfigFile(path)
	if !ok {
		return
	}

	journalPath, err := storage.ResolveStoragePath(cfg)
	if err != nil {
		journalPath = fmt.Sprintf("(unavailable: %v)", err)
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration for jot")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintf(deps.Stdout, "Config file:     %s\n", path)
	if fileExists {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          File exists (using custom configuration)")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          No config file (using defaults)")
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintln(deps.Stdout, "Current Settings:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "Journal:         %s\n", journalPath)
	_, _ = fmt.Fprintf(deps.Stdout, "Timezone:        %s\n", cfg.Timezone)
	_, _ = fmt.Fprintf(deps.Stdout, "Time Format:     %s\n", cfg.TimeFormat)
	_, _ = fmt.Fprintf(deps.Stdout, "Theme:           %s\n", cfg.Theme)
	_, _ = fmt.Fprintln(deps.Stdout)

	if !fileExists {
		_, _ = fmt.Fprintln(deps.Stdout, "Tip: Run 'jot config --init' to create a commented config file.")
		_, _ = fmt.Fprintln(deps.Stdout)
	}
}

// initConfig writes the sample config file unless one already exists
func initConfig() {
	path, ok := configPath()
	if !ok {
		return
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Config file already exists: %s\n", path)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Edit it directly or remove it first")
		} else {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to create config file")
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		}
		deps.Exit(1)
		return
	}

	_, err = file.WriteString(config.GenerateSampleConfig())
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to write config file")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", path)
}

// printThemes lists the available themes, marking the configured one
func printThemes() {
	provider := ui.NewThemeProvider(deps.Config.Theme)
	current := provider.CurrentName()
	for _, name := range provider.AvailableThemes() {
		marker := "  "
		if name == current {
			marker = "* "
		}
		_, _ = fmt.Fprintf(deps.Stdout, "%s%s\n", marker, name)
	}
}

// setTheme validates the theme and saves it to the config file
func setTheme(theme string) {
	theme = config.NormalizeTheme(theme)
	if !ui.NewThemeProvider(deps.Config.Theme).HasTheme(theme) {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Unknown theme '%s'\n", theme)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run 'jot config --themes' to list available themes")
		deps.Exit(1)
		return
	}

	if err := saveTheme(theme); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to save configuration")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Theme set to %s\n", theme)
}

// saveTheme stores theme in the config file, keeping the other settings.
func saveTheme(theme string) error {
	path, err := deps.ConfigPath()
	if err != nil {
		return err
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return err
	}
	cfg.Theme = theme
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	deps.Config.Theme = cfg.Theme
	return nil
}
