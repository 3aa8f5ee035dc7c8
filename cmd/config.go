package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rnwolfe/streakmap/internal/config"
	"github.com/rnwolfe/streakmap/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and manage configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configEditCmd)
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print configuration file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the configuration file in $EDITOR",
	Args:  cobra.NoArgs,
	RunE:  runConfigEdit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value. Supported keys:
  day.rollover     Hour past local midnight a new day starts at (0-23)
  day.timezone     IANA timezone, or Local
  collection.path  Anki collection.anki2 to read
  heatmap.count    first or all
  heatmap.fill     Zero-fill idle days (true/false)
  serve.addr       Listen address for streakmap serve`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Reset a configuration value to its default",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration keys",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

func lookupKey(key string) (*config.KeyEntry, error) {
	entry, ok := config.LookupKey(key)
	if !ok {
		return nil, fmt.Errorf("unknown config key %q (valid keys: %s)",
			key, strings.Join(config.ValidKeyNames(), ", "))
	}
	return entry, nil
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	fmt.Println(config.GetPaths().ConfigFile)
	return nil
}

func runConfigEdit(_ *cobra.Command, _ []string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		return fmt.Errorf("$EDITOR is not set (or run %s)", ui.Accent.Render("streakmap config set <key> <value>"))
	}

	if !config.Initialized() {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
	}

	c := exec.Command(editor, config.GetPaths().ConfigFile)
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("running %s: %w", editor, err)
	}

	if _, err := config.Load(); err != nil {
		ui.Warn(fmt.Sprintf("config no longer parses: %v", err))
	}
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	entry, err := lookupKey(key)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := entry.Set(cfg, value); err != nil {
		return err
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	ui.Ok(fmt.Sprintf("%s = %s", key, value))
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	entry, err := lookupKey(args[0])
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	fmt.Println(entry.Get(cfg))
	return nil
}

func runConfigUnset(_ *cobra.Command, args []string) error {
	key := args[0]
	entry, err := lookupKey(key)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	entry.Unset(cfg)
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	ui.Ok(fmt.Sprintf("%s reset", key))
	return nil
}

func runConfigList(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	for _, name := range config.ValidKeyNames() {
		entry := config.SchemaKeys[name]
		val := entry.Get(cfg)
		if val == "" {
			val = ui.Muted.Render("(unset)")
		}
		fmt.Printf("  %s %s\n", ui.KeyStyle.Render(fmt.Sprintf("%-16s", name)), val)
		fmt.Printf("  %s %s\n", strings.Repeat(" ", 16), ui.Muted.Render(entry.Desc))
	}
	return nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	paths := config.GetPaths()

	rollover := "collection / 4"
	if cfg.Day.Rollover != nil {
		rollover = fmt.Sprintf("%d:00", *cfg.Day.Rollover)
	}
	collection := cfg.Collection.Path
	if collection == "" {
		collection = "streakmap log"
	}

	ui.Header("Configuration")
	fmt.Println()
	ui.Kv("Rollover", rollover)
	ui.Kv("Timezone", cfg.Day.Timezone)
	ui.Kv("Source", collection)
	ui.Kv("Count", cfg.Heatmap.Count)
	ui.Kv("Serve", cfg.Serve.Addr)
	fmt.Println()
	ui.Kv("Config", paths.ConfigFile)
	ui.Kv("Data", paths.DBFile)
	fmt.Println()
	ui.Tip(fmt.Sprintf("Edit directly: %s", ui.Accent.Render("$EDITOR "+paths.ConfigFile)))
	fmt.Println()

	return nil
}
