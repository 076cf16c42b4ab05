package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cinder-flash/cinder/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or create cinder configuration",
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/cinder/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// configDoc is the yaml shape of the full configuration. The runtime
// Config uses mapstructure tags for viper, so the dump re-labels the
// sections for yaml output.
type configDoc struct {
	UI struct {
		RefreshRateMs    int    `yaml:"refresh_rate_ms"`
		Theme            string `yaml:"theme"`
		ShowEventLog     bool   `yaml:"show_event_log"`
		MaxEventLogLines int    `yaml:"max_event_log_lines"`
	} `yaml:"ui"`
	Flash struct {
		BlockSizeKB        int  `yaml:"block_size_kb"`
		Verify             bool `yaml:"verify"`
		UnmountBeforeWrite bool `yaml:"unmount_before_write"`
		EjectAfterWrite    bool `yaml:"eject_after_write"`
	} `yaml:"flash"`
	Events struct {
		StrictQueries bool `yaml:"strict_queries"`
	} `yaml:"events"`
	Watch struct {
		Enabled    bool `yaml:"enabled"`
		DebounceMs int  `yaml:"debounce_ms"`
	} `yaml:"watch"`
	Logging struct {
		Enabled bool   `yaml:"enabled"`
		Level   string `yaml:"level"`
		Dir     string `yaml:"dir,omitempty"`
	} `yaml:"logging"`
}

func docFromConfig(cfg *config.Config) configDoc {
	var doc configDoc
	doc.UI.RefreshRateMs = cfg.UI.RefreshRateMs
	doc.UI.Theme = cfg.UI.Theme
	doc.UI.ShowEventLog = cfg.UI.ShowEventLog
	doc.UI.MaxEventLogLines = cfg.UI.MaxEventLogLines
	doc.Flash.BlockSizeKB = cfg.Flash.BlockSizeKB
	doc.Flash.Verify = cfg.Flash.Verify
	doc.Flash.UnmountBeforeWrite = cfg.Flash.UnmountBeforeWrite
	doc.Flash.EjectAfterWrite = cfg.Flash.EjectAfterWrite
	doc.Events.StrictQueries = cfg.Events.StrictQueries
	doc.Watch.Enabled = cfg.Watch.Enabled
	doc.Watch.DebounceMs = cfg.Watch.DebounceMs
	doc.Logging.Enabled = cfg.Logging.Enabled
	doc.Logging.Level = cfg.Logging.Level
	doc.Logging.Dir = cfg.Logging.Dir
	return doc
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	if viper.ConfigFileUsed() != "" {
		cmd.Printf("# config file: %s\n", viper.ConfigFileUsed())
	} else {
		cmd.Println("# config file: (none - using defaults)")
	}

	out, err := yaml.Marshal(docFromConfig(cfg))
	if err != nil {
		return err
	}
	cmd.Print(string(out))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.ConfigFile()
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	out, err := yaml.Marshal(docFromConfig(config.Default()))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	cmd.Printf("created %s\n", path)
	return nil
}
