package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/dayplan/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

func init() {
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration as YAML",
		Run:   runConfigShow,
	}
	path := &cobra.Command{
		Use:   "path",
		Short: "Print the default config file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(config.DefaultPath())
		},
	}

	configCmd.AddCommand(show, path)
	RootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) {
	cfg, k := loadConfig(cmd)

	// Flags are applied to cfg after koanf has merged its sources.
	overrides := map[string]interface{}{
		"db_path":             cfg.DBPath,
		"log.level":           cfg.Log.Level,
		"log.format":          cfg.Log.Format,
		"temporal.day_offset": cfg.Temporal.DayOffset,
	}
	for key, v := range overrides {
		if err := k.Set(key, v); err != nil {
			exitErr("config show", err)
		}
	}

	b, err := config.Render(k)
	if err != nil {
		exitErr("render config", err)
	}
	fmt.Print(string(b))
}
