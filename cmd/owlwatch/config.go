package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/owlwatch/owlwatch/internal/common/config"
	"github.com/owlwatch/owlwatch/internal/common/logger"
	"github.com/owlwatch/owlwatch/internal/common/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var showJSON bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit the owlwatch configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		var out []byte
		var err error
		if showJSON {
			out, err = json.MarshalIndent(cfg, "", "    ")
			out = append(out, '\n')
		} else {
			out, err = yaml.Marshal(cfg)
		}
		if err != nil {
			logger.Error("encoding config: %v", err)
			os.Exit(1)
		}
		fmt.Print(string(out))
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a single configuration key",
	Long:  fmt.Sprintf("Set a configuration key and save the file. Known keys: %v", config.Keys),
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if err := cfg.Set(args[0], args[1]); err != nil {
			logger.Error("%v", err)
			os.Exit(1)
		}
		if err := cfg.SaveTo(configPath); err != nil {
			logger.Error("saving config: %v", err)
			os.Exit(1)
		}
		output.PrintSuccess("%s = %s", args[0], args[1])
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Overwrite the configuration with defaults",
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.Default().SaveTo(configPath); err != nil {
			logger.Error("saving config: %v", err)
			os.Exit(1)
		}
		output.PrintSuccess("Configuration reset: %s", configPath)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(configPath)
	},
}

func init() {
	configShowCmd.Flags().BoolVar(&showJSON, "json", false, "Print as JSON instead of YAML")
	configCmd.AddCommand(configShowCmd, configSetCmd, configResetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}
