package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zjrosen/signup/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the signup configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Write the commented default configuration. The file goes to --config
when given, otherwise to .signup/config.yaml in the current directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path := cfgFile
		if path == "" {
			path = config.LocalConfigPath
		}
		if err := config.WriteDefaultConfig(path, force); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return err
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one configuration value, keeping comments",
	Example: `  signup config set form.locale pt-BR
  signup config set form.success_delay 3s`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, found := config.Locate(cfgFile)
		if !found {
			path = config.LocalConfigPath
			if err := config.WriteDefaultConfig(path, false); err != nil {
				return err
			}
		}
		if err := config.SetValue(path, args[0], args[1]); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", args[0], args[1], path)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, found := config.Locate(cfgFile)
		if !found {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "no config file (using defaults)")
			return err
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), abs)
		return err
	},
}

func init() {
	configInitCmd.Flags().BoolP("force", "f", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}
