// Package app provides the entry point for the parrot command line
// interface.
package app

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/parrotdev/parrot/internal/service"
	"github.com/parrotdev/parrot/internal/versions"
)

// EnvPrefix is the prefix for all parrot environment variables, so
// PARROT_HOST and PARROT_PORT select the bind address.
const EnvPrefix = "PARROT"

// defaultEchoText is printed by the echo command when no argument is given.
const defaultEchoText = "Lorem ipsum dolor sit amet, consectetur adipiscing elit."

var rootCmd = &cobra.Command{
	Use:               "parrot",
	DisableAutoGenTag: true,
	Short:             "Multi-version greeting and echo API",
	Long: `parrot serves a versioned HTTP API with health, greeting and echo
endpoints, and exports each version's OpenAPI description.`,
	Run: func(cmd *cobra.Command, _ []string) {
		// If no subcommand is provided, print help
		if err := cmd.Help(); err != nil {
			slog.Error("Error displaying help", "error", err)
		}
	},
}

var setupOnce sync.Once

// NewRootCmd creates a new root command for the parrot CLI.
func NewRootCmd() *cobra.Command {
	setupOnce.Do(func() {
		viper.SetEnvPrefix(EnvPrefix)
		viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		viper.AutomaticEnv()

		rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")
		if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
			slog.Error("Error binding debug flag", "error", err)
		}

		rootCmd.AddCommand(echoCmd)
		rootCmd.AddCommand(helloWorldCmd)
		rootCmd.AddCommand(serveCmd)
		rootCmd.AddCommand(openapiCmd)
		rootCmd.AddCommand(versionCmd)

		// Version banner attached uniformly to every command's help output;
		// subcommands inherit the template from the root.
		banner := fmt.Sprintf("parrot %s - polly wants a versioned API\n", versions.GetVersionInfo().Version)
		rootCmd.SetHelpTemplate(rootCmd.HelpTemplate() + "\n" + banner)
	})

	return rootCmd
}

var echoCmd = &cobra.Command{
	Use:   "echo [text]",
	Short: "Echo the text",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := defaultEchoText
		if len(args) == 1 {
			text = args[0]
		}

		asJSON, err := cmd.Flags().GetBool("json")
		if err != nil {
			return fmt.Errorf("failed to read json flag: %w", err)
		}

		if asJSON {
			output, err := json.Marshal(map[string]string{"text": text})
			if err != nil {
				return fmt.Errorf("failed to encode text as JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(output))
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

var helloWorldCmd = &cobra.Command{
	Use:   "hello-world",
	Short: "Print the hello world message",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), service.New().HelloWorld())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		info := versions.GetVersionInfo()
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			slog.Error("Error retrieving format flag", "error", err)
			return
		}

		if format == "json" {
			output, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				slog.Error("Error formatting version info as JSON", "error", err)
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(output))
		} else {
			slog.Info("parrot version",
				"version", info.Version,
				"commit", info.Commit,
				"built", info.BuildDate,
				"go", info.GoVersion,
				"platform", info.Platform)
		}
	},
}

func init() {
	echoCmd.Flags().Bool("json", false, "Print as JSON")
	versionCmd.Flags().String("format", "", "Output format (json)")
}
