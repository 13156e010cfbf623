package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func executeCLI() error {
	return buildRootCommand().Execute()
}

func buildRootCommand() *cobra.Command {
	var showVersion bool

	root := &cobra.Command{
		Use:   "netragpt",
		Short: "Conversational chatbot backend for the Netra marketplace",
		Long: strings.TrimSpace(`netragpt routes chat messages to domain engines or an LLM,
keeps short-lived timed sessions with lightweight memory, and serves the chat
API over HTTP with optional Discord delivery.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				printVersion()
				return nil
			}
			_ = cmd.Help()
			return fmt.Errorf("a subcommand is required")
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.Flags().BoolVarP(&showVersion, "version", "v", false, "Show build/version metadata")
	root.PersistentFlags().String("config", "", "Path to config file (default ~/.netragpt/config.json)")

	root.AddCommand(newServeCommand())
	root.AddCommand(newChatCommand())
	root.AddCommand(newOnboardCommand())
	root.AddCommand(newVersionCommand())

	return root
}

func configPathFromFlags(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("config"); strings.TrimSpace(p) != "" {
		return p
	}
	return getConfigPath()
}

func newServeCommand() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Run the HTTP gateway, channel adapters, and session sweeper",
		Example: "  netragpt serve --debug",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveCmd(configPathFromFlags(cmd), debug)
		},
	}
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
	return cmd
}

func newChatCommand() *cobra.Command {
	var (
		message string
		debug   bool
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with NetraGPT from the terminal",
		Example: strings.Join([]string{
			"  netragpt chat",
			"  netragpt chat --message \"calculate 15% of 80\"",
		}, "\n"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return chatCmd(configPathFromFlags(cmd), message, debug)
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "One-shot message instead of the interactive REPL")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
	return cmd
}

func newOnboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "onboard",
		Short:   "Write a default config file",
		Example: "  netragpt onboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return onboardCmd(configPathFromFlags(cmd))
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Show build/version metadata",
		Example: "  netragpt version",
		RunE: func(cmd *cobra.Command, args []string) error {
			printVersion()
			return nil
		},
	}
}
