package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

// options are the flags shared by every app command.
type options struct {
	configPath string
	simple     bool
	watch      bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "arbor",
		Short: "Arbor - widget tree demos",
		Long: `Arbor runs small widget-tree applications in the terminal. Input events
are routed through each window's tree and widgets talk to their ancestors
with typed messages. Lua scripts given as arguments can bind keys, push
messages to the application and open message boxes.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/arbor/config.toml)")
	flags.BoolVar(&opts.simple, "simple", false, "use the line-based console UI instead of the TUI")
	flags.BoolVar(&opts.watch, "watch", false, "reload scripts when they change")

	for _, a := range apps {
		rootCmd.AddCommand(newAppCommand(a, opts))
	}
	rootCmd.AddCommand(newInspectCommand())

	return rootCmd
}
