package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/sitelens/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "sitelens: %v\n", err)
		return 1
	}
	return 0
}

func newRootCommand() *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:   "sitelens",
		Short: "Browse SEO crawl results in the terminal",
		Long: `sitelens shows crawl results in a filterable grid with a detail pane
for links, images and resources of the selected page.

Rows come from a results file (JSON or YAML, reloaded on change) or from a
crawler backend that is polled over HTTP.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.PollEvery < 0 {
				return fmt.Errorf("--poll must not be negative")
			}
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file path (default ~/.config/sitelens/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "preferences file path (default ~/.config/sitelens/prefs.toml)")
	flags.StringVarP(&opts.RowsFile, "rows", "r", "", "results file to show (JSON or YAML)")
	flags.StringVarP(&opts.Backend, "backend", "b", "", "crawler backend host:port or URL")
	flags.IntVar(&opts.PollEvery, "poll", 0, "backend poll interval in seconds")
	flags.BoolVar(&opts.Debug, "debug", false, "write debug logs")
	return cmd
}
