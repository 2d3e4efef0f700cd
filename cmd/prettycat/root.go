package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/prettycat/internal/version"
	"github.com/arthur-debert/prettycat/pkg/errors"
	"github.com/arthur-debert/prettycat/pkg/logging"
	"github.com/arthur-debert/prettycat/pkg/pipeline"
)

var (
	verbosity    int
	supportsMode bool
	listFilters  bool
	showVersion  bool

	rootCmd = &cobra.Command{
		Use:   "prettycat [flags] <file>",
		Short: "A colourizing input preprocessor for terminal pagers",
		Long: `prettycat decides whether it can produce a colourized, human-readable
rendering of a file and, if so, writes that rendering to standard output.
When it cannot, it exits non-zero so the invoking pager falls back to its
default handling. Wire it up through your pager's input preprocessor
environment variable.`,
		Args: cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Strs("args", args).Msg("Command started")
		},
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.Flags().BoolVar(&supportsMode, "supports", false, "Exit 0 if the file is supported, 1 otherwise; produce no output")
	rootCmd.Flags().BoolVar(&listFilters, "filters", false, "List the transformer table and tool availability")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Print version information")
}

func run(cmd *cobra.Command, args []string) error {
	switch {
	case showVersion:
		fmt.Printf("prettycat version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
		return nil
	case listFilters:
		return printFilters()
	}

	if len(args) == 0 {
		// A pager probing with no filename is a no-op, not an error.
		fmt.Fprintln(os.Stderr, "Usage: prettycat <file>")
		fmt.Fprintln(os.Stderr, "       prettycat --supports <file>")
		return nil
	}

	controller := pipeline.New(os.Stdout)
	path := args[0]

	var err error
	if supportsMode {
		err = controller.Supports(path)
	} else {
		err = controller.Render(cmd.Context(), path)
	}
	if err == nil {
		return nil
	}

	// Unsupported is the quiet decline the pager expects; anything else is
	// a real failure and earns a diagnostic.
	if !errors.IsCode(err, errors.ErrUnsupported) && !errors.IsCode(err, errors.ErrFileNotFound) {
		fmt.Fprintf(os.Stderr, "prettycat: %v\n", err)
	}
	log.Debug().Err(err).Str("path", path).Msg("declining")
	return err
}
