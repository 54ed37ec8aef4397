package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ensigniasec/riemann/internal/calc"
	"github.com/ensigniasec/riemann/internal/config"
)

//nolint:gochecknoglobals // Cobra requires package-level vars for flag bindings in current structure.
var (
	// Version metadata populated at build time via -ldflags.
	releaseVersion = "dev"
	commit         = "none"
	date           = "unknown"

	// Used for flags.
	configFile = config.DefaultPath
	verbose    bool
	jsonOutput bool

	// cfg is resolved once per invocation in PersistentPreRunE.
	cfg = config.Default()

	rootCmd = &cobra.Command{
		Use:   "riemann",
		Short: "An interactive terminal explorer for the Riemann Hypothesis.",
		Long: `riemann explains the Riemann Hypothesis through theory pages, charts of the zeta zeros and prime gaps, ` +
			`a prime prediction game and a calculator for ζ(s), π(n) and general expressions. ` +
			`The same number theory is available as one-shot commands and a small read-only HTTP API.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}
)

//nolint:gochecknoinits // Cobra command wiring performed in init in current structure.
func init() {
	// Route logs to stderr to avoid polluting stdout, especially for --json output.
	logrus.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable detailed logging output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format instead of rich text")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultPath, "Optional: path to a YAML config file")

	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(primeCmd)
	rootCmd.AddCommand(piCmd)
	rootCmd.AddCommand(zetaCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(zerosCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(theoryCmd)
	rootCmd.AddCommand(serveCmd)

	wireFlags()

	// Built-in version flag: set version string and a custom template.
	rootCmd.Version = releaseVersion
	rootCmd.Annotations = map[string]string{"commit": commit, "date": date}
	rootCmd.SetVersionTemplate("{{printf \"%s %s\\ncommit: %s\\ndate: %s\\n\" .DisplayName .Version (index .Annotations \"commit\") (index .Annotations \"date\")}}")
}

// setup loads the config file and applies the log level. Flags win over the file.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configFile)
	if err != nil {
		return err
	}
	cfg = loaded
	cfg.ApplyLogLevel()

	switch {
	case verbose:
		logrus.SetLevel(logrus.DebugLevel)
	case jsonOutput:
		logrus.SetLevel(logrus.WarnLevel)
	}
	if cfg.Path != "" {
		logrus.WithField("command", cmd.Name()).Debugf("using config %s", cfg.Path)
	}
	return nil
}

func newCalculator() (*calc.Calculator, error) {
	return calc.New(calc.WithTerms(cfg.ZetaTerms), calc.WithMaxPrimeN(cfg.MaxPrimeN))
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logrus.Fatal(err)
	}
}

func main() {
	Execute()
}
