package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ensigniasec/riemann/internal/calc"
	"github.com/ensigniasec/riemann/internal/chart"
	"github.com/ensigniasec/riemann/internal/content"
	"github.com/ensigniasec/riemann/internal/numtheory"
	"github.com/ensigniasec/riemann/internal/server"
	"github.com/ensigniasec/riemann/internal/tui"
	"github.com/ensigniasec/riemann/internal/validate"
)

const (
	maxZetaTerms      = 1_000_000
	defaultChartCols  = 72
	defaultChartRows  = 18
	chartFileMode     = 0o644
	maxListedDivisors = 24
)

//nolint:gochecknoglobals // Cobra requires package-level vars for flag bindings in current structure.
var (
	explorePage string
	exploreView string
	zetaTerms   int
	zerosCount  int
	chartOutput string
	chartCols   int
	chartRows   int
	theorySect  string
	theoryRaw   bool
	serveAddr   string
)

func wireFlags() {
	exploreCmd.Flags().StringVar(&explorePage, "page", string(content.PageHome), "Page to open: home, theory, visualize, game or calculator")
	exploreCmd.Flags().StringVar(&exploreView, "view", string(chart.ViewCriticalLine), "Chart shown first on the visualize page")

	zetaCmd.Flags().IntVar(&zetaTerms, "terms", numtheory.DefaultZetaTerms, "Number of series terms (overrides zeta_terms from the config)")

	zerosCmd.Flags().IntVar(&zerosCount, "count", len(numtheory.KnownZeros()), "Number of zeros to list")

	chartCmd.Flags().StringVarP(&chartOutput, "output", "o", "", "Write the chart as SVG to this file")
	chartCmd.Flags().IntVar(&chartCols, "width", defaultChartCols, "Text chart width in columns")
	chartCmd.Flags().IntVar(&chartRows, "height", defaultChartRows, "Text chart height in rows")

	theoryCmd.Flags().StringVar(&theorySect, "section", "", "Only print one section: basics, hypothesis or implications")
	theoryCmd.Flags().BoolVar(&theoryRaw, "raw", false, "Print the markdown source instead of rendering it")

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (defaults to server.addr from the config)")
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Open the interactive explorer",
	Long:  "Open the full-screen explorer with the home, theory, visualize, game and calculator pages.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := content.ParsePage(explorePage)
		if err != nil {
			return err
		}
		view, err := chart.ParseView(exploreView)
		if err != nil {
			return err
		}
		if jsonOutput {
			return errors.New("--json is not supported by explore")
		}
		return tui.Run(cmd.Context(), cfg, tui.Options{Page: page, View: view})
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var primeCmd = &cobra.Command{
	Use:   "prime N",
	Short: "Test whether N is prime",
	Long:  "Test whether N is prime and list its positive divisors.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil {
			return calc.ErrInvalidInteger
		}
		if n > cfg.MaxPrimeN {
			return calc.TooLargeError{Max: cfg.MaxPrimeN}
		}
		res := primeOutput{N: n, Prime: numtheory.IsPrime(n), Divisors: numtheory.Divisors(n, 0)}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), res)
		}
		printPrime(cmd.OutOrStdout(), res)
		return nil
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var piCmd = &cobra.Command{
	Use:   "pi N",
	Short: "Count the primes up to N",
	Long:  "Count the primes up to N and compare π(N) with the approximation N/ln(N).",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCalculator()
		if err != nil {
			return err
		}
		res, err := c.PrimeCount(args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), primeCountOutput{
				N:             res.N,
				Count:         res.Count,
				Approximation: res.Approximation,
				Error:         res.Error,
			})
		}
		printResult(cmd.OutOrStdout(), calc.ModePrime.Title(), calc.FormatPrime(res))
		return nil
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var zetaCmd = &cobra.Command{
	Use:   "zeta S",
	Short: "Approximate ζ(S) with a truncated series",
	Long:  "Approximate the Riemann zeta function ζ(S) = Σ 1/n^S for real S > 1, with a bound on the truncation error.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
		if err != nil {
			return calc.ErrInvalidNumber
		}
		terms := zetaTerms
		if !cmd.Flags().Changed("terms") {
			terms = cfg.ZetaTerms
		}
		if err := validate.Var(terms, fmt.Sprintf("min=1,max=%d", maxZetaTerms)); err != nil {
			return fmt.Errorf("--terms must be between 1 and %d", maxZetaTerms)
		}
		c, err := newCalculator()
		if err != nil {
			return err
		}
		res := c.ZetaAt(s, terms)
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), zetaOutput{
				S:         res.S,
				Terms:     res.Terms,
				Value:     finite(res.Value),
				TailBound: finite(res.TailBound),
				Exact:     res.Exact,
				Precise:   res.Precise,
			})
		}
		printResult(cmd.OutOrStdout(), calc.ModeZeta.Title(), calc.FormatZeta(res))
		return nil
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var evalCmd = &cobra.Command{
	Use:   "eval EXPR",
	Short: "Evaluate an arithmetic expression",
	Long: "Evaluate an arithmetic expression over + - * / and parentheses. " +
		"Available names: " + strings.Join(calc.Names(), ", ") + ".",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCalculator()
		if err != nil {
			return err
		}
		expr := strings.Join(args, " ")
		v, err := c.Expression(cmd.Context(), expr)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), evalOutput{Expression: expr, Result: finite(v)})
		}
		printResult(cmd.OutOrStdout(), calc.ModeGeneral.Title(), fmt.Sprintf("%s = %s", expr, calc.FormatValue(v)))
		return nil
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var zerosCmd = &cobra.Command{
	Use:   "zeros",
	Short: "List the first non-trivial zeros of ζ(s)",
	Long:  "List the first known non-trivial zeros of the zeta function, each on the critical line Re(s) = 1/2.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		zeros := numtheory.CriticalZeros(zerosCount)
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), zeros)
		}
		printZeros(cmd.OutOrStdout(), zeros)
		return nil
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var chartCmd = &cobra.Command{
	Use:   "chart VIEW",
	Short: "Draw one of the charts: critical-line, zero-density or prime-gaps",
	Long: "Draw one of the visualization charts in the terminal, or write it as an SVG file with -o. " +
		"Views: critical-line, zero-density (alias zeta-zeros) and prime-gaps.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := chart.ParseView(args[0])
		if err != nil {
			return err
		}
		f, err := chart.Build(view)
		if err != nil {
			return err
		}
		if chartOutput != "" {
			if err := os.WriteFile(chartOutput, chart.RenderSVG(f, chart.WithBackground()), chartFileMode); err != nil {
				return fmt.Errorf("write chart: %w", err)
			}
			logrus.WithFields(logrus.Fields{"view": view, "path": chartOutput}).Debug("chart written")
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]string{"view": string(view), "path": chartOutput})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Chart written to %s\n", chartOutput)
			return nil
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), f)
		}
		printChart(cmd.OutOrStdout(), f, chartCols, chartRows)
		return nil
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var theoryCmd = &cobra.Command{
	Use:   "theory",
	Short: "Print the theory pages",
	Long:  "Print the explanation of the zeta function, the hypothesis and why it matters.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		expanded := map[string]bool{}
		for _, s := range content.TheorySections() {
			if theorySect == "" || theorySect == s.ID {
				expanded[s.ID] = true
			}
		}
		if len(expanded) == 0 {
			return fmt.Errorf("unknown section %q", theorySect)
		}
		md := content.Theory(expanded)
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), theorySections(expanded))
		}
		if theoryRaw {
			fmt.Fprintln(cmd.OutOrStdout(), md)
			return nil
		}
		r, err := content.NewRenderer(content.StyleAuto, defaultChartCols+8)
		if err != nil {
			return err
		}
		out, err := r.Render(md)
		if err != nil {
			logrus.Debugf("render theory: %v", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API and SVG charts over HTTP",
	Long: "Serve a read-only HTTP API: /api/v1/primes/:n, /api/v1/pi/:n, /api/v1/zeta?s=, /api/v1/zeros, " +
		"/api/v1/eval?expr= and /charts/:view. Stops gracefully on interrupt.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = cfg.Server.Addr
		}
		if err := validate.Var(addr, "listenaddr"); err != nil {
			return fmt.Errorf("invalid --addr %q", addr)
		}
		c, err := newCalculator()
		if err != nil {
			return err
		}
		srv := server.New(c, server.WithLogger(logrus.StandardLogger()))
		return srv.ListenAndServe(cmd.Context(), addr)
	},
}
