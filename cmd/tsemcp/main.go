// tsemcp — Yahoo Finance data as MCP tools and a CLI, for TSE-listed
// stocks and JPY FX rates.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/tsemcp/internal/config"
	"github.com/seenimoa/tsemcp/internal/infra"
	"github.com/seenimoa/tsemcp/internal/market"
	"github.com/seenimoa/tsemcp/internal/mcpserver"
	"github.com/seenimoa/tsemcp/internal/yahoo"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tsemcp",
	Short: "tsemcp — Yahoo Finance MCP server and CLI for TSE stocks",
	Long: `tsemcp republishes Yahoo Finance stock price, history, FX rate,
and ticker search data as MCP tools, with an equivalent CLI surface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Logging.Level = lvl
		}
		logger, err = newLogger(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(fxCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(serveCmd)
}

// newClient builds the market data client from config.
func newClient() *market.Client {
	yc := yahoo.NewClient(
		yahoo.WithBaseURL(cfg.Yahoo.BaseURL),
		yahoo.WithHTTPClient(infra.DefaultHTTPClient(time.Duration(cfg.Yahoo.TimeoutSec)*time.Second)),
		yahoo.WithRateLimit(cfg.Yahoo.RateLimit, time.Duration(cfg.Yahoo.RateWindowSec)*time.Second),
	)
	return market.New(yc, logger)
}

// newLogger builds a zap logger writing to stderr so stdio MCP framing
// stays clean.
func newLogger(lc config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	if lc.Format == "text" {
		zcfg.Encoding = "console"
		zcfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	return zcfg.Build()
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tsemcp %s (%s)\n", version, commit)
	},
}

// --- Price Command ---

var priceCmd = &cobra.Command{
	Use:   "price [code]",
	Short: "Get latest stock price for a TSE-listed stock (e.g. 7203)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code := args[0]
		bounds, err := boundsFromFlags(cmd)
		if err != nil {
			return err
		}

		result := newClient().StockPrice(cmd.Context(), code, bounds)
		if result == nil {
			return fmt.Errorf("no data found for %s", code)
		}
		return printJSON(result)
	},
}

func init() {
	priceCmd.Flags().String("start", "", "window start YYYY-MM-DD")
	priceCmd.Flags().String("end", "", "window end YYYY-MM-DD")
}

// --- History Command ---

var historyCmd = &cobra.Command{
	Use:   "history [code]",
	Short: "Get OHLCV price history for a TSE-listed stock",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code := args[0]
		startRaw, _ := cmd.Flags().GetString("start")
		start, err := time.Parse("2006-01-02", startRaw)
		if err != nil {
			return fmt.Errorf("invalid --start %q, want YYYY-MM-DD", startRaw)
		}
		end, err := optionalDate(cmd, "end")
		if err != nil {
			return err
		}
		interval, _ := cmd.Flags().GetString("interval")

		result := newClient().History(cmd.Context(), code, start, end, interval)
		if result == nil {
			return fmt.Errorf("no history found for %s", code)
		}
		return printJSON(map[string]any{
			"ticker": result.Ticker,
			"start":  result.Start,
			"end":    result.End,
			"data":   result.Rows,
		})
	},
}

func init() {
	historyCmd.Flags().String("start", "", "start date YYYY-MM-DD (required)")
	historyCmd.Flags().String("end", "", "end date YYYY-MM-DD (default: today)")
	historyCmd.Flags().String("interval", "1d", "1d / 1wk / 1mo")
	historyCmd.MarkFlagRequired("start")
}

// --- FX Command ---

var fxCmd = &cobra.Command{
	Use:   "fx",
	Short: "Get JPY FX rates (USDJPY, EURJPY, GBPJPY, CNYJPY)",
	RunE: func(cmd *cobra.Command, args []string) error {
		var pairs []string
		if raw, _ := cmd.Flags().GetString("pairs"); raw != "" {
			pairs = splitPairs(raw)
		}

		result := newClient().FxRates(cmd.Context(), pairs)
		if result == nil {
			return fmt.Errorf("failed to fetch FX rates")
		}
		return printJSON(result)
	},
}

func init() {
	fxCmd.Flags().String("pairs", "", "comma-separated pairs e.g. USDJPY,EURJPY")
}

// --- Search Command ---

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for a ticker by company name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results := newClient().Search(cmd.Context(), args[0])
		return printJSON(results)
	},
}

// --- Test Command ---

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run a quick connectivity test",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()

		var stockOK, fxOK bool
		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			stockOK = client.StockPrice(ctx, "7203", market.DateRange{}) != nil
			return nil
		})
		g.Go(func() error {
			fxOK = client.FxRates(ctx, []string{"USDJPY"}) != nil
			return nil
		})
		g.Wait()

		report := func(name string, ok bool) {
			mark := "ok"
			if !ok {
				mark = "FAILED"
			}
			fmt.Printf("  %-28s %s\n", name, mark)
		}
		fmt.Println("Connectivity test:")
		report("stock price (Toyota 7203)", stockOK)
		report("FX rates (USDJPY)", fxOK)

		if !stockOK || !fxOK {
			return fmt.Errorf("connectivity test failed")
		}
		return nil
	},
}

// --- Serve Command ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (stdio by default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := mcpserver.New(newClient(), logger)

		useHTTP, _ := cmd.Flags().GetBool("http")
		if useHTTP {
			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = cfg.Server.HTTPAddr
			}
			return srv.ListenAndServe(addr)
		}
		return srv.ServeStdio()
	},
}

func init() {
	serveCmd.Flags().Bool("http", false, "serve the streamable HTTP transport instead of stdio")
	serveCmd.Flags().String("addr", "", "HTTP listen address (default from config)")
}

// --- Flag helpers ---

func boundsFromFlags(cmd *cobra.Command) (market.DateRange, error) {
	start, err := optionalDate(cmd, "start")
	if err != nil {
		return market.DateRange{}, err
	}
	end, err := optionalDate(cmd, "end")
	if err != nil {
		return market.DateRange{}, err
	}
	return market.DateRange{Start: start, End: end}, nil
}

func optionalDate(cmd *cobra.Command, name string) (*time.Time, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q, want YYYY-MM-DD", name, raw)
	}
	return &t, nil
}

// splitPairs parses a comma-separated pair list. An all-empty input
// yields an empty (non-nil) slice, which selects zero pairs.
func splitPairs(raw string) []string {
	pairs := []string{}
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			pairs = append(pairs, p)
		}
	}
	return pairs
}
