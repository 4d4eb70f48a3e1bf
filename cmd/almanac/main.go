// Command almanac precomputes and prints daily Moon almanac rows.
//
// Usage:
//
//	go run ./cmd/almanac build --start 2025-01-01 --end 2025-12-31 --offset +05:30
//	go run ./cmd/almanac show --start 2025-01-01 --end 2025-01-07 --locale ta
//	go run ./cmd/almanac chart 1990-07-21T23:45 --offset +05:30 --locale en,ta
//	go run ./cmd/almanac export --start 2025-01-01 --end 2025-01-31 > jan.json
//	go run ./cmd/almanac import jan.json
//	go run ./cmd/almanac stats
//
// build writes rows into the same SQLite database the server reads, so a
// prebuilt range is served without computation.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/nakshatra-api/internal/almanac"
	"github.com/zapponejosh/nakshatra-api/internal/astro"
	"github.com/zapponejosh/nakshatra-api/internal/chart"
	"github.com/zapponejosh/nakshatra-api/internal/database"
	"github.com/zapponejosh/nakshatra-api/internal/locale"
	"github.com/zapponejosh/nakshatra-api/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:          "almanac",
	Short:        "Build and inspect the sidereal Moon almanac",
	SilenceUsage: true,
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compute a date range and store it in the database",
	RunE:  runBuild,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a date range with localized names",
	RunE:  runShow,
}

var chartCmd = &cobra.Command{
	Use:   "chart <datetime>",
	Short: "Print the Moon's sign, mansion and starting letters at a moment",
	Args:  cobra.ExactArgs(1),
	RunE:  runChart,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a date range as JSON to stdout",
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Load exported rows into the database in one transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many days are stored per UTC offset",
	RunE:  runStats,
}

func init() {
	rootCmd.PersistentFlags().String("db", "data/almanac.db", "path to SQLite database")
	rootCmd.PersistentFlags().String("offset", "+05:30", "UTC offset, hours east of Greenwich")
	rootCmd.PersistentFlags().String("log-level", "info", "debug, info, warn, error")

	for _, c := range []*cobra.Command{buildCmd, showCmd, exportCmd} {
		c.Flags().String("start", "", "first date, YYYY-MM-DD (required)")
		c.Flags().String("end", "", "last date, YYYY-MM-DD (default: start)")
		_ = c.MarkFlagRequired("start")
	}
	buildCmd.Flags().Int("max-days", 3660, "refuse ranges longer than this")
	buildCmd.Flags().Int("workers", 0, "concurrent day computations (default: GOMAXPROCS)")

	showCmd.Flags().String("locale", "en", "locale for sign and mansion names")
	showCmd.Flags().Bool("no-store", false, "compute without reading or writing the database")

	chartCmd.Flags().String("locale", "en,ta", "comma-separated locales")
	chartCmd.Flags().String("name", "", "also report whether this name fits the starting letters")

	rootCmd.AddCommand(buildCmd, showCmd, chartCmd, exportCmd, importCmd, statsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// commandLogger logs to stderr, keeping stdout for command output.
func commandLogger(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return logger.New(os.Stderr, level, "text")
}

func offsetFlag(cmd *cobra.Command) (float64, error) {
	s, _ := cmd.Flags().GetString("offset")
	return astro.ParseOffset(s)
}

func rangeFlags(cmd *cobra.Command) (start, end time.Time, err error) {
	s, _ := cmd.Flags().GetString("start")
	e, _ := cmd.Flags().GetString("end")

	start, err = time.Parse(database.DateLayout, s)
	if err != nil {
		return start, end, fmt.Errorf("invalid --start %q: use YYYY-MM-DD", s)
	}
	if e == "" {
		return start, start, nil
	}
	end, err = time.Parse(database.DateLayout, e)
	if err != nil {
		return start, end, fmt.Errorf("invalid --end %q: use YYYY-MM-DD", e)
	}
	return start, end, nil
}

func openDB(cmd *cobra.Command, log *slog.Logger) (*database.DB, error) {
	path, _ := cmd.Flags().GetString("db")

	db, err := database.Open(database.DefaultConfig(path), log)
	if err != nil {
		return nil, err
	}
	if _, err := db.Migrate(cmd.Context()); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func runBuild(cmd *cobra.Command, _ []string) error {
	log := commandLogger(cmd)

	start, end, err := rangeFlags(cmd)
	if err != nil {
		return err
	}
	offset, err := offsetFlag(cmd)
	if err != nil {
		return err
	}
	maxDays, _ := cmd.Flags().GetInt("max-days")
	workers, _ := cmd.Flags().GetInt("workers")

	db, err := openDB(cmd, log)
	if err != nil {
		return err
	}
	defer db.Close()

	began := time.Now()
	svc := almanac.NewService(db, almanac.NewBuilder(log, workers), log, maxDays)
	n, err := svc.Rebuild(cmd.Context(), start, end, offsetMinutes(offset))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "stored %d days at %s in %s\n",
		n, astro.FormatOffset(offset), time.Since(began).Round(time.Millisecond))
	return nil
}

func runShow(cmd *cobra.Command, _ []string) error {
	log := commandLogger(cmd)

	start, end, err := rangeFlags(cmd)
	if err != nil {
		return err
	}
	offset, err := offsetFlag(cmd)
	if err != nil {
		return err
	}
	id, _ := cmd.Flags().GetString("locale")
	if _, err := locale.Default.Table(id); err != nil {
		return err
	}

	var store almanac.Store
	if noStore, _ := cmd.Flags().GetBool("no-store"); !noStore {
		db, err := openDB(cmd, log)
		if err != nil {
			return err
		}
		defer db.Close()
		store = db
	}

	svc := almanac.NewService(store, nil, log, 0)
	days, err := svc.Range(cmd.Context(), start, end, offsetMinutes(offset))
	if err != nil {
		return err
	}

	return printDays(cmd.OutOrStdout(), days, id)
}

func printDays(out io.Writer, days []database.AlmanacDay, id string) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tSIGN\tMANSION\tLONGITUDE\tCHANGES")

	for _, d := range days {
		sign, err := locale.ResolveName(locale.KindSign, d.ZodiacIndex, id)
		if err != nil {
			return err
		}
		mansion, err := locale.ResolveName(locale.KindMansion, d.MansionIndex, id)
		if err != nil {
			return err
		}

		change := "-"
		if d.MansionEndsMinute != nil && d.NextMansionIndex != nil {
			next, err := locale.ResolveName(locale.KindMansion, *d.NextMansionIndex, id)
			if err != nil {
				return err
			}
			change = fmt.Sprintf("%02d:%02d -> %s", *d.MansionEndsMinute/60, *d.MansionEndsMinute%60, next)
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%.4f\t%s\n", d.Date, sign, mansion, d.Longitude, change)
	}
	return w.Flush()
}

func runChart(cmd *cobra.Command, args []string) error {
	offset, err := offsetFlag(cmd)
	if err != nil {
		return err
	}
	m, err := astro.ParseCivilMoment(args[0], offset)
	if err != nil {
		return err
	}

	ids, _ := cmd.Flags().GetString("locale")
	c, err := chart.Compute(m, strings.Split(ids, ",")...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "moment     %s\n", c.Moment)
	fmt.Fprintf(out, "longitude  %.6f (tropical %.6f, ayanamsa %.6f)\n",
		c.Indices.Longitude, c.TropicalLongitude, c.Ayanamsa)
	fmt.Fprintf(out, "indices    sign %d, mansion %d\n", c.Indices.ZodiacIndex, c.Indices.MansionIndex)
	for _, n := range c.Names {
		fmt.Fprintf(out, "%-10s %s / %s  [%s]\n", n.Locale, n.Sign, n.Mansion, strings.Join(n.Letters, " "))
	}

	if name, _ := cmd.Flags().GetString("name"); name != "" {
		verdict := "does not match"
		if c.Matches(name) {
			verdict = "matches"
		}
		fmt.Fprintf(out, "%q %s the starting letters\n", name, verdict)
	}
	return nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	log := commandLogger(cmd)

	start, end, err := rangeFlags(cmd)
	if err != nil {
		return err
	}
	offset, err := offsetFlag(cmd)
	if err != nil {
		return err
	}

	db, err := openDB(cmd, log)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := almanac.NewService(db, nil, log, 0)
	days, err := svc.Range(cmd.Context(), start, end, offsetMinutes(offset))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(days)
}

func runImport(cmd *cobra.Command, args []string) error {
	log := commandLogger(cmd)

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	var days []database.AlmanacDay
	if err := json.Unmarshal(data, &days); err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}
	if len(days) == 0 {
		return fmt.Errorf("%s holds no days", args[0])
	}

	db, err := openDB(cmd, log)
	if err != nil {
		return err
	}
	defer db.Close()

	// All rows or none: UpsertAlmanacDays validates inside one transaction.
	if err := db.UpsertAlmanacDays(cmd.Context(), days); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d days from %s\n", len(days), args[0])
	return nil
}

func runStats(cmd *cobra.Command, _ []string) error {
	db, err := openDB(cmd, commandLogger(cmd))
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := db.GetAlmanacStats(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "OFFSET\tDAYS\tEARLIEST\tLATEST")
	for _, st := range stats {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			astro.FormatOffset(float64(st.UTCOffsetMinutes)/60), st.TotalDays, st.EarliestDate, st.LatestDate)
	}
	return w.Flush()
}

func offsetMinutes(hours float64) int {
	return int(math.Round(hours * 60))
}
