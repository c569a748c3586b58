package cli

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/antzucaro/matchr"
	"github.com/spf13/cobra"

	"arlington-rosters/internal/crawler"
	"arlington-rosters/internal/logger"
	"arlington-rosters/internal/roster"
	"arlington-rosters/internal/scraper"
	"arlington-rosters/internal/site"
	"arlington-rosters/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// fuzzy match threshold for players --search
const searchThreshold = 0.82

var (
	flagFormat   string
	flagDataDir  string
	flagHeaders  []string
	flagTimeout  time.Duration
	flagMaxDelay time.Duration
	flagVerbose  bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arlington-rosters",
		Short: "Fetch Arlington Hockey Club team rosters",
		Long: `Fetch and parse Arlington Hockey Club roster pages into tabular
player records. With no arguments, fetches the built-in default team ids and
prints the combined result.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         runDefault,
	}

	cmd.PersistentFlags().StringVar(&flagFormat, "format", "table", "Output format: table, csv or json")
	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", ".", "Directory for roster CSV batches")
	cmd.PersistentFlags().StringArrayVar(&flagHeaders, "header", nil, "Extra request header as name=value (repeatable)")
	cmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", scraper.DefaultTimeout, "HTTP request timeout")
	cmd.PersistentFlags().DurationVar(&flagMaxDelay, "delay-max", crawler.DefaultMaxDelay, "Upper bound for the random delay between team fetches")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	cmd.AddCommand(newFetchCmd())
	cmd.AddCommand(newCrawlCmd())
	cmd.AddCommand(newPlayersCmd())
	cmd.AddCommand(newSiteCmd())

	return cmd
}

// runDefault crawls the built-in team ids and prints the combined result.
func runDefault(cmd *cobra.Command, args []string) error {
	setupLogging()

	records, failures, err := runCrawl(crawler.DefaultTeamIDs)
	if err != nil {
		return err
	}

	if err := writeRecords(os.Stdout, records, outputFormat()); err != nil {
		return err
	}
	reportFailures(failures)
	return nil
}

func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <team-id>",
		Short: "Fetch a single team's roster and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()

			teamID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid team id %q", args[0])
			}
			headers, err := parseHeaders(flagHeaders)
			if err != nil {
				return err
			}

			s := scraper.New(scraper.WithTimeout(flagTimeout))
			records, err := s.FetchTeamRoster(teamID, headers)
			if err != nil {
				return err
			}

			return writeRecords(os.Stdout, records, outputFormat())
		},
	}
}

func newCrawlCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "crawl <start-id> <num-teams>",
		Short: "Crawl a contiguous team id range and save the result as CSV",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()

			startID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid start id %q", args[0])
			}
			numTeams, err := strconv.Atoi(args[1])
			if err != nil || numTeams < 1 {
				return fmt.Errorf("invalid team count %q", args[1])
			}
			endID := startID + numTeams - 1

			records, failures, err := runCrawl(crawler.TeamIDRange(startID, numTeams))
			if err != nil {
				return err
			}

			store, err := storage.New(flagDataDir)
			if err != nil {
				return err
			}
			path, err := store.WriteBatch(startID, endID, records)
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "Data saved to %s\n", path)
			if err := writeRecords(os.Stdout, records, outputFormat()); err != nil {
				return err
			}
			reportFailures(failures)
			return nil
		},
	}
}

func newPlayersCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "players",
		Short: "List unique players across saved roster CSVs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()

			store, err := storage.New(flagDataDir)
			if err != nil {
				return err
			}
			records, err := store.ReadAll()
			if err != nil {
				return err
			}

			players := uniquePlayers(records)
			if search != "" {
				players = searchPlayers(players, search)
				if len(players) == 0 {
					return fmt.Errorf("no players matching %q", search)
				}
			}

			for _, p := range players {
				fmt.Println(p)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Fuzzy-match player names against this query")
	return cmd
}

func newSiteCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "site",
		Short: "Generate the static player/team directory website from saved CSVs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()

			store, err := storage.New(flagDataDir)
			if err != nil {
				return err
			}
			records, err := store.ReadAll()
			if err != nil {
				return err
			}

			stats, err := site.Generate(records, outDir)
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "Generated pages for %d players and %d teams in %s\n",
				stats.Players, stats.Teams, outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "docs", "Output directory for the generated site")
	return cmd
}

// runCrawl drives the crawler over teamIDs with the configured headers and
// delay. It fails only when every team failed; partial failures are returned
// for reporting.
func runCrawl(teamIDs []int) ([]roster.Record, []crawler.TeamError, error) {
	headers, err := parseHeaders(flagHeaders)
	if err != nil {
		return nil, nil, err
	}

	s := scraper.New(scraper.WithTimeout(flagTimeout))
	c := crawler.New(s,
		crawler.WithMaxDelay(flagMaxDelay),
		crawler.WithProgress(os.Stderr),
	)

	records, failures := c.Run(teamIDs, headers)
	if len(records) == 0 && len(failures) > 0 {
		return nil, nil, fmt.Errorf("all %d teams failed, first error: %v", len(failures), failures[0])
	}

	return records, failures, nil
}

func reportFailures(failures []crawler.TeamError) {
	for _, f := range failures {
		fmt.Fprintf(os.Stderr, "Failed to fetch team %d: %v\n", f.TeamID, f.Err)
	}
}

// parseHeaders turns repeated name=value flags into a header map.
func parseHeaders(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	headers := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid header %q, want name=value", pair)
		}
		headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return headers, nil
}

func uniquePlayers(records []roster.Record) []string {
	seen := make(map[string]bool)
	var players []string
	for _, r := range records {
		if !seen[r.PlayerName] {
			seen[r.PlayerName] = true
			players = append(players, r.PlayerName)
		}
	}
	sort.Strings(players)
	return players
}

// searchPlayers keeps names that contain the query or sit above the
// Jaro-Winkler similarity threshold, best matches first.
func searchPlayers(players []string, query string) []string {
	q := strings.ToLower(query)

	type match struct {
		name  string
		score float64
	}
	var matches []match
	for _, p := range players {
		name := strings.ToLower(p)
		score := matchr.JaroWinkler(name, q, false)
		if strings.Contains(name, q) || score >= searchThreshold {
			matches = append(matches, match{name: p, score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	result := make([]string, 0, len(matches))
	for _, m := range matches {
		result = append(result, m.name)
	}
	return result
}

func setupLogging() {
	level := logger.LevelInfo
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, os.Stderr))
}

func outputFormat() OutputFormat {
	return OutputFormat(strings.ToLower(flagFormat))
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
