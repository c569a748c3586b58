package crawler

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"arlington-rosters/internal/logger"
	"arlington-rosters/internal/roster"
	"arlington-rosters/internal/scraper"
)

// DefaultTeamIDs are known teams on the Arlington Hockey Club website, used
// when the CLI is invoked without an explicit id range.
var DefaultTeamIDs = []int{19120, 114938}

// DefaultMaxDelay bounds the random pause inserted between successive team
// fetches, to keep request volume polite.
const DefaultMaxDelay = time.Second

// TeamError records a single team's failure within a batch.
type TeamError struct {
	TeamID int
	Err    error
}

func (e TeamError) Error() string {
	return fmt.Sprintf("team %d: %v", e.TeamID, e.Err)
}

func (e TeamError) Unwrap() error { return e.Err }

// Crawler fetches rosters for a list of team ids sequentially, one fetch
// completing before the next begins.
type Crawler struct {
	scraper  *scraper.Scraper
	maxDelay time.Duration
	progress io.Writer
	sleep    func(time.Duration)
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithMaxDelay sets the upper bound for the random inter-fetch delay.
// Zero disables the delay entirely.
func WithMaxDelay(d time.Duration) Option {
	return func(c *Crawler) {
		c.maxDelay = d
	}
}

// WithProgress enables dot progress output on w: one dot per completed team,
// a space every 10 teams, a newline every 50.
func WithProgress(w io.Writer) Option {
	return func(c *Crawler) {
		c.progress = w
	}
}

// withSleep replaces the sleep function, for tests.
func withSleep(fn func(time.Duration)) Option {
	return func(c *Crawler) {
		c.sleep = fn
	}
}

// New creates a Crawler using the given scraper.
func New(s *scraper.Scraper, opts ...Option) *Crawler {
	c := &Crawler{
		scraper:  s,
		maxDelay: DefaultMaxDelay,
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run fetches the roster for every team id in order and concatenates the
// results, preserving both per-team record order and the overall iteration
// order. A failing team is skipped and recorded in the returned error list;
// the remaining ids are still fetched. Rosters that parse to zero players
// contribute no rows but are not failures.
func (c *Crawler) Run(teamIDs []int, extraHeaders map[string]string) ([]roster.Record, []TeamError) {
	var (
		records  []roster.Record
		failures []TeamError
	)

	for i, teamID := range teamIDs {
		if c.maxDelay > 0 {
			c.sleep(time.Duration(rand.Int63n(int64(c.maxDelay))))
		}

		batch, err := c.scraper.FetchTeamRoster(teamID, extraHeaders)
		if err != nil {
			logger.Error("failed to fetch team", logger.Fields{"team_id": teamID}, err)
			logger.IncrCounter("crawl.teams_failed")
			failures = append(failures, TeamError{TeamID: teamID, Err: err})
			continue
		}

		records = append(records, batch...)
		logger.IncrCounter("crawl.teams_fetched")
		logger.AddCounter("crawl.rows", int64(len(batch)))

		c.mark(i + 1)
	}

	if c.progress != nil && len(teamIDs) > 0 {
		fmt.Fprintln(c.progress)
	}

	return records, failures
}

// mark emits dot progress for the n-th completed team.
func (c *Crawler) mark(n int) {
	if c.progress == nil {
		return
	}
	fmt.Fprint(c.progress, ".")
	if n%50 == 0 {
		fmt.Fprintln(c.progress)
	} else if n%10 == 0 {
		fmt.Fprint(c.progress, " ")
	}
}

// TeamIDRange returns the contiguous ids [startID, startID+count).
func TeamIDRange(startID, count int) []int {
	ids := make([]int, 0, count)
	for id := startID; id < startID+count; id++ {
		ids = append(ids, id)
	}
	return ids
}
