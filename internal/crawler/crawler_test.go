package crawler

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arlington-rosters/internal/scraper"
)

func teamPage(teamName string, players ...string) string {
	var b strings.Builder
	b.WriteString(`<html><body><div class="team_header">`)
	b.WriteString(`<span class="label label-org">23/24 Season</span>`)
	fmt.Fprintf(&b, "<h1>%s</h1></div>", teamName)
	for _, p := range players {
		parts := strings.SplitN(p, " ", 2)
		fmt.Fprintf(&b, `<div class="participant roster"><h3>%s</h3><h2>%s</h2></div>`, parts[0], parts[1])
	}
	b.WriteString("</body></html>")
	return b.String()
}

// testScraper serves per-team pages keyed by team id; ids without a page get
// a 404.
func testScraper(t *testing.T, pages map[int]string) *scraper.Scraper {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var teamID int
		if _, err := fmt.Sscanf(r.URL.Path, "/team/%d/roster", &teamID); err != nil {
			http.NotFound(w, r)
			return
		}
		page, ok := pages[teamID]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(page)) // nolint:errcheck
	}))
	t.Cleanup(server.Close)

	return scraper.New(scraper.WithURLTemplate(server.URL + "/team/%d/roster"))
}

func TestRun(t *testing.T) {
	s := testScraper(t, map[int]string{
		19120:  teamPage("Lightning", "Alice Smith", "Bob Jones"),
		114938: teamPage("Thunder", "Carol Nguyen"),
	})

	c := New(s, WithMaxDelay(0))
	records, failures := c.Run([]int{19120, 114938}, nil)

	require.Empty(t, failures)
	require.Len(t, records, 3)

	// Team iteration order and per-team record order both preserved
	assert.Equal(t, 19120, records[0].TeamID)
	assert.Equal(t, "Alice Smith", records[0].PlayerName)
	assert.Equal(t, 19120, records[1].TeamID)
	assert.Equal(t, "Bob Jones", records[1].PlayerName)
	assert.Equal(t, 114938, records[2].TeamID)
	assert.Equal(t, "Carol Nguyen", records[2].PlayerName)
}

func TestRunSkipsFailedTeam(t *testing.T) {
	// 114938 has no page and will 404; the batch continues past it.
	s := testScraper(t, map[int]string{
		19120: teamPage("Lightning", "Alice Smith"),
	})

	c := New(s, WithMaxDelay(0))
	records, failures := c.Run([]int{19120, 114938}, nil)

	require.Len(t, records, 1)
	assert.Equal(t, "Alice Smith", records[0].PlayerName)

	require.Len(t, failures, 1)
	assert.Equal(t, 114938, failures[0].TeamID)

	var ferr *scraper.FetchError
	require.ErrorAs(t, failures[0].Err, &ferr)
	assert.Equal(t, http.StatusNotFound, ferr.StatusCode)
}

func TestRunAllTeamsFail(t *testing.T) {
	s := testScraper(t, map[int]string{})

	c := New(s, WithMaxDelay(0))
	records, failures := c.Run([]int{1, 2, 3}, nil)

	assert.Empty(t, records)
	assert.Len(t, failures, 3)
}

func TestRunDelay(t *testing.T) {
	s := testScraper(t, map[int]string{
		19120: teamPage("Lightning", "Alice Smith"),
	})

	var slept []time.Duration
	c := New(s,
		WithMaxDelay(500*time.Millisecond),
		withSleep(func(d time.Duration) { slept = append(slept, d) }),
	)
	c.Run([]int{19120, 19120}, nil)

	require.Len(t, slept, 2, "one delay per fetch")
	for _, d := range slept {
		assert.GreaterOrEqual(t, d, time.Duration(0))
		assert.Less(t, d, 500*time.Millisecond)
	}
}

func TestRunProgress(t *testing.T) {
	s := testScraper(t, map[int]string{
		19120: teamPage("Lightning", "Alice Smith"),
	})

	var buf bytes.Buffer
	c := New(s, WithMaxDelay(0), WithProgress(&buf))
	c.Run([]int{19120, 19120, 19120}, nil)

	assert.Equal(t, 3, strings.Count(buf.String(), "."))
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestTeamIDRange(t *testing.T) {
	assert.Equal(t, []int{100, 101, 102}, TeamIDRange(100, 3))
	assert.Empty(t, TeamIDRange(100, 0))
}
