package scraper

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"arlington-rosters/internal/logger"
	"arlington-rosters/internal/roster"
)

const (
	// RosterURLTemplate is the Arlington Hockey Club roster page URL,
	// parameterized by the numeric team id.
	RosterURLTemplate = "https://www.arlingtonice.com/team/%d/roster"
	DefaultTimeout    = 30 * time.Second
)

// DefaultHeaders returns the baseline request headers: a realistic desktop
// browser User-Agent plus HTML-preferring Accept headers. Some servers block
// requests with obvious non-browser agents.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
			"AppleWebKit/537.36 (KHTML, like Gecko) " +
			"Chrome/115.0.0.0 Safari/537.36",
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9",
	}
}

// Scraper fetches and parses Arlington Hockey Club roster pages.
type Scraper struct {
	client      *resty.Client
	urlTemplate string
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithTimeout bounds each roster page request. Pass 0 for no timeout at all.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		s.client.SetTimeout(d)
	}
}

// WithURLTemplate overrides the roster page URL template. The template must
// contain a single %d verb for the team id. Used by tests to point the
// scraper at a local server.
func WithURLTemplate(tmpl string) Option {
	return func(s *Scraper) {
		s.urlTemplate = tmpl
	}
}

// New creates a Scraper with the default URL template and timeout.
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client:      resty.New().SetTimeout(DefaultTimeout),
		urlTemplate: RosterURLTemplate,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch downloads the roster page for a team and returns the raw HTML.
// extraHeaders are merged over the baseline header set, caller values winning
// on collision (so a caller can replace the User-Agent or add cookies).
// A transport failure or non-200 status returns a *FetchError; exactly one
// request is issued per call.
func (s *Scraper) Fetch(teamID int, extraHeaders map[string]string) (string, error) {
	url := fmt.Sprintf(s.urlTemplate, teamID)

	resp, err := s.client.R().
		SetHeaders(DefaultHeaders()).
		SetHeaders(extraHeaders).
		Get(url)
	if err != nil {
		return "", &FetchError{TeamID: teamID, Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return "", &FetchError{TeamID: teamID, StatusCode: resp.StatusCode()}
	}

	return resp.String(), nil
}

// Extraction is the structured content of one roster page. Players are in
// document order, duplicates preserved. Skipped holds the first names of
// entries for which no usable last name was found; callers may log them.
type Extraction struct {
	Season   string
	TeamName string
	Players  []string
	Skipped  []string
}

// Extract parses roster page HTML into season, team name and the ordered
// player list. It is a pure function of its input: no network access, no
// shared state, deterministic for identical HTML.
//
// The roster container is div.team_header; a page without it (layout change,
// invalid team id) yields a *ParseError rather than a silent empty result.
// A page with the container but no div.participant.roster entries is a valid
// empty roster.
func Extract(html string) (Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Extraction{}, &ParseError{Detail: fmt.Sprintf("parsing HTML: %v", err)}
	}

	header := doc.Find("div.team_header").First()
	if header.Length() == 0 {
		return Extraction{}, &ParseError{Detail: "expected roster container div.team_header not found"}
	}

	season := strings.TrimSpace(header.Find("span.label.label-org").First().Text())
	if season == "" {
		return Extraction{}, &ParseError{Detail: "season label missing from team header"}
	}

	teamName := strings.TrimSpace(header.Find("h1").First().Text())
	if teamName == "" {
		return Extraction{}, &ParseError{Detail: "team name missing from team header"}
	}

	ex := Extraction{
		Season:   season,
		TeamName: teamName,
		Players:  []string{},
	}

	doc.Find("div.participant.roster").Each(func(_ int, entry *goquery.Selection) {
		first, last := playerName(entry)
		switch {
		case first != "" && last != "":
			ex.Players = append(ex.Players, first+" "+last)
		case first != "":
			ex.Skipped = append(ex.Skipped, first)
		}
	})

	return ex, nil
}

// playerName pulls the first and last name out of one roster entry. The site
// renders the first name in an h3 and the last name in an h2, but the entry
// also carries h2 jersey numbers and assorted decoration, so anything that is
// empty, numeric or a bare "#" is skipped. When no h2 qualifies, plausible
// name text is searched for in span/div/p descendants.
func playerName(entry *goquery.Selection) (first, last string) {
	first = strings.TrimSpace(entry.Find("h3").First().Text())

	entry.Find("h2").EachWithBreak(func(_ int, h2 *goquery.Selection) bool {
		text := strings.TrimSpace(h2.Text())
		if isNameText(text) {
			last = text
			return false
		}
		return true
	})

	if last == "" {
		entry.Find("span, div, p").EachWithBreak(func(_ int, el *goquery.Selection) bool {
			text := strings.TrimSpace(el.Text())
			if !isNameText(text) || text == first || strings.HasPrefix(text, "#") {
				return true
			}
			if hasLetter(text) && len(text) <= 30 {
				last = text
				return false
			}
			return true
		})
	}

	return first, last
}

// isNameText reports whether text could plausibly be a name component:
// non-empty, longer than one character, not all digits, not a "#" marker.
func isNameText(text string) bool {
	return text != "" && text != "#" && len(text) > 1 && !allDigits(text)
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// FetchTeamRoster is the library entry point: it fetches the roster page for
// teamID, extracts its content and returns one Record per player. The capture
// timestamp is taken exactly once, after a successful parse, so every record
// of the batch carries the identical fetched_at value. Fetch and parse errors
// propagate unchanged; there is no partial output.
func (s *Scraper) FetchTeamRoster(teamID int, extraHeaders map[string]string) ([]roster.Record, error) {
	html, err := s.Fetch(teamID, extraHeaders)
	if err != nil {
		return nil, err
	}

	ex, err := Extract(html)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.TeamID = teamID
		}
		return nil, err
	}

	for _, firstName := range ex.Skipped {
		logger.Warn("could not find last name for roster entry", logger.Fields{
			"team_id":    teamID,
			"first_name": firstName,
		})
	}

	fetchedAt := time.Now().UTC()
	return roster.Build(teamID, ex.Season, ex.TeamName, ex.Players, fetchedAt), nil
}
