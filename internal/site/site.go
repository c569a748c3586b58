package site

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"arlington-rosters/internal/roster"
)

// Stats summarizes a generated site.
type Stats struct {
	Players int
	Teams   int
}

// team identifies one team in one season.
type team struct {
	TeamID   int
	TeamName string
	Season   string
}

// Generate builds the static player/team directory website from the combined
// roster records into outDir: an index page, one page per unique player and
// one page per unique (team, season). Existing files are overwritten.
func Generate(records []roster.Record, outDir string) (Stats, error) {
	if len(records) == 0 {
		return Stats{}, fmt.Errorf("no records to generate site from")
	}

	players := uniquePlayers(records)
	teams := uniqueTeams(records)

	for _, dir := range []string{outDir, filepath.Join(outDir, "players"), filepath.Join(outDir, "teams")} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Stats{}, fmt.Errorf("creating output directory: %w", err)
		}
	}

	if err := writeIndex(outDir, players, teams); err != nil {
		return Stats{}, err
	}

	for _, player := range players {
		if err := writePlayerPage(outDir, records, player); err != nil {
			return Stats{}, err
		}
	}

	for _, tm := range teams {
		if err := writeTeamPage(outDir, records, tm); err != nil {
			return Stats{}, err
		}
	}

	return Stats{Players: len(players), Teams: len(teams)}, nil
}

// uniquePlayers returns the sorted distinct player names.
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

// uniqueTeams returns the distinct (team id, team name, season) triples
// sorted by season, then team name.
func uniqueTeams(records []roster.Record) []team {
	seen := make(map[team]bool)
	var teams []team
	for _, r := range records {
		tm := team{TeamID: r.TeamID, TeamName: r.TeamName, Season: r.Season}
		if !seen[tm] {
			seen[tm] = true
			teams = append(teams, tm)
		}
	}
	sort.Slice(teams, func(i, j int) bool {
		if teams[i].Season != teams[j].Season {
			return teams[i].Season < teams[j].Season
		}
		return teams[i].TeamName < teams[j].TeamName
	})
	return teams
}

// teamPlayers returns the sorted distinct players of one team-season.
func teamPlayers(records []roster.Record, tm team) []string {
	seen := make(map[string]bool)
	var players []string
	for _, r := range records {
		if r.TeamID == tm.TeamID && r.Season == tm.Season && !seen[r.PlayerName] {
			seen[r.PlayerName] = true
			players = append(players, r.PlayerName)
		}
	}
	sort.Strings(players)
	return players
}

// playerTeams returns the teams a player appears on, newest season first,
// each with the player's sorted teammates on that team.
func playerTeams(records []roster.Record, player string) []playerTeamData {
	memberSeen := make(map[team]bool)
	var memberships []team
	for _, r := range records {
		if r.PlayerName != player {
			continue
		}
		tm := team{TeamID: r.TeamID, TeamName: r.TeamName, Season: r.Season}
		if !memberSeen[tm] {
			memberSeen[tm] = true
			memberships = append(memberships, tm)
		}
	}
	sort.Slice(memberships, func(i, j int) bool {
		if memberships[i].Season != memberships[j].Season {
			return memberships[i].Season > memberships[j].Season
		}
		return memberships[i].TeamName < memberships[j].TeamName
	})

	result := make([]playerTeamData, 0, len(memberships))
	for _, tm := range memberships {
		var teammates []link
		for _, name := range teamPlayers(records, tm) {
			if name == player {
				continue
			}
			teammates = append(teammates, link{Name: name, Href: "../players/" + playerFilename(name)})
		}
		result = append(result, playerTeamData{
			TeamName:  tm.TeamName,
			Season:    tm.Season,
			TeamHref:  "../teams/" + teamFilename(tm),
			Teammates: teammates,
		})
	}
	return result
}

func writeIndex(outDir string, players []string, teams []team) error {
	data := indexData{}
	for _, p := range players {
		data.Players = append(data.Players, link{Name: p, Href: "players/" + playerFilename(p)})
	}
	for _, tm := range teams {
		data.Teams = append(data.Teams, teamLink{
			Name:   tm.TeamName,
			Season: tm.Season,
			Href:   "teams/" + teamFilename(tm),
		})
	}
	return render(filepath.Join(outDir, "index.html"), indexTemplate, data)
}

func writePlayerPage(outDir string, records []roster.Record, player string) error {
	data := playerPageData{
		PlayerName: player,
		Teams:      playerTeams(records, player),
	}
	path := filepath.Join(outDir, "players", playerFilename(player))
	return render(path, playerTemplate, data)
}

func writeTeamPage(outDir string, records []roster.Record, tm team) error {
	data := teamPageData{
		TeamName: tm.TeamName,
		Season:   tm.Season,
		TeamID:   tm.TeamID,
	}
	for _, name := range teamPlayers(records, tm) {
		data.Players = append(data.Players, link{Name: name, Href: "../players/" + playerFilename(name)})
	}
	path := filepath.Join(outDir, "teams", teamFilename(tm))
	return render(path, teamTemplate, data)
}

// playerFilename maps a player name to its page file name: spaces and
// slashes become underscores, then everything outside [alnum ._-] is
// dropped.
func playerFilename(player string) string {
	return sanitize(strings.NewReplacer(" ", "_", "/", "_", `\`, "_").Replace(player)) + ".html"
}

// teamFilename maps a team-season to its page file name.
func teamFilename(tm team) string {
	season := strings.NewReplacer("/", "_", " ", "_").Replace(tm.Season)
	return sanitize(fmt.Sprintf("%d_%s", tm.TeamID, season)) + ".html"
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
