package site

import (
	"fmt"
	"html/template"
	"os"
)

type link struct {
	Name string
	Href string
}

type teamLink struct {
	Name   string
	Season string
	Href   string
}

type indexData struct {
	Players []link
	Teams   []teamLink
}

type playerTeamData struct {
	TeamName  string
	Season    string
	TeamHref  string
	Teammates []link
}

type playerPageData struct {
	PlayerName string
	Teams      []playerTeamData
}

type teamPageData struct {
	TeamName string
	Season   string
	TeamID   int
	Players  []link
}

// render executes tmpl into path.
func render(path string, tmpl *template.Template, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return f.Close()
}

const siteCSS = `
    body { font-family: Arial, sans-serif; max-width: 1200px; margin: 0 auto; padding: 20px; background-color: #f5f5f5; }
    .header { background-color: #1e3a8a; color: white; padding: 20px; border-radius: 8px; margin-bottom: 20px; text-align: center; }
    .container { background-color: white; padding: 20px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
    .player-grid { line-height: 1.8; }
    .player-link { color: #0066cc; text-decoration: underline; margin-right: 15px; }
    .player-link:hover { color: #004499; }
    .team-link { background-color: #e8f5e8; padding: 12px; border-radius: 4px; text-decoration: none; color: #2e7d32; border: 1px solid #c8e6c9; display: block; margin-bottom: 8px; }
    .team-link:hover { background-color: #c8e6c9; }
    .team-link .team-name { font-weight: bold; font-size: 1.1em; margin-bottom: 4px; }
    .team-link .team-season { font-size: 0.9em; color: #4a4a4a; }
    .section-header { background-color: #f8f9fa; padding: 15px; border-radius: 6px; border-left: 4px solid #1e3a8a; margin: 30px 0 15px 0; }
    .section-header h3 { margin: 0; color: #1e3a8a; }
    .team-card { background-color: #f8f9fa; border: 1px solid #dee2e6; border-radius: 8px; margin: 15px 0; padding: 15px; }
    .team-header { background-color: #17a2b8; color: white; padding: 10px; border-radius: 4px; margin-bottom: 10px; }
    .teammates { display: grid; grid-template-columns: repeat(auto-fill, minmax(150px, 1fr)); gap: 5px; margin-top: 10px; }
    .teammate { background-color: #e9ecef; padding: 5px 8px; border-radius: 3px; font-size: 0.9em; }
    .back-link { display: inline-block; background-color: #6c757d; color: white; padding: 8px 12px; border-radius: 4px; text-decoration: none; margin-bottom: 15px; }
`

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Arlington Hockey Club Player Directory</title>
  <style>` + siteCSS + `</style>
</head>
<body>
  <div class="header">
    <h1>Arlington Hockey Club</h1>
    <p>Player &amp; Team Directory</p>
  </div>
  <div class="container">
    <div class="section-header"><h3>Players ({{len .Players}})</h3></div>
    <div class="player-grid">
{{- range .Players}}
      <a href="{{.Href}}" class="player-link">{{.Name}}</a>
{{- end}}
    </div>
    <div class="section-header"><h3>Teams ({{len .Teams}})</h3></div>
{{- range .Teams}}
    <a href="{{.Href}}" class="team-link">
      <div class="team-name">{{.Name}}</div>
      <div class="team-season">{{.Season}}</div>
    </a>
{{- end}}
  </div>
</body>
</html>
`))

var playerTemplate = template.Must(template.New("player").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.PlayerName}} | Arlington Hockey Club</title>
  <style>` + siteCSS + `</style>
</head>
<body>
  <div class="header"><h1>{{.PlayerName}}</h1></div>
  <div class="container">
    <a href="../index.html" class="back-link">&larr; Back to Player Directory</a>
{{- range .Teams}}
    <div class="team-card">
      <div class="team-header">
        <a href="{{.TeamHref}}" style="color: white;">{{.TeamName}}</a> &mdash; {{.Season}}
      </div>
      <div class="teammates">
{{- range .Teammates}}
        <div class="teammate"><a href="{{.Href}}" class="player-link">{{.Name}}</a></div>
{{- end}}
      </div>
    </div>
{{- end}}
  </div>
</body>
</html>
`))

var teamTemplate = template.Must(template.New("team").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.TeamName}} ({{.Season}}) | Arlington Hockey Club</title>
  <style>` + siteCSS + `</style>
</head>
<body>
  <div class="header">
    <h1>{{.TeamName}}</h1>
    <p>{{.Season}}</p>
  </div>
  <div class="container">
    <a href="../index.html" class="back-link">&larr; Back to Directory</a>
    <div class="section-header"><h3>Roster ({{len .Players}})</h3></div>
    <div class="player-grid">
{{- range .Players}}
      <a href="{{.Href}}" class="player-link">{{.Name}}</a>
{{- end}}
    </div>
  </div>
</body>
</html>
`))
