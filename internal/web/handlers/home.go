package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/dmelnik/taskfence/internal/db"
	"github.com/dmelnik/taskfence/internal/db/models"
	"github.com/dmelnik/taskfence/internal/session"
	"github.com/dmelnik/taskfence/internal/todoist"
	"gorm.io/gorm"
)

var homeTmpl = template.Must(template.New("home").Parse(homeHTML))

type homeView struct {
	LoggedIn   bool
	FullName   string
	Labels     []todoist.Label
	LabelNames map[int64]string
	Groups     map[int64][]models.LocationLabel
}

// HomeHandler renders the dashboard. Anonymous sessions get the sign-in
// view; logged-in users get their provider labels and the location rules
// grouped by label id.
func HomeHandler(sessions *session.Store, database *gorm.DB, client *todoist.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := homeView{}

		sess := sessions.Get(r)
		if raw := sess[session.KeyUserID]; raw != "" {
			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				http.Error(w, `{"error": "corrupt session"}`, http.StatusBadRequest)
				return
			}

			user, err := db.GetUser(database, userID)
			if err != nil {
				http.Error(w, fmt.Sprintf(`{"error": "failed to load user: %v"}`, err), http.StatusInternalServerError)
				return
			}

			labels, err := client.Labels(r.Context(), user.OAuthToken)
			if err != nil {
				http.Error(w, fmt.Sprintf(`{"error": "failed to fetch labels: %v"}`, err), http.StatusBadGateway)
				return
			}
			providerUser, err := client.User(r.Context(), user.OAuthToken)
			if err != nil {
				http.Error(w, fmt.Sprintf(`{"error": "failed to fetch profile: %v"}`, err), http.StatusBadGateway)
				return
			}
			rules, err := db.RulesForUser(database, user.ID)
			if err != nil {
				http.Error(w, fmt.Sprintf(`{"error": "failed to load rules: %v"}`, err), http.StatusInternalServerError)
				return
			}

			labelNames := make(map[int64]string, len(labels))
			for _, label := range labels {
				labelNames[label.ID] = label.Name
			}

			view.LoggedIn = true
			view.FullName = providerUser.FullName
			view.Labels = labels
			view.LabelNames = labelNames
			view.Groups = db.GroupRulesByLabel(rules)
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := homeTmpl.Execute(w, view); err != nil {
			http.Error(w, fmt.Sprintf(`{"error": "render failed: %v"}`, err), http.StatusInternalServerError)
		}
	}
}

const homeHTML = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<title>Taskfence</title>
	<style>
		body { font-family: -apple-system, BlinkMacSystemFont, sans-serif; max-width: 800px; margin: 50px auto; padding: 20px; background: #1a1a2e; color: #eee; }
		a { color: #4ade80; }
		table { border-collapse: collapse; width: 100%; margin-bottom: 24px; }
		th, td { text-align: left; padding: 6px 10px; border-bottom: 1px solid #374151; }
		h2 { margin-top: 32px; }
		code { background: #374151; padding: 2px 6px; border-radius: 4px; color: #fbbf24; }
	</style>
</head>
<body>
	<h1>Taskfence</h1>
{{if .LoggedIn}}
	<p>Signed in as <strong>{{.FullName}}</strong>.</p>
	<h2>Labels</h2>
	<table>
		<tr><th>ID</th><th>Name</th></tr>
		{{range .Labels}}<tr><td><code>{{.ID}}</code></td><td>{{.Name}}</td></tr>
		{{end}}
	</table>
	<h2>Location rules</h2>
	{{if .Groups}}
	<table>
		<tr><th>Label</th><th>Reminder</th><th>Trigger</th><th>Lat</th><th>Long</th><th>Radius (m)</th></tr>
		{{range $labelID, $rules := .Groups}}{{range $rules}}<tr>
			<td>{{with index $.LabelNames $labelID}}{{.}}{{else}}<code>{{$labelID}}</code>{{end}}</td>
			<td>{{.Name}}</td><td>{{.LocTrigger}}</td><td>{{.Lat}}</td><td>{{.Long}}</td><td>{{.Radius}}</td>
		</tr>
		{{end}}{{end}}
	</table>
	{{else}}
	<p>No location rules yet. Create one via <code>POST /api/rules</code>.</p>
	{{end}}
{{else}}
	<p><a href="/authorize">Connect your Todoist account</a> to set up location reminders.</p>
{{end}}
</body>
</html>
`
