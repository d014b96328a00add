// Package todoist implements the authorization-code flow against the task
// provider: the /authorize redirect and the /oauth/redirect callback.
package todoist

import (
	"github.com/dmelnik/taskfence/internal/config"
	"golang.org/x/oauth2"
)

// Scopes requested during authorization. Reminder writes need read_write.
var Scopes = []string{"data:read_write"}

// OAuthConfig returns the oauth2 config for the provider. The token
// endpoint expects client credentials in the POST body, not basic auth.
func OAuthConfig(cfg *config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.Todoist.ClientID,
		ClientSecret: cfg.Todoist.ClientSecret,
		RedirectURL:  cfg.BaseURL + "/oauth/redirect",
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   cfg.Todoist.AuthURL,
			TokenURL:  cfg.Todoist.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}
