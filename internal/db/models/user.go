package models

// User is a Todoist account linked through the OAuth flow.
// The primary key is Todoist's own user id, never locally generated,
// so the webhook initiator id maps straight onto the row.
type User struct {
	ID         int64  `gorm:"primaryKey" json:"id"`
	OAuthToken string `json:"-"`
}
