package todoist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Command is one queued sync write. Every command carries its own uuid and
// temp_id so the provider can dedupe and address it.
type Command struct {
	Type   string                 `json:"type"`
	TempID string                 `json:"temp_id"`
	UUID   string                 `json:"uuid"`
	Args   map[string]interface{} `json:"args"`
}

// Batch queues sync commands client-side and flushes them to the provider
// in a single round trip on Commit.
type Batch struct {
	client   *Client
	token    string
	commands []Command
}

// NewBatch starts an empty command batch for the given access token.
func (c *Client) NewBatch(token string) *Batch {
	return &Batch{client: c, token: token}
}

// AddLocationReminder queues a reminder_add command attaching a geofenced
// reminder to the task. Nothing is sent until Commit.
func (b *Batch) AddLocationReminder(itemID int64, name string, lat, long float64, trigger string, radius float64) {
	b.commands = append(b.commands, Command{
		Type:   "reminder_add",
		TempID: strings.ReplaceAll(uuid.New().String(), "-", ""),
		UUID:   strings.ReplaceAll(uuid.New().String(), "-", ""),
		Args: map[string]interface{}{
			"item_id":     itemID,
			"type":        "location",
			"name":        name,
			"loc_lat":     lat,
			"loc_long":    long,
			"loc_trigger": trigger,
			"radius":      radius,
		},
	})
}

// Len reports how many commands are queued.
func (b *Batch) Len() int {
	return len(b.commands)
}

// Commit flushes the queued commands in one sync POST. An empty batch still
// issues the call; the provider treats it as a no-op.
func (b *Batch) Commit(ctx context.Context) error {
	commands := b.commands
	if commands == nil {
		commands = []Command{}
	}
	payload, err := json.Marshal(commands)
	if err != nil {
		return fmt.Errorf("encode commands: %w", err)
	}

	form := url.Values{
		"token":    {b.token},
		"commands": {string(payload)},
	}
	if _, err := b.client.postSync(ctx, form); err != nil {
		return err
	}

	b.commands = nil
	return nil
}
