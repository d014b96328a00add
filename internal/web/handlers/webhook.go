package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/dmelnik/taskfence/internal/db"
	"github.com/dmelnik/taskfence/internal/todoist"
	"github.com/dmelnik/taskfence/internal/util"
	"gorm.io/gorm"
)

// Event names that trigger reminder creation. Everything else is
// acknowledged and dropped.
const (
	eventItemAdded   = "item:added"
	eventItemUpdated = "item:updated"
)

type webhookInitiator struct {
	ID int64 `json:"id"`
}

type webhookEventData struct {
	ID     int64   `json:"id"`
	Labels []int64 `json:"labels"`
}

// webhookEvent is the provider's event envelope, restricted to the fields
// this system reads. Pointer fields distinguish "absent" from "zero" so a
// missing section fails validation instead of silently reading as empty.
type webhookEvent struct {
	EventName string            `json:"event_name"`
	Initiator *webhookInitiator `json:"initiator"`
	EventData *webhookEventData `json:"event_data"`
}

// validate checks the fields required to process a handled event.
func (e *webhookEvent) validate() error {
	if e.Initiator == nil || e.Initiator.ID == 0 {
		return fmt.Errorf("event missing initiator id")
	}
	if e.EventData == nil || e.EventData.ID == 0 {
		return fmt.Errorf("event missing task data")
	}
	return nil
}

// WebhookHandler receives the provider's task events. For item:added and
// item:updated it queues one location reminder per matching rule per label
// on the task, then flushes the whole batch in a single provider commit.
// The commit is issued even when nothing matched.
func WebhookHandler(database *gorm.DB, client *todoist.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, `{"error": "failed to read body"}`, http.StatusBadRequest)
			return
		}

		var event webhookEvent
		if err := json.Unmarshal(body, &event); err != nil || event.EventName == "" {
			log.Printf("malformed webhook payload: %s", util.TruncateBytes(body))
			http.Error(w, `{"error": "malformed event payload"}`, http.StatusBadRequest)
			return
		}

		if event.EventName != eventItemAdded && event.EventName != eventItemUpdated {
			// Acknowledged so the provider stops retrying; nothing to do.
			w.WriteHeader(http.StatusOK)
			return
		}

		if err := event.validate(); err != nil {
			log.Printf("malformed %s event: %v: %s", event.EventName, err, util.TruncateBytes(body))
			http.Error(w, fmt.Sprintf(`{"error": "malformed event: %v"}`, err), http.StatusBadRequest)
			return
		}

		user, err := db.GetUser(database, event.Initiator.ID)
		if err != nil {
			log.Printf("webhook for unknown user %d: %v", event.Initiator.ID, err)
			http.Error(w, fmt.Sprintf(`{"error": "unknown user %d"}`, event.Initiator.ID), http.StatusInternalServerError)
			return
		}

		batch := client.NewBatch(user.OAuthToken)
		for _, labelID := range event.EventData.Labels {
			rules, err := db.RulesForLabel(database, user.ID, labelID)
			if err != nil {
				http.Error(w, fmt.Sprintf(`{"error": "failed to load rules: %v"}`, err), http.StatusInternalServerError)
				return
			}
			for _, rule := range rules {
				batch.AddLocationReminder(event.EventData.ID, rule.Name, rule.Lat, rule.Long, rule.LocTrigger, rule.Radius)
			}
		}

		queued := batch.Len()
		if err := batch.Commit(r.Context()); err != nil {
			log.Printf("reminder commit failed for user %d: %v", user.ID, err)
			http.Error(w, fmt.Sprintf(`{"error": "commit failed: %v"}`, err), http.StatusBadGateway)
			return
		}
		log.Printf("%s task %d: queued %d reminder(s) for user %d", event.EventName, event.EventData.ID, queued, user.ID)

		w.Write([]byte("ok"))
	}
}
