package todoist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmelnik/taskfence/internal/config"
)

func newTestClient(server *httptest.Server) *Client {
	return NewClient(config.TodoistConfig{
		SyncURL: server.URL + "/sync",
		RestURL: server.URL + "/rest",
	})
}

func TestLabels_TokenQueryParamAndParse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/labels" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("token"); got != "tok" {
			t.Errorf("expected token query param 'tok', got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 5, "name": "errands", "color": 7, "item_order": 1}]`))
	}))
	defer server.Close()

	labels, err := newTestClient(server).Labels(context.Background(), "tok")
	if err != nil {
		t.Fatalf("labels: %v", err)
	}
	if len(labels) != 1 || labels[0].ID != 5 || labels[0].Name != "errands" {
		t.Fatalf("unexpected labels: %+v", labels)
	}
}

func TestLabels_Non2xxSurfacesError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusForbidden)
	}))
	defer server.Close()

	if _, err := newTestClient(server).Labels(context.Background(), "tok"); err == nil {
		t.Fatal("expected error for 403 response")
	}
}

func TestUser_SyncReadParsesUserResource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sync" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("resource_types"); got != `["user"]` {
			t.Errorf("expected user resource_types, got %q", got)
		}
		if got := r.PostForm.Get("token"); got != "tok" {
			t.Errorf("expected token 'tok', got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user": {"id": 42, "full_name": "Ada Lovelace", "email": "ada@example.com"}}`))
	}))
	defer server.Close()

	user, err := newTestClient(server).User(context.Background(), "tok")
	if err != nil {
		t.Fatalf("user: %v", err)
	}
	if user.ID != 42 || user.FullName != "Ada Lovelace" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestUser_MissingResourceIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	if _, err := newTestClient(server).User(context.Background(), "tok"); err == nil {
		t.Fatal("expected error for response without user resource")
	}
}

func decodeCommands(t *testing.T, r *http.Request) []Command {
	t.Helper()
	if err := r.ParseForm(); err != nil {
		t.Fatalf("parse form: %v", err)
	}
	var commands []Command
	if err := json.Unmarshal([]byte(r.PostForm.Get("commands")), &commands); err != nil {
		t.Fatalf("decode commands: %v", err)
	}
	return commands
}

func TestBatch_CommitSendsAllQueuedCommandsOnce(t *testing.T) {
	var got []Command
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		got = decodeCommands(t, r)
		w.Write([]byte(`{"sync_status": {}}`))
	}))
	defer server.Close()

	batch := newTestClient(server).NewBatch("tok")
	batch.AddLocationReminder(1001, "office", 60.1699, 24.9384, "on_enter", 100)
	batch.AddLocationReminder(1001, "warehouse", 60.2, 24.9, "on_leave", 250)

	if err := batch.Commit(context.Background()); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single sync call, got %d", calls)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(got))
	}
	for _, cmd := range got {
		if cmd.Type != "reminder_add" {
			t.Errorf("unexpected command type %q", cmd.Type)
		}
		if cmd.UUID == "" || cmd.TempID == "" {
			t.Errorf("command missing uuid/temp_id: %+v", cmd)
		}
		if cmd.Args["type"] != "location" {
			t.Errorf("expected location reminder, got %v", cmd.Args["type"])
		}
	}
	if got[0].UUID == got[1].UUID {
		t.Error("commands share a uuid")
	}
}

func TestBatch_EmptyCommitStillIssuesCall(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if got := decodeCommands(t, r); len(got) != 0 {
			t.Errorf("expected empty command list, got %d", len(got))
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	batch := newTestClient(server).NewBatch("tok")
	if err := batch.Commit(context.Background()); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one sync call, got %d", calls)
	}
}
