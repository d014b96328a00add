package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dmelnik/taskfence/internal/db"
	"github.com/dmelnik/taskfence/internal/db/models"
	"github.com/dmelnik/taskfence/internal/web/identity"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

// validateRule checks the writable fields shared by create and update.
// LocTrigger is opaque to us beyond being present; its semantics belong to
// the provider.
func validateRule(rule *models.LocationLabel) string {
	switch {
	case rule.LabelID == 0:
		return "label_id is required"
	case rule.Name == "":
		return "name is required"
	case rule.LocTrigger == "":
		return "loc_trigger is required"
	case rule.Radius <= 0:
		return "radius must be positive"
	}
	return ""
}

// ListRulesHandler returns the signed-in user's rules
func ListRulesHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := identity.UserID(r.Context())
		rules, err := db.RulesForUser(database, userID)
		if err != nil {
			http.Error(w, `{"error": "failed to load rules"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"rules": rules,
			"count": len(rules),
		})
	}
}

// CreateRuleHandler creates a new rule owned by the signed-in user
func CreateRuleHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := identity.UserID(r.Context())

		var rule models.LocationLabel
		if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
			http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
			return
		}
		if msg := validateRule(&rule); msg != "" {
			http.Error(w, `{"error": "`+msg+`"}`, http.StatusBadRequest)
			return
		}

		// Ownership comes from the session, never from the payload.
		rule.ID = 0
		rule.UserID = userID

		if err := db.CreateRule(database, &rule); err != nil {
			http.Error(w, `{"error": "failed to create rule: `+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(rule)
	}
}

// UpdateRuleHandler updates one of the signed-in user's rules
func UpdateRuleHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := identity.UserID(r.Context())

		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
		if err != nil {
			http.Error(w, `{"error": "invalid rule id"}`, http.StatusBadRequest)
			return
		}

		existing, err := db.GetRule(database, userID, uint(id))
		if err == gorm.ErrRecordNotFound {
			http.Error(w, `{"error": "rule not found"}`, http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, `{"error": "failed to load rule"}`, http.StatusInternalServerError)
			return
		}

		var payload models.LocationLabel
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
			return
		}
		if msg := validateRule(&payload); msg != "" {
			http.Error(w, `{"error": "`+msg+`"}`, http.StatusBadRequest)
			return
		}

		existing.LabelID = payload.LabelID
		existing.Name = payload.Name
		existing.Lat = payload.Lat
		existing.Long = payload.Long
		existing.LocTrigger = payload.LocTrigger
		existing.Radius = payload.Radius

		if err := db.UpdateRule(database, existing); err != nil {
			http.Error(w, `{"error": "failed to update rule"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(existing)
	}
}

// DeleteRuleHandler deletes one of the signed-in user's rules
func DeleteRuleHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := identity.UserID(r.Context())

		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
		if err != nil {
			http.Error(w, `{"error": "invalid rule id"}`, http.StatusBadRequest)
			return
		}

		switch err := db.DeleteRule(database, userID, uint(id)); err {
		case nil:
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status": "deleted"}`))
		case gorm.ErrRecordNotFound:
			http.Error(w, `{"error": "rule not found"}`, http.StatusNotFound)
		default:
			http.Error(w, `{"error": "failed to delete rule"}`, http.StatusInternalServerError)
		}
	}
}
