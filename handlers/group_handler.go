package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/camden-git/rosterbackend/repository"
	"github.com/camden-git/rosterbackend/services"
)

type GroupHandler struct {
	Groups repository.GroupRepositoryInterface
	Roster *services.RosterService
}

func (gh *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		OrderKey int    `json:"order_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	group, err := gh.Groups.Create(req.Name, req.OrderKey)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (gh *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := gh.Groups.ListAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (gh *GroupHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "group_name")
	if err := gh.Groups.Delete(name); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Group deleted"})
}

func (gh *GroupHandler) GetGroupRoster(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "group_name")
	roster, err := gh.Roster.GroupRoster(name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roster)
}

func (gh *GroupHandler) GetFullRoster(w http.ResponseWriter, r *http.Request) {
	roster, err := gh.Roster.FullRoster()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roster)
}
