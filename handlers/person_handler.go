package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/camden-git/rosterbackend/models"
	"github.com/camden-git/rosterbackend/repository"
	"github.com/camden-git/rosterbackend/services"
)

type PersonHandler struct {
	People repository.PersonRepositoryInterface
	Roster *services.RosterService
}

func (ph *PersonHandler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GroupName string  `json:"group_name"`
		FirstName string  `json:"first_name"`
		LastName  string  `json:"last_name"`
		Nickname  string  `json:"nickname"`
		Bio       *string `json:"bio"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	person, err := ph.People.Create(req.GroupName, req.FirstName, req.LastName, req.Nickname, req.Bio)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, person)
}

func (ph *PersonHandler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	nickname := chi.URLParam(r, "nickname")
	if err := ph.People.Delete(nickname); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Person deleted"})
}

// criteriaFromQuery reads the lookup query parameters. The number parameter
// must be an integer; name parameters are taken as-is.
func criteriaFromQuery(r *http.Request) (models.FindCriteria, error) {
	criteria := models.FindCriteria{}
	if v := r.URL.Query().Get("number"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return criteria, err
		}
		criteria.SequenceNumber = &n
	}
	if v := r.URL.Query().Get("first"); v != "" {
		criteria.FirstName = &v
	}
	if v := r.URL.Query().Get("last"); v != "" {
		criteria.LastName = &v
	}
	if v := r.URL.Query().Get("nick"); v != "" {
		criteria.Nickname = &v
	}
	return criteria, nil
}

// LookupPerson returns the member card for a single match on any of the
// provided criteria (OR semantics).
func (ph *PersonHandler) LookupPerson(w http.ResponseWriter, r *http.Request) {
	criteria, err := criteriaFromQuery(r)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_operation", "Invalid number parameter")
		return
	}

	card, err := ph.Roster.MemberCard(criteria)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// SearchPeople returns every match for the provided criteria ordered by
// sequence number.
func (ph *PersonHandler) SearchPeople(w http.ResponseWriter, r *http.Request) {
	criteria, err := criteriaFromQuery(r)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_operation", "Invalid number parameter")
		return
	}

	people, err := ph.People.FindAll(criteria)
	if err != nil {
		writeError(w, err)
		return
	}
	if people == nil {
		people = []models.Person{}
	}
	writeJSON(w, http.StatusOK, people)
}

func (ph *PersonHandler) UpdateName(w http.ResponseWriter, r *http.Request) {
	nickname := chi.URLParam(r, "nickname")

	var patch models.NamePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	person, err := ph.People.UpdateName(nickname, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, person)
}

func (ph *PersonHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	nickname := chi.URLParam(r, "nickname")

	var patch models.ProfilePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	if err := ph.People.UpdateProfile(nickname, patch); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Profile updated"})
}
