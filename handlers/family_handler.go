package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/camden-git/rosterbackend/repository"
)

type FamilyHandler struct {
	Family repository.FamilyRepositoryInterface
}

func (fh *FamilyHandler) SetParent(w http.ResponseWriter, r *http.Request) {
	nickname := chi.URLParam(r, "nickname")

	var req struct {
		Parent *string `json:"parent"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	if err := fh.Family.SetParent(nickname, req.Parent); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Parent updated"})
}

func (fh *FamilyHandler) GetFamily(w http.ResponseWriter, r *http.Request) {
	nickname := chi.URLParam(r, "nickname")

	parent, err := fh.Family.GetParent(nickname)
	if err != nil {
		writeError(w, err)
		return
	}
	children, err := fh.Family.GetChildren(nickname)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"parent":   parent,
		"children": children,
	})
}
