package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/camden-git/rosterbackend/repository"
)

type SocialHandler struct {
	Socials repository.SocialRepositoryInterface
}

func (sh *SocialHandler) SetSocial(w http.ResponseWriter, r *http.Request) {
	nickname := chi.URLParam(r, "nickname")

	var req struct {
		Platform string `json:"platform"`
		Handle   string `json:"handle"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	if err := sh.Socials.Set(nickname, req.Platform, req.Handle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Social handle saved"})
}

func (sh *SocialHandler) RemoveSocial(w http.ResponseWriter, r *http.Request) {
	nickname := chi.URLParam(r, "nickname")
	platform := chi.URLParam(r, "platform")

	if err := sh.Socials.Remove(nickname, platform); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Social handle removed"})
}
