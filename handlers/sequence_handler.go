package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/camden-git/rosterbackend/repository"
)

type SequenceHandler struct {
	Sequences repository.SequenceRepositoryInterface
}

func (sh *SequenceHandler) ListExcluded(w http.ResponseWriter, r *http.Request) {
	numbers, err := sh.Sequences.ListExcluded()
	if err != nil {
		writeError(w, err)
		return
	}
	if numbers == nil {
		numbers = []int64{}
	}
	writeJSON(w, http.StatusOK, numbers)
}

func (sh *SequenceHandler) Exclude(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Number int64 `json:"number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	if err := sh.Sequences.Exclude(req.Number); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Number excluded"})
}

func (sh *SequenceHandler) Unexclude(w http.ResponseWriter, r *http.Request) {
	numberStr := chi.URLParam(r, "number")
	number, err := strconv.ParseInt(numberStr, 10, 64)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_operation", "Invalid number format")
		return
	}

	if err := sh.Sequences.Unexclude(number); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Number unexcluded"})
}
