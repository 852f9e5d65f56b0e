package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/camden-git/rosterbackend/repository"
)

type OrderingHandler struct {
	Ordering repository.OrderingRepositoryInterface
}

func (oh *OrderingHandler) Swap(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SequenceA int64 `json:"sequence_a"`
		SequenceB int64 `json:"sequence_b"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	if err := oh.Ordering.Swap(req.SequenceA, req.SequenceB); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Positions swapped"})
}

func (oh *OrderingHandler) MoveAfter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Sequence int64 `json:"sequence"`
		Target   int64 `json:"target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	if err := oh.Ordering.MoveAfter(req.Sequence, req.Target); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Person moved"})
}
