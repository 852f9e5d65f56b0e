package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/camden-git/rosterbackend/services"
)

type ImportHandler struct {
	Importer *services.ImportService
}

func (ih *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Records          []services.Record `json:"records"`
		DefaultGroup     string            `json:"default_group"`
		CreateMissing    bool              `json:"create_missing"`
		WipeBeforeImport bool              `json:"wipe_before_import"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	summary, err := ih.Importer.Import(req.Records, services.ImportOptions{
		DefaultGroup:     req.DefaultGroup,
		CreateMissing:    req.CreateMissing,
		WipeBeforeImport: req.WipeBeforeImport,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (ih *ImportHandler) Export(w http.ResponseWriter, r *http.Request) {
	rows, err := ih.Importer.Export()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
