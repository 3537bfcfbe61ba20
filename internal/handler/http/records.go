package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-ledger-sync/internal/app"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/utils"
	"github.com/MKhiriev/go-ledger-sync/internal/validators"
	"github.com/MKhiriev/go-ledger-sync/models"
)

// deleteRequest is the optional body of DELETE /api/records/{table}/{localID}.
type deleteRequest struct {
	DeletedAt time.Time `json:"deleted_at"`
}

func refFromURL(r *http.Request) models.RecordRef {
	return models.RecordRef{
		Table:   models.EntityTable(chi.URLParam(r, "table")),
		LocalID: chi.URLParam(r, "localID"),
	}
}

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	ref := refFromURL(r)

	if err := h.validator.Validate(r.Context(), ref, validators.FieldTable); err != nil {
		writeError(w, log, "Handler.listRecords", err)
		return
	}

	var since *time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			writeError(w, log, "Handler.listRecords", fmt.Errorf("%w: %w", ErrInvalidSince, err))
			return
		}
		since = &parsed
	}

	records, err := h.services.RecordService.ListSince(r.Context(), ref.Table, since)
	if err != nil {
		writeError(w, log, "Handler.listRecords", err)
		return
	}
	if records == nil {
		records = []models.RemoteRecord{}
	}

	utils.WriteJSON(w, records, http.StatusOK)
}

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	ref := refFromURL(r)

	if err := h.validator.Validate(r.Context(), ref); err != nil {
		writeError(w, log, "Handler.getRecord", err)
		return
	}

	record, err := h.services.RecordService.Get(r.Context(), ref.Table, ref.LocalID)
	if err != nil {
		writeError(w, log, "Handler.getRecord", err)
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}

func (h *Handler) insertRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	record, ok := h.decodeRecord(w, r, refFromURL(r))
	if !ok {
		return
	}

	created, err := h.services.RecordService.Insert(r.Context(), record)
	if err != nil {
		writeError(w, log, "Handler.insertRecord", err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	record, ok := h.decodeRecord(w, r, refFromURL(r))
	if !ok {
		return
	}

	updated, err := h.services.RecordService.Update(r.Context(), record)
	if err != nil {
		writeError(w, log, "Handler.updateRecord", err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	ref := refFromURL(r)

	if err := h.validator.Validate(r.Context(), ref); err != nil {
		writeError(w, log, "Handler.deleteRecord", err)
		return
	}

	// the body is optional; without it the server time is used
	var body deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	deleted, err := h.services.RecordService.Delete(r.Context(), ref.Table, ref.LocalID, body.DeletedAt)
	if err != nil {
		writeError(w, log, "Handler.deleteRecord", err)
		return
	}

	utils.WriteJSON(w, deleted, http.StatusOK)
}

// decodeRecord reads the record body and fills its address from the URL.
// A body naming another address is rejected.
func (h *Handler) decodeRecord(w http.ResponseWriter, r *http.Request, ref models.RecordRef) (models.RemoteRecord, bool) {
	log := logger.FromRequest(r)

	var record models.RemoteRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return models.RemoteRecord{}, false
	}

	if record.Table == "" {
		record.Table = ref.Table
	}
	if record.LocalID == "" {
		record.LocalID = ref.LocalID
	}
	if record.Table != ref.Table || (ref.LocalID != "" && record.LocalID != ref.LocalID) {
		writeError(w, log, "Handler.decodeRecord", ErrAddressMismatch)
		return models.RemoteRecord{}, false
	}

	if err := h.validator.Validate(r.Context(), record); err != nil {
		writeError(w, log, "Handler.decodeRecord", err)
		return models.RemoteRecord{}, false
	}

	return record, true
}
