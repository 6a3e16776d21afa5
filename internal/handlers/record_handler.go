package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"inventario_api/internal/services"

	"github.com/gorilla/mux"
)

// anonymousSession is used when the request carries no Authorization
// header. The header value is an opaque partition key, not a credential.
const anonymousSession = "anonymous"

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type RecordHandler struct {
	records *services.RecordService
	exports *services.ExportService
	devMode bool
}

func NewRecordHandler(records *services.RecordService, exports *services.ExportService, devMode bool) *RecordHandler {
	return &RecordHandler{
		records: records,
		exports: exports,
		devMode: devMode,
	}
}

// saveRequest accepts code and quantity loosely typed: some clients send
// the scanned code as a JSON number, and quantity as a digit string.
type saveRequest struct {
	Code     interface{} `json:"code"`
	Name     string      `json:"name"`
	Quantity interface{} `json:"quantity"`
}

// toInput normalizes the loose fields. Numeric codes become their decimal
// text form; quantity must be an integer however it was encoded.
func (req *saveRequest) toInput() (services.RecordInput, error) {
	var in services.RecordInput

	switch code := req.Code.(type) {
	case nil:
		return in, services.NewValidationError("code", "El campo 'code' es obligatorio")
	case string:
		in.Code = code
	case json.Number:
		in.Code = code.String()
	default:
		return in, services.NewValidationError("code", "El campo 'code' debe ser texto")
	}

	in.Name = req.Name

	switch qty := req.Quantity.(type) {
	case nil:
		return in, services.NewValidationError("quantity", "El campo 'quantity' es obligatorio")
	case json.Number:
		n, err := strconv.Atoi(qty.String())
		if err != nil {
			return in, services.NewValidationError("quantity", "El campo 'quantity' debe ser un número entero")
		}
		in.Quantity = n
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(qty))
		if err != nil {
			return in, services.NewValidationError("quantity", "El campo 'quantity' debe ser un número entero")
		}
		in.Quantity = n
	default:
		return in, services.NewValidationError("quantity", "El campo 'quantity' debe ser un número entero")
	}

	return in, nil
}

// SaveRecord handles POST /save
func (rh *RecordHandler) SaveRecord(w http.ResponseWriter, r *http.Request) {
	req, ok := rh.decodeBody(w, r)
	if !ok {
		return
	}

	in, err := req.toInput()
	if err != nil {
		rh.writeServiceError(w, err)
		return
	}

	id, err := rh.records.Create(sessionFromRequest(r), in)
	if err != nil {
		rh.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Registro guardado",
		"id":      id,
	})
}

// UpdateRecord handles PUT /save/{id}
func (rh *RecordHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := rh.recordID(w, r)
	if !ok {
		return
	}

	req, ok := rh.decodeBody(w, r)
	if !ok {
		return
	}

	in, err := req.toInput()
	if err != nil {
		rh.writeServiceError(w, err)
		return
	}

	if err := rh.records.Update(sessionFromRequest(r), id, in); err != nil {
		rh.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Registro actualizado"})
}

// DeleteRecord handles DELETE /delete/{id}
func (rh *RecordHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := rh.recordID(w, r)
	if !ok {
		return
	}

	if err := rh.records.Delete(sessionFromRequest(r), id); err != nil {
		rh.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Registro eliminado"})
}

// ListRecords handles GET /records and its alias GET /recover
func (rh *RecordHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := rh.records.List(sessionFromRequest(r))
	if err != nil {
		rh.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// ExportRecords handles GET /export. A successful build purges the
// session's records; on failure the JSON error body replaces the sheet
// and nothing is deleted.
func (rh *RecordHandler) ExportRecords(w http.ResponseWriter, r *http.Request) {
	data, err := rh.exports.ExportAndPurge(sessionFromRequest(r))
	if err != nil {
		rh.writeServiceError(w, err)
		return
	}

	filename := services.ExportFilename(time.Now())
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// decodeBody parses the JSON body, keeping numbers as json.Number so
// numeric codes survive without float rounding.
func (rh *RecordHandler) decodeBody(w http.ResponseWriter, r *http.Request) (*saveRequest, bool) {
	var req saveRequest
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Cuerpo de la petición inválido", "")
		return nil, false
	}
	return &req, true
}

// recordID parses the {id} path variable, rejecting non-numeric ids
// before the store is touched.
func (rh *RecordHandler) recordID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "El id debe ser un número entero", "id")
		return 0, false
	}
	return uint(id), true
}

// writeServiceError maps service errors onto the HTTP taxonomy:
// validation → 400 with field detail, not found → 404, rest → 500 with
// detail suppressed outside dev mode.
func (rh *RecordHandler) writeServiceError(w http.ResponseWriter, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, vErr.Message, vErr.Field)
	case errors.Is(err, services.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, "Registro no encontrado", "")
	default:
		log.Printf("internal error: %v", err)
		msg := "Error interno del servidor"
		if rh.devMode {
			msg = err.Error()
		}
		writeError(w, http.StatusInternalServerError, msg, "")
	}
}

func sessionFromRequest(r *http.Request) string {
	session := strings.TrimSpace(r.Header.Get("Authorization"))
	if session == "" {
		return anonymousSession
	}
	return session
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, field string) {
	body := map[string]string{"error": message}
	if field != "" {
		body["field"] = field
	}
	writeJSON(w, status, body)
}
