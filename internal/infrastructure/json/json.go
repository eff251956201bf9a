package json

import (
	"encoding/json"
	"net/http"
)

const maxBodyBytes = 1 << 20

type envelope struct {
	Error string `json:"error"`
}

// Read decodes the request body into data, rejecting unknown fields and
// bodies over 1MB.
func Read(r *http.Request, data any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	return decoder.Decode(data)
}

func Write(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError sends an error envelope with the given public message. The
// underlying error stays server-side; callers log it if it matters.
func WriteError(w http.ResponseWriter, status int, _ error, message string) {
	Write(w, status, envelope{Error: message})
}

func WriteValidationError(w http.ResponseWriter, err error) {
	Write(w, http.StatusBadRequest, envelope{Error: err.Error()})
}

func WriteBadRequestError(w http.ResponseWriter, message string) {
	Write(w, http.StatusBadRequest, envelope{Error: message})
}

func WriteInternalError(w http.ResponseWriter, err error) {
	WriteError(w, http.StatusInternalServerError, err, "internal server error")
}
