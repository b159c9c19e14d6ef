package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/careerforge/judge/internal/judge_errors"
	log "github.com/sirupsen/logrus"
)

// submissions carry whole source files, anything bigger than this is
// not a legitimate request
const maxRequestBodyBytes = 1 << 20

func decodeJsonBody(body io.Reader, target any) error {
	decoder := json.NewDecoder(io.LimitReader(body, maxRequestBodyBytes))
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("malformed json body, %w", err)
	}
	return nil
}

func respondWithJson(w http.ResponseWriter, statusCode int, response []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(response)
}

// handlerError translates service level sentinel errors into http
// responses. Unknown errors collapse into a generic 500 so internals
// never leak to the client.
func handlerError(err error, w http.ResponseWriter) {
	switch {
	case errors.Is(err, judge_errors.ErrInvalidInput),
		errors.Is(err, judge_errors.ErrUnsupportedLanguage):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, judge_errors.ErrUnAuthorized):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, judge_errors.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, judge_errors.ErrTooManyRequests):
		http.Error(w, err.Error(), http.StatusTooManyRequests)
	case errors.Is(err, judge_errors.ErrInternal):
		// the sentinel message is safe, the wrapped detail is not
		http.Error(w, judge_errors.ErrInternal.Error(), http.StatusInternalServerError)
	default:
		log.Errorf("request failed with unmapped error, %v", err)
		http.Error(w, judge_errors.ErrInternal.Error(), http.StatusInternalServerError)
	}
}

func (a *Api) HandlerReadiness(w http.ResponseWriter, r *http.Request) {
	respondWithJson(w, http.StatusOK, []byte(`{"status": "ok"}`))
}
