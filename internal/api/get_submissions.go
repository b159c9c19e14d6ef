package api

import (
	"encoding/json"
	"net/http"

	"github.com/careerforge/judge/internal/judge_errors"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

func (a *Api) HandlerGetSubmissions(w http.ResponseWriter, r *http.Request) {
	// optional problem filter
	var problemID *uuid.UUID
	if raw := r.URL.Query().Get("problem_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid problem id, must be a uuid", http.StatusBadRequest)
			return
		}
		problemID = &parsed
	}

	submissions, err := a.SubmissionServiceConfig.GetSubmissions(r.Context(), problemID)
	if err != nil {
		handlerError(err, w)
		return
	}

	responseBytes, err := json.Marshal(submissions)
	if err != nil {
		log.Errorf("unable to marshal submissions, %v", err)
		http.Error(w, judge_errors.ErrInternal.Error(), http.StatusInternalServerError)
		return
	}

	respondWithJson(w, http.StatusOK, responseBytes)
}
