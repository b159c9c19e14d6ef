package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/careerforge/judge/internal/judge_errors"
	"github.com/careerforge/judge/internal/service/submission_service"
	log "github.com/sirupsen/logrus"
)

func (a *Api) HandlerSubmit(w http.ResponseWriter, r *http.Request) {
	var request submission_service.SubmissionRequest

	if err := decodeJsonBody(r.Body, &request); err != nil {
		msg := fmt.Sprintf("invalid request payload, %s", err.Error())
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	result, err := a.SubmissionServiceConfig.Submit(r.Context(), request)
	if err != nil {
		handlerError(err, w)
		return
	}

	responseBytes, err := json.Marshal(result)
	if err != nil {
		log.Errorf("unable to marshal submit result, %v", err)
		http.Error(w, judge_errors.ErrInternal.Error(), http.StatusInternalServerError)
		return
	}

	respondWithJson(w, http.StatusOK, responseBytes)
}
