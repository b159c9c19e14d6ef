package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/careerforge/judge/internal/judge_errors"
	"github.com/careerforge/judge/internal/service/execution_service"
	log "github.com/sirupsen/logrus"
)

// HandlerExecuteCode is the interactive run endpoint used for feedback
// before a real submission. It is open to anonymous callers and returns
// the raw execution result, errors and all, with no verdict attached.
func (a *Api) HandlerExecuteCode(w http.ResponseWriter, r *http.Request) {
	var request execution_service.ExecutionRequest

	if err := decodeJsonBody(r.Body, &request); err != nil {
		msg := fmt.Sprintf("invalid request payload, %s", err.Error())
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	result, err := a.SubmissionServiceConfig.RunCode(r.Context(), request)
	if err != nil {
		handlerError(err, w)
		return
	}

	responseBytes, err := json.Marshal(result)
	if err != nil {
		log.Errorf("unable to marshal execution result, %v", err)
		http.Error(w, judge_errors.ErrInternal.Error(), http.StatusInternalServerError)
		return
	}

	respondWithJson(w, http.StatusOK, responseBytes)
}
