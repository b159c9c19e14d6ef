package api

import (
	"encoding/json"
	"net/http"

	"github.com/careerforge/judge/internal/judge_errors"
	"github.com/careerforge/judge/internal/service"
	log "github.com/sirupsen/logrus"
)

func (a *Api) HandlerGetProgress(w http.ResponseWriter, r *http.Request) {
	claims, err := service.GetClaimsFromContext(r.Context())
	if err != nil {
		handlerError(err, w)
		return
	}

	progress, err := a.ProgressServiceConfig.GetProgress(r.Context(), claims.UserID)
	if err != nil {
		handlerError(err, w)
		return
	}

	responseBytes, err := json.Marshal(progress)
	if err != nil {
		log.Errorf("unable to marshal coding progress, %v", err)
		http.Error(w, judge_errors.ErrInternal.Error(), http.StatusInternalServerError)
		return
	}

	respondWithJson(w, http.StatusOK, responseBytes)
}
