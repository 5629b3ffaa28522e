package rest

import (
	"encoding/json"
	"net/http"

	"github.com/donorflow/server/model"
)

type estimateRequest struct {
	Filters []model.AudienceFilter `json:"filters"`
}

type estimateResponse struct {
	Count string `json:"count"`
}

func (s *Server) HandleEstimateAudience(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()
	respondWithJSON(w, http.StatusOK, estimateResponse{Count: s.estimator.Estimate(req.Filters)})
}
