package rest

import (
	"encoding/json"
	"net/http"

	"github.com/donorflow/server/flow"
	"github.com/donorflow/server/model"
	"github.com/gorilla/mux"
)

func (s *Server) HandleCreateFlow(w http.ResponseWriter, r *http.Request) {
	var draft model.Flow
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()
	created, err := s.flowService.CreateFlow(draft)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

func (s *Server) HandleListFlows(w http.ResponseWriter, r *http.Request) {
	flows, err := s.flowService.ListFlows()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, flows)
}

func (s *Server) HandleGetFlow(w http.ResponseWriter, r *http.Request) {
	f, err := s.flowService.GetFlow(mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, f)
}

func (s *Server) HandleUpdateFlow(w http.ResponseWriter, r *http.Request) {
	var f model.Flow
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()
	f.Id = mux.Vars(r)["id"]
	updated, err := s.flowService.UpdateFlow(f)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

func (s *Server) HandleDeleteFlow(w http.ResponseWriter, r *http.Request) {
	if err := s.flowService.DeleteFlow(mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func (s *Server) HandleDuplicateFlow(w http.ResponseWriter, r *http.Request) {
	cp, err := s.flowService.DuplicateFlow(mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, cp)
}

func (s *Server) HandleToggleFlow(w http.ResponseWriter, r *http.Request) {
	f, err := s.flowService.ToggleFlowActive(mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, f)
}

type triggerSummary struct {
	TriggerId string `json:"triggerId"`
	Name      string `json:"name"`
	Summary   string `json:"summary"`
}

func (s *Server) HandleFlowSummary(w http.ResponseWriter, r *http.Request) {
	f, err := s.flowService.GetFlow(mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	summaries := make([]triggerSummary, 0, len(f.Triggers))
	for _, t := range f.Triggers {
		summaries = append(summaries, triggerSummary{
			TriggerId: t.Id,
			Name:      t.Name,
			Summary:   flow.SummarizeTrigger(t),
		})
	}
	respondWithJSON(w, http.StatusOK, summaries)
}
