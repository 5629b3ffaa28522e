package rest

import (
	"encoding/json"
	"net/http"

	"github.com/donorflow/server/model"
	"github.com/gorilla/mux"
)

type addTriggerRequest struct {
	Type model.TriggerType `json:"type"`
}

func (s *Server) HandleAddTrigger(w http.ResponseWriter, r *http.Request) {
	var req addTriggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()
	f, err := s.flowService.AddTrigger(mux.Vars(r)["id"], req.Type)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, f)
}

func (s *Server) HandleUpdateTrigger(w http.ResponseWriter, r *http.Request) {
	var t model.Trigger
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()
	vars := mux.Vars(r)
	t.Id = vars["triggerId"]
	f, err := s.flowService.UpdateTrigger(vars["id"], t)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, f)
}

func (s *Server) HandleRemoveTrigger(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	f, err := s.flowService.RemoveTrigger(vars["id"], vars["triggerId"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, f)
}

func (s *Server) HandleDuplicateTrigger(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	f, err := s.flowService.DuplicateTrigger(vars["id"], vars["triggerId"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, f)
}

func (s *Server) HandleToggleTrigger(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	f, err := s.flowService.ToggleTriggerActive(vars["id"], vars["triggerId"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, f)
}
