package rest

import (
	"encoding/json"
	"net/http"

	"github.com/donorflow/server/enrichment"
)

// HandleGenerateBio always answers 200; hard failures surface as
// success:false with an error string, never as an HTTP error.
func (s *Server) HandleGenerateBio(w http.ResponseWriter, r *http.Request) {
	var req enrichment.BioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusOK, enrichment.BioResponse{Success: false, Error: "invalid request body"})
		return
	}
	defer r.Body.Close()
	respondWithJSON(w, http.StatusOK, s.bioService.GenerateBio(r.Context(), req))
}
