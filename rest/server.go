package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/donorflow/server/audience"
	"github.com/donorflow/server/enrichment"
	"github.com/donorflow/server/flow"
	"github.com/donorflow/server/logger"
	"github.com/donorflow/server/persistence"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Server struct {
	http.Server
	Port        int
	flowService *flow.FlowService
	estimator   *audience.Estimator
	bioService  *enrichment.Service
}

func NewServer(httpPort int, flowService *flow.FlowService, estimator *audience.Estimator, bioService *enrichment.Service) (*Server, error) {
	s := &Server{
		Server: http.Server{
			Addr: fmt.Sprintf(":%d", httpPort),
		},
		flowService: flowService,
		estimator:   estimator,
		bioService:  bioService,
		Port:        httpPort,
	}

	router := mux.NewRouter()
	router.HandleFunc("/flows", s.HandleCreateFlow).Methods(http.MethodPost)
	router.HandleFunc("/flows", s.HandleListFlows).Methods(http.MethodGet)
	router.HandleFunc("/flows/{id}", s.HandleGetFlow).Methods(http.MethodGet)
	router.HandleFunc("/flows/{id}", s.HandleUpdateFlow).Methods(http.MethodPut)
	router.HandleFunc("/flows/{id}", s.HandleDeleteFlow).Methods(http.MethodDelete)
	router.HandleFunc("/flows/{id}/duplicate", s.HandleDuplicateFlow).Methods(http.MethodPost)
	router.HandleFunc("/flows/{id}/toggle", s.HandleToggleFlow).Methods(http.MethodPost)
	router.HandleFunc("/flows/{id}/summary", s.HandleFlowSummary).Methods(http.MethodGet)
	router.HandleFunc("/flows/{id}/triggers", s.HandleAddTrigger).Methods(http.MethodPost)
	router.HandleFunc("/flows/{id}/triggers/{triggerId}", s.HandleUpdateTrigger).Methods(http.MethodPut)
	router.HandleFunc("/flows/{id}/triggers/{triggerId}", s.HandleRemoveTrigger).Methods(http.MethodDelete)
	router.HandleFunc("/flows/{id}/triggers/{triggerId}/duplicate", s.HandleDuplicateTrigger).Methods(http.MethodPost)
	router.HandleFunc("/flows/{id}/triggers/{triggerId}/toggle", s.HandleToggleTrigger).Methods(http.MethodPost)
	router.HandleFunc("/audience/estimate", s.HandleEstimateAudience).Methods(http.MethodPost)
	router.HandleFunc("/api/generate-bio", s.HandleGenerateBio).Methods(http.MethodPost)
	router.Use(loggingMiddleware)
	s.Handler = router
	return s, nil
}

func (s *Server) Start() error {
	logger.Info("startting http server on", zap.Int("port", s.Port))
	if err := s.ListenAndServe(); err != nil {
		return err
	}
	return nil
}

func (s *Server) Stop() error {
	logger.Info("stopping http server")
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := s.Shutdown(ctx)
	if err != nil {
		logger.Error("error shutting down http server")
	}
	return nil
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info(r.RequestURI)
		next.ServeHTTP(w, r)
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondServiceError maps service errors onto status codes: validation
// failures are the caller's fault, unknown flows are 404, everything else
// is a storage-layer problem.
func respondServiceError(w http.ResponseWriter, err error) {
	var validationErr flow.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondWithError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, persistence.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "flow does not exist")
	default:
		logger.Error("request failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "internal error")
	}
}
