package flow

import (
	"fmt"
	"strings"
	"time"

	"github.com/donorflow/server/audience"
	"github.com/donorflow/server/logger"
	"github.com/donorflow/server/model"
	"github.com/donorflow/server/persistence"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ValidationError blocks a save before any mutation is committed.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// FlowService owns flow and trigger lifecycle: create, edit, duplicate,
// delete and active toggles. Every mutation validates, restamps the
// audience estimate and commits the whole flow in a single storage write.
type FlowService struct {
	storage   persistence.FlowStorage
	estimator *audience.Estimator
}

func NewFlowService(storage persistence.FlowStorage, estimator *audience.Estimator) *FlowService {
	return &FlowService{
		storage:   storage,
		estimator: estimator,
	}
}

func validateFlow(f model.Flow) error {
	if strings.TrimSpace(f.Name) == "" {
		return ValidationError{Field: "name", Message: "must not be blank"}
	}
	if f.CompletedCount > f.TargetCount {
		return ValidationError{Field: "completedCount", Message: "must not exceed targetCount"}
	}
	return nil
}

// stamp recomputes derived fields so the stored flow is internally
// consistent: the audience estimate and target count reflect the filter
// list at save time, and static flows carry no sync period.
func (s *FlowService) stamp(f *model.Flow) {
	f.TargetCount = s.estimator.Count(f.AudienceFilters)
	f.EstimatedAudienceSize = s.estimator.Estimate(f.AudienceFilters)
	if f.Kind == model.FLOW_KIND_STATIC {
		f.SyncPeriod = ""
	}
}

func (s *FlowService) CreateFlow(draft model.Flow) (*model.Flow, error) {
	if err := validateFlow(draft); err != nil {
		return nil, err
	}
	draft.Id = uuid.New().String()
	draft.IsActive = false
	draft.CreatedDate = time.Now().Format("2006-01-02")
	if draft.Triggers == nil {
		draft.Triggers = []model.Trigger{}
	}
	s.stamp(&draft)
	draft.CompletedCount = 0
	if err := s.storage.Save(draft); err != nil {
		return nil, err
	}
	logger.Info("flow created", zap.String("flow", draft.Id), zap.String("name", draft.Name))
	return &draft, nil
}

func (s *FlowService) GetFlow(id string) (*model.Flow, error) {
	return s.storage.Get(id)
}

func (s *FlowService) ListFlows() ([]model.Flow, error) {
	return s.storage.List()
}

func (s *FlowService) DeleteFlow(id string) error {
	return s.storage.Delete(id)
}

// UpdateFlow replaces the stored flow wholesale after validation. This is
// the commit path for edit sessions.
func (s *FlowService) UpdateFlow(f model.Flow) (*model.Flow, error) {
	if err := validateFlow(f); err != nil {
		return nil, err
	}
	if _, err := s.storage.Get(f.Id); err != nil {
		return nil, err
	}
	s.stamp(&f)
	if f.CompletedCount > f.TargetCount {
		f.CompletedCount = f.TargetCount
	}
	if err := s.storage.Save(f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *FlowService) DuplicateFlow(id string) (*model.Flow, error) {
	src, err := s.storage.Get(id)
	if err != nil {
		return nil, err
	}
	cp, err := duplicateFlow(*src)
	if err != nil {
		return nil, err
	}
	cp.CreatedDate = time.Now().Format("2006-01-02")
	if err := s.storage.Save(cp); err != nil {
		return nil, err
	}
	logger.Info("flow duplicated", zap.String("source", id), zap.String("flow", cp.Id))
	return &cp, nil
}

func (s *FlowService) ToggleFlowActive(id string) (*model.Flow, error) {
	f, err := s.storage.Get(id)
	if err != nil {
		return nil, err
	}
	f.IsActive = !f.IsActive
	if err := s.storage.Save(*f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *FlowService) AddTrigger(flowId string, triggerType model.TriggerType) (*model.Flow, error) {
	return s.mutate(flowId, func(f *model.Flow) error {
		f.Triggers = append(f.Triggers, newTrigger(f, triggerType))
		return nil
	})
}

func (s *FlowService) UpdateTrigger(flowId string, t model.Trigger) (*model.Flow, error) {
	return s.mutate(flowId, func(f *model.Flow) error {
		replaceTrigger(f, t)
		return nil
	})
}

func (s *FlowService) RemoveTrigger(flowId string, triggerId string) (*model.Flow, error) {
	return s.mutate(flowId, func(f *model.Flow) error {
		removeTrigger(f, triggerId)
		return nil
	})
}

func (s *FlowService) DuplicateTrigger(flowId string, triggerId string) (*model.Flow, error) {
	return s.mutate(flowId, func(f *model.Flow) error {
		src, ok := f.FindTrigger(triggerId)
		if !ok {
			return nil
		}
		cp, err := duplicateTrigger(*src)
		if err != nil {
			return err
		}
		f.Triggers = append(f.Triggers, cp)
		return nil
	})
}

func (s *FlowService) ToggleTriggerActive(flowId string, triggerId string) (*model.Flow, error) {
	return s.mutate(flowId, func(f *model.Flow) error {
		if t, ok := f.FindTrigger(triggerId); ok {
			t.IsActive = !t.IsActive
		}
		return nil
	})
}

func (s *FlowService) mutate(flowId string, fn func(f *model.Flow) error) (*model.Flow, error) {
	f, err := s.storage.Get(flowId)
	if err != nil {
		return nil, err
	}
	if err := fn(f); err != nil {
		return nil, err
	}
	if err := s.storage.Save(*f); err != nil {
		return nil, err
	}
	return f, nil
}
