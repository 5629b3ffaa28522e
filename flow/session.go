package flow

import (
	"github.com/donorflow/server/model"
	"github.com/donorflow/server/util"
)

// EditSession holds an in-progress draft of a flow, separate from the
// committed collection. All edits act on the draft; Commit writes the flow
// back in a single save, Discard drops it with no effect. A closed session
// can never produce a partial write.
type EditSession struct {
	service *FlowService
	draft   *model.Flow
	isNew   bool
}

// OpenSession starts editing an existing flow on a deep copy of its
// committed state.
func (s *FlowService) OpenSession(flowId string) (*EditSession, error) {
	f, err := s.storage.Get(flowId)
	if err != nil {
		return nil, err
	}
	draft, err := util.DeepCopy[model.Flow](flowEncDec, *f)
	if err != nil {
		return nil, err
	}
	return &EditSession{service: s, draft: draft}, nil
}

// NewSession starts a session for a flow that does not exist yet. Commit
// goes through the create path.
func (s *FlowService) NewSession() *EditSession {
	return &EditSession{
		service: s,
		draft: &model.Flow{
			Kind:     model.FLOW_KIND_DYNAMIC,
			Triggers: []model.Trigger{},
		},
		isNew: true,
	}
}

// Draft exposes the mutable draft for field-level edits.
func (es *EditSession) Draft() *model.Flow {
	return es.draft
}

func (es *EditSession) AddTrigger(triggerType model.TriggerType) *model.Trigger {
	es.draft.Triggers = append(es.draft.Triggers, newTrigger(es.draft, triggerType))
	return &es.draft.Triggers[len(es.draft.Triggers)-1]
}

func (es *EditSession) UpdateTrigger(t model.Trigger) {
	replaceTrigger(es.draft, t)
}

func (es *EditSession) RemoveTrigger(triggerId string) {
	removeTrigger(es.draft, triggerId)
}

func (es *EditSession) DuplicateTrigger(triggerId string) (*model.Trigger, error) {
	src, ok := es.draft.FindTrigger(triggerId)
	if !ok {
		return nil, nil
	}
	cp, err := duplicateTrigger(*src)
	if err != nil {
		return nil, err
	}
	es.draft.Triggers = append(es.draft.Triggers, cp)
	return &es.draft.Triggers[len(es.draft.Triggers)-1], nil
}

// Commit validates the draft and writes it to storage atomically. On
// validation failure the committed collection is untouched and the session
// stays open for correction.
func (es *EditSession) Commit() (*model.Flow, error) {
	if es.isNew {
		created, err := es.service.CreateFlow(*es.draft)
		if err != nil {
			return nil, err
		}
		es.draft = created
		es.isNew = false
		return created, nil
	}
	return es.service.UpdateFlow(*es.draft)
}

// Discard drops the draft. The committed collection is unaffected.
func (es *EditSession) Discard() {
	es.draft = nil
}
