package flow

import (
	"github.com/donorflow/server/model"
	"github.com/donorflow/server/util"
	"github.com/google/uuid"
)

// Layout constants for new and duplicated triggers. Positions are
// presentation-only.
const (
	triggerBaseX    = 150
	triggerBaseY    = 150
	triggerSpacingX = 220
	duplicateOffset = 50
)

var triggerEncDec = util.NewJsonEncoderDecoder[model.Trigger]()
var flowEncDec = util.NewJsonEncoderDecoder[model.Flow]()

func newTrigger(f *model.Flow, triggerType model.TriggerType) model.Trigger {
	return model.Trigger{
		Id:       uuid.New().String(),
		Type:     triggerType,
		Name:     triggerType.DefaultName(),
		Config:   make(map[string]any),
		Rules:    model.StructuredRules(nil),
		Position: model.Position{X: triggerBaseX + triggerSpacingX*len(f.Triggers), Y: triggerBaseY},
		IsActive: true,
	}
}

// duplicateTrigger deep-copies a trigger under a fresh id, offset so the
// copy is visually distinguishable. Nested condition and action ids are
// preserved: duplication forks the trigger, not its rule identities.
func duplicateTrigger(t model.Trigger) (model.Trigger, error) {
	cp, err := util.DeepCopy[model.Trigger](triggerEncDec, t)
	if err != nil {
		return model.Trigger{}, err
	}
	cp.Id = uuid.New().String()
	cp.Name = t.Name + " (Copy)"
	cp.Position.X += duplicateOffset
	cp.Position.Y += duplicateOffset
	return *cp, nil
}

// duplicateFlow deep-copies a flow under fresh flow and trigger ids. The
// copy starts inactive with progress cleared; the source is not mutated.
func duplicateFlow(f model.Flow) (model.Flow, error) {
	cp, err := util.DeepCopy[model.Flow](flowEncDec, f)
	if err != nil {
		return model.Flow{}, err
	}
	cp.Id = uuid.New().String()
	cp.Name = f.Name + " (Copy)"
	cp.IsActive = false
	cp.CompletedCount = 0
	cp.LastRun = ""
	for i := range cp.Triggers {
		cp.Triggers[i].Id = uuid.New().String()
	}
	return *cp, nil
}

// replaceTrigger swaps the first trigger with a matching id. A miss is a
// silent no-op.
func replaceTrigger(f *model.Flow, t model.Trigger) {
	for i := range f.Triggers {
		if f.Triggers[i].Id == t.Id {
			f.Triggers[i] = t
			return
		}
	}
}

// removeTrigger filters out the trigger with the given id, preserving
// order. A miss is a silent no-op.
func removeTrigger(f *model.Flow, triggerId string) {
	kept := f.Triggers[:0]
	for _, t := range f.Triggers {
		if t.Id != triggerId {
			kept = append(kept, t)
		}
	}
	f.Triggers = kept
}
