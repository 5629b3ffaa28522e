package flow

import (
	"testing"

	"github.com/donorflow/server/audience"
	"github.com/donorflow/server/model"
	"github.com/donorflow/server/persistence/inmem"
	"github.com/stretchr/testify/require"
)

func TestEditSession(t *testing.T) {
	for scenario, fn := range map[string]func(
		t *testing.T, service *FlowService,
	){
		"test discard leaves committed state": testDiscardLeavesCommittedState,
		"test commit is atomic":               testCommitIsAtomic,
		"test failed commit leaves storage":   testFailedCommitLeavesStorage,
		"test build flow end to end":          testBuildFlowEndToEnd,
	} {
		t.Run(scenario, func(t *testing.T) {
			fn(t, NewFlowService(inmem.NewInMemFlowStorage(), audience.NewEstimator()))
		})
	}
}

func testDiscardLeavesCommittedState(t *testing.T, service *FlowService) {
	created, err := service.CreateFlow(model.Flow{Name: "Welcome Series"})
	require.NoError(t, err)

	session, err := service.OpenSession(created.Id)
	require.NoError(t, err)
	session.Draft().Name = "Renamed"
	session.AddTrigger(model.TRIGGER_TYPE_GIFT)
	session.Discard()

	stored, err := service.GetFlow(created.Id)
	require.NoError(t, err)
	require.Equal(t, "Welcome Series", stored.Name)
	require.Empty(t, stored.Triggers)
}

func testCommitIsAtomic(t *testing.T, service *FlowService) {
	created, err := service.CreateFlow(model.Flow{Name: "Welcome Series"})
	require.NoError(t, err)

	session, err := service.OpenSession(created.Id)
	require.NoError(t, err)
	session.Draft().Description = "Greets first-time donors"
	session.AddTrigger(model.TRIGGER_TYPE_GIFT)

	// committed state is unchanged until Commit
	stored, err := service.GetFlow(created.Id)
	require.NoError(t, err)
	require.Empty(t, stored.Triggers)

	_, err = session.Commit()
	require.NoError(t, err)
	stored, err = service.GetFlow(created.Id)
	require.NoError(t, err)
	require.Equal(t, "Greets first-time donors", stored.Description)
	require.Len(t, stored.Triggers, 1)
}

func testFailedCommitLeavesStorage(t *testing.T, service *FlowService) {
	created, err := service.CreateFlow(model.Flow{Name: "Welcome Series"})
	require.NoError(t, err)

	session, err := service.OpenSession(created.Id)
	require.NoError(t, err)
	session.Draft().Name = "  "
	_, err = session.Commit()
	require.Error(t, err)

	stored, err := service.GetFlow(created.Id)
	require.NoError(t, err)
	require.Equal(t, "Welcome Series", stored.Name)
}

func testBuildFlowEndToEnd(t *testing.T, service *FlowService) {
	session := service.NewSession()
	session.Draft().Name = "Large Gift Stewardship"
	trigger := session.AddTrigger(model.TRIGGER_TYPE_GIFT)
	trigger.Rules = model.StructuredRules([]model.Condition{
		{
			Id: "c1",
			Rows: []model.ConditionRow{
				{Field: "gift_amount", Operator: model.OPERATOR_GREATER_THAN, Value: "5000"},
			},
			Actions: []model.Action{
				{Id: "a1", Type: model.ACTION_TYPE_ADD_TASK, Config: map[string]any{"title": "Thank donor"}},
			},
		},
	})

	committed, err := session.Commit()
	require.NoError(t, err)
	require.Len(t, committed.Triggers, 1)
	require.Len(t, committed.Triggers[0].Rules.Conditions, 1)
	require.Len(t, committed.Triggers[0].Rules.Conditions[0].Actions, 1)
	require.Equal(t, service.estimator.Count(committed.AudienceFilters), committed.TargetCount)

	cfg, err := committed.Triggers[0].Rules.Conditions[0].Actions[0].DecodeConfig()
	require.NoError(t, err)
	require.Equal(t, "Thank donor", cfg.(*model.TaskActionConfig).Title)
}
