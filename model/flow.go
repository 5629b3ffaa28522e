package model

type FlowKind string

const FLOW_KIND_DYNAMIC FlowKind = "dynamic"
const FLOW_KIND_STATIC FlowKind = "static"

type SyncPeriod string

const SYNC_PERIOD_REALTIME SyncPeriod = "realtime"
const SYNC_PERIOD_HOURLY SyncPeriod = "hourly"
const SYNC_PERIOD_DAILY SyncPeriod = "daily"
const SYNC_PERIOD_WEEKLY SyncPeriod = "weekly"
const SYNC_PERIOD_MONTHLY SyncPeriod = "monthly"

// Flow is a named donor-journey automation definition. SyncPeriod is only
// meaningful when Kind is dynamic; static flows carry no sync period.
// CompletedCount never exceeds TargetCount.
type Flow struct {
	Id                    string           `json:"id"`
	Name                  string           `json:"name"`
	Description           string           `json:"description"`
	Kind                  FlowKind         `json:"kind"`
	SyncPeriod            SyncPeriod       `json:"syncPeriod,omitempty"`
	IsActive              bool             `json:"isActive"`
	TargetCount           int              `json:"targetCount"`
	CompletedCount        int              `json:"completedCount"`
	Triggers              []Trigger        `json:"triggers"`
	AudienceFilters       []AudienceFilter `json:"audienceFilters"`
	EstimatedAudienceSize string           `json:"estimatedAudienceSize"`
	CreatedBy             string           `json:"createdBy"`
	CreatedDate           string           `json:"createdDate"`
	LastRun               string           `json:"lastRun,omitempty"`
}

// AudienceFilter narrows the flow's audience. Filters in a list combine
// with AND semantics.
type AudienceFilter struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Label string `json:"label"`
}

func (f *Flow) FindTrigger(triggerId string) (*Trigger, bool) {
	for i := range f.Triggers {
		if f.Triggers[i].Id == triggerId {
			return &f.Triggers[i], true
		}
	}
	return nil, false
}
