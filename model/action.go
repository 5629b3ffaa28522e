package model

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

type ActionType string

const ACTION_TYPE_ADD_TASK ActionType = "add_task"
const ACTION_TYPE_SEND_TO_MAILCHIMP ActionType = "send_to_mailchimp"
const ACTION_TYPE_ADD_FLAG ActionType = "add_flag"
const ACTION_TYPE_SCHEDULE_EVENT ActionType = "schedule_event"
const ACTION_TYPE_SEND_TO_DIALR ActionType = "send_to_dialr"
const ACTION_TYPE_CREATE_SMART_SEGMENT ActionType = "create_smart_segment"
const ACTION_TYPE_SEND_TO_TARGETPATH ActionType = "send_to_targetpath"
const ACTION_TYPE_APPLY_SMART_TAG ActionType = "apply_smart_tag"

// Action is a single effect attached to a condition group. Config is the
// raw wire key-bag; DecodeConfig projects it onto the typed variant for
// the action's type.
type Action struct {
	Id     string         `json:"id"`
	Type   ActionType     `json:"type"`
	Config map[string]any `json:"config,omitempty"`
}

type TaskActionConfig struct {
	Title     string `mapstructure:"title"`
	Assignee  string `mapstructure:"assignee"`
	DueInDays int    `mapstructure:"dueInDays"`
}

type MailchimpActionConfig struct {
	ListId   string `mapstructure:"listId"`
	TagNames string `mapstructure:"tagNames"`
}

type FlagActionConfig struct {
	Flag  string `mapstructure:"flag"`
	Color string `mapstructure:"color"`
}

type EventActionConfig struct {
	EventName string `mapstructure:"eventName"`
	Date      string `mapstructure:"date"`
	Location  string `mapstructure:"location"`
}

type DialrActionConfig struct {
	CampaignId string `mapstructure:"campaignId"`
	Script     string `mapstructure:"script"`
}

type SegmentActionConfig struct {
	SegmentName string `mapstructure:"segmentName"`
	Dynamic     bool   `mapstructure:"dynamic"`
}

type TargetPathActionConfig struct {
	PathId string `mapstructure:"pathId"`
	Stage  string `mapstructure:"stage"`
}

type SmartTagActionConfig struct {
	Tag string `mapstructure:"tag"`
}

// DecodeConfig returns the typed config variant for the action's type, or
// the raw map for unknown/legacy types.
func (a Action) DecodeConfig() (any, error) {
	switch a.Type {
	case ACTION_TYPE_ADD_TASK:
		return decodeAs[TaskActionConfig](a)
	case ACTION_TYPE_SEND_TO_MAILCHIMP:
		return decodeAs[MailchimpActionConfig](a)
	case ACTION_TYPE_ADD_FLAG:
		return decodeAs[FlagActionConfig](a)
	case ACTION_TYPE_SCHEDULE_EVENT:
		return decodeAs[EventActionConfig](a)
	case ACTION_TYPE_SEND_TO_DIALR:
		return decodeAs[DialrActionConfig](a)
	case ACTION_TYPE_CREATE_SMART_SEGMENT:
		return decodeAs[SegmentActionConfig](a)
	case ACTION_TYPE_SEND_TO_TARGETPATH:
		return decodeAs[TargetPathActionConfig](a)
	case ACTION_TYPE_APPLY_SMART_TAG:
		return decodeAs[SmartTagActionConfig](a)
	default:
		return a.Config, nil
	}
}

func decodeAs[T any](a Action) (*T, error) {
	var out T
	if err := mapstructure.Decode(a.Config, &out); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", a.Type, err)
	}
	return &out, nil
}
