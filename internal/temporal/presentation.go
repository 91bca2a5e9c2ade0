package temporal

import (
	"strconv"
	"strings"
)

// PresentationMode is a UI prominence hint derived only from urgency.
type PresentationMode string

const (
	PresentationHidden    PresentationMode = "hidden"
	PresentationSubtle    PresentationMode = "subtle"
	PresentationNormal    PresentationMode = "normal"
	PresentationProminent PresentationMode = "prominent"
	PresentationUrgent    PresentationMode = "urgent"
)

var presentationByUrgency = map[UrgencyLevel]PresentationMode{
	UrgencyNone:     PresentationSubtle,
	UrgencyUpcoming: PresentationNormal,
	UrgencyActive:   PresentationNormal,
	UrgencyUrgent:   PresentationProminent,
	UrgencyCritical: PresentationUrgent,
}

// PresentationFor maps an urgency level to its presentation mode. Unknown
// levels map to hidden.
func PresentationFor(u UrgencyLevel) PresentationMode {
	if m, ok := presentationByUrgency[u]; ok {
		return m
	}
	return PresentationHidden
}

// MessageKey selects one of the fixed status message templates.
type MessageKey string

const (
	MsgCatchUp           MessageKey = "catch_up"
	MsgReflectOverdue    MessageKey = "reflect_overdue"
	MsgReflectionDone    MessageKey = "reflection_done"
	MsgReflectNow        MessageKey = "reflect_now"
	MsgReflectNowAllDone MessageKey = "reflect_now_all_done"
	MsgReflectNowNoGoals MessageKey = "reflect_now_no_goals"
	MsgReflectSoon       MessageKey = "reflect_soon"
	MsgPlanDay           MessageKey = "plan_day"
	MsgAllDone           MessageKey = "all_done"
	MsgInProgress        MessageKey = "in_progress"
)

// MessageFor picks the template key. Catch-up and overdue prompts concern
// earlier days and win over an existing reflection for the resolved date.
func MessageFor(u UrgencyLevel, total, completed int, reflected bool) MessageKey {
	switch u {
	case UrgencyCritical:
		return MsgCatchUp
	case UrgencyUrgent:
		return MsgReflectOverdue
	}
	if reflected {
		return MsgReflectionDone
	}
	allDone := total > 0 && completed >= total
	switch u {
	case UrgencyActive:
		switch {
		case total == 0:
			return MsgReflectNowNoGoals
		case allDone:
			return MsgReflectNowAllDone
		default:
			return MsgReflectNow
		}
	case UrgencyUpcoming:
		return MsgReflectSoon
	default:
		switch {
		case total == 0:
			return MsgPlanDay
		case allDone:
			return MsgAllDone
		default:
			return MsgInProgress
		}
	}
}

// Templates maps message keys to text. Placeholders {total}, {completed}
// and {remaining} are substituted by Render.
type Templates map[MessageKey]string

// DefaultTemplates is the built-in English catalog.
var DefaultTemplates = Templates{
	MsgCatchUp:           "Several days are waiting for a reflection. Catch up before planning more.",
	MsgReflectOverdue:    "You haven't reflected on a previous day yet. Take a minute now.",
	MsgReflectionDone:    "Reflection saved. {completed} of {total} goals done.",
	MsgReflectNow:        "Time to reflect: {completed} of {total} goals done, {remaining} left.",
	MsgReflectNowAllDone: "All {total} goals done. Time to reflect on the day.",
	MsgReflectNowNoGoals: "Time to reflect, even without goals today.",
	MsgReflectSoon:       "Reflection time starts in about an hour. {remaining} goals left.",
	MsgPlanDay:           "No goals yet. Plan your day.",
	MsgAllDone:           "All {total} goals done.",
	MsgInProgress:        "{completed} of {total} goals done.",
}

// Render fills the template for key. A missing key renders as the key itself.
func (t Templates) Render(key MessageKey, total, completed int) string {
	tmpl, ok := t[key]
	if !ok {
		return string(key)
	}
	remaining := total - completed
	if remaining < 0 {
		remaining = 0
	}
	return strings.NewReplacer(
		"{total}", strconv.Itoa(total),
		"{completed}", strconv.Itoa(completed),
		"{remaining}", strconv.Itoa(remaining),
	).Replace(tmpl)
}

// Message is a selected and rendered status message.
type Message struct {
	Date         CalendarDate     `json:"date"`
	Key          MessageKey       `json:"key"`
	Text         string           `json:"text"`
	Total        int              `json:"total"`
	Completed    int              `json:"completed"`
	Urgency      UrgencyLevel     `json:"urgency"`
	Presentation PresentationMode `json:"presentation"`
}
