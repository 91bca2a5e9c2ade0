package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresentationForIsTotal(t *testing.T) {
	want := map[UrgencyLevel]PresentationMode{
		UrgencyNone:     PresentationSubtle,
		UrgencyUpcoming: PresentationNormal,
		UrgencyActive:   PresentationNormal,
		UrgencyUrgent:   PresentationProminent,
		UrgencyCritical: PresentationUrgent,
	}
	for _, l := range UrgencyLevels {
		assert.Equal(t, want[l], PresentationFor(l), "level %s", l)
	}
	assert.Equal(t, PresentationHidden, PresentationFor("bogus"))
}

func TestMessageFor(t *testing.T) {
	tests := []struct {
		name      string
		level     UrgencyLevel
		total     int
		completed int
		reflected bool
		want      MessageKey
	}{
		{"critical beats reflection", UrgencyCritical, 3, 3, true, MsgCatchUp},
		{"urgent beats reflection", UrgencyUrgent, 3, 1, true, MsgReflectOverdue},
		{"reflected", UrgencyActive, 3, 1, true, MsgReflectionDone},
		{"active no goals", UrgencyActive, 0, 0, false, MsgReflectNowNoGoals},
		{"active all done", UrgencyActive, 2, 2, false, MsgReflectNowAllDone},
		{"active partial", UrgencyActive, 3, 1, false, MsgReflectNow},
		{"upcoming", UrgencyUpcoming, 3, 1, false, MsgReflectSoon},
		{"none no goals", UrgencyNone, 0, 0, false, MsgPlanDay},
		{"none all done", UrgencyNone, 4, 4, false, MsgAllDone},
		{"none partial", UrgencyNone, 4, 1, false, MsgInProgress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MessageFor(tt.level, tt.total, tt.completed, tt.reflected))
		})
	}
}

func TestRender(t *testing.T) {
	assert.Equal(t, "1 of 4 goals done.", DefaultTemplates.Render(MsgInProgress, 4, 1))
	assert.Equal(t, "Time to reflect: 2 of 5 goals done, 3 left.", DefaultTemplates.Render(MsgReflectNow, 5, 2))
	assert.Equal(t, "Reflection time starts in about an hour. 0 goals left.", DefaultTemplates.Render(MsgReflectSoon, 2, 3))
	assert.Equal(t, "mystery", DefaultTemplates.Render("mystery", 1, 1))
}

func TestDefaultTemplatesCoverEveryKey(t *testing.T) {
	keys := []MessageKey{
		MsgCatchUp, MsgReflectOverdue, MsgReflectionDone, MsgReflectNow, MsgReflectNowAllDone,
		MsgReflectNowNoGoals, MsgReflectSoon, MsgPlanDay, MsgAllDone, MsgInProgress,
	}
	for _, k := range keys {
		assert.Contains(t, DefaultTemplates, k)
	}
}
