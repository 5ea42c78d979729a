package play

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/counterline/internal/judge"
	"github.com/abhisek/counterline/internal/progress"
	"github.com/abhisek/counterline/internal/router"
	"github.com/abhisek/counterline/internal/scenario"
	"github.com/abhisek/counterline/internal/screen"
	"github.com/abhisek/counterline/internal/screens/summary"
	"github.com/abhisek/counterline/internal/session"
	"github.com/abhisek/counterline/internal/store"
)

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	events []store.SessionEventData
}

func (m *mockEventRepo) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	m.events = append(m.events, data)
	return nil
}
func (m *mockEventRepo) SessionEvents(_ context.Context, _ store.QueryOpts) ([]store.SessionEvent, error) {
	return nil, nil
}
func (m *mockEventRepo) CountSessions(_ context.Context) (int, error) {
	return 0, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testScenario() scenario.Scenario {
	return scenario.Scenario{
		ID:            "day1",
		DayNumber:     1,
		Title:         "First Shift",
		RequiredScore: 60,
		UnlockTips:    []string{"tip_smile"},
		Stages: []scenario.Stage{{
			ID:               "s1",
			Kind:             scenario.KindCounter,
			Title:            "Register",
			TimeLimitSeconds: 3,
			Orders: []scenario.Order{
				{
					ID: "o1", CustomerName: "Mina", CustomerMood: scenario.MoodFriendly,
					RequestText: "A cheeseburger please",
					Items:       []scenario.OrderItem{{MenuID: "cheeseburger", MenuName: "Cheeseburger"}},
				},
				{
					ID: "o2", CustomerName: "Theo", CustomerMood: scenario.MoodCareful,
					RequestText: "Fries, no salt",
					Items: []scenario.OrderItem{{
						MenuID: "fries", MenuName: "Fries",
						Options: []scenario.OrderOption{{Key: "no_salt", Label: "No salt", IsRequired: true}},
					}},
				},
			},
		}},
	}
}

func testPlayScreen(t *testing.T) (*PlayScreen, *mockEventRepo, *progress.Tracker) {
	t.Helper()
	tracker, err := progress.New(context.Background(), progress.NewMemoryStore())
	require.NoError(t, err)
	events := &mockEventRepo{}
	s := New(Options{
		Scenario:  testScenario(),
		TipTitles: map[string]string{"tip_smile": "Smile at every guest"},
		Reporter:  tracker,
		Events:    events,
	})
	s.Init()
	return s, events, tracker
}

func serve(t *testing.T, s *PlayScreen, answer string) *PlayScreen {
	t.Helper()
	s.input.Model.SetValue(answer)
	scr, _ := s.Update(specialKey(tea.KeyEnter))
	return scr.(*PlayScreen)
}

func TestPlayScreen_InitStartsShift(t *testing.T) {
	s, events, _ := testPlayScreen(t)

	assert.Equal(t, session.StateStageActive, s.machine.State())
	require.Len(t, events.events, 1)
	assert.Equal(t, store.ActionStart, events.events[0].Action)
	assert.Equal(t, 2, events.events[0].TotalOrders)
	assert.True(t, s.HandlesEscape())
}

func TestPlayScreen_NoStages(t *testing.T) {
	s := New(Options{Scenario: scenario.Scenario{ID: "day9", Title: "Empty"}})
	s.Init()

	assert.NotEmpty(t, s.errMsg)
	assert.False(t, s.HandlesEscape())

	_, cmd := s.Update(keyPress('x'))
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestPlayScreen_CorrectAnswer(t *testing.T) {
	s, _, _ := testPlayScreen(t)

	s = serve(t, s, "Cheeseburger")

	require.NotNil(t, s.feedback)
	assert.True(t, s.feedback.verdict.Correct)
	assert.Equal(t, 1, s.machine.CompletedOrders())
	assert.Contains(t, s.View(100, 30), "Order up!")
}

func TestPlayScreen_EmptyAnswerIgnored(t *testing.T) {
	s, _, _ := testPlayScreen(t)

	s = serve(t, s, "")

	assert.Nil(t, s.feedback)
	assert.Equal(t, 0, s.machine.CompletedOrders())
}

func TestPlayScreen_WrongAnswerAndViolation(t *testing.T) {
	s, _, _ := testPlayScreen(t)
	s = serve(t, s, "cheeseburger")
	s.Update(keyPress(' '))

	s = serve(t, s, "onion_rings")

	require.NotNil(t, s.feedback)
	assert.False(t, s.feedback.verdict.Correct)
	assert.True(t, s.feedback.verdict.Violation)
	assert.Equal(t, 1, s.machine.Status().Violations)
	assert.Len(t, s.machine.Mistakes(), 1)
	assert.Contains(t, s.View(100, 30), "Expected: fries, +no_salt")
}

func TestPlayScreen_FullShiftEndsOnSummary(t *testing.T) {
	s, events, tracker := testPlayScreen(t)
	sc := testScenario()

	for _, o := range sc.Stages[0].Orders {
		s = serve(t, s, judge.Expected(sc.Stages[0].Kind, o))
		require.NotNil(t, s.feedback)
		assert.True(t, s.feedback.verdict.Correct)
		if !s.machine.Finished() {
			s.Update(keyPress(' '))
		}
	}
	require.True(t, s.machine.Finished())

	// Dismissing the last feedback ends the shift.
	_, cmd := s.Update(keyPress(' '))
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, sessionEndMsg{}, msg)

	_, cmd = s.Update(msg)
	require.NotNil(t, cmd)
	replace, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &summary.SummaryScreen{}, replace.Screen)
	assert.Contains(t, replace.Screen.View(100, 40), "Smile at every guest")

	require.Len(t, events.events, 2)
	end := events.events[1]
	assert.Equal(t, store.ActionEnd, end.Action)
	assert.Equal(t, 2, end.CompletedOrders)
	assert.Equal(t, string(session.ReasonCompleted), end.Reason)

	assert.True(t, tracker.IsDayUnlocked(2))
	assert.True(t, tracker.IsUnlocked("tip_smile"))
	assert.False(t, s.HandlesEscape())

	// A second end message is ignored.
	_, cmd = s.Update(sessionEndMsg{})
	assert.Nil(t, cmd)
	assert.Len(t, events.events, 2)
}

func TestPlayScreen_TimerRunsOut(t *testing.T) {
	s, _, _ := testPlayScreen(t)

	var cmd tea.Cmd
	for i := 0; i < 2; i++ {
		_, cmd = s.Update(timerTickMsg{})
		require.NotNil(t, cmd)
		assert.False(t, s.machine.Finished())
	}
	assert.Equal(t, 1, s.machine.RemainingTime())

	_, cmd = s.Update(timerTickMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, sessionEndMsg{}, cmd())

	res, ok := s.machine.Result()
	require.True(t, ok)
	assert.Equal(t, session.ReasonTimeout, res.Reason)

	// Ticks after the end are dropped.
	_, cmd = s.Update(timerTickMsg{})
	assert.Nil(t, cmd)
}

func TestPlayScreen_QuitConfirm(t *testing.T) {
	s, _, _ := testPlayScreen(t)

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	ps := scr.(*PlayScreen)
	require.True(t, ps.showingQuitConfirm)
	assert.True(t, strings.Contains(ps.View(100, 30), "Clock out early?"))

	scr, _ = ps.Update(keyPress('n'))
	ps = scr.(*PlayScreen)
	assert.False(t, ps.showingQuitConfirm)
	assert.False(t, ps.machine.Finished())
}

func TestPlayScreen_QuitConfirm_Yes(t *testing.T) {
	s, _, tracker := testPlayScreen(t)

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	_, cmd := scr.Update(keyPress('y'))

	require.NotNil(t, cmd)
	assert.IsType(t, sessionEndMsg{}, cmd())
	res, ok := s.machine.Result()
	require.True(t, ok)
	assert.Equal(t, session.ReasonQuit, res.Reason)

	p, ok := tracker.Progress("day1")
	require.True(t, ok)
	assert.Equal(t, 1, p.AttemptCount)
}

func TestPlayScreen_KeyHints(t *testing.T) {
	s, _, _ := testPlayScreen(t)

	assert.Len(t, s.KeyHints(), 2)
	s.showingQuitConfirm = true
	assert.Equal(t, "Y", s.KeyHints()[0].Key)
}

func TestPlayScreen_View(t *testing.T) {
	s, _, _ := testPlayScreen(t)

	view := s.View(100, 30)
	assert.Contains(t, view, "Mina")
	assert.Contains(t, view, "00:03")
}
