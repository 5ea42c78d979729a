package scenario

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlDay = `
id: day2
day_number: 2
format_version: v1.1.0
title: YAML day
required_score: 70
unlock_tips: [tip_a]
stages:
  - id: s1
    type: kitchen
    time_limit_seconds: 60
    orders:
      - id: o1
        customer_name: Ticket 1
        customer_mood: neutral
        payment_amount: 4300
        items:
          - menu_id: cheese_burger
            menu_name: Cheeseburger
            expected_steps: [bottom_bun, patty, top_bun]
`

const jsonDay = `{
  "id": "day1",
  "day_number": 1,
  "required_score": 60,
  "stages": [{
    "id": "s1", "type": "counter", "time_limit_seconds": 30,
    "orders": [{"id": "o1", "customer_name": "A", "customer_mood": "friendly", "payment_amount": 1700,
                "items": [{"menu_id": "cola", "menu_name": "Cola"}]}]
  }]
}`

func TestBuiltin_LoadAll(t *testing.T) {
	scenarios, err := Builtin(nil).LoadAll()
	require.NoError(t, err)
	require.Len(t, scenarios, TotalDays)

	for i, sc := range scenarios {
		assert.Equal(t, i+1, sc.DayNumber)
		assert.Equal(t, DayID(i+1), sc.ID)
		assert.NotEmpty(t, sc.Stages)
		assert.NotEmpty(t, sc.UnlockTips)
		for _, st := range sc.Stages {
			assert.NotEmpty(t, st.Orders, "stage %s", st.ID)
			assert.Positive(t, st.TimeLimitSeconds)
		}
	}
}

func TestBuiltin_ValidateClean(t *testing.T) {
	errs := Builtin(nil).Validate()
	assert.Empty(t, errs)
}

func TestBuiltin_TipsCoverUnlocks(t *testing.T) {
	l := Builtin(nil)
	tips, err := l.LoadTips()
	require.NoError(t, err)

	ids := make(map[string]bool)
	for _, tip := range tips {
		ids[tip.ID] = true
	}

	scenarios, err := l.LoadAll()
	require.NoError(t, err)
	for _, sc := range scenarios {
		for _, id := range sc.UnlockTips {
			assert.True(t, ids[id], "%s unlocks unknown tip %s", sc.ID, id)
		}
	}
}

func TestBuiltin_MenuCoversOrders(t *testing.T) {
	l := Builtin(nil)
	menu, err := l.LoadMenu()
	require.NoError(t, err)

	known := make(map[string]bool)
	for _, m := range menu {
		known[m.ID] = true
	}
	scenarios, err := l.LoadAll()
	require.NoError(t, err)
	for _, sc := range scenarios {
		for _, st := range sc.Stages {
			for _, o := range st.Orders {
				for _, id := range o.MenuIDs() {
					assert.True(t, known[id], "order %s uses unknown menu item %s", o.ID, id)
				}
			}
		}
	}
}

func TestLoadDay_YAML(t *testing.T) {
	l := NewLoader(fstest.MapFS{
		"day2.yaml": {Data: []byte(yamlDay)},
	}, nil)

	sc, err := l.LoadDay(2)
	require.NoError(t, err)
	assert.Equal(t, "day2", sc.ID)
	assert.Equal(t, KindKitchen, sc.Stages[0].Kind)
	assert.Equal(t, []string{"bottom_bun", "patty", "top_bun"}, sc.Stages[0].Orders[0].ExpectedSteps())
	assert.Equal(t, 1, sc.TotalOrders())
}

func TestLoadDay_NotFound(t *testing.T) {
	l := NewLoader(fstest.MapFS{}, nil)
	_, err := l.LoadDay(4)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoadAll_SkipsInvalidFiles(t *testing.T) {
	l := NewLoader(fstest.MapFS{
		"day1.json": {Data: []byte(jsonDay)},
		"day2.json": {Data: []byte(`{"id": "day2", "day_number": 2, "required_score": 60, "stages": []}`)},
		"notes.txt": {Data: []byte("ignored")},
	}, nil)

	scenarios, err := l.LoadAll()
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	assert.Equal(t, "day1", scenarios[0].ID)
}

func TestLoadAll_NoScenarios(t *testing.T) {
	l := NewLoader(fstest.MapFS{
		"day1.json": {Data: []byte(`{broken`)},
	}, nil)
	_, err := l.LoadAll()
	assert.ErrorIs(t, err, ErrNoScenarios)
}

func TestLoadDay_SchemaViolation(t *testing.T) {
	l := NewLoader(fstest.MapFS{
		"day1.json": {Data: []byte(`{"id": "day1", "day_number": 1, "required_score": 160, "stages": []}`)},
	}, nil)
	_, err := l.LoadDay(1)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "day1.json", verr.File)
}

func TestLoadDay_FileNameDoesNotPinDayNumber(t *testing.T) {
	l := NewLoader(fstest.MapFS{
		"day3.yaml": {Data: []byte(yamlDay)},
	}, nil)
	sc, err := l.LoadDay(3)
	require.NoError(t, err)
	assert.Equal(t, 2, sc.DayNumber)
}

func TestCheckFormat(t *testing.T) {
	tests := []struct {
		version string
		wantErr bool
	}{
		{"", false},
		{"v1.0.0", false},
		{"1.1.0", false},
		{SupportedFormat, false},
		{"v1.9.0", true},
		{"v2.0.0", true},
		{"banana", true},
	}
	for _, tt := range tests {
		err := checkFormat(tt.version)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnsupportedFormat, "version %q", tt.version)
		} else {
			assert.NoError(t, err, "version %q", tt.version)
		}
	}
}

func TestCheckScenario_Duplicates(t *testing.T) {
	order := Order{ID: "o1"}
	sc := Scenario{
		ID:        "day1",
		DayNumber: 1,
		Stages: []Stage{
			{ID: "s1", Kind: KindCounter, Orders: []Order{order, order}},
		},
	}
	assert.Error(t, checkScenario(sc))

	sc.ID = "day9"
	assert.Error(t, checkScenario(sc))
}

func TestValidate_DuplicateDayNumbers(t *testing.T) {
	l := NewLoader(fstest.MapFS{
		"day2.yaml": {Data: []byte(yamlDay)},
		"day3.yaml": {Data: []byte(yamlDay)},
	}, nil)
	errs := l.Validate()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "already declared")
}
