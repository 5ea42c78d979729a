package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names.
const (
	tableDayProgress     = "day_progress"
	tableUnlockedContent = "unlocked_content"
	tableSessionEvents   = "session_events"

	colDayID        = "day_id"
	colCompleted    = "completed"
	colBestScore    = "best_score"
	colBestGrade    = "best_grade"
	colAttemptCount = "attempt_count"
	colLastPlayed   = "last_played"

	colContentID  = "content_id"
	colUnlockedAt = "unlocked_at"

	colID              = "id"
	colSequence        = "sequence"
	colTimestamp       = "timestamp"
	colSessionID       = "session_id"
	colAction          = "action"
	colCompletedOrders = "completed_orders"
	colTotalOrders     = "total_orders"
	colMistakes        = "mistakes"
	colScore           = "score"
	colGrade           = "grade"
	colReason          = "reason"
)

var (
	dayProgressColumns = []*schema.Column{
		{Name: colDayID, Type: field.TypeString, Size: 32},
		{Name: colCompleted, Type: field.TypeBool, Default: false},
		{Name: colBestScore, Type: field.TypeInt, Default: 0},
		{Name: colBestGrade, Type: field.TypeString, Size: 16},
		{Name: colAttemptCount, Type: field.TypeInt, Default: 0},
		{Name: colLastPlayed, Type: field.TypeTime},
	}
	dayProgressTable = &schema.Table{
		Name:       tableDayProgress,
		Columns:    dayProgressColumns,
		PrimaryKey: []*schema.Column{dayProgressColumns[0]},
	}

	unlockedContentColumns = []*schema.Column{
		{Name: colContentID, Type: field.TypeString, Size: 64},
		{Name: colUnlockedAt, Type: field.TypeTime},
	}
	unlockedContentTable = &schema.Table{
		Name:       tableUnlockedContent,
		Columns:    unlockedContentColumns,
		PrimaryKey: []*schema.Column{unlockedContentColumns[0]},
	}

	sessionEventColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64},
		{Name: colTimestamp, Type: field.TypeTime},
		{Name: colSessionID, Type: field.TypeString},
		{Name: colDayID, Type: field.TypeString, Size: 32},
		{Name: colAction, Type: field.TypeString, Size: 16},
		{Name: colCompletedOrders, Type: field.TypeInt, Default: 0},
		{Name: colTotalOrders, Type: field.TypeInt, Default: 0},
		{Name: colMistakes, Type: field.TypeInt, Default: 0},
		{Name: colScore, Type: field.TypeInt, Default: 0},
		{Name: colGrade, Type: field.TypeString, Size: 16, Default: ""},
		{Name: colReason, Type: field.TypeString, Size: 16, Default: ""},
	}
	sessionEventTable = &schema.Table{
		Name:       tableSessionEvents,
		Columns:    sessionEventColumns,
		PrimaryKey: []*schema.Column{sessionEventColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_sequence", Unique: true, Columns: []*schema.Column{sessionEventColumns[1]}},
			{Name: "sessionevent_session_id", Columns: []*schema.Column{sessionEventColumns[3]}},
			{Name: "sessionevent_day_id", Columns: []*schema.Column{sessionEventColumns[4]}},
		},
	}

	// tables lists every table the store migrates.
	tables = []*schema.Table{
		dayProgressTable,
		unlockedContentTable,
		sessionEventTable,
	}
)
