package play

import "time"

// timerTickMsg is sent every second to advance the stage countdown.
type timerTickMsg time.Time

// sessionEndMsg is sent once the machine has finished.
type sessionEndMsg struct{}
