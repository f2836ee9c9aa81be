package game

// Action is a user command understood by every front end.
type Action int

const (
	ActionNone Action = iota
	ActionToggleFirstPerson
	ActionToggleSolid
	ActionToggleDebug
	ActionToggleOcclusion
	ActionMoreEnemies
	ActionFewerEnemies
	ActionToggleSheathe
	ActionPause
	ActionToggleHelp
	ActionQuit
)

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}
