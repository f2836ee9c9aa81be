package line

// State is the animation phase of a line.
type State int

const (
	StateNewTarget State = iota // Easing in from no target
	StateDying                  // Target lost, collapsing back to the source
	StateDying2                 // Entity hidden or dead; sticky until Initialize
	StateSwitching              // Easing from one target to another
	StateIdle                   // Holding a steady target
)

func (s State) String() string {
	switch s {
	case StateNewTarget:
		return "new_target"
	case StateDying:
		return "dying"
	case StateDying2:
		return "dying2"
	case StateSwitching:
		return "switching"
	case StateIdle:
		return "idle"
	default:
		return "unknown"
	}
}

// edge is the change in target presence observed between two frames.
type edge int

const (
	edgeNone edge = iota
	edgeAcquired
	edgeLost
	edgeSwitched
	edgeCount
)

func (e edge) String() string {
	switch e {
	case edgeAcquired:
		return "acquired"
	case edgeLost:
		return "lost"
	case edgeSwitched:
		return "switched"
	default:
		return "none"
	}
}

// transition is one cell of the state table. snapshot copies the interpolated
// end position into the baseline; cacheMid keeps the current arc height for
// the switching blend.
type transition struct {
	apply    bool
	next     State
	snapshot bool
	cacheMid bool
}

const stateCount = int(StateIdle) + 1

// transitions is evaluated once per frame before dispatch. Dying2 ignores
// every edge.
var transitions = [stateCount][edgeCount]transition{
	StateNewTarget: {
		edgeAcquired: {apply: true, next: StateNewTarget},
		edgeLost:     {apply: true, next: StateDying, snapshot: true},
		edgeSwitched: {apply: true, next: StateSwitching, cacheMid: true},
	},
	StateDying: {
		edgeAcquired: {apply: true, next: StateNewTarget, snapshot: true},
		edgeLost:     {apply: true, next: StateDying},
		edgeSwitched: {apply: true, next: StateSwitching, cacheMid: true},
	},
	StateDying2: {},
	StateSwitching: {
		edgeAcquired: {apply: true, next: StateNewTarget},
		edgeLost:     {apply: true, next: StateDying, snapshot: true},
		edgeSwitched: {apply: true, next: StateSwitching, snapshot: true, cacheMid: true},
	},
	StateIdle: {
		edgeAcquired: {apply: true, next: StateNewTarget},
		edgeLost:     {apply: true, next: StateDying},
		edgeSwitched: {apply: true, next: StateSwitching, cacheMid: true},
	},
}

// needsTarget reports whether the state's routine reads the live target.
func (s State) needsTarget() bool {
	return s == StateNewTarget || s == StateSwitching || s == StateIdle
}
