package engine

// DashboardState carries the dashboard's data across reloads. The
// engine allocates the maps once and never replaces them: a reload
// swaps the definition, not the state, so panels pick up exactly the
// values they held before. Keys a new definition no longer reads are
// left in place rather than pruned.
type DashboardState struct {
	// User holds application data the definition's panels read and the
	// update function writes.
	User map[string]any
	// UI holds presentation state such as scroll offsets and selected
	// indices, keyed by panel.
	UI map[string]any
	// Err is the most recent reload failure, nil when healthy.
	Err *ErrorRecord
}

// NewDashboardState returns empty, non-nil state maps.
func NewDashboardState() *DashboardState {
	return &DashboardState{
		User: make(map[string]any),
		UI:   make(map[string]any),
	}
}

// Severity ranks an ErrorRecord for overlay coloring.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "error"
	}
}

// ErrorRecord is a reload failure prepared for display. Line and Col
// are 1-based; zero means unknown.
type ErrorRecord struct {
	Title    string
	Message  string
	Path     string
	Line     int
	Col      int
	Severity Severity
	Hints    []string
}
