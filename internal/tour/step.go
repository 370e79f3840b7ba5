// Package tour implements the guided-tour (coach-mark) engine: a catalog of
// step sequences, a registry of on-screen target rectangles, a placement
// algorithm for the explanatory card, and the state machine that walks a user
// through a sequence at most once.
package tour

// SequenceID identifies one tour sequence.
type SequenceID string

const (
	SequenceToday    SequenceID = "today"
	SequenceKids     SequenceID = "kids"
	SequenceGoals    SequenceID = "goals"
	SequenceInsights SequenceID = "insights"
)

// TargetName names a conceptual UI element a step points at. The host UI
// resolves it to a rectangle on every layout pass.
type TargetName string

const (
	TargetAddButton     TargetName = "addButton"
	TargetStreakBadge   TargetName = "streakBadge"
	TargetTabBar        TargetName = "tabBar"
	TargetKidsList      TargetName = "kidsList"
	TargetGoalCard      TargetName = "goalCard"
	TargetInsightsFeed  TargetName = "insightsFeed"
	TargetSettingsReset TargetName = "settingsReset"
)

// Step is one highlighted element plus its explanatory text. Immutable;
// equality is by ID.
type Step struct {
	ID      string
	Title   string
	Message string
	Icon    string
	Target  TargetName
}

// Kind classifies the feedback signal emitted on a successful transition.
type Kind string

const (
	KindStepAdvance Kind = "step-advance"
	KindCompletion  Kind = "completion"
	KindSkip        Kind = "skip"
)

// Notifier receives a lightweight acknowledgment signal after each successful
// transition. The concrete sensory effect (bell, flash) is the host's concern.
type Notifier interface {
	Notify(kind Kind)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Kind)

func (f NotifierFunc) Notify(kind Kind) { f(kind) }

// FlagStore is the persisted completion store: one boolean per sequence plus
// a global skip-all flag. Reads default to false when a key was never written;
// a failed write is fail-safe (the tour may simply reappear).
type FlagStore interface {
	Flag(key string) bool
	SetFlag(key string, value bool) error
}

// FlagSkipAll is the global opt-out key.
const FlagSkipAll = "tour.skip_all"

// FlagKey returns the completion-flag key for a sequence.
func FlagKey(seq SequenceID) string { return "tour." + string(seq) }
