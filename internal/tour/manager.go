package tour

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// StartDelay gives the host UI one beat to finish laying out targets before
// the first step becomes visible.
const StartDelay = 400 * time.Millisecond

// Manager is the tour state machine. It owns the run state exclusively; all
// transitions are serialized by an internal mutex, every operation is total
// (invalid-state calls are no-ops), and at most one sequence is active or
// pending at a time.
type Manager struct {
	mu       sync.Mutex
	catalog  Catalog
	flags    FlagStore
	notifier Notifier
	logger   *zap.Logger
	delay    time.Duration
	schedule func(d time.Duration, fn func())
	onChange func()

	active  SequenceID
	steps   []Step
	idx     int
	pending SequenceID // armed but not yet visible; observers report Idle
}

// Option configures a Manager.
type Option func(*Manager)

// WithNotifier sets the transition feedback sink.
func WithNotifier(n Notifier) Option { return func(m *Manager) { m.notifier = n } }

// WithLogger records transitions at debug level.
func WithLogger(l *zap.Logger) Option { return func(m *Manager) { m.logger = l } }

// WithDelay overrides the deferred-start delay.
func WithDelay(d time.Duration) Option { return func(m *Manager) { m.delay = d } }

// WithScheduler replaces time.AfterFunc for the deferred start. Tests inject
// a scheduler they can fire by hand.
func WithScheduler(s func(d time.Duration, fn func())) Option {
	return func(m *Manager) { m.schedule = s }
}

// WithOnChange registers a hook invoked after any state change that the host
// did not itself drive (the deferred start firing).
func WithOnChange(fn func()) Option { return func(m *Manager) { m.onChange = fn } }

func NewManager(catalog Catalog, flags FlagStore, opts ...Option) *Manager {
	m := &Manager{
		catalog: catalog,
		flags:   flags,
		delay:   StartDelay,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.schedule == nil {
		m.schedule = func(d time.Duration, fn func()) { time.AfterFunc(d, fn) }
	}
	return m
}

// StartIfNeeded arms seq to start after a short delay, unless the machine is
// not idle, the user opted out of all tours, the sequence already completed,
// or the catalog has no steps for it. Concurrent or repeated calls are no-ops;
// nothing is queued. The deferred activation re-checks every precondition, so
// a skip or reset during the delay prevents a stale start.
func (m *Manager) StartIfNeeded(seq SequenceID) {
	m.mu.Lock()
	if !m.canStart(seq) {
		m.mu.Unlock()
		return
	}
	m.pending = seq
	m.debug("tour armed", seq)
	// Scheduled outside the lock so a synchronous scheduler can activate
	// immediately.
	m.mu.Unlock()
	m.schedule(m.delay, func() { m.activate(seq) })
}

func (m *Manager) canStart(seq SequenceID) bool {
	if m.active != "" || m.pending != "" {
		return false
	}
	if m.flags.Flag(FlagSkipAll) || m.flags.Flag(FlagKey(seq)) {
		return false
	}
	return len(m.catalog.Steps(seq)) > 0
}

func (m *Manager) activate(seq SequenceID) {
	m.mu.Lock()
	if m.pending != seq || m.active != "" ||
		m.flags.Flag(FlagSkipAll) || m.flags.Flag(FlagKey(seq)) {
		m.mu.Unlock()
		return
	}
	m.pending = ""
	m.active = seq
	m.steps = m.catalog.Steps(seq)
	m.idx = 0
	m.debug("tour started", seq)
	m.mu.Unlock()
	m.emit(KindStepAdvance)
	if m.onChange != nil {
		m.onChange()
	}
}

// Next advances to the following step, or completes the sequence when the
// current step is the last one. No-op while idle.
func (m *Manager) Next() {
	m.mu.Lock()
	if m.active == "" {
		m.mu.Unlock()
		return
	}
	if m.idx+1 < len(m.steps) {
		m.idx++
		m.mu.Unlock()
		m.emit(KindStepAdvance)
		return
	}
	seq := m.active
	m.clearRunLocked()
	m.mu.Unlock()
	_ = m.flags.SetFlag(FlagKey(seq), true)
	m.debug("tour completed", seq)
	m.emit(KindCompletion)
}

// Skip dismisses the active sequence and marks it completed so it never
// reappears. A pending (not yet visible) start is cancelled the same way.
func (m *Manager) Skip() {
	m.mu.Lock()
	seq := m.active
	if seq == "" {
		seq = m.pending
	}
	if seq == "" {
		m.mu.Unlock()
		return
	}
	m.clearRunLocked()
	m.mu.Unlock()
	_ = m.flags.SetFlag(FlagKey(seq), true)
	m.debug("tour skipped", seq)
	m.emit(KindSkip)
}

// SkipAll is Skip plus the global opt-out: no sequence starts again until
// Reset.
func (m *Manager) SkipAll() {
	m.mu.Lock()
	seq := m.active
	if seq == "" {
		seq = m.pending
	}
	m.clearRunLocked()
	m.mu.Unlock()
	if seq != "" {
		_ = m.flags.SetFlag(FlagKey(seq), true)
	}
	_ = m.flags.SetFlag(FlagSkipAll, true)
	m.debug("tours disabled", seq)
	m.emit(KindSkip)
}

// Reset clears the opt-out and every per-sequence completion flag, cancelling
// any active or pending run without recording it as completed.
func (m *Manager) Reset() {
	m.mu.Lock()
	m.clearRunLocked()
	m.mu.Unlock()
	_ = m.flags.SetFlag(FlagSkipAll, false)
	for _, seq := range m.catalog.Sequences() {
		_ = m.flags.SetFlag(FlagKey(seq), false)
	}
	m.debug("tours reset", "")
}

// clearRunLocked drops active and pending run state. Callers hold mu.
func (m *Manager) clearRunLocked() {
	m.active = ""
	m.pending = ""
	m.steps = nil
	m.idx = 0
}

// ActiveSequence reports the visible sequence, if any. A pending start is
// still idle.
func (m *Manager) ActiveSequence() (SequenceID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active, m.active != ""
}

// CurrentStep returns the step being presented.
func (m *Manager) CurrentStep() (Step, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == "" {
		return Step{}, false
	}
	return m.steps[m.idx], true
}

// Progress reports the 0-based step index and total step count for "X of Y"
// rendering. Zeros while idle.
func (m *Manager) Progress() (index, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == "" {
		return 0, 0
	}
	return m.idx, len(m.steps)
}

func (m *Manager) emit(kind Kind) {
	if m.notifier != nil {
		m.notifier.Notify(kind)
	}
}

func (m *Manager) debug(msg string, seq SequenceID) {
	if m.logger != nil {
		m.logger.Debug(msg, zap.String("sequence", string(seq)))
	}
}
