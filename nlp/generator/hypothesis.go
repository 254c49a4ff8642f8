package generator

// A sentinel beam slot for hypotheses that are not (yet) placed in a
// beam, and for the parent slot of the initial hypothesis.
const NO_SLOT = -1

// A Trace accumulates human-readable step descriptions for
// visualization tools; it is copied verbatim when a hypothesis is
// cloned.
type Trace struct {
	Steps []string
}

func (t *Trace) Append(step string) {
	t.Steps = append(t.Steps, step)
}

func (t *Trace) Copy() *Trace {
	newTrace := &Trace{Steps: make([]string, len(t.Steps))}
	copy(newTrace.Steps, t.Steps)
	return newTrace
}

// A BeamHypothesis wraps one generation state with the bookkeeping a
// beam-search driver needs: a score for ranking, the hypothesis's
// current slot in the beam, and the slot of the hypothesis it was
// expanded from, so back-traces can be reconstructed across steps.
type BeamHypothesis struct {
	State *GeneratorState

	score                float64
	beamSlot, parentSlot int
	trace                *Trace
}

func NewBeamHypothesis(state *GeneratorState) *BeamHypothesis {
	return &BeamHypothesis{
		State:      state,
		beamSlot:   NO_SLOT,
		parentSlot: NO_SLOT,
	}
}

// InitFromParent records lineage when a hypothesis is expanded from
// another: it inherits the parent's score and points its parent slot at
// the parent's current position in the beam.
func (h *BeamHypothesis) InitFromParent(parent *BeamHypothesis) {
	h.score = parent.score
	h.parentSlot = parent.beamSlot
}

// Copy deep-clones the owned generation state and copies the beam
// bookkeeping, including the trace if one is attached. The clone shares
// nothing mutable with the original.
func (h *BeamHypothesis) Copy() *BeamHypothesis {
	newHyp := &BeamHypothesis{
		State:      h.State.Copy(),
		score:      h.score,
		beamSlot:   h.beamSlot,
		parentSlot: h.parentSlot,
	}
	if h.trace != nil {
		newHyp.trace = h.trace.Copy()
	}
	return newHyp
}

func (h *BeamHypothesis) Score() float64 {
	return h.score
}

func (h *BeamHypothesis) SetScore(score float64) {
	h.score = score
}

func (h *BeamHypothesis) AddScore(delta float64) {
	h.score += delta
}

func (h *BeamHypothesis) BeamSlot() int {
	return h.beamSlot
}

func (h *BeamHypothesis) SetBeamSlot(slot int) {
	h.beamSlot = slot
}

func (h *BeamHypothesis) ParentBeamSlot() int {
	return h.parentSlot
}

func (h *BeamHypothesis) Trace() *Trace {
	return h.trace
}

func (h *BeamHypothesis) SetTrace(trace *Trace) {
	h.trace = trace
}

// TraceStep appends a step description when tracing is enabled.
func (h *BeamHypothesis) TraceStep(step string) {
	if h.trace != nil {
		h.trace.Append(step)
	}
}

// String delegates to the state's stack rendering.
func (h *BeamHypothesis) String() string {
	return h.State.String()
}
