// Package replay records and re-runs deterministic action sequences against
// a simulation. A run is fully described by its seed and actions; replaying
// it must reproduce the same trace hash.
package replay

import (
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"

	"github.com/vovakirdan/tui-toybox/internal/core"
	"github.com/vovakirdan/tui-toybox/internal/random"
	"github.com/vovakirdan/tui-toybox/internal/registry"
)

// ErrDiverged is returned when a replay does not reproduce its recording.
var ErrDiverged = errors.New("replay: trace diverged")

// Policy picks the action for a tick.
type Policy interface {
	Next(tick int) core.AleAction
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(tick int) core.AleAction

// Next implements Policy.
func (f PolicyFunc) Next(tick int) core.AleAction { return f(tick) }

// Constant always plays the same action.
func Constant(a core.AleAction) Policy {
	return PolicyFunc(func(int) core.AleAction { return a })
}

// Scripted plays the given actions in order, then NOOP.
func Scripted(actions []core.AleAction) Policy {
	return PolicyFunc(func(tick int) core.AleAction {
		if tick < len(actions) {
			return actions[tick]
		}
		return core.AleNoop
	})
}

// Random samples uniformly from legal, holding each choice for hold ticks.
func Random(seed uint32, legal []core.AleAction, hold int) Policy {
	g := random.New(seed)
	hold = max(hold, 1)
	current := core.AleNoop
	return PolicyFunc(func(tick int) core.AleAction {
		if tick%hold == 0 && len(legal) > 0 {
			current = legal[g.Intn(len(legal))]
		}
		return current
	})
}

// ParsePolicy builds a named policy: "noop", "random", or any ALE action name
// such as "UP" or "LEFTFIRE".
func ParsePolicy(name string, seed uint32, legal []core.AleAction) (Policy, error) {
	switch name {
	case "", "noop":
		return Constant(core.AleNoop), nil
	case "random":
		return Random(seed, legal, 15), nil
	}
	a, err := core.ParseAleAction(name)
	if err != nil {
		return nil, fmt.Errorf("replay: unknown policy %q", name)
	}
	return Constant(a), nil
}

// Recording is a finished run.
type Recording struct {
	GameID    string
	Seed      uint32
	Actions   []core.AleAction
	Score     int
	Lives     int
	Level     int
	GameOver  bool
	TraceHash uint64
}

// Ticks returns the number of recorded ticks.
func (r *Recording) Ticks() int {
	return len(r.Actions)
}

// tracer folds the observable outcome of every tick into an FNV-1a hash.
type tracer struct {
	buf []byte
	sum uint64
}

func newTracer() *tracer {
	return &tracer{sum: fnv.New64a().Sum64()}
}

func (t *tracer) observe(st registry.State) {
	h := fnv.New64a()
	t.buf = strconv.AppendUint(t.buf[:0], t.sum, 16)
	t.buf = append(t.buf, ':')
	t.buf = strconv.AppendInt(t.buf, int64(st.Score()), 10)
	t.buf = append(t.buf, ',')
	t.buf = strconv.AppendInt(t.buf, int64(st.Lives()), 10)
	t.buf = append(t.buf, ',')
	t.buf = strconv.AppendInt(t.buf, int64(st.Level()), 10)
	h.Write(t.buf)
	t.sum = h.Sum64()
}

// finish folds the final serialized state into the hash.
func (t *tracer) finish(st registry.State) (uint64, error) {
	data, err := st.ToJSON()
	if err != nil {
		return 0, fmt.Errorf("replay: serialize final state: %w", err)
	}
	h := fnv.New64a()
	h.Write(strconv.AppendUint(nil, t.sum, 16))
	h.Write(data)
	return h.Sum64(), nil
}

// Record plays policy for at most ticks ticks, stopping early at game over.
// The observe callback, if non-nil, sees the state after every tick.
func Record(sim registry.Simulation, seed uint32, policy Policy, ticks int, observe func(tick int, st registry.State)) (*Recording, error) {
	st, err := sim.NewGame(seed)
	if err != nil {
		return nil, err
	}

	rec := &Recording{GameID: sim.ID(), Seed: seed}
	tr := newTracer()
	for tick := 0; tick < ticks && !st.GameOver(); tick++ {
		a := policy.Next(tick)
		st.UpdateMut(a.Input())
		rec.Actions = append(rec.Actions, a)
		tr.observe(st)
		if observe != nil {
			observe(tick, st)
		}
	}

	rec.TraceHash, err = tr.finish(st)
	if err != nil {
		return nil, err
	}
	rec.Score = st.Score()
	rec.Lives = st.Lives()
	rec.Level = st.Level()
	rec.GameOver = st.GameOver()
	return rec, nil
}

// Replay re-runs a recording and verifies it reproduces the same trace.
// The fresh recording is returned even when it diverges.
func Replay(sim registry.Simulation, rec *Recording) (*Recording, error) {
	if rec.GameID != sim.ID() {
		return nil, fmt.Errorf("replay: recording is for %q, not %q", rec.GameID, sim.ID())
	}
	again, err := Record(sim, rec.Seed, Scripted(rec.Actions), rec.Ticks(), nil)
	if err != nil {
		return nil, err
	}
	if again.TraceHash != rec.TraceHash {
		return again, fmt.Errorf("%w: hash %016x, recorded %016x", ErrDiverged, again.TraceHash, rec.TraceHash)
	}
	return again, nil
}

// ActionsToInts converts actions for storage.
func ActionsToInts(actions []core.AleAction) []int {
	out := make([]int, len(actions))
	for i, a := range actions {
		out[i] = int(a)
	}
	return out
}

// ActionsFromInts validates stored action ids.
func ActionsFromInts(ids []int) ([]core.AleAction, error) {
	out := make([]core.AleAction, len(ids))
	for i, id := range ids {
		a, err := core.AleActionFromInt(id)
		if err != nil {
			return nil, fmt.Errorf("replay: action %d: %w", i, err)
		}
		out[i] = a
	}
	return out, nil
}
