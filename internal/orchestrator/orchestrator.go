package orchestrator

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"voxel-terrain/internal/camera"
	"voxel-terrain/internal/config"
	"voxel-terrain/internal/logging"
	"voxel-terrain/internal/noise"
	"voxel-terrain/internal/profiling"
	"voxel-terrain/internal/terrain"
)

// journalTimeout bounds one journal write so a slow disk cannot stall a frame
// indefinitely.
const journalTimeout = 2 * time.Second

// Journal records updates that changed the state.
type Journal interface {
	Append(ctx context.Context, updates []config.Update) error
}

// Options configure an Orchestrator. Zero values pick OpenSimplex noise, no
// journal and a disabled logger.
type Options struct {
	Sampler noise.Sampler
	Journal Journal
	Logger  *zerolog.Logger
}

// Orchestrator owns the current State and everything derived from it. Frame
// and the mesh accessors must be called from a single goroutine; Published
// and Generation may be read from anywhere.
type Orchestrator struct {
	queue   *Queue
	sampler noise.Sampler
	journal Journal
	log     zerolog.Logger

	state      config.State
	mesh       terrain.Mesh
	pose       camera.Pose
	generation atomic.Uint64
	published  atomic.Pointer[config.State]

	applied []config.Update
}

// New builds the initial mesh and pose from initial.
func New(q *Queue, initial config.State, opts Options) *Orchestrator {
	o := &Orchestrator{
		queue:   q,
		sampler: opts.Sampler,
		journal: opts.Journal,
		log:     zerolog.Nop(),
	}
	if o.sampler == nil {
		o.sampler = noise.NewOpenSimplex()
	}
	if opts.Logger != nil {
		o.log = logging.Component(*opts.Logger, "orchestrator")
	}
	o.rebuild(initial)
	return o
}

// Frame folds every pending update into the state. If the result differs
// from the current state the mesh and pose are rebuilt and Frame returns
// true. With nothing pending it returns false without allocating.
func (o *Orchestrator) Frame() bool {
	batch, ok := o.queue.TryReceive()
	if !ok {
		return false
	}

	next := o.state
	o.applied = o.applied[:0]
	received := 0
	for ; ok; batch, ok = o.queue.TryReceive() {
		for i := range batch {
			received++
			folded := config.Apply(next, &batch[i])
			if folded != next {
				o.applied = append(o.applied, batch[i])
				next = folded
			}
		}
	}

	if next == o.state {
		o.log.Debug().Int("received", received).Msg("updates left state unchanged")
		return false
	}

	start := time.Now()
	o.rebuild(next)
	o.log.Debug().
		Int("received", received).
		Int("applied", len(o.applied)).
		Uint64("generation", o.Generation()).
		Int("triangles", o.mesh.TriangleCount()).
		Dur("took", time.Since(start)).
		Msg("terrain regenerated")

	o.record()
	return true
}

func (o *Orchestrator) rebuild(s config.State) {
	defer profiling.Track("orchestrator.rebuild")()

	o.state = s
	o.mesh = terrain.Regenerate(o.sampler, s.Terrain)
	o.pose = camera.NewPose(s.Camera)
	published := s
	o.published.Store(&published)
	o.generation.Add(1)
}

func (o *Orchestrator) record() {
	if o.journal == nil || len(o.applied) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()
	if err := o.journal.Append(ctx, o.applied); err != nil {
		o.log.Error().Err(err).Int("updates", len(o.applied)).Msg("failed to journal updates")
	}
}

// State returns the current snapshot.
func (o *Orchestrator) State() config.State { return o.state }

// Mesh returns the mesh of the current state. It is replaced, never
// modified, by the next rebuild.
func (o *Orchestrator) Mesh() terrain.Mesh { return o.mesh }

// Pose returns the camera pose of the current state.
func (o *Orchestrator) Pose() camera.Pose { return o.pose }

// Generation counts rebuilds, starting at 1 for the initial build.
func (o *Orchestrator) Generation() uint64 { return o.generation.Load() }

// Published returns a copy of the latest state. Safe for concurrent use.
func (o *Orchestrator) Published() config.State { return *o.published.Load() }
