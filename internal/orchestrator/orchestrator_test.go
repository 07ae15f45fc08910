package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"voxel-terrain/internal/config"
	"voxel-terrain/internal/noise"
)

type countingSampler struct {
	noise.Sampler
	calls int
}

func (c *countingSampler) Sample3D(seed int64, x, y, z float64) float32 {
	c.calls++
	return c.Sampler.Sample3D(seed, x, y, z)
}

type memJournal struct {
	batches [][]config.Update
	err     error
}

func (j *memJournal) Append(ctx context.Context, updates []config.Update) error {
	j.batches = append(j.batches, append([]config.Update(nil), updates...))
	return j.err
}

func smallState() config.State {
	s := config.DefaultState()
	s.Terrain.Width, s.Terrain.Depth = 6, 4
	return s
}

func newTestOrchestrator(t *testing.T, j Journal) (*Orchestrator, *Queue, *countingSampler) {
	t.Helper()
	q := NewQueue(16)
	s := &countingSampler{Sampler: noise.NewValue()}
	return New(q, smallState(), Options{Sampler: s, Journal: j}), q, s
}

func send(t *testing.T, q *Queue, updates ...config.Update) {
	t.Helper()
	for _, u := range updates {
		if err := q.Send(context.Background(), u); err != nil {
			t.Fatalf("Send %s: %v", u, err)
		}
	}
}

func TestQueueFIFO(t *testing.T) {
	q := NewQueue(4)
	for i := range 4 {
		send(t, q, config.TerrainSeed(int64(i)))
	}
	if q.Len() != 4 {
		t.Errorf("Len() = %d, want 4", q.Len())
	}
	for i := range 4 {
		b, ok := q.TryReceive()
		if !ok || len(b) != 1 || b[0] != config.TerrainSeed(int64(i)) {
			t.Fatalf("receive %d: got %v, %v", i, b, ok)
		}
	}
	if _, ok := q.TryReceive(); ok {
		t.Error("TryReceive on an empty queue should not block or succeed")
	}
}

func TestQueueSendBatch(t *testing.T) {
	q := NewQueue(2)
	batch := []config.Update{config.TerrainWidth(20), config.TerrainSeed(3), config.CameraZFar(80)}
	if err := q.SendBatch(context.Background(), batch); err != nil {
		t.Fatalf("SendBatch: %v", err)
	}
	if err := q.SendBatch(context.Background(), nil); err != nil {
		t.Fatalf("empty SendBatch: %v", err)
	}
	if q.Len() != 1 {
		t.Errorf("Len() = %d, want one batch", q.Len())
	}
	b, ok := q.TryReceive()
	if !ok || len(b) != len(batch) {
		t.Fatalf("got %v, %v; want the whole batch", b, ok)
	}
	for i := range batch {
		if b[i] != batch[i] {
			t.Errorf("update %d = %s, want %s", i, b[i], batch[i])
		}
	}
}

func TestQueueSendContext(t *testing.T) {
	q := NewQueue(1)
	ctx := context.Background()
	if err := q.Send(ctx, config.TerrainSeed(1)); err != nil {
		t.Fatalf("Send: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if err := q.Send(ctx, config.TerrainSeed(2)); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Send on full queue: err = %v, want deadline exceeded", err)
	}
}

func TestQueueClose(t *testing.T) {
	q := NewQueue(2)
	send(t, q, config.TerrainSeed(1))
	q.Close()

	if err := q.Send(context.Background(), config.TerrainSeed(2)); !errors.Is(err, ErrQueueClosed) {
		t.Errorf("Send after Close: err = %v", err)
	}
	if err := q.SendBatch(context.Background(), []config.Update{config.TerrainSeed(3)}); !errors.Is(err, ErrQueueClosed) {
		t.Errorf("SendBatch after Close: err = %v", err)
	}
	if b, ok := q.TryReceive(); !ok || b[0] != config.TerrainSeed(1) {
		t.Error("pending update should survive Close")
	}
}

func TestQueueManyProducers(t *testing.T) {
	const producers, each = 4, 50
	q := NewQueue(8)
	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range each {
				if err := q.Send(context.Background(), config.TerrainSeed(int64(p*1000+i))); err != nil {
					t.Errorf("producer %d: %v", p, err)
					return
				}
			}
		}()
	}

	last := map[int]int{0: -1, 1: -1, 2: -1, 3: -1}
	got := 0
	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	for got < producers*each {
		b, ok := q.TryReceive()
		if !ok {
			select {
			case <-done:
				if q.Len() == 0 {
					t.Fatalf("received %d of %d", got, producers*each)
				}
			default:
			}
			continue
		}
		n, err := strconv.Atoi(b[0].Encode())
		if err != nil {
			t.Fatal(err)
		}
		p, i := n/1000, n%1000
		if i <= last[p] {
			t.Fatalf("producer %d out of order: %d after %d", p, i, last[p])
		}
		last[p] = i
		got++
	}
}

func TestFrameWithoutUpdatesIsNoop(t *testing.T) {
	o, _, s := newTestOrchestrator(t, nil)
	mesh := o.Mesh()
	gen := o.Generation()
	calls := s.calls

	for range 3 {
		if o.Frame() {
			t.Fatal("Frame with an empty queue should report no change")
		}
	}
	if s.calls != calls {
		t.Errorf("sampler called %d times on idle frames", s.calls-calls)
	}
	if o.Generation() != gen {
		t.Errorf("generation moved from %d to %d", gen, o.Generation())
	}
	if &o.Mesh().Positions[0] != &mesh.Positions[0] {
		t.Error("idle frame replaced the mesh")
	}
}

func TestFrameIdleDoesNotAllocate(t *testing.T) {
	o, _, _ := newTestOrchestrator(t, nil)
	allocs := testing.AllocsPerRun(100, func() { o.Frame() })
	if allocs != 0 {
		t.Errorf("idle Frame allocated %v times", allocs)
	}
}

func TestFrameFoldsInArrivalOrder(t *testing.T) {
	j := &memJournal{}
	o, q, _ := newTestOrchestrator(t, j)

	send(t, q, config.TerrainSeed(42), config.TerrainColor("ff0000"))
	send(t, q, config.TerrainSeed(43), config.CameraZFar(250))

	if !o.Frame() {
		t.Fatal("Frame should report a rebuild")
	}
	st := o.State()
	if st.Terrain.Seed != 43 {
		t.Errorf("seed = %d, want the later update 43", st.Terrain.Seed)
	}
	if st.Terrain.Color.Hex() != "ff0000" || st.Camera.ZFar != 250 {
		t.Errorf("unexpected state %+v", st)
	}
	if o.Published() != st {
		t.Error("published state should match the folded state")
	}
	if o.Pose().Far != 250 {
		t.Errorf("pose far = %v, want 250", o.Pose().Far)
	}
	if o.Generation() != 2 {
		t.Errorf("generation = %d, want 2", o.Generation())
	}
	if q.Len() != 0 {
		t.Errorf("queue still holds %d updates", q.Len())
	}

	if len(j.batches) != 1 || len(j.batches[0]) != 4 {
		t.Fatalf("journal batches = %v", j.batches)
	}
	if j.batches[0][0] != config.TerrainSeed(42) || j.batches[0][2] != config.TerrainSeed(43) {
		t.Errorf("journal order = %v", j.batches[0])
	}
}

func TestFrameFoldsBatchAsOneUnit(t *testing.T) {
	j := &memJournal{}
	o, q, _ := newTestOrchestrator(t, j)
	from := o.State()
	to := from
	to.Terrain.Width, to.Terrain.Seed, to.Camera.ZFar = 9, 77, 120

	if err := q.SendBatch(context.Background(), config.Diff(from, to)); err != nil {
		t.Fatal(err)
	}
	if !o.Frame() {
		t.Fatal("Frame should report a rebuild")
	}
	if o.State() != to {
		t.Errorf("state = %+v, want %+v", o.State(), to)
	}
	if o.Generation() != 2 {
		t.Errorf("generation = %d, want a single rebuild", o.Generation())
	}
	if len(j.batches) != 1 || len(j.batches[0]) != 3 {
		t.Errorf("journal batches = %v", j.batches)
	}
}

func TestFrameLogsWithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	q := NewQueue(4)
	o := New(q, smallState(), Options{Sampler: noise.NewValue(), Logger: &log})

	send(t, q, config.TerrainSeed(5))
	o.Frame()
	if !strings.Contains(buf.String(), `"component":"orchestrator"`) {
		t.Errorf("log output missing component field: %s", buf.String())
	}
}

func TestFrameIgnoresRejectedAndNoopUpdates(t *testing.T) {
	j := &memJournal{}
	o, q, s := newTestOrchestrator(t, j)
	calls := s.calls
	seed := o.State().Terrain.Seed

	send(t, q, config.TerrainSeed(seed), config.TerrainVoxelSize(0), config.TerrainColor("xyz"))

	if o.Frame() {
		t.Error("updates that change nothing should not rebuild")
	}
	if s.calls != calls || o.Generation() != 1 {
		t.Error("no regeneration expected")
	}
	if len(j.batches) != 0 {
		t.Errorf("journal written for a no-op frame: %v", j.batches)
	}
}

func TestFrameJournalErrorDoesNotBlock(t *testing.T) {
	j := &memJournal{err: errors.New("disk full")}
	o, q, _ := newTestOrchestrator(t, j)
	send(t, q, config.TerrainSeed(1))
	if !o.Frame() {
		t.Fatal("journal failure must not undo the rebuild")
	}
	if o.State().Terrain.Seed != 1 {
		t.Error("state not updated")
	}
}

func TestFrameMatchesDirectRegeneration(t *testing.T) {
	o, q, _ := newTestOrchestrator(t, nil)
	send(t, q, config.TerrainWidth(3), config.TerrainDepth(2))
	o.Frame()

	cols, rows := 3, 2
	if got := o.Mesh().VertexCount(); got < cols*rows*8 {
		t.Errorf("mesh has %d vertices, want at least one cube per column", got)
	}
}

func TestPublishedConcurrentReads(t *testing.T) {
	o, q, _ := newTestOrchestrator(t, nil)
	var wg sync.WaitGroup
	stop := make(chan struct{})
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					_ = o.Published().Terrain.Seed
					_ = o.Generation()
				}
			}
		}()
	}
	for i := range 20 {
		send(t, q, config.TerrainSeed(int64(i+100)))
		o.Frame()
	}
	close(stop)
	wg.Wait()
	if o.Published().Terrain.Seed != 119 {
		t.Errorf("published seed = %d, want 119", o.Published().Terrain.Seed)
	}
}
