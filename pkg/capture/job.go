package capture

import (
	"fmt"
	"io"

	"github.com/amoffat/go-lightprobe/pkg/core"
)

// Status is the lifecycle state of a capture job.
type Status int

const (
	Pending Status = iota
	Running
	Completed
	Cancelled
	Failed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Done reports whether the status is terminal.
func (s Status) Done() bool {
	return s == Completed || s == Cancelled || s == Failed
}

// Progress describes one completed chunk, for host progress bars.
type Progress struct {
	Frame       int
	Direction   Direction
	Chunk       int // 1-based chunk number
	TotalChunks int
}

// Options configures the optional collaborators of a job.
type Options struct {
	Scene      SceneController     // nil when the host has no scene state to guard
	OnProgress func(Progress)      // invoked after each chunk
	OnComplete func(Status, error) // invoked once, on any terminal transition
	Logger     core.Logger         // nil uses the default stdout logger
}

// Job is the chunked capture state machine. The host scheduler calls Step
// once per tick; each tick processes at most one (frame, direction) chunk and
// returns control, keeping the host responsive. Chunks execute strictly in
// frame-then-direction order. Cancellation is observed only at chunk
// boundaries: an in-flight render always completes before it takes effect.
type Job struct {
	cfg      Config
	renderer Renderer
	stream   *StreamWriter
	opts     Options
	logger   core.Logger

	frames    []int
	frameIdx  int
	dirIdx    int
	status    Status
	cancelled bool
	err       error
	restores  restoreStack
}

// NewJob plans a capture. The frame list is computed up front so the stream
// header can carry the final frame count; nothing is written until the first
// Step.
func NewJob(cfg Config, renderer Renderer, out io.Writer, opts Options) (*Job, error) {
	if renderer == nil {
		return nil, fmt.Errorf("capture needs a renderer")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid capture config: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = core.NewDefaultLogger()
	}

	frames := SelectFrames(cfg.StartFrame(), cfg.EndFrame(), cfg.NativeFPS, cfg.TargetFPS)
	return &Job{
		cfg:      cfg,
		renderer: renderer,
		stream:   NewStreamWriter(out),
		opts:     opts,
		logger:   logger,
		frames:   frames,
		status:   Pending,
	}, nil
}

// Frames returns the planned frame numbers.
func (j *Job) Frames() []int {
	return j.frames
}

// Status returns the job's current state.
func (j *Job) Status() Status {
	return j.status
}

// Err returns the failure cause once the job is Failed.
func (j *Job) Err() error {
	return j.err
}

// Cancel requests cancellation. It takes effect on the next Step; the chunk
// in flight (if any) is never torn.
func (j *Job) Cancel() {
	j.cancelled = true
}

// Step advances the state machine by at most one chunk and returns the
// resulting status. Once the status is terminal further calls are no-ops.
// A renderer or sink failure is returned here, never swallowed.
func (j *Job) Step() (Status, error) {
	switch j.status {
	case Completed, Cancelled, Failed:
		return j.status, j.err

	case Pending:
		if j.cancelled {
			j.status = Cancelled
			j.finish()
			return j.status, nil
		}
		if err := j.start(); err != nil {
			return j.fail(err)
		}
		return j.status, nil

	case Running:
		if j.cancelled {
			j.status = Cancelled
			j.finish()
			return j.status, nil
		}
		if err := j.renderChunk(); err != nil {
			return j.fail(err)
		}
		if j.advance() {
			j.status = Completed
			j.finish()
		}
		return j.status, nil
	}

	return j.status, j.err
}

// start acquires the scene overrides and writes the stream header. The setup
// tick processes no chunk.
func (j *Job) start() error {
	if j.opts.Scene != nil {
		restore, err := j.opts.Scene.Acquire(j.cfg.SkyOnly)
		if err != nil {
			return fmt.Errorf("acquiring scene state: %w", err)
		}
		j.restores.push(restore)
	}

	if err := j.stream.WriteHeader(float32(j.cfg.TargetFPS), float32(j.cfg.Gamma), uint32(len(j.frames))); err != nil {
		return err
	}

	j.logger.Printf("Capture started: %d frames x %d directions at %dpx\n",
		len(j.frames), len(Directions), j.cfg.Size)
	j.status = Running
	return nil
}

// renderChunk renders the cursor's (frame, direction) pair and appends the
// resulting block to the stream.
func (j *Job) renderChunk() error {
	frame := j.frames[j.frameIdx]
	dir := Directions[j.dirIdx]

	data, err := j.renderer.Render(frame, dir.Pose(j.cfg.Position), j.cfg.Size)
	if err != nil {
		return fmt.Errorf("rendering frame %d %s: %w", frame, dir, err)
	}
	if err := j.stream.WriteBlock(data); err != nil {
		return fmt.Errorf("frame %d %s: %w", frame, dir, err)
	}

	if j.opts.OnProgress != nil {
		j.opts.OnProgress(Progress{
			Frame:       frame,
			Direction:   dir,
			Chunk:       j.frameIdx*len(Directions) + j.dirIdx + 1,
			TotalChunks: len(j.frames) * len(Directions),
		})
	}
	return nil
}

// advance moves the cursor one chunk in frame-then-direction order and
// reports whether the capture is complete.
func (j *Job) advance() bool {
	j.dirIdx++
	if j.dirIdx == len(Directions) {
		j.dirIdx = 0
		j.frameIdx++
	}
	return j.frameIdx == len(j.frames)
}

// fail records the error, unwinds overrides and surfaces the cause.
func (j *Job) fail(err error) (Status, error) {
	j.status = Failed
	j.err = err
	j.finish()
	return j.status, err
}

// finish unwinds scene overrides and fires the completion callback. Runs on
// every terminal transition.
func (j *Job) finish() {
	j.restores.restoreAll()
	if j.opts.OnComplete != nil {
		j.opts.OnComplete(j.status, j.err)
	}
	j.logger.Printf("Capture %s\n", j.status)
}
