package galois

const defaultChunkSize = 32

// Config is the explicit, executor-scoped configuration record (§9
// design note: no process-wide singletons). Built with Option values
// passed to the ForEachOrdered* entry points.
type Config struct {
	// Mode selects OPTIM or PESSIM conflict resolution.
	Mode SpecMode

	// Loopname is a diagnostic label attached to trace lines and
	// ParaMeter step stats.
	Loopname string

	// EnableParaMeter turns on per-round parallelism recording,
	// returned afterwards in Stats.StepRecords.
	EnableParaMeter bool

	// Trace turns on Logger.Infof tracing: one line per round with the
	// number of tasks admitted. Commits and aborts are not traced.
	Trace bool

	// TargetCommitRatio sets the window worklist admission size as a
	// fraction of the initial items, computed once when they are pushed;
	// children pushed later do not change it. Zero disables windowing:
	// every pushed item enters the round-current worklist directly.
	TargetCommitRatio float64

	// MaxIterations caps the number of rounds the executor will run
	// before exiting with partial results (§7 Exhaustion). Zero means
	// unlimited.
	MaxIterations int

	// Workers is the number of goroutines in the work-stealing pool
	// driving each round's phases. Zero means use runtime.GOMAXPROCS(0).
	Workers int

	// StaticRange selects the sorted-range window worklist instead of
	// the default priority-queue one. Only safe when the operator never
	// pushes children (a pure-consumer loop over a fixed range).
	StaticRange bool

	// ChunkExpand, ChunkExec, ChunkOp, ChunkAbort, ChunkCommit size the
	// work-stealing chunks handed to a worker in each of the round's
	// phases. Zero means defaultChunkSize.
	ChunkExpand int
	ChunkExec   int
	ChunkOp     int
	ChunkAbort  int
	ChunkCommit int

	// Logger receives diagnostic output. Defaults to DefaultLogger.
	Logger Logger
}

// Option mutates a Config at construction time.
type Option func(*Config)

// WithMode sets the conflict-resolution discipline.
func WithMode(m SpecMode) Option {
	return func(c *Config) { c.Mode = m }
}

// WithLoopname sets the diagnostic label.
func WithLoopname(name string) Option {
	return func(c *Config) { c.Loopname = name }
}

// WithParaMeter enables per-round parallelism step stats.
func WithParaMeter(enable bool) Option {
	return func(c *Config) { c.EnableParaMeter = enable }
}

// WithTrace enables Logger.Infof tracing.
func WithTrace(enable bool) Option {
	return func(c *Config) { c.Trace = enable }
}

// WithTargetCommitRatio sets the window worklist admission ratio.
func WithTargetCommitRatio(ratio float64) Option {
	return func(c *Config) { c.TargetCommitRatio = ratio }
}

// WithMaxIterations caps the number of rounds.
func WithMaxIterations(n int) Option {
	return func(c *Config) { c.MaxIterations = n }
}

// WithWorkers sets the work-stealing pool size.
func WithWorkers(n int) Option {
	return func(c *Config) { c.Workers = n }
}

// WithStaticRange selects the sorted-range window worklist. Only safe
// when the operator never pushes children.
func WithStaticRange(static bool) Option {
	return func(c *Config) { c.StaticRange = static }
}

// WithChunkSizes sets the per-phase work-stealing chunk sizes. A zero
// value leaves the corresponding phase at defaultChunkSize.
func WithChunkSizes(expand, exec, op, abort, commit int) Option {
	return func(c *Config) {
		c.ChunkExpand = expand
		c.ChunkExec = exec
		c.ChunkOp = op
		c.ChunkAbort = abort
		c.ChunkCommit = commit
	}
}

// WithLogger overrides the default Logger.
func WithLogger(l Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithQuiet silences Infof trace output while keeping Fatalf's halt-on
// invariant-violation behavior.
func WithQuiet(quiet bool) Option {
	return func(c *Config) {
		if quiet {
			c.Logger = noopLogger{}
		}
	}
}

func newConfig(opts []Option) *Config {
	c := &Config{
		Mode:     OPTIM,
		Loopname: "for_each_ordered_spec",
		Logger:   DefaultLogger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Logger == nil {
		c.Logger = DefaultLogger
	}
	if c.ChunkExpand <= 0 {
		c.ChunkExpand = defaultChunkSize
	}
	if c.ChunkExec <= 0 {
		c.ChunkExec = defaultChunkSize
	}
	if c.ChunkOp <= 0 {
		c.ChunkOp = defaultChunkSize
	}
	if c.ChunkAbort <= 0 {
		c.ChunkAbort = defaultChunkSize
	}
	if c.ChunkCommit <= 0 {
		c.ChunkCommit = defaultChunkSize
	}
	return c
}

func (c *Config) tracef(format string, args ...interface{}) {
	if c.Trace {
		c.Logger.Infof(format, args...)
	}
}
