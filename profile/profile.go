package profile

// Profiler configures a file-based runtime profile.
type Profiler struct {
	Mode  string
	Path  string
	Quiet bool
}

// Option configures a Profiler.
type Option func(*Profiler)

// New returns a Profiler with opts applied.
func New(opts ...Option) Profiler {
	var p Profiler

	for _, opt := range opts {
		opt(&p)
	}

	return p
}

// WithMode sets the profiling mode. See [Modes].
func WithMode(mode string) Option {
	return func(p *Profiler) { p.Mode = mode }
}

// WithPath sets the profile output directory.
func WithPath(path string) Option {
	return func(p *Profiler) { p.Path = path }
}

// WithQuiet suppresses the profiler's own log messages.
func WithQuiet(quiet bool) Option {
	return func(p *Profiler) { p.Quiet = quiet }
}

// Stopper stops a running profile and flushes its output.
type Stopper interface{ Stop() }

// Start starts profiling in p's mode. Start returns a no-op when p has no
// mode, when the mode is unknown, or when built without the pprof tag.
// Both Start and Stop are always safely callable.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
