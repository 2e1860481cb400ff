package tmpchat

import "time"

const (
	// DefaultListenAddr is the default host:port the server binds to.
	DefaultListenAddr = "localhost:5050"

	// DefaultNotSetTimeout is the cumulative idle budget (T_notset) a client
	// gets in CONNECTED_USR_NOTSET before the server disconnects it.
	DefaultNotSetTimeout = 45 * time.Second
	// DefaultSetTimeout is the per-recv idle budget (T_set) a registered
	// client gets in CONNECTED_USR_SET.
	DefaultSetTimeout = 600 * time.Second

	// DefaultMaxClients is the occupancy ceiling enforced at CONNECTED_INIT.
	DefaultMaxClients = 50

	// DefaultPingInterval is the websocket keep-alive heartbeat cadence.
	DefaultPingInterval = 30 * time.Second

	// DefaultMetricsInterval is the cadence of the occupancy/name print (§6).
	DefaultMetricsInterval = 5 * time.Second

	// DefaultAcceptRetryFast is an initial backoff for transient Accept errors.
	// Server does not use it: Serve relies on http.Server.ListenAndServe's own
	// Accept retry handling.
	DefaultAcceptRetryFast = 10 * time.Millisecond
	// DefaultAcceptRetryMax is a backoff ceiling for repeated Accept errors.
	// Like DefaultAcceptRetryFast, it is not used by Server.
	DefaultAcceptRetryMax = 1 * time.Second

	// DefaultBroadcastQueueSize is the buffer depth of the inbound broadcast channel.
	DefaultBroadcastQueueSize = 256
)

// Option is a functional option for NewServer, matching the teacher's
// Config/Option pattern in options.go.
type Option func(*Config)

// Config holds runtime settings for a Server. The zero value is not usable;
// build one via defaultConfig/applyConfig from NewServer.
type Config struct {
	listenAddr string

	notSetTimeout time.Duration
	setTimeout    time.Duration

	maxClients int

	pingInterval    time.Duration
	metricsInterval time.Duration

	broadcastQueueSize int

	metrics Metrics
	logger  Logger
}

// Validate checks that the configuration is sane.
func (c *Config) Validate() error {
	if c.maxClients <= 0 {
		return ErrInvalidConfig
	}
	if c.notSetTimeout <= 0 || c.setTimeout <= 0 {
		return ErrInvalidConfig
	}
	if c.broadcastQueueSize < 0 {
		return ErrInvalidConfig
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		listenAddr:         DefaultListenAddr,
		notSetTimeout:      DefaultNotSetTimeout,
		setTimeout:         DefaultSetTimeout,
		maxClients:         DefaultMaxClients,
		pingInterval:       DefaultPingInterval,
		metricsInterval:    DefaultMetricsInterval,
		broadcastQueueSize: DefaultBroadcastQueueSize,
		metrics:            NewDefaultMetrics(),
		logger:             defaultLogger{},
	}
}

func applyConfig(opts []Option) *Config {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

// WithListenAddr sets the host:port the server binds to.
func WithListenAddr(addr string) Option {
	return func(c *Config) {
		if addr != "" {
			c.listenAddr = addr
		}
	}
}

// WithMaxClients sets the occupancy ceiling enforced at CONNECTED_INIT.
func WithMaxClients(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.maxClients = n
		}
	}
}

// WithNotSetTimeout sets T_notset, the cumulative pre-registration idle budget.
func WithNotSetTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.notSetTimeout = d
		}
	}
}

// WithSetTimeout sets T_set, the per-recv idle budget once registered.
func WithSetTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.setTimeout = d
		}
	}
}

// WithPingInterval sets the websocket keep-alive cadence. Zero disables pings.
func WithPingInterval(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.pingInterval = d
		}
	}
}

// WithMetricsInterval sets how often the occupancy/name line is printed.
// Zero disables the periodic printer.
func WithMetricsInterval(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.metricsInterval = d
		}
	}
}

// WithBroadcastQueueSize sets the buffer depth of the inbound broadcast
// channel (§3 "Inbound broadcast queue"). Producers block once it fills.
func WithBroadcastQueueSize(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.broadcastQueueSize = n
		}
	}
}

// WithMetrics sets a custom Metrics implementation. If not provided, a
// DefaultMetrics with atomic counters is used (matching the teacher's
// WithMetrics in options.go).
func WithMetrics(m Metrics) Option {
	return func(c *Config) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithLogger sets a custom Logger. If not provided, a thin wrapper around the
// standard log package is used.
func WithLogger(l Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.logger = l
		}
	}
}
