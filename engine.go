package rel

import (
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Options are the engine wide settings.
type Options struct {
	// MaxMaterialize is the most rows a lazy relation may be drained into
	// when it is materialized.  Zero means no limit.
	MaxMaterialize int
}

var (
	mu   sync.RWMutex
	opts Options

	// logger is swapped by SetLogger while relations are evaluated.
	logger atomic.Pointer[zap.Logger]

	registry = prometheus.NewRegistry()

	// operations counts operator applications.
	// Labels: op (filter, union, diff, ...), shape (of the receiver)
	operations = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "relalg_operations_total",
			Help: "Total number of relational operators applied",
		},
		[]string{"op", "shape"},
	)

	// rowsMaterialized counts rows drained out of lazy relations and queries.
	// Labels: shape (of the result)
	rowsMaterialized = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "relalg_rows_materialized_total",
			Help: "Total number of rows materialized from lazy relations",
		},
		[]string{"shape"},
	)
)

// Configure replaces the engine options.
func Configure(o Options) {
	mu.Lock()
	opts = o
	mu.Unlock()
}

func options() Options {
	mu.RLock()
	defer mu.RUnlock()
	return opts
}

func init() {
	logger.Store(zap.NewNop())
}

// SetLogger installs the logger used by the engine.  A nil logger disables
// logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

func log() *zap.Logger { return logger.Load() }

// Registry returns the registry holding the engine's metrics.
func Registry() *prometheus.Registry {
	return registry
}

// count records the application of an operator to a relation.
func count(op string, r Relation) {
	operations.WithLabelValues(op, r.Shape().Kind.String()).Inc()
}
