package audience

import (
	"math"
	"strings"
	"time"

	"github.com/donorflow/server/model"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// basePoolSize is the assumed size of the full donor pool the heuristic
// narrows from.
const basePoolSize = 5000

type reductionKey struct {
	filterType string
	value      string
}

// reductions maps (filter type, value) to a multiplicative narrowing
// factor. Pairs not in the table are inert until a rule is added.
var reductions = map[reductionKey]float64{
	{"segment", "major-donors"}:   0.15,
	{"segment", "new-donors"}:     0.25,
	{"segment", "lapsed-donors"}:  0.30,
	{"giving_amount", "1000+"}:    0.20,
	{"giving_amount", "500+"}:     0.35,
	{"time_period", "this_cycle"}: 0.60,
}

// Estimator produces heuristic audience-size estimates for a flow's filter
// list. Filters combine with AND semantics: every recognized filter narrows
// the pool. Estimates are a display approximation, not a donor query.
type Estimator struct {
	cache   *gocache.Cache
	printer *message.Printer
}

func NewEstimator() *Estimator {
	return &Estimator{
		cache:   gocache.New(5*time.Minute, 10*time.Minute),
		printer: message.NewPrinter(language.English),
	}
}

// Count returns the estimated number of matching donors. An empty filter
// list selects nobody.
func (e *Estimator) Count(filters []model.AudienceFilter) int {
	if len(filters) == 0 {
		return 0
	}
	count := basePoolSize
	for _, filter := range filters {
		factor, ok := reductions[reductionKey{filter.Type, filter.Value}]
		if !ok {
			continue
		}
		count = int(math.Floor(float64(count) * factor))
	}
	return count
}

// Estimate returns the count formatted with thousands separators, suitable
// for display. Results are memoized per filter list.
func (e *Estimator) Estimate(filters []model.AudienceFilter) string {
	key := cacheKey(filters)
	if cached, ok := e.cache.Get(key); ok {
		return cached.(string)
	}
	result := e.printer.Sprintf("%d", e.Count(filters))
	e.cache.Set(key, result, gocache.DefaultExpiration)
	return result
}

func cacheKey(filters []model.AudienceFilter) string {
	parts := make([]string, 0, len(filters))
	for _, filter := range filters {
		parts = append(parts, filter.Type+"="+filter.Value)
	}
	return strings.Join(parts, "|")
}
