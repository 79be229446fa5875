package plan

import "slices"

// Plan describes a subscription plan and its resource/feature constraints.
type Plan struct {
	ID       ID
	Name     string
	Limits   map[Resource]int64 // -1 represents unlimited
	Features []Feature
}

// Limit returns the plan's limit for res.
// Resources the plan does not list are treated as unlimited.
func (p Plan) Limit(res Resource) int64 {
	limit, ok := p.Limits[res]
	if !ok {
		return Unlimited
	}
	return limit
}

// Has reports whether the feature is enabled for the plan.
func (p Plan) Has(f Feature) bool {
	return slices.Contains(p.Features, f)
}

// Within reports whether one more item fits under limit when count items already exist.
func Within(count, limit int64) bool {
	return limit == Unlimited || count < limit
}

// Surplus returns how many of count items exceed limit. Never negative.
func Surplus(count, limit int64) int64 {
	if limit == Unlimited || count <= limit {
		return 0
	}
	return count - limit
}
