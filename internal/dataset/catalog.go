// Package dataset is the fixed catalog of construction sites every simulated
// metric is derived from, plus pure aggregation queries over it.
package dataset

import (
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/ANIKETSHETTY47/construction-command-center/internal/domain"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/sim"
)

// RealtimeVariance is the ± jitter, in percent, applied by RealtimeDataForSite.
const RealtimeVariance = 2.0

var ErrSiteNotFound = errors.New("site not found")

// areaPrefixes partitions site ids into the two geographic clusters.
var areaPrefixes = map[string]string{
	"bashundhara": "bash-",
	"jolshiri":    "jol-",
}

// Catalog is read-only after construction.
type Catalog struct {
	sites []domain.ConstructionSite
	index map[string]int
}

func NewCatalog(sites []domain.ConstructionSite) *Catalog {
	c := &Catalog{
		sites: make([]domain.ConstructionSite, len(sites)),
		index: make(map[string]int, len(sites)),
	}
	for i, s := range sites {
		c.sites[i] = s.Clone()
		c.index[s.ID] = i
	}
	return c
}

// Default returns a catalog over BangladeshSites.
func Default() *Catalog { return NewCatalog(BangladeshSites()) }

func (c *Catalog) Len() int { return len(c.sites) }

// Sites returns a copy of every record in catalog order.
func (c *Catalog) Sites() []domain.ConstructionSite {
	return cloneAll(c.sites)
}

// Site looks up one record by exact id.
func (c *Catalog) Site(id string) (domain.ConstructionSite, bool) {
	i, ok := c.index[id]
	if !ok {
		return domain.ConstructionSite{}, false
	}
	return c.sites[i].Clone(), true
}

// Areas lists the cluster names in sorted order.
func Areas() []string {
	out := make([]string, 0, len(areaPrefixes))
	for a := range areaPrefixes {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// AreaOf returns the cluster a site id belongs to, or "" if none matches.
func AreaOf(id string) string {
	for area, prefix := range areaPrefixes {
		if strings.HasPrefix(id, prefix) {
			return area
		}
	}
	return ""
}

// SitesByArea filters by the id prefix of the named cluster. Unknown areas
// yield an empty, non-nil slice.
func (c *Catalog) SitesByArea(area string) []domain.ConstructionSite {
	prefix, ok := areaPrefixes[strings.ToLower(strings.TrimSpace(area))]
	out := []domain.ConstructionSite{}
	if !ok {
		return out
	}
	for _, s := range c.sites {
		if strings.HasPrefix(s.ID, prefix) {
			out = append(out, s.Clone())
		}
	}
	return out
}

// Statistics reduces the whole catalog.
func (c *Catalog) Statistics() domain.SiteStatistics {
	return Statistics(c.sites)
}

// RealtimeDataForSite returns a copy of the site with workers and
// productivity jittered by ±RealtimeVariance percent.
func (c *Catalog) RealtimeDataForSite(r sim.Rand, id string) (domain.ConstructionSite, bool) {
	s, ok := c.Site(id)
	if !ok {
		return domain.ConstructionSite{}, false
	}
	s.Workers = int(jitter(r, float64(s.Workers), 1))
	s.Details.Productivity = sim.Round1(sim.ClampPercent(jitter(r, s.Details.Productivity, 0.1)))
	s.Details.SafetyScore = sim.ClampPercent(s.Details.SafetyScore)
	s.Progress = sim.ClampPercent(s.Progress)
	return s, true
}

// jitter varies base by ±RealtimeVariance percent and snaps the result to a
// multiple of step away from base, never past the variance bound.
func jitter(r sim.Rand, base, step float64) float64 {
	limit := math.Floor(math.Abs(base)*RealtimeVariance/100/step) * step
	delta := math.Round((sim.Vary(r, base, RealtimeVariance)-base)/step) * step
	delta = sim.Clamp(delta, -limit, limit)
	return base + delta
}

// Statistics is a pure reduction over sites. Means are rounded to the
// nearest integer; an empty input returns zeroed counters.
func Statistics(sites []domain.ConstructionSite) domain.SiteStatistics {
	stats := domain.SiteStatistics{
		TotalSites:   len(sites),
		StatusCounts: make(map[domain.SiteStatus]int, len(domain.SiteStatuses)),
	}
	for _, st := range domain.SiteStatuses {
		stats.StatusCounts[st] = 0
	}
	if len(sites) == 0 {
		return stats
	}

	var progress, safety, productivity float64
	for _, s := range sites {
		stats.TotalWorkers += s.Workers
		stats.StatusCounts[s.Status]++
		stats.TotalBudget += s.Budget
		stats.TotalSpent += s.Spent
		if s.Spent > s.Budget {
			stats.OverBudget++
		}
		progress += s.Progress
		safety += s.Details.SafetyScore
		productivity += s.Details.Productivity
	}
	n := float64(len(sites))
	stats.AvgProgress = int(math.Round(progress / n))
	stats.AvgSafety = int(math.Round(safety / n))
	stats.AvgProductivity = int(math.Round(productivity / n))
	return stats
}

func cloneAll(in []domain.ConstructionSite) []domain.ConstructionSite {
	out := make([]domain.ConstructionSite, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}
