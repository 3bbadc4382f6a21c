package dataset

import (
	"math"
	"testing"

	"github.com/ANIKETSHETTY47/construction-command-center/internal/domain"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/sim"
)

func TestStatisticsMatchesCatalog(t *testing.T) {
	sites := BangladeshSites()
	var workers int
	var progress float64
	for _, s := range sites {
		workers += s.Workers
		progress += s.Progress
	}

	stats := Default().Statistics()
	if stats.TotalWorkers != workers {
		t.Fatalf("TotalWorkers=%d want %d", stats.TotalWorkers, workers)
	}
	if want := int(math.Round(progress / float64(len(sites)))); stats.AvgProgress != want {
		t.Fatalf("AvgProgress=%d want %d", stats.AvgProgress, want)
	}
	if stats.TotalSites != len(sites) {
		t.Fatalf("TotalSites=%d want %d", stats.TotalSites, len(sites))
	}
	var counted int
	for _, n := range stats.StatusCounts {
		counted += n
	}
	if counted != len(sites) {
		t.Fatalf("status counts sum to %d want %d", counted, len(sites))
	}
}

func TestStatisticsTwoSites(t *testing.T) {
	c := Default()
	a, ok := c.Site("bash-tower-a")
	if !ok {
		t.Fatal("bash-tower-a missing")
	}
	b, ok := c.Site("bash-plaza")
	if !ok {
		t.Fatal("bash-plaza missing")
	}

	stats := Statistics([]domain.ConstructionSite{a, b})
	if stats.TotalWorkers != 813 {
		t.Fatalf("TotalWorkers=%d want 813", stats.TotalWorkers)
	}
	if stats.AvgProgress != 77 {
		t.Fatalf("AvgProgress=%d want 77", stats.AvgProgress)
	}
	if stats.StatusCounts[domain.StatusStructure] != 1 || stats.StatusCounts[domain.StatusFinishing] != 1 {
		t.Fatalf("unexpected status counts %v", stats.StatusCounts)
	}
}

func TestStatisticsEmpty(t *testing.T) {
	stats := Statistics(nil)
	if stats.TotalSites != 0 || stats.TotalWorkers != 0 || stats.AvgProgress != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
	if len(stats.StatusCounts) != len(domain.SiteStatuses) {
		t.Fatalf("expected every status key, got %v", stats.StatusCounts)
	}
}

func TestStatisticsOverBudget(t *testing.T) {
	stats := Default().Statistics()
	// jol-lakeview spent beyond its budget
	if stats.OverBudget != 1 {
		t.Fatalf("OverBudget=%d want 1", stats.OverBudget)
	}
}

func TestSitesByArea(t *testing.T) {
	c := Default()
	tests := []struct {
		area   string
		want   int
		prefix string
	}{
		{area: "bashundhara", want: 4, prefix: "bash-"},
		{area: "Jolshiri", want: 4, prefix: "jol-"},
		{area: "gulshan", want: 0},
		{area: "", want: 0},
	}
	for _, tc := range tests {
		t.Run(tc.area, func(t *testing.T) {
			got := c.SitesByArea(tc.area)
			if got == nil {
				t.Fatal("SitesByArea returned nil")
			}
			if len(got) != tc.want {
				t.Fatalf("SitesByArea(%q) len=%d want %d", tc.area, len(got), tc.want)
			}
			for _, s := range got {
				if AreaOf(s.ID) == "" || s.ID[:len(tc.prefix)] != tc.prefix {
					t.Fatalf("site %s not in area %s", s.ID, tc.area)
				}
			}
		})
	}
}

func TestRealtimeDataForSite(t *testing.T) {
	c := Default()
	r := sim.NewRand(1)
	for i := 0; i < 1000; i++ {
		s, ok := c.RealtimeDataForSite(r, "bash-tower-a")
		if !ok {
			t.Fatal("bash-tower-a not found")
		}
		if s.ID != "bash-tower-a" {
			t.Fatalf("id=%q", s.ID)
		}
		if d := math.Abs(float64(s.Workers - 487)); d > 487*0.02 {
			t.Fatalf("workers %d drifted %v beyond 2%%", s.Workers, d)
		}
		if s.Details.Productivity < 0 || s.Details.Productivity > 100 {
			t.Fatalf("productivity out of range: %v", s.Details.Productivity)
		}
	}
}

func TestRealtimeDataForSiteStaysWithinBound(t *testing.T) {
	c := Default()
	base, _ := c.Site("bash-tower-a")
	for _, seed := range []int64{1, 7, 42} {
		r := sim.NewRand(seed)
		for i := 0; i < 10000; i++ {
			s, _ := c.RealtimeDataForSite(r, base.ID)
			if d := math.Abs(float64(s.Workers - base.Workers)); d > float64(base.Workers)*RealtimeVariance/100 {
				t.Fatalf("seed %d draw %d: workers %d drifted %v", seed, i, s.Workers, d)
			}
			limit := base.Details.Productivity*RealtimeVariance/100 + 1e-9
			if d := math.Abs(s.Details.Productivity - base.Details.Productivity); d > limit {
				t.Fatalf("seed %d draw %d: productivity %v drifted %v", seed, i, s.Details.Productivity, d)
			}
		}
	}
}

func TestRealtimeDataForSiteUnknown(t *testing.T) {
	if _, ok := Default().RealtimeDataForSite(sim.NewRand(1), "nope"); ok {
		t.Fatal("expected not found")
	}
}

func TestCatalogIsNotMutatedThroughCopies(t *testing.T) {
	c := Default()
	s, _ := c.Site("bash-plaza")
	s.Workers = 0
	s.Details.Milestones[0].Name = "changed"

	again, _ := c.Site("bash-plaza")
	if again.Workers != 326 {
		t.Fatalf("catalog workers mutated: %d", again.Workers)
	}
	if again.Details.Milestones[0].Name == "changed" {
		t.Fatal("catalog milestones mutated")
	}
}

func TestCatalogRangeInvariants(t *testing.T) {
	for _, s := range BangladeshSites() {
		if s.Progress < 0 || s.Progress > 100 {
			t.Fatalf("%s progress %v", s.ID, s.Progress)
		}
		if s.Details.SafetyScore < 0 || s.Details.SafetyScore > 100 {
			t.Fatalf("%s safety %v", s.ID, s.Details.SafetyScore)
		}
		if s.Details.Productivity < 0 || s.Details.Productivity > 100 {
			t.Fatalf("%s productivity %v", s.ID, s.Details.Productivity)
		}
		if AreaOf(s.ID) == "" {
			t.Fatalf("%s belongs to no area", s.ID)
		}
	}
}
