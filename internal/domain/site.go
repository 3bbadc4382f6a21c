package domain

import "time"

type SiteType string

const (
	SiteResidential SiteType = "residential"
	SiteCommercial  SiteType = "commercial"
	SiteMixed       SiteType = "mixed"
)

type SiteStatus string

const (
	StatusPlanning   SiteStatus = "planning"
	StatusFoundation SiteStatus = "foundation"
	StatusStructure  SiteStatus = "structure"
	StatusFinishing  SiteStatus = "finishing"
	StatusCompleted  SiteStatus = "completed"
)

// SiteStatuses lists every status in lifecycle order.
var SiteStatuses = []SiteStatus{StatusPlanning, StatusFoundation, StatusStructure, StatusFinishing, StatusCompleted}

type MilestoneStatus string

const (
	MilestoneCompleted  MilestoneStatus = "completed"
	MilestoneInProgress MilestoneStatus = "in_progress"
	MilestonePending    MilestoneStatus = "pending"
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Milestone struct {
	Name   string          `json:"name"`
	Date   time.Time       `json:"date"`
	Status MilestoneStatus `json:"status"`
}

// Materials are on-site quantities: cement in bags, steel in tonnes,
// bricks in thousands, sand in cubic metres.
type Materials struct {
	Cement int `json:"cement"`
	Steel  int `json:"steel"`
	Bricks int `json:"bricks"`
	Sand   int `json:"sand"`
}

type EquipmentCounts struct {
	Cranes     int `json:"cranes"`
	Excavators int `json:"excavators"`
	Mixers     int `json:"mixers"`
	Trucks     int `json:"trucks"`
}

type SiteDetails struct {
	Phase        string          `json:"phase"`
	SafetyScore  float64         `json:"safety_score"`
	Productivity float64         `json:"productivity"`
	Issues       int             `json:"issues"`
	Materials    Materials       `json:"materials"`
	Equipment    EquipmentCounts `json:"equipment"`
	Milestones   []Milestone     `json:"milestones"`
}

// ConstructionSite is one record of the static catalog. Budget and Spent are
// in BDT; Spent may exceed Budget.
type ConstructionSite struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Location       string      `json:"location"`
	Coordinates    Coordinates `json:"coordinates"`
	Type           SiteType    `json:"type"`
	Status         SiteStatus  `json:"status"`
	Progress       float64     `json:"progress"`
	Workers        int         `json:"workers"`
	Floors         int         `json:"floors"`
	Units          int         `json:"units"`
	AreaSqft       int         `json:"area_sqft"`
	StartDate      time.Time   `json:"start_date"`
	CompletionDate time.Time   `json:"completion_date"`
	Budget         float64     `json:"budget"`
	Spent          float64     `json:"spent"`
	Developer      string      `json:"developer"`
	Contractor     string      `json:"contractor"`
	Details        SiteDetails `json:"details"`
}

// Clone returns a deep copy so callers can never reach catalog storage.
func (s ConstructionSite) Clone() ConstructionSite {
	out := s
	if s.Details.Milestones != nil {
		out.Details.Milestones = append([]Milestone(nil), s.Details.Milestones...)
	}
	return out
}

type SiteStatistics struct {
	TotalSites      int                `json:"total_sites"`
	TotalWorkers    int                `json:"total_workers"`
	StatusCounts    map[SiteStatus]int `json:"status_counts"`
	AvgProgress     int                `json:"avg_progress"`
	AvgSafety       int                `json:"avg_safety"`
	AvgProductivity int                `json:"avg_productivity"`
	TotalBudget     float64            `json:"total_budget"`
	TotalSpent      float64            `json:"total_spent"`
	OverBudget      int                `json:"over_budget"`
}
