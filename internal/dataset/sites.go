package dataset

import (
	"time"

	"github.com/ANIKETSHETTY47/construction-command-center/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func milestone(name string, at time.Time, status domain.MilestoneStatus) domain.Milestone {
	return domain.Milestone{Name: name, Date: at, Status: status}
}

// BangladeshSites returns a fresh copy of the reference catalog: four sites
// in Bashundhara (bash-*) and four in Jolshiri (jol-*).
func BangladeshSites() []domain.ConstructionSite {
	return []domain.ConstructionSite{
		{
			ID:             "bash-tower-a",
			Name:           "Bashundhara Tower A",
			Location:       "Block D, Bashundhara R/A, Dhaka",
			Coordinates:    domain.Coordinates{Lat: 23.8193, Lng: 90.4526},
			Type:           domain.SiteResidential,
			Status:         domain.StatusStructure,
			Progress:       65,
			Workers:        487,
			Floors:         22,
			Units:          176,
			AreaSqft:       285000,
			StartDate:      day(2023, time.March, 12),
			CompletionDate: day(2025, time.December, 30),
			Budget:         1_250_000_000,
			Spent:          842_000_000,
			Developer:      "Bashundhara Group",
			Contractor:     "Concord Engineers",
			Details: domain.SiteDetails{
				Phase:        "Superstructure - Floor 15",
				SafetyScore:  92,
				Productivity: 87,
				Issues:       3,
				Materials:    domain.Materials{Cement: 4200, Steel: 380, Bricks: 920, Sand: 1600},
				Equipment:    domain.EquipmentCounts{Cranes: 3, Excavators: 2, Mixers: 5, Trucks: 8},
				Milestones: []domain.Milestone{
					milestone("Foundation", day(2023, time.August, 20), domain.MilestoneCompleted),
					milestone("Structure to Floor 10", day(2024, time.May, 15), domain.MilestoneCompleted),
					milestone("Structure to Floor 22", day(2025, time.February, 28), domain.MilestoneInProgress),
					milestone("MEP Rough-in", day(2025, time.June, 30), domain.MilestonePending),
					milestone("Handover", day(2025, time.December, 30), domain.MilestonePending),
				},
			},
		},
		{
			ID:             "bash-plaza",
			Name:           "Bashundhara Commercial Plaza",
			Location:       "Block A, Bashundhara R/A, Dhaka",
			Coordinates:    domain.Coordinates{Lat: 23.8151, Lng: 90.4255},
			Type:           domain.SiteCommercial,
			Status:         domain.StatusFinishing,
			Progress:       88,
			Workers:        326,
			Floors:         14,
			Units:          240,
			AreaSqft:       410000,
			StartDate:      day(2022, time.June, 1),
			CompletionDate: day(2025, time.April, 15),
			Budget:         1_850_000_000,
			Spent:          1_712_000_000,
			Developer:      "Bashundhara Group",
			Contractor:     "Shanta Holdings",
			Details: domain.SiteDetails{
				Phase:        "Interior finishing & facade",
				SafetyScore:  95,
				Productivity: 91,
				Issues:       2,
				Materials:    domain.Materials{Cement: 1800, Steel: 90, Bricks: 310, Sand: 700},
				Equipment:    domain.EquipmentCounts{Cranes: 1, Excavators: 0, Mixers: 3, Trucks: 5},
				Milestones: []domain.Milestone{
					milestone("Foundation", day(2022, time.November, 10), domain.MilestoneCompleted),
					milestone("Structure Topping Out", day(2023, time.December, 5), domain.MilestoneCompleted),
					milestone("Facade Installation", day(2024, time.September, 30), domain.MilestoneCompleted),
					milestone("Interior Fit-out", day(2025, time.February, 28), domain.MilestoneInProgress),
					milestone("Handover", day(2025, time.April, 15), domain.MilestonePending),
				},
			},
		},
		{
			ID:             "bash-residency",
			Name:           "Bashundhara Lake Residency",
			Location:       "Block G, Bashundhara R/A, Dhaka",
			Coordinates:    domain.Coordinates{Lat: 23.8237, Lng: 90.4389},
			Type:           domain.SiteResidential,
			Status:         domain.StatusStructure,
			Progress:       42,
			Workers:        412,
			Floors:         18,
			Units:          144,
			AreaSqft:       236000,
			StartDate:      day(2023, time.October, 2),
			CompletionDate: day(2026, time.June, 30),
			Budget:         980_000_000,
			Spent:          468_000_000,
			Developer:      "Bashundhara Group",
			Contractor:     "Navana Construction",
			Details: domain.SiteDetails{
				Phase:        "Superstructure - Floor 8",
				SafetyScore:  86,
				Productivity: 78,
				Issues:       6,
				Materials:    domain.Materials{Cement: 3900, Steel: 340, Bricks: 860, Sand: 1450},
				Equipment:    domain.EquipmentCounts{Cranes: 2, Excavators: 2, Mixers: 4, Trucks: 6},
				Milestones: []domain.Milestone{
					milestone("Piling", day(2024, time.January, 25), domain.MilestoneCompleted),
					milestone("Foundation", day(2024, time.May, 30), domain.MilestoneCompleted),
					milestone("Structure to Floor 9", day(2025, time.March, 31), domain.MilestoneInProgress),
					milestone("Structure Topping Out", day(2025, time.November, 30), domain.MilestonePending),
				},
			},
		},
		{
			ID:             "bash-heights",
			Name:           "Bashundhara Heights",
			Location:       "Block K, Bashundhara R/A, Dhaka",
			Coordinates:    domain.Coordinates{Lat: 23.8289, Lng: 90.4471},
			Type:           domain.SiteMixed,
			Status:         domain.StatusFoundation,
			Progress:       15,
			Workers:        198,
			Floors:         28,
			Units:          210,
			AreaSqft:       520000,
			StartDate:      day(2024, time.July, 14),
			CompletionDate: day(2027, time.December, 31),
			Budget:         2_400_000_000,
			Spent:          402_000_000,
			Developer:      "Bashundhara Group",
			Contractor:     "Concord Engineers",
			Details: domain.SiteDetails{
				Phase:        "Pile cap & raft",
				SafetyScore:  89,
				Productivity: 82,
				Issues:       4,
				Materials:    domain.Materials{Cement: 5200, Steel: 460, Bricks: 120, Sand: 2100},
				Equipment:    domain.EquipmentCounts{Cranes: 1, Excavators: 4, Mixers: 4, Trucks: 9},
				Milestones: []domain.Milestone{
					milestone("Site Mobilisation", day(2024, time.August, 1), domain.MilestoneCompleted),
					milestone("Piling", day(2025, time.January, 20), domain.MilestoneInProgress),
					milestone("Raft Foundation", day(2025, time.May, 31), domain.MilestonePending),
				},
			},
		},
		{
			ID:             "jol-greens",
			Name:           "Jolshiri Greens",
			Location:       "Sector 4, Jolshiri Abashon, Dhaka",
			Coordinates:    domain.Coordinates{Lat: 23.7925, Lng: 90.5097},
			Type:           domain.SiteResidential,
			Status:         domain.StatusStructure,
			Progress:       73,
			Workers:        365,
			Floors:         16,
			Units:          128,
			AreaSqft:       198000,
			StartDate:      day(2023, time.January, 9),
			CompletionDate: day(2025, time.September, 30),
			Budget:         860_000_000,
			Spent:          692_000_000,
			Developer:      "Jolshiri Abashon Authority",
			Contractor:     "Building Technology & Ideas",
			Details: domain.SiteDetails{
				Phase:        "Roof slab & MEP",
				SafetyScore:  90,
				Productivity: 84,
				Issues:       3,
				Materials:    domain.Materials{Cement: 2600, Steel: 210, Bricks: 640, Sand: 980},
				Equipment:    domain.EquipmentCounts{Cranes: 2, Excavators: 1, Mixers: 3, Trucks: 5},
				Milestones: []domain.Milestone{
					milestone("Foundation", day(2023, time.June, 15), domain.MilestoneCompleted),
					milestone("Structure Topping Out", day(2024, time.December, 20), domain.MilestoneInProgress),
					milestone("Finishing", day(2025, time.July, 31), domain.MilestonePending),
				},
			},
		},
		{
			ID:             "jol-central",
			Name:           "Jolshiri Central Tower",
			Location:       "Sector 12, Jolshiri Abashon, Dhaka",
			Coordinates:    domain.Coordinates{Lat: 23.7861, Lng: 90.5164},
			Type:           domain.SiteCommercial,
			Status:         domain.StatusFoundation,
			Progress:       30,
			Workers:        280,
			Floors:         20,
			Units:          95,
			AreaSqft:       330000,
			StartDate:      day(2024, time.February, 18),
			CompletionDate: day(2026, time.December, 31),
			Budget:         1_420_000_000,
			Spent:          518_000_000,
			Developer:      "Jolshiri Abashon Authority",
			Contractor:     "Shanta Holdings",
			Details: domain.SiteDetails{
				Phase:        "Basement retaining walls",
				SafetyScore:  84,
				Productivity: 74,
				Issues:       7,
				Materials:    domain.Materials{Cement: 4700, Steel: 410, Bricks: 300, Sand: 1850},
				Equipment:    domain.EquipmentCounts{Cranes: 2, Excavators: 3, Mixers: 5, Trucks: 10},
				Milestones: []domain.Milestone{
					milestone("Excavation", day(2024, time.June, 30), domain.MilestoneCompleted),
					milestone("Basement Structure", day(2025, time.March, 15), domain.MilestoneInProgress),
					milestone("Podium", day(2025, time.October, 31), domain.MilestonePending),
				},
			},
		},
		{
			ID:             "jol-lakeview",
			Name:           "Jolshiri Lakeview Apartments",
			Location:       "Sector 7, Jolshiri Abashon, Dhaka",
			Coordinates:    domain.Coordinates{Lat: 23.7982, Lng: 90.5031},
			Type:           domain.SiteResidential,
			Status:         domain.StatusFinishing,
			Progress:       95,
			Workers:        142,
			Floors:         12,
			Units:          96,
			AreaSqft:       142000,
			StartDate:      day(2022, time.April, 4),
			CompletionDate: day(2025, time.January, 31),
			Budget:         640_000_000,
			Spent:          671_000_000,
			Developer:      "Jolshiri Abashon Authority",
			Contractor:     "Navana Construction",
			Details: domain.SiteDetails{
				Phase:        "Snagging & handover",
				SafetyScore:  97,
				Productivity: 93,
				Issues:       1,
				Materials:    domain.Materials{Cement: 400, Steel: 20, Bricks: 60, Sand: 150},
				Equipment:    domain.EquipmentCounts{Cranes: 0, Excavators: 0, Mixers: 1, Trucks: 2},
				Milestones: []domain.Milestone{
					milestone("Structure Topping Out", day(2023, time.September, 30), domain.MilestoneCompleted),
					milestone("Finishing", day(2024, time.November, 30), domain.MilestoneCompleted),
					milestone("Handover", day(2025, time.January, 31), domain.MilestoneInProgress),
				},
			},
		},
		{
			ID:             "jol-commerce",
			Name:           "Jolshiri Commerce Hub",
			Location:       "Sector 15, Jolshiri Abashon, Dhaka",
			Coordinates:    domain.Coordinates{Lat: 23.7819, Lng: 90.5228},
			Type:           domain.SiteMixed,
			Status:         domain.StatusPlanning,
			Progress:       5,
			Workers:        60,
			Floors:         25,
			Units:          180,
			AreaSqft:       475000,
			StartDate:      day(2025, time.January, 6),
			CompletionDate: day(2028, time.June, 30),
			Budget:         2_050_000_000,
			Spent:          96_000_000,
			Developer:      "Jolshiri Abashon Authority",
			Contractor:     "Building Technology & Ideas",
			Details: domain.SiteDetails{
				Phase:        "Soil investigation & permits",
				SafetyScore:  94,
				Productivity: 80,
				Issues:       2,
				Materials:    domain.Materials{Cement: 300, Steel: 15, Bricks: 0, Sand: 200},
				Equipment:    domain.EquipmentCounts{Cranes: 0, Excavators: 2, Mixers: 0, Trucks: 3},
				Milestones: []domain.Milestone{
					milestone("Design Approval", day(2025, time.March, 31), domain.MilestoneInProgress),
					milestone("Site Mobilisation", day(2025, time.June, 30), domain.MilestonePending),
				},
			},
		},
	}
}
