package models

// GeneratedSlot is one fixed-duration bookable slot expanded from an
// availability window. Start/End are 24-hour "HH:MM"; the display fields are
// 12-hour formatted for presentation.
type GeneratedSlot struct {
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	DisplayStart string `json:"displayStart"`
	DisplayEnd   string `json:"displayEnd"`
	Duration     int    `json:"duration"`
}

// ResolvedSlot is a generated slot with the admin override state applied.
type ResolvedSlot struct {
	GeneratedSlot
	IsActive    bool `json:"isActive"`
	HasOverride bool `json:"hasOverride"`
}

// SlotCapacity reports shared-slot occupancy for a monthly slot tuple.
type SlotCapacity struct {
	Count       int      `json:"count"`
	IsAvailable bool     `json:"isAvailable"`
	Occupants   []string `json:"occupants,omitempty"` // monthly booking IDs holding the tuple
}

// SetAvailabilityRequest replaces a trainer's availability windows wholesale.
type SetAvailabilityRequest struct {
	Windows []AvailabilityWindow `json:"windows" binding:"required"`
}

// ToggleOverrideRequest flips one generated slot active/inactive on a date.
type ToggleOverrideRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Duration  int    `json:"duration" binding:"required"`
	IsActive  bool   `json:"isActive"`
}

// SetAllOverridesRequest applies one active state to every slot of a date.
type SetAllOverridesRequest struct {
	Date     string `json:"date" binding:"required"`
	Duration int    `json:"duration" binding:"required"`
	IsActive bool   `json:"isActive"`
}
