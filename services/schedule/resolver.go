package schedule

import "fitbook/models"

// Resolve applies admin overrides to a generated slot list. A slot with no
// stored override defaults to active: the availability window's presence
// alone makes it bookable. A stored override wins over the default and is
// reported via HasOverride.
func Resolve(generated []models.GeneratedSlot, overrides []models.SlotOverride) []models.ResolvedSlot {
	byKey := make(map[string]models.SlotOverride, len(overrides))
	for _, o := range overrides {
		byKey[o.StartTime+"-"+o.EndTime] = o
	}

	resolved := make([]models.ResolvedSlot, 0, len(generated))
	for _, slot := range generated {
		rs := models.ResolvedSlot{
			GeneratedSlot: slot,
			IsActive:      true,
		}
		if o, ok := byKey[slot.StartTime+"-"+slot.EndTime]; ok {
			rs.IsActive = o.IsActive
			rs.HasOverride = true
		}
		resolved = append(resolved, rs)
	}
	return resolved
}
