package schedule

import (
	"context"

	"fitbook/models"
	"fitbook/utils"
)

// ToggleSlot upserts one admin override for a concrete date. The slot tuple
// is validated but not required to exist in the generated list: an override
// for a slot the window no longer produces is inert until the window changes
// back.
func (s *DefaultScheduleService) ToggleSlot(ctx context.Context, trainerID string, req models.ToggleOverrideRequest) error {
	if err := validateSlotTuple(req.Date, req.StartTime, req.EndTime, req.Duration); err != nil {
		return err
	}

	err := s.Availability.UpsertOverride(ctx, models.SlotOverride{
		TrainerID: trainerID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Duration:  req.Duration,
		IsActive:  req.IsActive,
	})
	if err != nil {
		return err
	}
	s.InvalidateSlotCache(ctx, trainerID, req.Date)
	return nil
}

// SetAllForDate writes one override per generated slot with the target active
// state, skipping slots currently held by a confirmed booking of either kind,
// and prunes stored overrides absent from the new set. Calling it twice with
// the same arguments converges on the same override set.
func (s *DefaultScheduleService) SetAllForDate(ctx context.Context, trainerID string, req models.SetAllOverridesRequest) error {
	if !utils.ValidDate(req.Date) {
		return NewValidationError("invalid date %q: expected YYYY-MM-DD", req.Date)
	}
	if !ValidDuration(req.Duration) {
		return NewValidationError("unsupported duration %d: expected 30 or 60", req.Duration)
	}

	generated, err := s.generateForDate(ctx, trainerID, req.Date, func(ranges []models.TimeRange) []models.GeneratedSlot {
		return Generate(ranges, req.Duration)
	})
	if err != nil {
		return err
	}

	held, err := s.heldRanges(ctx, trainerID, req.Date)
	if err != nil {
		return err
	}

	overrides := make([]models.SlotOverride, 0, len(generated))
	for _, slot := range generated {
		startMin, err := utils.ParseClock(slot.StartTime)
		if err != nil {
			continue
		}
		endMin, err := utils.ParseClock(slot.EndTime)
		if err != nil {
			continue
		}
		if held.blocks(startMin, endMin, slot.StartTime, slot.EndTime) {
			continue
		}
		overrides = append(overrides, models.SlotOverride{
			TrainerID: trainerID,
			Date:      req.Date,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Duration:  req.Duration,
			IsActive:  req.IsActive,
		})
	}

	if err := s.Availability.ReplaceOverridesForDate(ctx, trainerID, req.Date, req.Duration, overrides); err != nil {
		return err
	}
	s.InvalidateSlotCache(ctx, trainerID, req.Date)
	return nil
}

// heldSlots indexes the confirmed reservations of one trainer/date so the
// bulk override write can exclude booked slots without a query per slot.
type heldSlots struct {
	weekly  []models.SlotOccurrence
	monthly map[string]bool // exact "start-end" tuples held by monthly bookings
}

// blocks reports whether the slot overlaps a weekly occurrence or matches a
// held monthly tuple.
func (h heldSlots) blocks(startMin, endMin int, startTime, endTime string) bool {
	for _, occ := range h.weekly {
		if Overlaps(startMin, endMin, occ.StartMin, occ.EndMin) {
			return true
		}
	}
	return h.monthly[startTime+"-"+endTime]
}

func (s *DefaultScheduleService) heldRanges(ctx context.Context, trainerID, date string) (heldSlots, error) {
	held := heldSlots{monthly: make(map[string]bool)}

	bookings, err := s.Bookings.GetConfirmedOnDate(ctx, trainerID, date)
	if err != nil {
		return held, err
	}
	for _, b := range bookings {
		for _, occ := range b.Slots {
			if occ.Date == date {
				held.weekly = append(held.weekly, occ)
			}
		}
	}

	monthlies, err := s.Monthly.GetConfirmedOnDate(ctx, trainerID, date)
	if err != nil {
		return held, err
	}
	for _, m := range monthlies {
		for _, occ := range m.Slots {
			if occ.Date == date {
				held.monthly[occ.StartTime+"-"+occ.EndTime] = true
			}
		}
	}
	return held, nil
}

func validateSlotTuple(date, startTime, endTime string, duration int) error {
	if !utils.ValidDate(date) {
		return NewValidationError("invalid date %q: expected YYYY-MM-DD", date)
	}
	if !ValidDuration(duration) {
		return NewValidationError("unsupported duration %d: expected 30 or 60", duration)
	}
	startMin, err := utils.ParseClock(startTime)
	if err != nil {
		return NewValidationError("%v", err)
	}
	endMin, err := utils.ParseClock(endTime)
	if err != nil {
		return NewValidationError("%v", err)
	}
	if endMin-startMin != duration {
		return NewValidationError("slot %s-%s does not match duration %d", startTime, endTime, duration)
	}
	return nil
}
