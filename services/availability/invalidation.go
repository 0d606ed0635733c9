// File: services/availability/invalidation.go
package availability

import (
	"context"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	linkRepo "hireslot/database/repository/bookinglink"
	"hireslot/services/tasks"
)

// InvalidationHorizonMonths is how far ahead a template or link edit clears
// derived availability.
const InvalidationHorizonMonths = 6

// Invalidator reacts to template/link mutations from the CRUD layer by
// clearing the affected month entries and queueing background re-warms.
// Every failure here is logged and swallowed: the cache is advisory and the
// mutation that triggered the invalidation must never fail because of it.
type Invalidator struct {
	Links  linkRepo.BookingLinkRepository
	Cache  *MonthCache
	Queue  *asynq.Client // optional; nil disables re-warm
	Logger *zap.Logger
}

// TemplateChanged handles an edit to a template's weeklySchedule,
// blackoutDays, or bookingCutoffDate: every booking link referencing the
// template loses its next six months of cached availability.
func (iv *Invalidator) TemplateChanged(ctx context.Context, templateID string) {
	links, err := iv.Links.FindByTemplateID(ctx, templateID)
	if err != nil {
		iv.Logger.Warn("invalidation: failed to list links for template",
			zap.String("templateId", templateID), zap.Error(err))
		return
	}
	for _, link := range links {
		iv.invalidateLink(ctx, link.ID)
	}
}

// LinkChanged handles an edit to a cache-affecting booking link field
// (templateId, requireAdvanceBooking, advanceHours, isActive). Name-only
// edits must not call it.
func (iv *Invalidator) LinkChanged(ctx context.Context, linkID string) {
	iv.invalidateLink(ctx, linkID)
}

// LinkDeleting clears a link's cache entries before the link row is removed,
// so no concurrent recompute races with the deletion.
func (iv *Invalidator) LinkDeleting(ctx context.Context, linkID string) {
	months := NextMonths(iv.Cache.Engine.now(), InvalidationHorizonMonths)
	if err := iv.Cache.Invalidate(ctx, linkID, months); err != nil {
		iv.Logger.Warn("invalidation failed", zap.String("linkId", linkID), zap.Error(err))
	}
}

func (iv *Invalidator) invalidateLink(ctx context.Context, linkID string) {
	months := NextMonths(iv.Cache.Engine.now(), InvalidationHorizonMonths)
	if err := iv.Cache.Invalidate(ctx, linkID, months); err != nil {
		iv.Logger.Warn("invalidation failed", zap.String("linkId", linkID), zap.Error(err))
		return
	}
	iv.enqueueRewarm(linkID, months)
}

func (iv *Invalidator) enqueueRewarm(linkID string, months []MonthKey) {
	if iv.Queue == nil {
		return
	}
	for _, m := range months {
		task, err := tasks.NewAvailabilityRefreshTask(tasks.RefreshPayload{
			BookingLinkID: linkID,
			Year:          m.Year,
			Month:         m.Month,
		})
		if err != nil {
			iv.Logger.Warn("failed to build refresh task", zap.String("linkId", linkID), zap.Error(err))
			continue
		}
		if _, err := iv.Queue.Enqueue(task); err != nil {
			iv.Logger.Warn("failed to enqueue refresh task",
				zap.String("linkId", linkID), zap.Int("month", m.Month), zap.Error(err))
		}
	}
}
