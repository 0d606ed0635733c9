// File: services/availability/cache.go
package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"hireslot/models"
	"hireslot/utils"
)

const (
	// staleAfter bounds how old a cached month may be before a read
	// recomputes it. Reads between an event and the next refresh may be up
	// to this much behind ground truth; that trade-off is the contract.
	staleAfter = time.Hour

	// cacheTTL lets entries for months nobody reads anymore expire on
	// their own.
	cacheTTL = 6 * 30 * 24 * time.Hour
)

// MonthKey addresses one cached month for one booking link.
type MonthKey struct {
	Year  int
	Month int
}

// NextMonths returns n consecutive months starting with from's month.
func NextMonths(from time.Time, n int) []MonthKey {
	keys := make([]MonthKey, 0, n)
	y, m := from.Year(), int(from.Month())
	for i := 0; i < n; i++ {
		keys = append(keys, MonthKey{Year: y, Month: m})
		m++
		if m > 12 {
			m = 1
			y++
		}
	}
	return keys
}

// CacheStore is the persistence boundary for month entries. The production
// implementation is Redis; tests substitute an in-memory map.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type redisCacheStore struct {
	client *redis.Client
}

// NewRedisCacheStore wraps a Redis client as a CacheStore.
func NewRedisCacheStore(client *redis.Client) CacheStore {
	return &redisCacheStore{client: client}
}

func (s *redisCacheStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *redisCacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *redisCacheStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// MonthCache is the derived, month-granularity materialization of the
// engine's output. It is advisory: every maintenance failure is logged and
// swallowed so cache trouble never fails the operation that triggered it.
type MonthCache struct {
	Store  CacheStore
	Engine *Engine
	Logger *zap.Logger
}

func monthCacheKey(linkID string, year, month int) string {
	return fmt.Sprintf("avail:%s:%04d-%02d", linkID, year, month)
}

// GetMonth returns the cached entry for (link, year, month), recomputing and
// persisting it when absent or older than the staleness bound.
func (mc *MonthCache) GetMonth(ctx context.Context, linkID string, year, month int) (*models.MonthAvailability, error) {
	if month < 1 || month > 12 {
		return nil, utils.NewValidationError("month %d out of range", month)
	}
	if year < 2000 || year > 2200 {
		return nil, utils.NewValidationError("year %d out of range", year)
	}
	if _, err := utils.ParseKind(linkID, utils.KindBookingLink); err != nil {
		return nil, utils.NewValidationError("invalid booking link id: %v", err)
	}

	key := monthCacheKey(linkID, year, month)
	if data, ok, err := mc.Store.Get(ctx, key); err != nil {
		mc.Logger.Warn("availability cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		var entry models.MonthAvailability
		if err := json.Unmarshal(data, &entry); err != nil {
			mc.Logger.Warn("availability cache entry corrupt", zap.String("key", key), zap.Error(err))
		} else if mc.Engine.now().Sub(entry.LastUpdated) <= staleAfter {
			return &entry, nil
		}
	}

	entry, err := mc.computeMonth(ctx, linkID, year, month)
	if err != nil {
		return nil, err
	}
	mc.persist(ctx, key, entry)
	return entry, nil
}

func (mc *MonthCache) computeMonth(ctx context.Context, linkID string, year, month int) (*models.MonthAvailability, error) {
	link, tpl, err := mc.Engine.ResolveLink(ctx, linkID)
	if err != nil {
		return nil, err
	}

	confirmed, err := mc.Engine.Bookings.FindConfirmedByLinkAndMonth(ctx, link.ID, year, month)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string][]models.Booking)
	for _, b := range confirmed {
		byDate[b.SelectedDate] = append(byDate[b.SelectedDate], b)
	}

	daysInMonth := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, mc.Engine.Loc).Day()
	entry := &models.MonthAvailability{
		BookingLinkID: linkID,
		Year:          year,
		Month:         month,
		Days:          make([]models.DayAvailability, 0, daysInMonth),
		LastUpdated:   mc.Engine.now(),
	}
	for d := 1; d <= daysInMonth; d++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, month, d)
		summary, err := mc.Engine.DaySummary(tpl, link, date, byDate[date])
		if err != nil {
			return nil, err
		}
		entry.Days = append(entry.Days, summary)
	}
	return entry, nil
}

// UpdateDay recomputes exactly one day inside an existing month entry after
// a booking event. When no entry exists for that month this is a no-op; the
// next full read computes the month from scratch anyway.
func (mc *MonthCache) UpdateDay(ctx context.Context, linkID, date string) error {
	day, err := ParseDate(date, mc.Engine.Loc)
	if err != nil {
		return utils.NewValidationError("invalid date %q", date)
	}
	year, month := day.Year(), int(day.Month())

	key := monthCacheKey(linkID, year, month)
	data, ok, err := mc.Store.Get(ctx, key)
	if err != nil || !ok {
		return err
	}
	var entry models.MonthAvailability
	if err := json.Unmarshal(data, &entry); err != nil {
		// Corrupt entry: drop it rather than patch it.
		return mc.Store.Delete(ctx, key)
	}

	link, tpl, err := mc.Engine.ResolveLink(ctx, linkID)
	if err != nil {
		return err
	}
	confirmed, err := mc.Engine.Bookings.FindConfirmedByLinkAndDate(ctx, link.ID, date)
	if err != nil {
		return err
	}
	summary, err := mc.Engine.DaySummary(tpl, link, date, confirmed)
	if err != nil {
		return err
	}

	for i := range entry.Days {
		if entry.Days[i].Date == date {
			entry.Days[i] = summary
			break
		}
	}
	mc.persist(ctx, key, &entry)
	return nil
}

// Invalidate deletes the listed month entries outright, forcing a full
// recompute on the next read.
func (mc *MonthCache) Invalidate(ctx context.Context, linkID string, months []MonthKey) error {
	keys := make([]string, 0, len(months))
	for _, m := range months {
		keys = append(keys, monthCacheKey(linkID, m.Year, m.Month))
	}
	return mc.Store.Delete(ctx, keys...)
}

func (mc *MonthCache) persist(ctx context.Context, key string, entry *models.MonthAvailability) {
	data, err := json.Marshal(entry)
	if err != nil {
		mc.Logger.Warn("availability cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := mc.Store.Set(ctx, key, data, cacheTTL); err != nil {
		mc.Logger.Warn("availability cache write failed", zap.String("key", key), zap.Error(err))
	}
}
