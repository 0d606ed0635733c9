package availability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	bookingRepo "hireslot/database/repository/booking"
	"hireslot/models"
	"hireslot/utils"
)

// In-memory repository fakes. They honor the same contracts as the Mongo
// implementations, including the conditional-write behavior on the
// confirmed-slot key.

type fakeTemplateRepo struct {
	mu        sync.Mutex
	templates map[string]models.Template
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: make(map[string]models.Template)}
}

func (r *fakeTemplateRepo) EnsureIndexes(context.Context) error { return nil }

func (r *fakeTemplateRepo) Create(_ context.Context, tpl *models.Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[tpl.ID] = *tpl
	return nil
}

func (r *fakeTemplateRepo) GetByID(_ context.Context, id string) (*models.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tpl, ok := r.templates[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &tpl, nil
}

func (r *fakeTemplateRepo) Update(_ context.Context, tpl *models.Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[tpl.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	r.templates[tpl.ID] = *tpl
	return nil
}

func (r *fakeTemplateRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.templates, id)
	return nil
}

func (r *fakeTemplateRepo) List(context.Context) ([]models.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Template, 0, len(r.templates))
	for _, tpl := range r.templates {
		out = append(out, tpl)
	}
	return out, nil
}

type fakeLinkRepo struct {
	mu    sync.Mutex
	links map[string]models.BookingLink
}

func newFakeLinkRepo() *fakeLinkRepo {
	return &fakeLinkRepo{links: make(map[string]models.BookingLink)}
}

func (r *fakeLinkRepo) EnsureIndexes(context.Context) error { return nil }

func (r *fakeLinkRepo) Create(_ context.Context, link *models.BookingLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links[link.ID] = *link
	return nil
}

func (r *fakeLinkRepo) GetByID(_ context.Context, id string) (*models.BookingLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	link, ok := r.links[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &link, nil
}

func (r *fakeLinkRepo) GetBySlug(_ context.Context, slug string) (*models.BookingLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, link := range r.links {
		if link.URLSlug == slug {
			l := link
			return &l, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeLinkRepo) FindByTemplateID(_ context.Context, templateID string) ([]models.BookingLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.BookingLink
	for _, link := range r.links {
		if link.TemplateID == templateID {
			out = append(out, link)
		}
	}
	return out, nil
}

func (r *fakeLinkRepo) Update(_ context.Context, link *models.BookingLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.links[link.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	r.links[link.ID] = *link
	return nil
}

func (r *fakeLinkRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.links[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.links, id)
	return nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]models.Booking)}
}

func (r *fakeBookingRepo) EnsureIndexes(context.Context) error { return nil }

func (r *fakeBookingRepo) slotHeld(linkID, date, clock, excludeID string) bool {
	for _, b := range r.bookings {
		if b.ID != excludeID && b.BookingLinkID == linkID &&
			b.SelectedDate == date && b.SelectedTime == clock &&
			b.Status == models.BookingStatusConfirmed {
			return true
		}
	}
	return false
}

func (r *fakeBookingRepo) Insert(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.slotHeld(booking.BookingLinkID, booking.SelectedDate, booking.SelectedTime, "") {
		return bookingRepo.ErrSlotTaken
	}
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &b, nil
}

func (r *fakeBookingRepo) FindConfirmedByLinkAndDate(_ context.Context, linkID, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.BookingLinkID == linkID && b.SelectedDate == date && b.Status == models.BookingStatusConfirmed {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindConfirmedByLinkAndMonth(_ context.Context, linkID string, year, month int) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prefix := fmt.Sprintf("%04d-%02d-", year, month)
	var out []models.Booking
	for _, b := range r.bookings {
		if b.BookingLinkID == linkID && b.Status == models.BookingStatusConfirmed &&
			len(b.SelectedDate) >= len(prefix) && b.SelectedDate[:len(prefix)] == prefix {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	b.Status = status
	r.bookings[id] = b
	return nil
}

func (r *fakeBookingRepo) UpdateDateTime(_ context.Context, id, newDate, newTime string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != models.BookingStatusConfirmed {
		return mongo.ErrNoDocuments
	}
	if r.slotHeld(b.BookingLinkID, newDate, newTime, id) {
		return bookingRepo.ErrSlotTaken
	}
	b.SelectedDate = newDate
	b.SelectedTime = newTime
	r.bookings[id] = b
	return nil
}

// memCacheStore is the in-memory CacheStore used by cache tests.
type memCacheStore struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemCacheStore() *memCacheStore {
	return &memCacheStore{entries: make(map[string][]byte)}
}

func (s *memCacheStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.entries[key]
	return data, ok, nil
}

func (s *memCacheStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

func (s *memCacheStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.entries, k)
	}
	return nil
}

// testWorld is one wired-up fake universe: a template, an active link, and
// an engine with a controllable clock.
type testWorld struct {
	templates *fakeTemplateRepo
	links     *fakeLinkRepo
	bookings  *fakeBookingRepo
	engine    *Engine
	tpl       *models.Template
	link      *models.BookingLink
}

func newTestWorld(now time.Time, schedule map[string][]models.TimeRange) *testWorld {
	w := &testWorld{
		templates: newFakeTemplateRepo(),
		links:     newFakeLinkRepo(),
		bookings:  newFakeBookingRepo(),
	}

	w.tpl = &models.Template{
		ID:             utils.NewID(utils.KindTemplate).String(),
		Name:           "Engineering interviews",
		WeeklySchedule: schedule,
	}
	w.templates.Create(context.Background(), w.tpl)

	w.link = &models.BookingLink{
		ID:              utils.NewID(utils.KindBookingLink).String(),
		TemplateID:      w.tpl.ID,
		Name:            "Backend screen",
		URLSlug:         "backend-screen",
		DurationMinutes: 30,
		IsActive:        true,
	}
	w.links.Create(context.Background(), w.link)

	w.engine = &Engine{
		Templates: w.templates,
		Links:     w.links,
		Bookings:  w.bookings,
		Loc:       time.UTC,
		Now:       func() time.Time { return now },
		Logger:    zap.NewNop(),
	}
	return w
}

func (w *testWorld) book(date, clock string) *models.Booking {
	b := &models.Booking{
		ID:            utils.NewID(utils.KindBooking).String(),
		BookingLinkID: w.link.ID,
		SelectedDate:  date,
		SelectedTime:  clock,
		Status:        models.BookingStatusConfirmed,
	}
	if err := w.bookings.Insert(context.Background(), b); err != nil {
		panic(err)
	}
	return b
}
