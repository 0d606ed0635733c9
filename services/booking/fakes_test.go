package booking

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	bookingRepo "hireslot/database/repository/booking"
	"hireslot/models"
	"hireslot/services/availability"
	"hireslot/utils"
)

// In-memory fakes matching the repository contracts, including the
// conditional write on the confirmed-slot key.

type memTemplateRepo struct {
	mu        sync.Mutex
	templates map[string]models.Template
}

func (r *memTemplateRepo) EnsureIndexes(context.Context) error { return nil }

func (r *memTemplateRepo) Create(_ context.Context, tpl *models.Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[tpl.ID] = *tpl
	return nil
}

func (r *memTemplateRepo) GetByID(_ context.Context, id string) (*models.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tpl, ok := r.templates[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &tpl, nil
}

func (r *memTemplateRepo) Update(_ context.Context, tpl *models.Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[tpl.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	r.templates[tpl.ID] = *tpl
	return nil
}

func (r *memTemplateRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.templates, id)
	return nil
}

func (r *memTemplateRepo) List(context.Context) ([]models.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Template, 0, len(r.templates))
	for _, tpl := range r.templates {
		out = append(out, tpl)
	}
	return out, nil
}

type memLinkRepo struct {
	mu    sync.Mutex
	links map[string]models.BookingLink
}

func (r *memLinkRepo) EnsureIndexes(context.Context) error { return nil }

func (r *memLinkRepo) Create(_ context.Context, link *models.BookingLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links[link.ID] = *link
	return nil
}

func (r *memLinkRepo) GetByID(_ context.Context, id string) (*models.BookingLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	link, ok := r.links[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &link, nil
}

func (r *memLinkRepo) GetBySlug(_ context.Context, slug string) (*models.BookingLink, error) {
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

func (r *memLinkRepo) FindByTemplateID(_ context.Context, templateID string) ([]models.BookingLink, error) {
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

func (r *memLinkRepo) Update(_ context.Context, link *models.BookingLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.links[link.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	r.links[link.ID] = *link
	return nil
}

func (r *memLinkRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.links[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.links, id)
	return nil
}

type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
}

func (r *memBookingRepo) EnsureIndexes(context.Context) error { return nil }

func (r *memBookingRepo) slotHeld(linkID, date, clock, excludeID string) bool {
	for _, b := range r.bookings {
		if b.ID != excludeID && b.BookingLinkID == linkID &&
			b.SelectedDate == date && b.SelectedTime == clock &&
			b.Status == models.BookingStatusConfirmed {
			return true
		}
	}
	return false
}

func (r *memBookingRepo) Insert(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.slotHeld(booking.BookingLinkID, booking.SelectedDate, booking.SelectedTime, "") {
		return bookingRepo.ErrSlotTaken
	}
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *memBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &b, nil
}

func (r *memBookingRepo) FindConfirmedByLinkAndDate(_ context.Context, linkID, date string) ([]models.Booking, error) {
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

func (r *memBookingRepo) FindConfirmedByLinkAndMonth(_ context.Context, linkID string, year, month int) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.BookingLinkID != linkID || b.Status != models.BookingStatusConfirmed {
			continue
		}
		day, err := availability.ParseDate(b.SelectedDate, time.UTC)
		if err != nil {
			continue
		}
		if day.Year() == year && int(day.Month()) == month {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) UpdateStatus(_ context.Context, id, status string) error {
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

func (r *memBookingRepo) UpdateDateTime(_ context.Context, id, newDate, newTime string) error {
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

type memStore struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func (s *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.entries[key]
	return data, ok, nil
}

func (s *memStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

func (s *memStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.entries, k)
	}
	return nil
}

// world wires a service against the fakes with a fixed clock. Mondays and
// Tuesdays carry 09:00-11:00; everything else is closed.
type world struct {
	svc      *DefaultBookingService
	bookings *memBookingRepo
	links    *memLinkRepo
	tpl      *models.Template
	link     *models.BookingLink
	now      time.Time
}

func mustClock(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02T15:04", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func newWorld() *world {
	now := mustClock("2025-06-01T08:00")

	w := &world{
		bookings: &memBookingRepo{bookings: make(map[string]models.Booking)},
		links:    &memLinkRepo{links: make(map[string]models.BookingLink)},
		now:      now,
	}
	templates := &memTemplateRepo{templates: make(map[string]models.Template)}

	w.tpl = &models.Template{
		ID:   utils.NewID(utils.KindTemplate).String(),
		Name: "Engineering interviews",
		WeeklySchedule: map[string][]models.TimeRange{
			"monday":  {{Start: "09:00", End: "11:00"}},
			"tuesday": {{Start: "09:00", End: "11:00"}},
		},
	}
	templates.Create(context.Background(), w.tpl)

	w.link = &models.BookingLink{
		ID:              utils.NewID(utils.KindBookingLink).String(),
		TemplateID:      w.tpl.ID,
		Name:            "Backend screen",
		URLSlug:         "backend-screen",
		DurationMinutes: 30,
		IsActive:        true,
	}
	w.links.Create(context.Background(), w.link)

	engine := &availability.Engine{
		Templates: templates,
		Links:     w.links,
		Bookings:  w.bookings,
		Loc:       time.UTC,
		Now:       func() time.Time { return w.now },
		Logger:    zap.NewNop(),
	}
	w.svc = &DefaultBookingService{
		Bookings:     w.bookings,
		Availability: engine,
		Logger:       zap.NewNop(),
	}
	return w
}

func (w *world) withCache() (*availability.MonthCache, *memStore) {
	store := &memStore{entries: make(map[string][]byte)}
	cache := &availability.MonthCache{
		Store:  store,
		Engine: w.svc.Availability,
		Logger: zap.NewNop(),
	}
	w.svc.Cache = cache
	return cache, store
}

func (w *world) create(date, clock string) (*models.Booking, error) {
	return w.svc.Create(context.Background(), CreateRequest{
		BookingLinkID: w.link.ID,
		SelectedDate:  date,
		SelectedTime:  clock,
		Candidate:     models.Candidate{Name: "Ada Lovelace", Email: "ada@example.com"},
	})
}
