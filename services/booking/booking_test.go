package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	appointmentRepo "medibook/database/repository/appointment"
	bookingRepo "medibook/database/repository/booking"
	"medibook/models"
)

// memStore backs the in-memory repository fakes. Reserve and Cancel hold
// the lock across their check-then-write, mirroring the conditional updates
// the mongo repositories apply.
type memStore struct {
	mu      sync.Mutex
	doctors map[string]*models.Doctor
	users   map[string]*models.User
	appts   map[string]*models.Appointment
}

func newMemStore() *memStore {
	return &memStore{
		doctors: map[string]*models.Doctor{},
		users:   map[string]*models.User{},
		appts:   map[string]*models.Appointment{},
	}
}

func copyDoctor(d *models.Doctor) *models.Doctor {
	out := *d
	out.SlotsBooked = make(map[string][]string, len(d.SlotsBooked))
	for k, v := range d.SlotsBooked {
		out.SlotsBooked[k] = append([]string(nil), v...)
	}
	return &out
}

type fakeDoctorRepo struct{ s *memStore }

func (r *fakeDoctorRepo) Create(doc *models.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.doctors[doc.ID] = copyDoctor(doc)
	return nil
}

func (r *fakeDoctorRepo) Update(doc *models.Doctor) error { return r.Create(doc) }

func (r *fakeDoctorRepo) UpdateSetDocument(id string, updateDoc bson.M) error { return nil }

func (r *fakeDoctorRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.doctors, id)
	return nil
}

func (r *fakeDoctorRepo) GetByID(id string) (*models.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	doc, ok := r.s.doctors[id]
	if !ok {
		return nil, nil
	}
	return copyDoctor(doc), nil
}

func (r *fakeDoctorRepo) GetByEmail(email string) (*models.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, doc := range r.s.doctors {
		if doc.Email == email {
			return copyDoctor(doc), nil
		}
	}
	return nil, nil
}

func (r *fakeDoctorRepo) GetAll() ([]models.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Doctor, 0, len(r.s.doctors))
	for _, doc := range r.s.doctors {
		out = append(out, *copyDoctor(doc))
	}
	return out, nil
}

func (r *fakeDoctorRepo) SetAvailability(id string, available bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if doc, ok := r.s.doctors[id]; ok {
		doc.Available = available
	}
	return nil
}

func (r *fakeDoctorRepo) Count() (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.doctors)), nil
}

type fakeUserRepo struct{ s *memStore }

func (r *fakeUserRepo) Create(u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Update(u *models.User) error { return r.Create(u) }

func (r *fakeUserRepo) UpdateSetDocument(id string, updateDoc bson.M) error { return nil }

func (r *fakeUserRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.users, id)
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetAll() ([]models.User, error) { return nil, nil }

func (r *fakeUserRepo) Count() (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.users)), nil
}

type fakeApptRepo struct{ s *memStore }

func (r *fakeApptRepo) GetByID(id string) (*models.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.appts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeApptRepo) GetByPatient(patientID string) ([]models.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.s.appts {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeApptRepo) GetByDoctor(doctorID string) ([]models.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.s.appts {
		if a.DoctorID == doctorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeApptRepo) GetAll() ([]models.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.s.appts {
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeApptRepo) MarkCompleted(id, doctorID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.appts[id]
	if !ok || a.DoctorID != doctorID || a.Cancelled || a.IsCompleted {
		return appointmentRepo.ErrInvalidTransition
	}
	a.IsCompleted = true
	return nil
}

func (r *fakeApptRepo) MarkPaid(id, paymentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.appts[id]
	if !ok || a.Cancelled {
		return appointmentRepo.ErrInvalidTransition
	}
	a.Payment = true
	a.PaymentID = paymentID
	return nil
}

func (r *fakeApptRepo) Count() (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.appts)), nil
}

// fakeBookingRepo applies the same conditional semantics as the transactional
// mongo repository: the slot check and the write happen under one lock.
type fakeBookingRepo struct{ s *memStore }

func (r *fakeBookingRepo) Reserve(ctx context.Context, appt *models.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	doc, ok := r.s.doctors[appt.DoctorID]
	if !ok || !doc.Available {
		return bookingRepo.ErrSlotUnavailable
	}
	for _, label := range doc.SlotsBooked[appt.SlotDate] {
		if label == appt.SlotTime {
			return bookingRepo.ErrSlotUnavailable
		}
	}
	if doc.SlotsBooked == nil {
		doc.SlotsBooked = map[string][]string{}
	}
	doc.SlotsBooked[appt.SlotDate] = append(doc.SlotsBooked[appt.SlotDate], appt.SlotTime)
	cp := *appt
	r.s.appts[appt.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) Cancel(ctx context.Context, appt *models.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.appts[appt.ID]
	if !ok || stored.Cancelled || stored.IsCompleted {
		return bookingRepo.ErrAlreadyFinal
	}
	stored.Cancelled = true
	if doc, ok := r.s.doctors[appt.DoctorID]; ok {
		labels := doc.SlotsBooked[appt.SlotDate]
		for i, label := range labels {
			if label == appt.SlotTime {
				doc.SlotsBooked[appt.SlotDate] = append(labels[:i], labels[i+1:]...)
				break
			}
		}
	}
	return nil
}

func (r *fakeBookingRepo) VerifyReserved(ctx context.Context, doctorID, dayKey, timeLabel string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	doc, ok := r.s.doctors[doctorID]
	if !ok {
		return false, nil
	}
	for _, label := range doc.SlotsBooked[dayKey] {
		if label == timeLabel {
			return true, nil
		}
	}
	return false, nil
}

func newTestService(s *memStore) *DefaultBookingService {
	return &DefaultBookingService{
		DoctorRepo: &fakeDoctorRepo{s: s},
		UserRepo:   &fakeUserRepo{s: s},
		ApptRepo:   &fakeApptRepo{s: s},
		Repo:       &fakeBookingRepo{s: s},
		Currency:   "usd",
		Now: func() time.Time {
			return time.Date(2024, 6, 4, 9, 0, 0, 0, time.UTC)
		},
	}
}

func seedStore() *memStore {
	s := newMemStore()
	s.doctors["doc-1"] = &models.Doctor{
		ID:          "doc-1",
		Name:        "Dr. Richard James",
		Email:       "richard@example.com",
		Speciality:  "General physician",
		Fees:        50,
		Available:   true,
		SlotsBooked: map[string][]string{},
	}
	s.users["pat-1"] = &models.User{ID: "pat-1", Name: "Alice", Email: "alice@example.com"}
	s.users["pat-2"] = &models.User{ID: "pat-2", Name: "Bob", Email: "bob@example.com"}
	return s
}

func TestBookSlot_Success(t *testing.T) {
	s := seedStore()
	svc := newTestService(s)

	appt, err := svc.BookSlot(context.Background(), BookSlotRequest{
		DoctorID:  "doc-1",
		PatientID: "pat-1",
		SlotDate:  "5_6_2024",
		SlotTime:  "10:30 AM",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if appt.ID == "" {
		t.Fatal("expected generated appointment id")
	}
	if appt.Amount != 50 || appt.Currency != "usd" {
		t.Fatalf("expected fee snapshot 50 usd, got %v %s", appt.Amount, appt.Currency)
	}
	if appt.Doctor.Name != "Dr. Richard James" || appt.Patient.Name != "Alice" {
		t.Fatalf("expected denormalized summaries, got %+v", appt)
	}
	if !s.doctors["doc-1"].SlotTaken("5_6_2024", "10:30 AM") {
		t.Fatal("slot not recorded in booked set")
	}
}

func TestBookSlot_ExactlyOneWinner(t *testing.T) {
	s := seedStore()
	svc := newTestService(s)
	const racers = 8

	errs := make(chan error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.BookSlot(context.Background(), BookSlotRequest{
				DoctorID:  "doc-1",
				PatientID: "pat-1",
				SlotDate:  "5_6_2024",
				SlotTime:  "11:00 AM",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	wins, conflicts := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case IsConflict(err):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != racers-1 {
		t.Fatalf("expected 1 winner and %d conflicts, got %d/%d", racers-1, wins, conflicts)
	}
	if got := len(s.doctors["doc-1"].SlotsBooked["5_6_2024"]); got != 1 {
		t.Fatalf("expected exactly one booked label, got %d", got)
	}
}

func TestBookSlot_BookedSlotDisappearsFromListing(t *testing.T) {
	s := seedStore()
	svc := newTestService(s)
	ctx := context.Background()

	appt, err := svc.BookSlot(ctx, BookSlotRequest{
		DoctorID: "doc-1", PatientID: "pat-1", SlotDate: "5_6_2024", SlotTime: "10:30 AM",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	days, err := svc.ListAvailableSlots(ctx, "doc-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, d := range days {
		if d.Date != "5_6_2024" {
			continue
		}
		for _, slot := range d.Slots {
			if slot.Time == "10:30 AM" {
				t.Fatal("booked slot still offered")
			}
		}
	}

	// Cancelling returns the slot to the listing.
	if _, err := svc.CancelBooking(ctx, appt.ID, Actor{ID: "pat-1", Role: "patient"}); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	days, err = svc.ListAvailableSlots(ctx, "doc-1")
	if err != nil {
		t.Fatalf("relist: %v", err)
	}
	found := false
	for _, d := range days {
		if d.Date != "5_6_2024" {
			continue
		}
		for _, slot := range d.Slots {
			if slot.Time == "10:30 AM" {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("cancelled slot not offered again")
	}
}

func TestBookSlot_DoubleBookSameSlot(t *testing.T) {
	s := seedStore()
	svc := newTestService(s)
	ctx := context.Background()

	req := BookSlotRequest{DoctorID: "doc-1", PatientID: "pat-1", SlotDate: "5_6_2024", SlotTime: "10:00 AM"}
	if _, err := svc.BookSlot(ctx, req); err != nil {
		t.Fatalf("first book: %v", err)
	}
	req.PatientID = "pat-2"
	if _, err := svc.BookSlot(ctx, req); !IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestBookSlot_UnavailableDoctor(t *testing.T) {
	s := seedStore()
	s.doctors["doc-1"].Available = false
	svc := newTestService(s)

	_, err := svc.BookSlot(context.Background(), BookSlotRequest{
		DoctorID: "doc-1", PatientID: "pat-1", SlotDate: "5_6_2024", SlotTime: "10:00 AM",
	})
	var ue *UnavailableError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnavailableError, got %v", err)
	}
}

func TestBookSlot_ValidationFailures(t *testing.T) {
	s := seedStore()
	svc := newTestService(s)
	ctx := context.Background()

	cases := []struct {
		name string
		req  BookSlotRequest
		code string
	}{
		{"malformed date", BookSlotRequest{DoctorID: "doc-1", PatientID: "pat-1", SlotDate: "2024-06-05", SlotTime: "10:00 AM"}, "bad_input"},
		{"impossible date", BookSlotRequest{DoctorID: "doc-1", PatientID: "pat-1", SlotDate: "31_2_2024", SlotTime: "10:00 AM"}, "bad_input"},
		{"malformed time", BookSlotRequest{DoctorID: "doc-1", PatientID: "pat-1", SlotDate: "5_6_2024", SlotTime: "10am"}, "bad_input"},
		{"unknown doctor", BookSlotRequest{DoctorID: "nope", PatientID: "pat-1", SlotDate: "5_6_2024", SlotTime: "10:00 AM"}, "not_found"},
		{"unknown patient", BookSlotRequest{DoctorID: "doc-1", PatientID: "nope", SlotDate: "5_6_2024", SlotTime: "10:00 AM"}, "not_found"},
	}
	for _, c := range cases {
		_, err := svc.BookSlot(ctx, c.req)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%s: expected ValidationError, got %v", c.name, err)
		}
		if ve.Code != c.code {
			t.Fatalf("%s: expected code %s, got %s", c.name, c.code, ve.Code)
		}
	}
}

func TestCancelBooking_Authorization(t *testing.T) {
	s := seedStore()
	svc := newTestService(s)
	ctx := context.Background()

	appt, err := svc.BookSlot(ctx, BookSlotRequest{
		DoctorID: "doc-1", PatientID: "pat-1", SlotDate: "5_6_2024", SlotTime: "10:00 AM",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	// Another patient may not cancel.
	_, err = svc.CancelBooking(ctx, appt.ID, Actor{ID: "pat-2", Role: "patient"})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Code != "forbidden" {
		t.Fatalf("expected forbidden, got %v", err)
	}

	// Another doctor may not cancel.
	_, err = svc.CancelBooking(ctx, appt.ID, Actor{ID: "doc-2", Role: "doctor"})
	if !errors.As(err, &ve) || ve.Code != "forbidden" {
		t.Fatalf("expected forbidden, got %v", err)
	}

	// The admin may cancel anything.
	if _, err := svc.CancelBooking(ctx, appt.ID, Actor{Role: "admin"}); err != nil {
		t.Fatalf("admin cancel: %v", err)
	}
}

func TestCancelBooking_TerminalStates(t *testing.T) {
	s := seedStore()
	svc := newTestService(s)
	ctx := context.Background()

	appt, err := svc.BookSlot(ctx, BookSlotRequest{
		DoctorID: "doc-1", PatientID: "pat-1", SlotDate: "5_6_2024", SlotTime: "10:00 AM",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if _, err := svc.CancelBooking(ctx, appt.ID, Actor{ID: "pat-1", Role: "patient"}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// Cancelling twice is an invalid transition.
	_, err = svc.CancelBooking(ctx, appt.ID, Actor{ID: "pat-1", Role: "patient"})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Code != "invalid_state" {
		t.Fatalf("expected invalid_state, got %v", err)
	}

	// A completed appointment cannot be cancelled either.
	appt2, err := svc.BookSlot(ctx, BookSlotRequest{
		DoctorID: "doc-1", PatientID: "pat-1", SlotDate: "5_6_2024", SlotTime: "11:00 AM",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if err := svc.CompleteAppointment(ctx, appt2.ID, "doc-1"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	_, err = svc.CancelBooking(ctx, appt2.ID, Actor{ID: "pat-1", Role: "patient"})
	if !errors.As(err, &ve) || ve.Code != "invalid_state" {
		t.Fatalf("expected invalid_state, got %v", err)
	}
}

func TestCompleteAppointment_WrongDoctor(t *testing.T) {
	s := seedStore()
	svc := newTestService(s)
	ctx := context.Background()

	appt, err := svc.BookSlot(ctx, BookSlotRequest{
		DoctorID: "doc-1", PatientID: "pat-1", SlotDate: "5_6_2024", SlotTime: "10:00 AM",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	err = svc.CompleteAppointment(ctx, appt.ID, "doc-2")
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Code != "invalid_state" {
		t.Fatalf("expected invalid_state, got %v", err)
	}

	// Completing keeps the slot blocked.
	if err := svc.CompleteAppointment(ctx, appt.ID, "doc-1"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !s.doctors["doc-1"].SlotTaken("5_6_2024", "10:00 AM") {
		t.Fatal("completed appointment released its slot")
	}
}

// fakeQuarantine records blocked doctor/day pairs in memory.
type fakeQuarantine struct {
	mu      sync.Mutex
	blocked map[string]bool
}

func newFakeQuarantine() *fakeQuarantine {
	return &fakeQuarantine{blocked: map[string]bool{}}
}

func (q *fakeQuarantine) Block(ctx context.Context, doctorID, dayKey string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.blocked[doctorID+":"+dayKey] = true
	return nil
}

func (q *fakeQuarantine) IsBlocked(ctx context.Context, doctorID, dayKey string) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.blocked[doctorID+":"+dayKey], nil
}

// brokenVerifyRepo reports a committed reservation as absent from the
// booked set, simulating a violated atomic-update contract.
type brokenVerifyRepo struct {
	bookingRepo.BookingRepository
}

func (r *brokenVerifyRepo) VerifyReserved(ctx context.Context, doctorID, dayKey, timeLabel string) (bool, error) {
	return false, nil
}

func TestBookSlot_IntegrityViolationQuarantinesDay(t *testing.T) {
	s := seedStore()
	svc := newTestService(s)
	svc.Repo = &brokenVerifyRepo{BookingRepository: &fakeBookingRepo{s: s}}
	q := newFakeQuarantine()
	svc.Quarantine = q
	ctx := context.Background()

	_, err := svc.BookSlot(ctx, BookSlotRequest{
		DoctorID: "doc-1", PatientID: "pat-1", SlotDate: "5_6_2024", SlotTime: "10:00 AM",
	})
	var ie *IntegrityError
	if !errors.As(err, &ie) {
		t.Fatalf("expected IntegrityError, got %v", err)
	}

	blocked, _ := q.IsBlocked(ctx, "doc-1", "5_6_2024")
	if !blocked {
		t.Fatal("doctor/day pair not quarantined after integrity violation")
	}

	// The quarantined day rejects further bookings, other days book fine.
	_, err = svc.BookSlot(ctx, BookSlotRequest{
		DoctorID: "doc-1", PatientID: "pat-1", SlotDate: "5_6_2024", SlotTime: "11:00 AM",
	})
	if !errors.As(err, &ie) {
		t.Fatalf("expected quarantined day to reject booking, got %v", err)
	}
	svc.Repo = &fakeBookingRepo{s: s}
	if _, err := svc.BookSlot(ctx, BookSlotRequest{
		DoctorID: "doc-1", PatientID: "pat-1", SlotDate: "6_6_2024", SlotTime: "10:00 AM",
	}); err != nil {
		t.Fatalf("booking on an unquarantined day failed: %v", err)
	}
}

// flakyReserveRepo fails Reserve with a retriable error a fixed number of
// times before delegating to the real fake.
type flakyReserveRepo struct {
	bookingRepo.BookingRepository
	mu       sync.Mutex
	failures int
	attempts int
}

func (r *flakyReserveRepo) Reserve(ctx context.Context, appt *models.Appointment) error {
	r.mu.Lock()
	r.attempts++
	fail := r.attempts <= r.failures
	r.mu.Unlock()
	if fail {
		return context.DeadlineExceeded
	}
	return r.BookingRepository.Reserve(ctx, appt)
}

func TestBookSlot_RetriesTransientReserveFailures(t *testing.T) {
	s := seedStore()
	svc := newTestService(s)
	flaky := &flakyReserveRepo{BookingRepository: &fakeBookingRepo{s: s}, failures: maxReserveAttempts - 1}
	svc.Repo = flaky

	appt, err := svc.BookSlot(context.Background(), BookSlotRequest{
		DoctorID: "doc-1", PatientID: "pat-1", SlotDate: "5_6_2024", SlotTime: "10:00 AM",
	})
	if err != nil {
		t.Fatalf("expected retries to recover, got %v", err)
	}
	if appt == nil || !s.doctors["doc-1"].SlotTaken("5_6_2024", "10:00 AM") {
		t.Fatal("recovered reservation not recorded")
	}
	if flaky.attempts != maxReserveAttempts {
		t.Fatalf("expected %d attempts, got %d", maxReserveAttempts, flaky.attempts)
	}
}

func TestBookSlot_TransientFailuresAreBounded(t *testing.T) {
	s := seedStore()
	svc := newTestService(s)
	flaky := &flakyReserveRepo{BookingRepository: &fakeBookingRepo{s: s}, failures: maxReserveAttempts + 1}
	svc.Repo = flaky

	_, err := svc.BookSlot(context.Background(), BookSlotRequest{
		DoctorID: "doc-1", PatientID: "pat-1", SlotDate: "5_6_2024", SlotTime: "10:00 AM",
	})
	if !IsTransient(err) {
		t.Fatalf("expected TransientError after exhausted retries, got %v", err)
	}
	if flaky.attempts != maxReserveAttempts {
		t.Fatalf("expected exactly %d attempts, got %d", maxReserveAttempts, flaky.attempts)
	}
	if s.doctors["doc-1"].SlotTaken("5_6_2024", "10:00 AM") {
		t.Fatal("failed reservation must not occupy the slot")
	}
}

func TestBookSlot_NormalizesTimeLabel(t *testing.T) {
	s := seedStore()
	svc := newTestService(s)
	ctx := context.Background()

	// "00:30 AM" parses but its canonical form is "12:30 AM"; only the
	// canonical label may enter the booked set.
	appt, err := svc.BookSlot(ctx, BookSlotRequest{
		DoctorID: "doc-1", PatientID: "pat-1", SlotDate: "5_6_2024", SlotTime: "00:30 AM",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if appt.SlotTime != "12:30 AM" {
		t.Fatalf("expected canonical label 12:30 AM, got %s", appt.SlotTime)
	}
	booked := s.doctors["doc-1"].SlotsBooked["5_6_2024"]
	if len(booked) != 1 || booked[0] != "12:30 AM" {
		t.Fatalf("expected booked set [12:30 AM], got %v", booked)
	}

	// The two spellings collide on the same slot.
	_, err = svc.BookSlot(ctx, BookSlotRequest{
		DoctorID: "doc-1", PatientID: "pat-2", SlotDate: "5_6_2024", SlotTime: "12:30 AM",
	})
	if !IsConflict(err) {
		t.Fatalf("expected conflict on canonical spelling, got %v", err)
	}
}
