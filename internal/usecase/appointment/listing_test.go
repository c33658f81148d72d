package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/calendar"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
)

func TestSuggestSlots_Defaults(t *testing.T) {
	repo := newRepo(t)
	uc := newSuggestSlots(repo)

	slots, err := uc.Execute(context.Background(), SuggestSlotsInput{
		DoctorID: doctorID,
		Date:     "2024-06-03",
		Time:     "17:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.Slot{
		{Date: "2024-06-03", Start: "17:00", End: "17:30"},
		{Date: "2024-06-03", Start: "17:30", End: "18:00"},
		{Date: "2024-06-04", Start: "09:00", End: "09:30"},
	}
	if len(slots) != len(want) {
		t.Fatalf("expected %v, got %v", want, slots)
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Fatalf("slot %d: expected %v, got %v", i, want[i], slots[i])
		}
	}
}

func TestSuggestSlots_PastDateStartsToday(t *testing.T) {
	repo := newRepo(t)

	slots, err := newSuggestSlots(repo).Execute(context.Background(), SuggestSlotsInput{
		DoctorID: doctorID,
		Date:     "2024-05-20",
		Time:     "10:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.Slot{
		{Date: "2024-05-31", Start: "09:00", End: "09:30"},
		{Date: "2024-05-31", Start: "09:30", End: "10:00"},
		{Date: "2024-05-31", Start: "10:00", End: "10:30"},
	}
	if len(slots) != len(want) {
		t.Fatalf("expected %v, got %v", want, slots)
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Fatalf("slot %d: expected %v, got %v", i, want[i], slots[i])
		}
	}

	book := newBook(repo, nil)
	for _, s := range slots {
		if _, err := book.Execute(context.Background(), bookInput(s.Date, s.Start, s.End)); err != nil {
			t.Fatalf("booking suggested slot %v: %v", s, err)
		}
	}
}

func TestEarliestStart(t *testing.T) {
	at := func(h, m, s int) time.Time {
		return time.Date(2024, 5, 31, h, m, s, 0, time.UTC)
	}

	cases := []struct {
		name  string
		after time.Time
		now   time.Time
		step  time.Duration
		want  time.Time
	}{
		{"future kept", at(11, 7, 0), at(10, 0, 0), 30 * time.Minute, at(11, 7, 0)},
		{"rounded to slot", at(9, 0, 0), at(10, 7, 33), 30 * time.Minute, at(10, 30, 0)},
		{"on boundary", at(9, 0, 0), at(10, 30, 0), 30 * time.Minute, at(10, 30, 0)},
		{"odd step", at(9, 0, 0), at(10, 7, 33), 45 * time.Minute, at(10, 30, 0)},
		{"tiny step", at(9, 0, 0), at(10, 7, 33), 0, at(10, 8, 0)},
	}
	for _, tc := range cases {
		if got := earliestStart(tc.after, tc.now, tc.step); !got.Equal(tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestSuggestSlots_Errors(t *testing.T) {
	repo := newRepo(t)
	uc := newSuggestSlots(repo)

	_, err := uc.Execute(context.Background(), SuggestSlotsInput{DoctorID: doctorID, Date: "2024-06-03", Time: "5pm"})
	if !errors.Is(err, domain.ErrInvalidTimeFormat) {
		t.Fatalf("expected ErrInvalidTimeFormat, got %v", err)
	}

	_, err = uc.Execute(context.Background(), SuggestSlotsInput{Date: "2024-06-03", Time: "10:00"})
	var ve domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = uc.Execute(context.Background(), SuggestSlotsInput{
		DoctorID: doctorID, Date: "2024-06-03", Time: "10:00", MaxDays: 1000,
	})
	if !errors.As(err, &ve) || ve.Field != "max_days" {
		t.Fatalf("expected max_days validation error, got %v", err)
	}
}

func TestListAppointments(t *testing.T) {
	repo := newRepo(t)
	book := newBook(repo, nil)

	for _, in := range []BookInput{
		bookInput("2024-06-03", "11:00", "11:30"),
		bookInput("2024-06-03", "09:00", "09:30"),
		bookInput("2024-06-04", "09:00", "09:30"),
	} {
		if _, err := book.Execute(context.Background(), in); err != nil {
			t.Fatalf("booking: %v", err)
		}
	}

	byDate, err := NewListAppointmentsByDate(repo, time.UTC).Execute(context.Background(), doctorUserID, "2024-06-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byDate) != 2 || byDate[0].StartTime.Hour() != 9 || byDate[1].StartTime.Hour() != 11 {
		t.Fatalf("expected two appointments ordered by start, got %+v", byDate)
	}
	if byDate[0].FormattedDate != "Monday, June 3, 2024" || byDate[0].FormattedTimeRange != "9:00 AM - 9:30 AM" {
		t.Fatalf("unexpected formatting %+v", byDate[0])
	}

	if _, err := NewListAppointmentsByDate(repo, time.UTC).Execute(context.Background(), patientID, "2024-06-03"); !errors.Is(err, domain.ErrDoctorNotFound) {
		t.Fatalf("expected ErrDoctorNotFound for a patient, got %v", err)
	}

	mine, err := NewListPatientAppointments(repo).Execute(context.Background(), patientID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mine) != 3 || mine[0].StartTime.Day() != 4 {
		t.Fatalf("expected newest first, got %+v", mine)
	}
}

func TestSendReminders_OnlyApprovedTomorrow(t *testing.T) {
	repo := newRepo(t)
	book := newBook(repo, nil)
	decide := newUpdateStatus(repo, nil)

	// now is Friday 2024-05-31: tomorrow is Saturday 2024-06-01
	var ids []uint
	for _, in := range []BookInput{
		bookInput("2024-06-01", "09:00", "09:30"),
		bookInput("2024-06-01", "10:00", "10:30"),
		bookInput("2024-06-03", "09:00", "09:30"),
	} {
		ap, err := book.Execute(context.Background(), in)
		if err != nil {
			t.Fatalf("booking: %v", err)
		}
		ids = append(ids, ap.ID)
	}
	for _, id := range []uint{ids[0], ids[2]} {
		if _, err := decide.Execute(context.Background(), UpdateStatusInput{doctorUserID, id, "approved"}); err != nil {
			t.Fatalf("approve: %v", err)
		}
	}

	pub := &recorder{}
	n, err := NewSendReminders(repo, calendar.FixedClock(now), pub, zap.NewNop()).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 || len(pub.events) != 1 {
		t.Fatalf("expected one reminder, got %d (%v)", n, pub.kinds())
	}
	if pub.events[0].Kind != notification.KindAppointmentReminder || pub.events[0].RecipientID != patientID {
		t.Fatalf("unexpected reminder %+v", pub.events[0])
	}
}
