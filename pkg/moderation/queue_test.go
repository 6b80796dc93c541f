package moderation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/moderation"
)

type statusCall struct {
	kind   moderation.Kind
	id     string
	status moderation.Status
}

// stubSource is an in-memory Source that records every remote call.
type stubSource struct {
	pages       map[moderation.Kind][]moderation.Entity
	fetchErr    error
	updateErr   error
	deleteErr   error
	updateMsg   string
	fetchCalls  int
	statusCalls []statusCall
	deleteCalls []string
}

func (s *stubSource) FetchPage(_ context.Context, kind moderation.Kind, page, pageSize int, statusFilter moderation.Status) (moderation.Page, error) {
	s.fetchCalls++
	if s.fetchErr != nil {
		return moderation.Page{}, s.fetchErr
	}
	items := make([]moderation.Entity, 0)
	for _, e := range s.pages[kind] {
		if statusFilter != moderation.FilterAll && e.Status != statusFilter {
			continue
		}
		items = append(items, e)
	}
	return moderation.Page{Items: items, Total: len(items), Page: page, PageSize: pageSize}, nil
}

func (s *stubSource) FetchDetail(_ context.Context, kind moderation.Kind, id string) (moderation.Entity, error) {
	for _, e := range s.pages[kind] {
		if e.ID == id {
			return e, nil
		}
	}
	return moderation.Entity{}, errors.New("no such entity")
}

func (s *stubSource) UpdateStatus(_ context.Context, kind moderation.Kind, id string, status moderation.Status) (string, error) {
	s.statusCalls = append(s.statusCalls, statusCall{kind, id, status})
	if s.updateErr != nil {
		return "", s.updateErr
	}
	return s.updateMsg, nil
}

func (s *stubSource) Delete(_ context.Context, kind moderation.Kind, id string) error {
	s.deleteCalls = append(s.deleteCalls, id)
	return s.deleteErr
}

func user(id string, status moderation.Status, name, email string) moderation.Entity {
	return moderation.Entity{
		ID:        id,
		Kind:      moderation.KindUser,
		Status:    status,
		CreatedAt: time.Date(2025, 8, 17, 9, 13, 17, 0, time.UTC),
		Display:   map[string]any{"name": name, "email": email},
	}
}

func portfolio(id string, status moderation.Status, title string) moderation.Entity {
	return moderation.Entity{
		ID:      id,
		Kind:    moderation.KindPortfolio,
		Status:  status,
		Display: map[string]any{"title": title},
	}
}

func newLoadedQueue(t *testing.T, src *stubSource) *moderation.Queue {
	t.Helper()
	q := moderation.NewQueue(src, nil)
	ctx := context.Background()
	if _, err := q.Load(ctx, moderation.KindUser, 1, 100, moderation.FilterAll); err != nil {
		t.Fatalf("load users: %v", err)
	}
	if _, err := q.Load(ctx, moderation.KindPortfolio, 1, 100, moderation.FilterAll); err != nil {
		t.Fatalf("load portfolios: %v", err)
	}
	return q
}

func defaultSource() *stubSource {
	return &stubSource{pages: map[moderation.Kind][]moderation.Entity{
		moderation.KindUser: {
			user("136", moderation.StatusPending, "Fatima Shafiee", "fatima.s@example.com"),
			user("137", moderation.StatusApproved, "John Doe", "john.d@example.com"),
		},
		moderation.KindPortfolio: {
			portfolio("115", moderation.StatusPending, "Business Analyst Project"),
			portfolio("116", moderation.StatusApproved, "E-commerce Platform"),
		},
	}}
}

func TestTransitionToCurrentStatusIsLocalNoOp(t *testing.T) {
	src := defaultSource()
	q := newLoadedQueue(t, src)

	res, err := q.Transition(context.Background(), moderation.KindUser, "137", moderation.StatusApproved)
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if res.Outcome != moderation.OutcomeNoOp {
		t.Fatalf("outcome = %v, want NoOp", res.Outcome)
	}
	if len(src.statusCalls) != 0 {
		t.Fatalf("self-transition issued %d remote calls, want 0", len(src.statusCalls))
	}
}

func TestTransitionRejectsStatusOutsideKindSet(t *testing.T) {
	src := defaultSource()
	q := newLoadedQueue(t, src)

	// banned is a user status, not a portfolio status
	_, err := q.Transition(context.Background(), moderation.KindPortfolio, "115", moderation.StatusBanned)
	if !errors.Is(err, moderation.ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
	if len(src.statusCalls) != 0 {
		t.Fatalf("invalid status reached the network: %v", src.statusCalls)
	}

	if _, err := q.Transition(context.Background(), moderation.KindUser, "136", "archived"); !errors.Is(err, moderation.ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestTransitionUnknownIDFailsLocally(t *testing.T) {
	src := defaultSource()
	q := newLoadedQueue(t, src)

	_, err := q.Transition(context.Background(), moderation.KindUser, "999", moderation.StatusApproved)
	if !errors.Is(err, moderation.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(src.statusCalls) != 0 {
		t.Fatal("unknown id should not issue a remote call")
	}
}

func TestFailedTransitionLeavesStoreUntouched(t *testing.T) {
	src := defaultSource()
	q := newLoadedQueue(t, src)
	src.updateErr = errors.New("503 service unavailable")

	_, err := q.Transition(context.Background(), moderation.KindUser, "137", moderation.StatusBanned)
	if !errors.Is(err, moderation.ErrTransitionFailed) {
		t.Fatalf("err = %v, want ErrTransitionFailed", err)
	}
	e, ok := q.Store().Get(moderation.KindUser, "137")
	if !ok {
		t.Fatal("user 137 missing from store")
	}
	if e.Status != moderation.StatusApproved {
		t.Fatalf("status mutated to %q on remote failure", e.Status)
	}
}

func TestTransitionAppliesAfterServerConfirms(t *testing.T) {
	src := defaultSource()
	src.updateMsg = "User status updated"
	q := newLoadedQueue(t, src)

	res, err := q.Transition(context.Background(), moderation.KindUser, "136", moderation.StatusApproved)
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if res.Outcome != moderation.OutcomeApplied || res.Message != "User status updated" {
		t.Fatalf("result = %+v", res)
	}
	if len(src.statusCalls) != 1 {
		t.Fatalf("got %d remote calls, want exactly 1", len(src.statusCalls))
	}
	want := statusCall{moderation.KindUser, "136", moderation.StatusApproved}
	if src.statusCalls[0] != want {
		t.Fatalf("remote call = %+v, want %+v", src.statusCalls[0], want)
	}

	view := q.Search(moderation.KindUser, "")
	if len(view) != 2 {
		t.Fatalf("view has %d users, want 2", len(view))
	}
	for _, e := range view {
		if e.ID == "136" && e.Status != moderation.StatusApproved {
			t.Fatalf("user 136 status = %q, want approved", e.Status)
		}
	}
}

func TestStatusClosureUnderTransitionSequences(t *testing.T) {
	src := defaultSource()
	q := newLoadedQueue(t, src)
	ctx := context.Background()

	seq := []moderation.Status{
		moderation.StatusApproved, moderation.StatusRejected, moderation.StatusHold,
		moderation.StatusBanned, moderation.StatusPending, moderation.StatusApproved,
	}
	for _, target := range seq {
		if _, err := q.Transition(ctx, moderation.KindUser, "136", target); err != nil {
			t.Fatalf("transition to %q: %v", target, err)
		}
		e, _ := q.Store().Get(moderation.KindUser, "136")
		if !moderation.ValidStatus(moderation.KindUser, e.Status) {
			t.Fatalf("status %q outside the user status set", e.Status)
		}
	}
}

func TestRemoveDeletesExactlyOneRecord(t *testing.T) {
	src := defaultSource()
	q := newLoadedQueue(t, src)
	ctx := context.Background()

	res, err := q.Remove(ctx, moderation.KindPortfolio, "116")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if res.Outcome != moderation.OutcomeApplied {
		t.Fatalf("outcome = %v, want Applied", res.Outcome)
	}
	left := q.Search(moderation.KindPortfolio, "")
	if len(left) != 1 || left[0].ID != "115" {
		t.Fatalf("remaining portfolios = %v, want only 115", left)
	}

	// Second remove of the same id: local no-op, no second remote call.
	res, err = q.Remove(ctx, moderation.KindPortfolio, "116")
	if err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if res.Outcome != moderation.OutcomeNoOp {
		t.Fatalf("second remove outcome = %v, want NoOp", res.Outcome)
	}
	if len(src.deleteCalls) != 1 {
		t.Fatalf("got %d delete calls, want 1", len(src.deleteCalls))
	}
}

func TestFailedDeleteKeepsRecord(t *testing.T) {
	src := defaultSource()
	q := newLoadedQueue(t, src)
	src.deleteErr = errors.New("409 conflict")

	_, err := q.Remove(context.Background(), moderation.KindPortfolio, "115")
	if !errors.Is(err, moderation.ErrDeleteFailed) {
		t.Fatalf("err = %v, want ErrDeleteFailed", err)
	}
	if _, ok := q.Store().Get(moderation.KindPortfolio, "115"); !ok {
		t.Fatal("portfolio 115 removed from store despite remote failure")
	}
}

func TestLoadFailureKeepsPreviousSnapshot(t *testing.T) {
	src := defaultSource()
	q := newLoadedQueue(t, src)

	src.fetchErr = errors.New("connection refused")
	_, err := q.Load(context.Background(), moderation.KindUser, 1, 100, moderation.FilterAll)
	if !errors.Is(err, moderation.ErrFetchFailed) {
		t.Fatalf("err = %v, want ErrFetchFailed", err)
	}
	if got := q.Store().Len(moderation.KindUser); got != 2 {
		t.Fatalf("store holds %d users after failed load, want previous 2", got)
	}
}

func TestSetStatusFilterAlwaysRefetches(t *testing.T) {
	src := defaultSource()
	q := newLoadedQueue(t, src)
	before := src.fetchCalls

	view, err := q.SetStatusFilter(context.Background(), moderation.KindUser, moderation.StatusPending)
	if err != nil {
		t.Fatalf("set filter: %v", err)
	}
	if src.fetchCalls != before+1 {
		t.Fatalf("filter change made %d fetches, want 1", src.fetchCalls-before)
	}
	if len(view) != 1 || view[0].ID != "136" {
		t.Fatalf("filtered view = %v, want only pending user 136", view)
	}
	if q.Total(moderation.KindUser) != 1 {
		t.Fatalf("total = %d, want server-side filtered count 1", q.Total(moderation.KindUser))
	}
}

func TestConcurrentTransitionForSameIDIsRejected(t *testing.T) {
	src := defaultSource()
	release := make(chan struct{})
	entered := make(chan struct{})
	blocking := &blockingSource{stubSource: src, entered: entered, release: release}
	qb := moderation.NewQueue(blocking, nil)
	if _, err := qb.Load(context.Background(), moderation.KindUser, 1, 100, moderation.FilterAll); err != nil {
		t.Fatalf("load: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := qb.Transition(context.Background(), moderation.KindUser, "136", moderation.StatusApproved)
		done <- err
	}()
	<-entered

	_, err := qb.Transition(context.Background(), moderation.KindUser, "136", moderation.StatusRejected)
	if !errors.Is(err, moderation.ErrTransitionInFlight) {
		t.Fatalf("err = %v, want ErrTransitionInFlight", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first transition: %v", err)
	}
}

type blockingSource struct {
	*stubSource
	entered chan struct{}
	release chan struct{}
}

func (b *blockingSource) UpdateStatus(ctx context.Context, kind moderation.Kind, id string, status moderation.Status) (string, error) {
	close(b.entered)
	<-b.release
	return b.stubSource.UpdateStatus(ctx, kind, id, status)
}
