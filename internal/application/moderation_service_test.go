package application

import (
	"context"
	"errors"
	"testing"

	"github.com/nasirhussainn/qwork-admin-dashboard/internal/domain/entity"
	repo "github.com/nasirhussainn/qwork-admin-dashboard/internal/domain/repository"
	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/moderation"
)

type fakeAccountRepo struct {
	accounts map[int64]*entity.Account
	listErr  error
}

func newFakeAccountRepo(accounts ...*entity.Account) *fakeAccountRepo {
	m := make(map[int64]*entity.Account, len(accounts))
	for _, a := range accounts {
		m[a.ID] = a
	}
	return &fakeAccountRepo{accounts: m}
}

func (r *fakeAccountRepo) List(_ context.Context, page, limit int, status moderation.Status) ([]entity.Account, int, error) {
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	out := []entity.Account{}
	for _, a := range r.accounts {
		if status != "" && status != moderation.FilterAll && a.Status != status {
			continue
		}
		out = append(out, *a)
	}
	return out, len(out), nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id int64) (*entity.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return a, nil
}

func (r *fakeAccountRepo) UpdateStatus(_ context.Context, id int64, status moderation.Status) error {
	a, ok := r.accounts[id]
	if !ok {
		return repo.ErrNotFound
	}
	a.Status = status
	return nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.accounts[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.accounts, id)
	return nil
}

func (r *fakeAccountRepo) CountByStatus(_ context.Context) (map[moderation.Status]int, error) {
	out := map[moderation.Status]int{}
	for _, a := range r.accounts {
		out[a.Status]++
	}
	return out, nil
}

type fakePortfolioRepo struct {
	portfolios map[int64]*entity.Portfolio
}

func newFakePortfolioRepo(portfolios ...*entity.Portfolio) *fakePortfolioRepo {
	m := make(map[int64]*entity.Portfolio, len(portfolios))
	for _, p := range portfolios {
		m[p.ID] = p
	}
	return &fakePortfolioRepo{portfolios: m}
}

func (r *fakePortfolioRepo) List(_ context.Context, page, limit int, status moderation.Status) ([]entity.Portfolio, int, error) {
	out := []entity.Portfolio{}
	for _, p := range r.portfolios {
		if status != "" && status != moderation.FilterAll && p.Status != status {
			continue
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (r *fakePortfolioRepo) GetByID(_ context.Context, id int64) (*entity.Portfolio, error) {
	p, ok := r.portfolios[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return p, nil
}

func (r *fakePortfolioRepo) UpdateStatus(_ context.Context, id int64, status moderation.Status) error {
	p, ok := r.portfolios[id]
	if !ok {
		return repo.ErrNotFound
	}
	p.Status = status
	return nil
}

func (r *fakePortfolioRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.portfolios[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.portfolios, id)
	return nil
}

func (r *fakePortfolioRepo) CountByStatus(_ context.Context) (map[moderation.Status]int, error) {
	out := map[moderation.Status]int{}
	for _, p := range r.portfolios {
		out[p.Status]++
	}
	return out, nil
}

type fakeAuditRepo struct {
	entries []repo.AuditEntry
}

func (r *fakeAuditRepo) Insert(_ context.Context, e repo.AuditEntry) error {
	r.entries = append(r.entries, e)
	return nil
}

func testService(accounts *fakeAccountRepo, portfolios *fakePortfolioRepo, audit *fakeAuditRepo) *ModerationService {
	return NewModerationService(accounts, portfolios, audit, nil, nil, nil, "", "")
}

func pendingAccount(id int64) *entity.Account {
	return &entity.Account{
		ID:     id,
		Email:  "user@example.com",
		Status: moderation.StatusPending,
		Profile: entity.AccountProfile{
			FirstName: "Fatima",
			LastName:  "Shafiee",
		},
	}
}

func pendingPortfolio(id int64) *entity.Portfolio {
	return &entity.Portfolio{ID: id, UserID: 1, Title: "Residential Electrical Work", Status: moderation.StatusPending}
}

func TestUpdateAccountStatusRejectsInvalidStatus(t *testing.T) {
	accounts := newFakeAccountRepo(pendingAccount(136))
	svc := testService(accounts, newFakePortfolioRepo(), &fakeAuditRepo{})

	_, err := svc.UpdateAccountStatus(context.Background(), 136, moderation.Status("archived"), Actor{})
	if !errors.Is(err, moderation.ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
	if got := accounts.accounts[136].Status; got != moderation.StatusPending {
		t.Fatalf("status mutated to %q on invalid input", got)
	}
}

func TestUpdatePortfolioStatusRejectsUserOnlyStatus(t *testing.T) {
	portfolios := newFakePortfolioRepo(pendingPortfolio(115))
	svc := testService(newFakeAccountRepo(), portfolios, &fakeAuditRepo{})

	_, err := svc.UpdatePortfolioStatus(context.Background(), 115, moderation.StatusBanned, Actor{})
	if !errors.Is(err, moderation.ErrInvalidStatus) {
		t.Fatalf("banned is not a portfolio status, err = %v", err)
	}
}

func TestUpdateAccountStatusAppliesAndAudits(t *testing.T) {
	accounts := newFakeAccountRepo(pendingAccount(136))
	audit := &fakeAuditRepo{}
	svc := testService(accounts, newFakePortfolioRepo(), audit)

	msg, err := svc.UpdateAccountStatus(context.Background(), 136, moderation.StatusApproved, Actor{AdminID: "a1", IP: "10.0.0.1"})
	if err != nil {
		t.Fatalf("UpdateAccountStatus: %v", err)
	}
	if msg != `User status updated to "approved"` {
		t.Fatalf("msg = %q", msg)
	}
	if accounts.accounts[136].Status != moderation.StatusApproved {
		t.Fatalf("status = %q, want approved", accounts.accounts[136].Status)
	}
	if len(audit.entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(audit.entries))
	}
	e := audit.entries[0]
	if e.Action != "update_status" || e.EntityKind != "user" || e.EntityID != "136" || e.AdminID != "a1" {
		t.Fatalf("unexpected audit entry %+v", e)
	}
}

func TestUpdateAccountStatusUnknownID(t *testing.T) {
	svc := testService(newFakeAccountRepo(), newFakePortfolioRepo(), &fakeAuditRepo{})

	_, err := svc.UpdateAccountStatus(context.Background(), 999, moderation.StatusApproved, Actor{})
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("err = %v, want ErrAccountNotFound", err)
	}
}

func TestDeletePortfolioRemovesAndAudits(t *testing.T) {
	portfolios := newFakePortfolioRepo(pendingPortfolio(115))
	audit := &fakeAuditRepo{}
	svc := testService(newFakeAccountRepo(), portfolios, audit)

	if err := svc.DeletePortfolio(context.Background(), 115, Actor{AdminID: "a1"}); err != nil {
		t.Fatalf("DeletePortfolio: %v", err)
	}
	if _, ok := portfolios.portfolios[115]; ok {
		t.Fatal("portfolio still present after delete")
	}
	if err := svc.DeletePortfolio(context.Background(), 115, Actor{}); !errors.Is(err, ErrPortfolioNotFound) {
		t.Fatalf("second delete err = %v, want ErrPortfolioNotFound", err)
	}
	if len(audit.entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(audit.entries))
	}
}

func TestListAccountsRejectsInvalidFilter(t *testing.T) {
	svc := testService(newFakeAccountRepo(pendingAccount(136)), newFakePortfolioRepo(), &fakeAuditRepo{})

	_, _, _, _, err := svc.ListAccounts(context.Background(), 1, 100, moderation.Status("archived"))
	if !errors.Is(err, moderation.ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestListAccountsAcceptsAllSentinel(t *testing.T) {
	svc := testService(newFakeAccountRepo(pendingAccount(136)), newFakePortfolioRepo(), &fakeAuditRepo{})

	accounts, total, page, limit, err := svc.ListAccounts(context.Background(), 0, 0, moderation.FilterAll)
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	if total != 1 || len(accounts) != 1 {
		t.Fatalf("total = %d, len = %d", total, len(accounts))
	}
	if page != 1 || limit != 100 {
		t.Fatalf("clamped page/limit = %d/%d, want 1/100", page, limit)
	}
}

func TestClampPage(t *testing.T) {
	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 100},
		{-5, 500, 1, 100},
		{3, 25, 3, 25},
	}
	for _, tc := range cases {
		p, l := clampPage(tc.page, tc.limit)
		if p != tc.wantPage || l != tc.wantLimit {
			t.Errorf("clampPage(%d, %d) = %d, %d; want %d, %d", tc.page, tc.limit, p, l, tc.wantPage, tc.wantLimit)
		}
	}
}
