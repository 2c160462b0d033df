package bills

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Conversly/community-api/internal/queries"
	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Store interface {
	GetResident(ctx context.Context, communityID, id string) (types.Resident, error)
	CreateBill(ctx context.Context, b types.Bill) (types.Bill, error)
	GetBill(ctx context.Context, communityID, id string) (types.Bill, error)
	ListBills(ctx context.Context, communityID string, bf types.BillFilter, p types.Pagination) ([]types.Bill, int, error)
	GenerateBills(ctx context.Context, tmpl types.Bill) (types.GenerateResult, error)
	PayBill(ctx context.Context, communityID, id, method, reference string, at time.Time) error
	DeleteBill(ctx context.Context, communityID, id string) error
	SummarizeBills(ctx context.Context, communityID, period, residentID string, today time.Time) (types.BillSummary, error)
}

type Service struct {
	store Store
	loc   *time.Location
	now   func() time.Time
}

func NewService(store Store, loc *time.Location) *Service {
	return &Service{store: store, loc: loc, now: time.Now}
}

// today is the current time in the community's zone.
func (s *Service) today() time.Time {
	return s.now().In(s.loc)
}

// CurrentPeriod is the billing month containing now.
func (s *Service) CurrentPeriod() string {
	return s.today().Format("2006-01")
}

// checkAmount requires a positive amount with at most two decimal places.
func checkAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return utils.BadRequest("amount must be greater than zero")
	}
	if !amount.Equal(amount.Round(2)) {
		return utils.BadRequest("amount must have at most two decimal places")
	}
	return nil
}

func (s *Service) parseDue(raw string) (time.Time, error) {
	due, err := time.ParseInLocation(time.DateOnly, raw, s.loc)
	if err != nil {
		return time.Time{}, utils.BadRequest("dueDate must be YYYY-MM-DD")
	}
	return due, nil
}

func (s *Service) present(b types.Bill) types.Bill {
	b.Status = b.EffectiveStatus(s.today())
	return b
}

// Generate bills every active resident for the period.
func (s *Service) Generate(ctx context.Context, communityID string, req GenerateRequest) (types.GenerateResult, error) {
	if err := checkAmount(req.Amount); err != nil {
		return types.GenerateResult{}, err
	}
	due, err := s.parseDue(req.DueDate)
	if err != nil {
		return types.GenerateResult{}, err
	}

	result, err := s.store.GenerateBills(ctx, types.Bill{
		CommunityID: communityID,
		Period:      req.Period,
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
		DueDate:     due,
	})
	if err != nil {
		return types.GenerateResult{}, err
	}
	utils.Zlog.Info("Bills generated",
		zap.String("communityId", communityID),
		zap.String("period", result.Period),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

func (s *Service) Create(ctx context.Context, communityID string, req CreateBillRequest) (types.Bill, error) {
	if err := checkAmount(req.Amount); err != nil {
		return types.Bill{}, err
	}
	due, err := s.parseDue(req.DueDate)
	if err != nil {
		return types.Bill{}, err
	}
	resident, err := s.store.GetResident(ctx, communityID, req.ResidentID)
	if err != nil {
		return types.Bill{}, shared.StoreError(err, "resident")
	}

	bill, err := s.store.CreateBill(ctx, types.Bill{
		CommunityID: communityID,
		ResidentID:  resident.ID,
		Period:      req.Period,
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
		DueDate:     due,
		Status:      types.BillUnpaid,
	})
	if err != nil {
		if errors.Is(err, queries.ErrDuplicate) {
			return types.Bill{}, utils.Conflict("resident already has a bill for %s", req.Period)
		}
		return types.Bill{}, shared.StoreError(err, "bill")
	}
	return s.present(bill), nil
}

func (s *Service) Get(ctx context.Context, communityID string, principal types.Principal, id string) (types.Bill, error) {
	bill, err := s.store.GetBill(ctx, communityID, id)
	if err != nil {
		return types.Bill{}, shared.StoreError(err, "bill")
	}
	if err := shared.CheckResidentAccess(principal, bill.ResidentID); err != nil {
		return types.Bill{}, err
	}
	return s.present(bill), nil
}

func (s *Service) List(ctx context.Context, communityID string, principal types.Principal, filter types.BillFilter, p types.Pagination) (types.ListResponse[types.Bill], error) {
	switch filter.Status {
	case "", types.BillUnpaid, types.BillPaid, types.BillOverdue:
	default:
		return types.ListResponse[types.Bill]{}, utils.BadRequest("unknown bill status %q", filter.Status)
	}
	if filter.Period != "" && !utils.ValidPeriod(filter.Period) {
		return types.ListResponse[types.Bill]{}, utils.BadRequest("period must be YYYY-MM")
	}
	filter.ResidentID = shared.ResidentFilter(principal, filter.ResidentID)
	filter.Today = s.today()

	items, total, err := s.store.ListBills(ctx, communityID, filter, p)
	if err != nil {
		return types.ListResponse[types.Bill]{}, err
	}
	for i := range items {
		items[i] = s.present(items[i])
	}
	return types.NewList(items, p, total), nil
}

func (s *Service) Pay(ctx context.Context, communityID string, principal types.Principal, id string, req PayRequest) (types.Bill, error) {
	bill, err := s.Get(ctx, communityID, principal, id)
	if err != nil {
		return types.Bill{}, err
	}
	if bill.Status == types.BillPaid {
		return types.Bill{}, utils.Conflict("bill is already paid")
	}

	if err := s.store.PayBill(ctx, communityID, id, req.Method, strings.TrimSpace(req.Reference), s.now().UTC()); err != nil {
		if errors.Is(err, queries.ErrNotFound) {
			return types.Bill{}, utils.Conflict("bill is already paid")
		}
		return types.Bill{}, err
	}
	utils.Zlog.Info("Bill paid",
		zap.String("communityId", communityID),
		zap.String("billId", id),
		zap.String("method", req.Method),
		zap.String("amount", bill.Amount.StringFixed(2)))
	return s.Get(ctx, communityID, principal, id)
}

func (s *Service) Delete(ctx context.Context, communityID, id string) error {
	bill, err := s.store.GetBill(ctx, communityID, id)
	if err != nil {
		return shared.StoreError(err, "bill")
	}
	if bill.Status == types.BillPaid {
		return utils.Conflict("a paid bill cannot be deleted")
	}
	if err := s.store.DeleteBill(ctx, communityID, id); err != nil {
		if errors.Is(err, queries.ErrNotFound) {
			return utils.Conflict("a paid bill cannot be deleted")
		}
		return err
	}
	return nil
}

// Summary totals bills for a period; residents only see their own totals.
func (s *Service) Summary(ctx context.Context, communityID string, principal types.Principal, period string) (types.BillSummary, error) {
	if period != "" && !utils.ValidPeriod(period) {
		return types.BillSummary{}, utils.BadRequest("period must be YYYY-MM")
	}
	residentID := shared.ResidentFilter(principal, "")
	return s.store.SummarizeBills(ctx, communityID, period, residentID, s.today())
}
