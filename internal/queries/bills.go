package queries

import (
	"context"
	"time"

	"github.com/Conversly/community-api/internal/types"
	"github.com/google/uuid"
)

const billColumns = "id, community_id, resident_id, period, amount, description, due_date, status, paid_at, payment_method, payment_ref, created_at, updated_at"

func (s *Store) CreateBill(ctx context.Context, b types.Bill) (types.Bill, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	b.CreatedAt, b.UpdatedAt = now, now

	_, err := s.exec(ctx, `
		INSERT INTO bills (id, community_id, resident_id, period, amount, description, due_date, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?::date, ?, ?, ?)
	`, b.ID, b.CommunityID, b.ResidentID, b.Period, b.Amount, b.Description, b.DueDate.Format(time.DateOnly), b.Status, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return types.Bill{}, err
	}
	return b, nil
}

func (s *Store) GetBill(ctx context.Context, communityID, id string) (types.Bill, error) {
	var b types.Bill
	err := s.get(ctx, &b, "SELECT "+billColumns+" FROM bills WHERE community_id = ? AND id = ?", communityID, id)
	return b, err
}

func (s *Store) ListBills(ctx context.Context, communityID string, bf types.BillFilter, p types.Pagination) ([]types.Bill, int, error) {
	f := scoped(communityID).eq("period", bf.Period).eq("resident_id", bf.ResidentID)
	billFilterStatus(f, bf.Status, bf.Today)
	return page[types.Bill](ctx, s, billColumns, "bills", f, "period DESC, due_date, id", p)
}

// billFilterStatus maps the derived statuses onto stored ones. Overdue is an
// unpaid bill whose due date has passed; unpaid includes overdue bills.
func billFilterStatus(f *filter, status types.BillStatus, today time.Time) {
	day := today.Format(time.DateOnly)
	switch status {
	case types.BillOverdue:
		f.add("status = ? AND due_date < ?::date", types.BillUnpaid, day)
	case types.BillUnpaid:
		f.add("status = ?", types.BillUnpaid)
	case types.BillPaid:
		f.add("status = ?", types.BillPaid)
	}
}

// GenerateBills creates one bill from tmpl for every active resident of the
// community. Residents already billed for the period are skipped.
func (s *Store) GenerateBills(ctx context.Context, tmpl types.Bill) (types.GenerateResult, error) {
	result := types.GenerateResult{Period: tmpl.Period}
	now := time.Now().UTC()

	err := s.inTx(ctx, func(tx *Store) error {
		ids, err := tx.ListActiveResidentIDs(ctx, tmpl.CommunityID)
		if err != nil {
			return err
		}
		for _, residentID := range ids {
			n, err := tx.exec(ctx, `
				INSERT INTO bills (id, community_id, resident_id, period, amount, description, due_date, status, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?::date, ?, ?, ?)
				ON CONFLICT (resident_id, period) DO NOTHING
			`, uuid.NewString(), tmpl.CommunityID, residentID, tmpl.Period, tmpl.Amount, tmpl.Description,
				tmpl.DueDate.Format(time.DateOnly), types.BillUnpaid, now, now)
			if err != nil {
				return err
			}
			if n == 0 {
				result.Skipped++
			} else {
				result.Created++
			}
		}
		return nil
	})
	if err != nil {
		return types.GenerateResult{Period: tmpl.Period}, err
	}
	return result, nil
}

// PayBill marks an unpaid bill paid. A bill that is already paid reports ErrNotFound.
func (s *Store) PayBill(ctx context.Context, communityID, id, method, reference string, at time.Time) error {
	return s.execOne(ctx, `
		UPDATE bills SET status = ?, paid_at = ?, payment_method = ?, payment_ref = NULLIF(?, ''), updated_at = now()
		WHERE community_id = ? AND id = ? AND status = ?
	`, types.BillPaid, at, method, reference, communityID, id, types.BillUnpaid)
}

func (s *Store) DeleteBill(ctx context.Context, communityID, id string) error {
	return s.execOne(ctx, "DELETE FROM bills WHERE community_id = ? AND id = ? AND status = ?",
		communityID, id, types.BillUnpaid)
}

// SummarizeBills totals the community's bills, optionally narrowed to a
// period and a resident. Overdue is measured against today.
func (s *Store) SummarizeBills(ctx context.Context, communityID, period, residentID string, today time.Time) (types.BillSummary, error) {
	f := scoped(communityID).eq("period", period).eq("resident_id", residentID)
	args := append([]interface{}{today.Format(time.DateOnly)}, f.args...)

	summary := types.BillSummary{Period: period}
	err := s.get(ctx, &summary, `
		SELECT
			count(*) AS count,
			count(*) FILTER (WHERE status = 'paid') AS paid_count,
			COALESCE(sum(amount), 0) AS billed,
			COALESCE(sum(amount) FILTER (WHERE status = 'paid'), 0) AS collected,
			COALESCE(sum(amount) FILTER (WHERE status = 'unpaid'), 0) AS outstanding,
			COALESCE(sum(amount) FILTER (WHERE status = 'unpaid' AND due_date < ?::date), 0) AS overdue
		FROM bills`+f.where(), args...)
	summary.Period = period
	return summary, err
}
