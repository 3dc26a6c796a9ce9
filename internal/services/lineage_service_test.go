package services

import (
	"testing"

	"github.com/sjperalta/frontdesk-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRelatedBills_FromAnyMember(t *testing.T) {
	f := newLedgerFixture(t)
	root, charges := f.billWithCharges("F-700", "100", "200", "300")

	first, err := f.splits.Split(f.ctx, SplitRequest{BillNo: root.BillNo, ChargeIDs: []uint{charges[1].ID}}, testActor)
	require.NoError(t, err)
	second, err := f.splits.Split(f.ctx, SplitRequest{BillNo: root.BillNo, ChargeIDs: []uint{charges[2].ID}}, testActor)
	require.NoError(t, err)

	want := []string{root.BillNo, first.NewBill.BillNo, second.NewBill.BillNo}
	for _, start := range want {
		lineage, err := f.lineage.GetRelatedBills(f.ctx, start)
		require.NoError(t, err, start)
		assert.Equal(t, root.BillNo, lineage.RootBillNo)

		got := make([]string, len(lineage.Bills))
		for i, b := range lineage.Bills {
			got[i] = b.BillNo
		}
		assert.Equal(t, want, got, "lineage from %s", start)
		assertMoney(t, "600", lineage.TotalAmount())
		assertMoney(t, "600", lineage.BalanceAmount())
	}
}

func TestGetRelatedBills_RecomputeIsNotPersisted(t *testing.T) {
	f := newLedgerFixture(t)
	stay := f.stay("F-710", nil, true)
	f.charge("F-710", "900")
	bill, err := f.bills.GenerateBill(f.ctx, "F-710", testActor)
	require.NoError(t, err)

	require.NoError(t, f.db.Model(stay).Update("room_rate", money("600")).Error)

	lineage, err := f.lineage.GetRelatedBills(f.ctx, bill.BillNo)
	require.NoError(t, err)
	require.Len(t, lineage.Bills, 1)
	assertMoney(t, "600", lineage.Bills[0].BalanceAmount)

	assertMoney(t, "900", f.reload(bill.BillNo).BalanceAmount)
}

func TestGetRelatedBills_MissingRootIsSkipped(t *testing.T) {
	f := newLedgerFixture(t)
	orphan := &models.Bill{
		BillNo:           "BL-orphan",
		FolioNo:          "F-720",
		TotalAmount:      money("50"),
		AdvanceAmount:    money("0"),
		PaidAmount:       money("0"),
		BalanceAmount:    money("50"),
		SettlementStatus: models.SettlementStatusPending,
		IsSplitBill:      true,
		OriginalBillNo:   "BL-gone",
		SplitSequence:    1,
	}
	require.NoError(t, f.repos.Bill.Create(f.ctx, orphan))

	lineage, err := f.lineage.GetRelatedBills(f.ctx, orphan.BillNo)
	require.NoError(t, err)
	assert.Equal(t, "BL-gone", lineage.RootBillNo)
	require.Len(t, lineage.Bills, 1)
	assert.Equal(t, orphan.BillNo, lineage.Bills[0].BillNo)
}

func TestGetRelatedBills_NotFound(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.lineage.GetRelatedBills(f.ctx, "BL-missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBillNotFound)
	assert.Equal(t, KindNotFound, KindOf(err))
}
