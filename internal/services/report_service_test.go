package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/aungaung101025-ux/adupayment/internal/models"
	"github.com/aungaung101025-ux/adupayment/internal/testutil"
)

func TestSummary(t *testing.T) {
	t.Run("current_month_totals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db)
		catSvc := NewCategoryService(db, userSvc)
		accSvc := NewAccountService(db)
		txSvc := NewTransactionService(db, userSvc, catSvc, accSvc)
		svc := NewReportService(db, txSvc).(*reportService)
		svc.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeIncome, 100000, "Salary",
			time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
		testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeExpense, 30000, "Rent & Bills",
			time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))
		// Previous month, excluded.
		testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeExpense, 99999, "Food & Dining",
			time.Date(2025, 5, 31, 9, 0, 0, 0, time.UTC))

		summary, err := svc.Summary(user.ID)
		testutil.AssertNoError(t, err)
		if summary.TotalIncome != 100000 {
			t.Errorf("expected income 100000, got %d", summary.TotalIncome)
		}
		if summary.TotalExpense != 30000 {
			t.Errorf("expected expense 30000, got %d", summary.TotalExpense)
		}
		if summary.Balance != 70000 {
			t.Errorf("expected balance 70000, got %d", summary.Balance)
		}
	})
}

func TestAssembleReport(t *testing.T) {
	t.Run("totals_and_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db)
		catSvc := NewCategoryService(db, userSvc)
		accSvc := NewAccountService(db)
		txSvc := NewTransactionService(db, userSvc, catSvc, accSvc)
		svc := NewReportService(db, txSvc)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeIncome, 50000, "Salary",
			time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC))
		testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeExpense, 12000, "Transport",
			time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC))
		// Outside March, excluded by the month window.
		testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeExpense, 7000, "Food & Dining",
			time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC))

		start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		data, err := svc.AssembleReport(user.ID, &start, nil)
		testutil.AssertNoError(t, err)
		if len(data.Transactions) != 2 {
			t.Fatalf("expected 2 transactions in March, got %d", len(data.Transactions))
		}
		if data.TotalIncome != 50000 || data.TotalExpense != 12000 || data.Balance != 38000 {
			t.Errorf("unexpected totals: income=%d expense=%d balance=%d",
				data.TotalIncome, data.TotalExpense, data.Balance)
		}
		if data.Start.Day() != 1 || data.Start.Month() != time.March {
			t.Errorf("expected range snapped to month start, got %v", data.Start)
		}
		if data.End.Day() != 31 || data.End.Month() != time.March {
			t.Errorf("expected range snapped to month end, got %v", data.End)
		}
	})

	t.Run("open_range_spans_all_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db)
		catSvc := NewCategoryService(db, userSvc)
		accSvc := NewAccountService(db)
		txSvc := NewTransactionService(db, userSvc, catSvc, accSvc)
		svc := NewReportService(db, txSvc)
		user := testutil.CreateTestUser(t, db)

		first := time.Date(2025, 1, 3, 9, 0, 0, 0, time.UTC)
		last := time.Date(2025, 4, 7, 9, 0, 0, 0, time.UTC)
		testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeIncome, 10000, "Salary", first)
		testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeExpense, 4000, "Transport", last)

		data, err := svc.AssembleReport(user.ID, nil, nil)
		testutil.AssertNoError(t, err)
		if !data.Start.Equal(first) || !data.End.Equal(last) {
			t.Errorf("expected range [%v, %v], got [%v, %v]", first, last, data.Start, data.End)
		}
	})
}

func TestExport(t *testing.T) {
	setup := func(t *testing.T) (ReportServicer, int64, func()) {
		db := testutil.SetupTestDB(t)
		userSvc := NewUserService(db)
		catSvc := NewCategoryService(db, userSvc)
		accSvc := NewAccountService(db)
		txSvc := NewTransactionService(db, userSvc, catSvc, accSvc)
		svc := NewReportService(db, txSvc)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeExpense, 12000, "Transport",
			time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC))
		return svc, user.ID, func() { testutil.TeardownTestDB(t, db) }
	}

	t.Run("csv_bytes", func(t *testing.T) {
		svc, userID, teardown := setup(t)
		defer teardown()

		start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		result, err := svc.Export(userID, "March Report", &start, nil, "csv")
		testutil.AssertNoError(t, err)
		if !strings.HasSuffix(result.Filename, ".csv") {
			t.Errorf("expected csv filename, got %s", result.Filename)
		}
		if !bytes.HasPrefix(result.Data, []byte{0xEF, 0xBB, 0xBF}) {
			t.Error("expected UTF-8 BOM prefix")
		}
		body := string(result.Data)
		if !strings.Contains(body, "Transport") || !strings.Contains(body, "12000") {
			t.Errorf("expected transaction row in csv, got %q", body)
		}
	})

	t.Run("excel_bytes", func(t *testing.T) {
		svc, userID, teardown := setup(t)
		defer teardown()

		start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		result, err := svc.Export(userID, "", &start, nil, "xlsx")
		testutil.AssertNoError(t, err)
		if !strings.HasSuffix(result.Filename, ".xlsx") {
			t.Errorf("expected xlsx filename, got %s", result.Filename)
		}
		// xlsx is a zip archive.
		if !bytes.HasPrefix(result.Data, []byte("PK")) {
			t.Error("expected zip container signature")
		}
	})

	t.Run("empty_range", func(t *testing.T) {
		svc, userID, teardown := setup(t)
		defer teardown()

		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		_, err := svc.Export(userID, "", &start, nil, "csv")
		testutil.AssertAppError(t, err, "NO_REPORT_DATA")
	})

	t.Run("unknown_format", func(t *testing.T) {
		svc, userID, teardown := setup(t)
		defer teardown()

		start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		_, err := svc.Export(userID, "", &start, nil, "pdf")
		testutil.AssertAppError(t, err, "UNKNOWN_EXPORT_FORMAT")
	})
}
