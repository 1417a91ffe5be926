package commission

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{
	"customer_id", "business_name", "rep_id", "rep_name",
	"deal_amount", "commission_rate", "split_percent", "paid_to_date",
	"total_commission", "rep_commission", "commission_on_paid",
	"rep_commission_on_paid", "commission_paid", "commission_owed_now",
	"monthly_commission", "payment_status", "deal_date",
}

// WriteCSV writes entries as a flat CSV report.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write(record(e)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes entries as a single-sheet spreadsheet.
func WriteXLSX(w io.Writer, entries []Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Commissions"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	for col, h := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for row, e := range entries {
		for col, v := range record(e) {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return f.Write(w)
}

func record(e Entry) []string {
	return []string{
		e.CustomerID,
		e.BusinessName,
		e.RepID,
		e.RepName,
		money(e.DealAmount),
		fmt.Sprintf("%g", e.Rate),
		fmt.Sprintf("%g", e.SplitPercent),
		money(e.PaidToDate),
		money(e.TotalCommission),
		money(e.RepCommission),
		money(e.CommissionOnPaid),
		money(e.RepCommissionOnPaid),
		money(e.CommissionPaid),
		money(e.CommissionOwedNow),
		money(e.MonthlyCommission),
		string(e.PaymentStatus),
		e.DealDate.Format("2006-01-02"),
	}
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
