package export_test

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"stockledger/internal/domain"
	"stockledger/internal/export"
)

func TestBalanceWorkbook(t *testing.T) {
	rows := []domain.BalanceRow{
		{Product: "Widget", Location: "Warehouse", Qty: 6},
		{Product: "Widget", Location: "Store", Qty: 4},
	}

	buf, err := export.BalanceWorkbook(rows)
	if err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	checks := map[string]string{
		"A1": "product", "B1": "location", "C1": "qty",
		"A2": "Widget", "B2": "Warehouse", "C2": "6",
		"A3": "Widget", "B3": "Store", "C3": "4",
	}
	for cell, want := range checks {
		got, err := f.GetCellValue(sheet, cell)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("%s: want %q, got %q", cell, want, got)
		}
	}
}

func TestBalanceWorkbookEmpty(t *testing.T) {
	buf, err := export.BalanceWorkbook(nil)
	if err != nil {
		t.Fatal(err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	got, err := f.GetCellValue(sheet, "A1")
	if err != nil {
		t.Fatal(err)
	}
	if got != "product" {
		t.Fatalf("header missing on empty report: %q", got)
	}
}
