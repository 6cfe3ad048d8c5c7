// Package export renders depreciation drafts as spreadsheets for carriers.
package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v2"

	"github.com/mmynk/claimtrack/internal/calculator"
	"github.com/mmynk/claimtrack/internal/models"
)

// DraftSheetName is the name of the worksheet WriteDraftXLSX produces.
const DraftSheetName = "Depreciation Draft"

const (
	moneyFormat = "#,##0.00"
	rateFormat  = "0.00%"
)

// LineItemHeader is the header row above the line items.
var LineItemHeader = []string{"Description", "Cost", "Rate", "Depreciation", "Recoverable"}

// WriteDraftXLSX writes a one-sheet workbook with the claim header, one row
// per line item and a totals block. Amounts are in dollars.
func WriteDraftXLSX(w io.Writer, claim *models.Claim, draft calculator.DepreciationDraft) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(DraftSheetName)
	if err != nil {
		return eris.Wrap(err, "xlsx: add sheet")
	}

	addStrings(sheet, "Depreciation Release Draft")
	addStrings(sheet, "Claim", claimLabel(claim))
	addStrings(sheet, "Carrier", claim.Carrier)
	addStrings(sheet, "Jurisdiction", claim.Jurisdiction)

	addStrings(sheet, LineItemHeader...)
	for _, li := range draft.LineItems {
		row := sheet.AddRow()
		row.AddCell().SetString(li.Description)
		setMoney(row.AddCell(), li.Cost)
		row.AddCell().SetFloatWithFormat(li.DepreciationRate, rateFormat)
		setMoney(row.AddCell(), li.Depreciation)
		setMoney(row.AddCell(), li.Recoverable)
	}

	addTotal(sheet, "Subtotal", draft.SubtotalCents)
	addTotal(sheet, "Depreciation", draft.DepreciationCents)
	addTotal(sheet, "Tax", draft.TaxCents)
	addTotal(sheet, "Total due", draft.TotalDueCents)

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "xlsx: write workbook")
	}
	return nil
}

func claimLabel(claim *models.Claim) string {
	if claim.ClaimNumber != "" {
		return claim.ClaimNumber
	}
	return claim.ID
}

func addStrings(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}

func addTotal(sheet *xlsx.Sheet, label string, cents int64) {
	row := sheet.AddRow()
	row.AddCell().SetString(label)
	setMoney(row.AddCell(), cents)
}

// setMoney writes integer cents as a dollar amount.
func setMoney(cell *xlsx.Cell, cents int64) {
	dollars, _ := decimal.New(cents, -2).Float64()
	cell.SetFloatWithFormat(dollars, moneyFormat)
}
