// Package report reads and writes the dashboard spreadsheet.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ikkim/permit-backend/internal/app/model"
	"github.com/xuri/excelize/v2"
)

const SheetName = "Applications"

type column struct {
	header string
	get    func(s *model.ApplicationSummary) interface{}
	set    func(s *model.ApplicationSummary, v string) error
}

func textCol(header string, field func(*model.ApplicationSummary) *string) column {
	return column{
		header: header,
		get:    func(s *model.ApplicationSummary) interface{} { return *field(s) },
		set:    func(s *model.ApplicationSummary, v string) error { *field(s) = v; return nil },
	}
}

// nullableCol maps an empty cell to NULL.
func nullableCol(header string, field func(*model.ApplicationSummary) **string) column {
	return column{
		header: header,
		get:    func(s *model.ApplicationSummary) interface{} { return model.StringValue(*field(s)) },
		set:    func(s *model.ApplicationSummary, v string) error { *field(s) = model.StringPtr(v); return nil },
	}
}

func numberCol(header string, field func(*model.ApplicationSummary) *float64) column {
	return column{
		header: header,
		get:    func(s *model.ApplicationSummary) interface{} { return *field(s) },
		set: func(s *model.ApplicationSummary, v string) error {
			if v == "" {
				*field(s) = 0
				return nil
			}
			f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
			if err != nil {
				return fmt.Errorf("invalid number %q", v)
			}
			*field(s) = f
			return nil
		},
	}
}

func flagCol(header string, field func(*model.ApplicationSummary) *bool) column {
	return column{
		header: header,
		get: func(s *model.ApplicationSummary) interface{} {
			if *field(s) {
				return "Yes"
			}
			return "No"
		},
		set: func(s *model.ApplicationSummary, v string) error {
			switch strings.ToLower(v) {
			case "yes", "y", "true", "1":
				*field(s) = true
			default:
				*field(s) = false
			}
			return nil
		},
	}
}

type rec = model.ApplicationSummary

var columns = []column{
	textCol("Application ID", func(s *rec) *string { return &s.ApplicationID }),
	textCol("Business Account No", func(s *rec) *string { return &s.BusinessAccountNo }),
	textCol("Date of Application", func(s *rec) *string { return &s.DateOfApplication }),
	textCol("Business Trade Name", func(s *rec) *string { return &s.BusinessTradeName }),
	{
		header: "Ownership Type",
		get:    func(s *rec) interface{} { return string(s.BusinessOwnershipType) },
		set:    func(s *rec, v string) error { s.BusinessOwnershipType = model.OwnershipType(v); return nil },
	},
	numberCol("Business Capital", func(s *rec) *float64 { return &s.BusinessCapital }),
	{
		header: "No of Employees",
		get:    func(s *rec) interface{} { return s.NoOfEmployees },
		set: func(s *rec, v string) error {
			if v == "" {
				s.NoOfEmployees = 0
				return nil
			}
			n, err := strconv.Atoi(strings.ReplaceAll(v, ",", ""))
			if err != nil {
				return fmt.Errorf("invalid number %q", v)
			}
			s.NoOfEmployees = n
			return nil
		},
	},
	textCol("Business Telephone", func(s *rec) *string { return &s.BusinessTelephoneNo }),
	textCol("Business Fax", func(s *rec) *string { return &s.BusinessFaxNo }),
	textCol("Building Name", func(s *rec) *string { return &s.CommercialAddressBuildingName }),
	textCol("Building No", func(s *rec) *string { return &s.CommercialAddressBuildingNo }),
	textCol("Street", func(s *rec) *string { return &s.CommercialAddressStreet }),
	textCol("Barangay No", func(s *rec) *string { return &s.CommercialAddressBarangayNo }),
	textCol("Main Line of Business", func(s *rec) *string { return &s.MainLineOfBusiness }),
	textCol("Main Products/Services", func(s *rec) *string { return &s.MainProductsServices }),
	textCol("SEC Registration No", func(s *rec) *string { return &s.SecRegistrationNo }),
	textCol("DTI Registration No", func(s *rec) *string { return &s.DtiRegistrationNo }),
	textCol("Taxpayer Name", func(s *rec) *string { return &s.TaxpayerName }),
	textCol("Taxpayer Telephone", func(s *rec) *string { return &s.TaxpayerTelephoneNo }),
	textCol("Taxpayer Address", func(s *rec) *string { return &s.TaxpayerAddress }),
	textCol("Taxpayer Barangay No", func(s *rec) *string { return &s.TaxpayerBarangayNo }),
	flagCol("Owned Property", func(s *rec) *bool { return &s.IsOwnedProperty }),
	flagCol("Leased Property", func(s *rec) *bool { return &s.IsLeasedProperty }),
	numberCol("Leased Area (sq m)", func(s *rec) *float64 { return &s.LeasedAreaSqMeter }),
	numberCol("Rent per Month", func(s *rec) *float64 { return &s.RentPerMonth }),
	numberCol("Amount Paid", func(s *rec) *float64 { return &s.AmountPaid }),
	textCol("Business Plate No", func(s *rec) *string { return &s.BusinessPlateNo }),
	textCol("Mayor Permit No", func(s *rec) *string { return &s.MayorPermitNo }),
	textCol("Mayor Permit Date", func(s *rec) *string { return &s.MayorPermitDate }),
	nullableCol("Release Date", func(s *rec) **string { return &s.PermitDateOfRelease }),
	nullableCol("Release Time", func(s *rec) **string { return &s.PermitTimeOfRelease }),
	nullableCol("Released By", func(s *rec) **string { return &s.PermitReleasedBy }),
}

// Headers returns the sheet's column headers in order.
func Headers() []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.header
	}
	return out
}

// Write renders rows as an XLSX workbook with a single sheet.
func Write(w io.Writer, rows []model.ApplicationSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c.header
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for r := range rows {
		values := make([]interface{}, len(columns))
		for i, c := range columns {
			values[i] = c.get(&rows[r])
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r+2, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	_, err := f.WriteTo(w)
	return err
}

// RowError describes a spreadsheet row that could not be read.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

// Read parses a workbook in the layout produced by Write. Columns are matched
// by header so extra or reordered columns are tolerated. Rows that fail to
// parse are reported and skipped.
func Read(r io.Reader) ([]model.ApplicationSummary, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open XLSX: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, fmt.Errorf("no sheets found in XLSX file")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("no data found in XLSX file")
	}

	byHeader := make(map[string]column, len(columns))
	for _, c := range columns {
		byHeader[strings.ToLower(c.header)] = c
	}
	index := make(map[int]column)
	for i, h := range rows[0] {
		if c, ok := byHeader[strings.ToLower(strings.TrimSpace(h))]; ok {
			index[i] = c
		}
	}
	if len(index) == 0 {
		return nil, nil, fmt.Errorf("no known columns in header row")
	}

	var (
		out     []model.ApplicationSummary
		skipped []RowError
	)
	for n, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		var s model.ApplicationSummary
		var rowErr error
		for i, cell := range row {
			c, ok := index[i]
			if !ok {
				continue
			}
			if err := c.set(&s, strings.TrimSpace(cell)); err != nil {
				rowErr = fmt.Errorf("%s: %w", c.header, err)
				break
			}
		}
		if rowErr != nil {
			skipped = append(skipped, RowError{Row: n + 2, Err: rowErr})
			continue
		}
		out = append(out, s)
	}
	return out, skipped, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
