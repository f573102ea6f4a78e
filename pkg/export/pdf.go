package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// CertificateData holds the fields printed on an enrollment certificate.
type CertificateData struct {
	SerialNumber string
	FacultyName  string
	StudentName  string
	IssuedAt     time.Time
}

// ReceiptData holds the fields printed on a tuition payment receipt.
type ReceiptData struct {
	FeeID     string
	StudentID int64
	DegreeID  int64
	Amount    string
	Deadline  time.Time
	IssuedAt  time.Time
}

// PDFRenderer renders certificate and receipt documents.
type PDFRenderer struct{}

// NewPDFRenderer constructs a PDF renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Certificate renders an enrollment certificate document.
func (r *PDFRenderer) Certificate(data CertificateData) ([]byte, error) {
	if data.StudentName == "" {
		return nil, fmt.Errorf("certificate requires a student name")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 30, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, strings.ToUpper(data.FacultyName), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "CERTIFICATE OF ENROLLMENT", "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	body := fmt.Sprintf("This is to certify that %s is enrolled at %s.",
		data.StudentName, data.FacultyName)
	pdf.MultiCell(0, 7, body, "", "C", false)
	pdf.Ln(15)

	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Serial: %s", data.SerialNumber), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Issued: %s", data.IssuedAt.Format("2 January 2006")), "", 1, "L", false, 0, "")

	return output(pdf)
}

// Receipt renders a payment receipt for a settled tuition fee.
func (r *PDFRenderer) Receipt(data ReceiptData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "TUITION FEE RECEIPT", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	rows := [][2]string{
		{"Receipt for fee", data.FeeID},
		{"Student", fmt.Sprintf("%d", data.StudentID)},
		{"Degree", fmt.Sprintf("%d", data.DegreeID)},
		{"Amount paid", data.Amount},
		{"Deadline", data.Deadline.Format("2006-01-02")},
		{"Issued", data.IssuedAt.Format("2006-01-02")},
	}

	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(60, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(120, 8, row[1], "1", 1, "L", false, 0, "")
	}

	return output(pdf)
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
