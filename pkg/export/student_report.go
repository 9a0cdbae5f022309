package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/funval/hs-dashboard/internal/models"
)

// StudentReport renders a student's profile and service history into a PDF
// document, the server-side counterpart of the dashboard's report download.
type StudentReport struct{}

// NewStudentReport constructs the report renderer.
func NewStudentReport() *StudentReport {
	return &StudentReport{}
}

// Render produces the PDF bytes for a student.
func (r *StudentReport) Render(student *models.Student, generatedAt time.Time) ([]byte, error) {
	if student == nil {
		return nil, fmt.Errorf("student report requires a student")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(16, 15, 16)
	pdf.AddPage()
	pageWidth, _ := pdf.GetPageSize()
	usable := pageWidth - 32

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(usable, 10, "REPORTE DE ESTUDIANTE", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(usable, 6, "Fecha de generacion: "+generatedAt.Format("02/01/2006"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	r.sectionTitle(pdf, usable, "Datos del Estudiante")
	r.keyValue(pdf, "Nombre", student.FullName())
	r.keyValue(pdf, "Email", student.Email)
	r.keyValue(pdf, "Pais", student.Country)
	pdf.Ln(3)

	if len(student.Schools) > 0 {
		r.sectionTitle(pdf, usable, "Escuelas")
		for _, school := range student.Schools {
			pdf.SetFont("Arial", "", 10)
			pdf.CellFormat(usable, 6, "- "+school.Name, "", 1, "", false, 0, "")
		}
		pdf.Ln(3)
	}

	r.sectionTitle(pdf, usable, "Supervision")
	if student.Controller != nil {
		r.keyValue(pdf, "Controller", student.Controller.FullName())
	}
	if student.Recruiter != nil {
		r.keyValue(pdf, "Reclutador", student.Recruiter.FullName())
	}
	pdf.Ln(3)

	if len(student.Services) > 0 {
		r.sectionTitle(pdf, usable, "Servicios")
		r.servicesTable(pdf, usable, student.Services)

		pdf.Ln(2)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(usable, 7,
			fmt.Sprintf("Total de horas aprobadas: %g", student.TotalApprovedHours()),
			"", 1, "R", false, 0, "")
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render student report: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *StudentReport) sectionTitle(pdf *gofpdf.Fpdf, width float64, title string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(41, 128, 185)
	pdf.CellFormat(width, 8, title, "B", 1, "", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(1)
}

func (r *StudentReport) keyValue(pdf *gofpdf.Fpdf, key, value string) {
	if value == "" {
		return
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(35, 6, key+":", "", 0, "", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, value, "", 1, "", false, 0, "")
}

func (r *StudentReport) servicesTable(pdf *gofpdf.Fpdf, width float64, services []models.Service) {
	headers := []string{"Categoria", "Reportadas", "Aprobadas", "Estado"}
	widths := []float64{width * 0.40, width * 0.20, width * 0.20, width * 0.20}

	pdf.SetFont("Arial", "B", 9)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, svc := range services {
		approved := "-"
		if svc.AmountApproved != nil {
			approved = fmt.Sprintf("%g", *svc.AmountApproved)
		}
		pdf.CellFormat(widths[0], 6, svc.CategoryName(), "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[1], 6, fmt.Sprintf("%g", svc.AmountReported), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 6, approved, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 6, svc.Status, "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}
}
