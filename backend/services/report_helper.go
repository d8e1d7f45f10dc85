package services

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/zanecat/Employability/backend/models"
)

// ReportHelper draws the shared building blocks of PDF reports.
type ReportHelper struct {
	Charts     *ChartService
	chartCount int
}

// SectionTitle writes a top level section heading.
func (h *ReportHelper) SectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

// TitleWithDescription writes a sub heading followed by its description.
func (h *ReportHelper) TitleWithDescription(pdf *gofpdf.Fpdf, name, description string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, name, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 5, description, "", "L", false)
	pdf.Ln(2)
}

// AddSummaryChart embeds a bar chart of the average simplified score per
// core skill. Core skills without simplified answers chart as zero.
func (h *ReportHelper) AddSummaryChart(pdf *gofpdf.Fpdf, simplifiedAnswers []models.SimplifiedAnswer, coreSkills []models.CoreSkill) error {
	if len(coreSkills) == 0 {
		return nil
	}

	names := make([]string, len(coreSkills))
	averages := make([]float64, len(coreSkills))
	for i := range coreSkills {
		names[i] = coreSkills[i].Name
		averages[i] = AverageSimplifiedChoice(simplifiedAnswers, &coreSkills[i])
	}

	image, err := h.Charts.SummaryChart(names, averages)
	if err != nil {
		return err
	}

	h.chartCount++
	name := fmt.Sprintf("summary-chart-%d", h.chartCount)
	options := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, options, bytes.NewReader(image))
	pdf.ImageOptions(name, 20, pdf.GetY(), 170, 0, true, options, 0, "")
	pdf.Ln(4)
	return nil
}

// AddSimplifiedAnswerRows tabulates the user's simplified answers for the
// elements, one row per element, with the choice shown as a percentage of
// the maximum. Unanswered elements show 0%.
func (h *ReportHelper) AddSimplifiedAnswerRows(pdf *gofpdf.Fpdf, answer *models.Answer, elements []models.SimplifiedElement) {
	for i := range elements {
		element := &elements[i]
		subAnswer := findSimplifiedAnswer(answer, element.ID)

		percentage := 0.0
		if subAnswer != nil {
			percentage = float64(subAnswer.Choice) / float64(models.MaxChoice)
		}

		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(10, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(120, 7, element.Description, "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(40, 7, fmt.Sprintf("%.0f%%", percentage*100), "1", 1, "C", false, 0, "")
	}
}

// AddTextAnswerRows tabulates the user's text answers for the elements.
// Unanswered elements show an empty cell.
func (h *ReportHelper) AddTextAnswerRows(pdf *gofpdf.Fpdf, answer *models.Answer, elements []models.TextElement) {
	for i := range elements {
		element := &elements[i]
		subAnswer := findTextAnswer(answer, element.ID)

		text := " "
		if subAnswer != nil {
			text = subAnswer.Text
		}

		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 7, element.Description, "1", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 7, text, "1", "L", false)
	}
}

// AddDetailedAnswerTable lists the options of a detailed element and marks
// the one the user chose, if any.
func (h *ReportHelper) AddDetailedAnswerTable(pdf *gofpdf.Fpdf, answer *models.Answer, element *models.DetailedElement) {
	subAnswer := findDetailedAnswer(answer, element.ID)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 7, element.Description, "1", 1, "L", false, 0, "")

	for i := range element.DetailedOptions {
		option := &element.DetailedOptions[i]
		chosen := subAnswer != nil && subAnswer.ChoiceID != nil && *subAnswer.ChoiceID == option.ID

		pdf.SetFont("Arial", "", 10)
		pdf.SetFillColor(226, 239, 218)
		pdf.CellFormat(0, 7, option.Description, "1", 1, "L", chosen, 0, "")
	}
	pdf.Ln(2)
}

// AverageSimplifiedChoice is the mean simplified score of a core skill,
// counting unanswered simplified elements as zero.
func AverageSimplifiedChoice(subAnswers []models.SimplifiedAnswer, coreSkill *models.CoreSkill) float64 {
	if len(coreSkill.SimplifiedElements) == 0 {
		return 0
	}
	total := 0
	for i := range coreSkill.SimplifiedElements {
		element := &coreSkill.SimplifiedElements[i]
		for j := range subAnswers {
			if subAnswers[j].SimplifiedElementID == element.ID {
				total += subAnswers[j].Choice
				break
			}
		}
	}
	return float64(total) / float64(len(coreSkill.SimplifiedElements))
}
