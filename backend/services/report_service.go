package services

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/zanecat/Employability/backend/models"
)

// ReportService renders PDF reports of survey answers.
type ReportService struct {
	Helper *ReportHelper
}

func NewReportService() *ReportService {
	return &ReportService{Helper: &ReportHelper{Charts: &ChartService{}}}
}

// GenerateSurveyReport builds a PDF report of a user's answer: a title
// block, a summary chart over the self assessment's core skills, and a per
// core skill listing of the recorded answers. The answer must be loaded
// with its self assessment tree and sub answers.
func (rs *ReportService) GenerateSurveyReport(answer *models.Answer, user *models.User) ([]byte, error) {
	pdf := newReportDocument()
	rs.addReportTitle(pdf, user)

	if len(answer.SelfAssessment.CoreSkills) > 0 {
		if err := rs.addSurveyResult(pdf, answer, &answer.SelfAssessment); err != nil {
			return nil, err
		}
	}

	return output(pdf)
}

// GenerateSummaryReport builds a PDF report across every self assessment
// and every answer in the system, for an administrator: per self
// assessment, a summary chart over all its answers followed by each
// answer's individual results in submission order.
func (rs *ReportService) GenerateSummaryReport(selfAssessments []models.SelfAssessment, answers []models.Answer, admin *models.User) ([]byte, error) {
	pdf := newReportDocument()
	rs.addReportTitle(pdf, admin)

	for i := range selfAssessments {
		selfAssessment := &selfAssessments[i]
		rs.Helper.SectionTitle(pdf, fmt.Sprintf("Survey Name: %s", selfAssessment.Title))

		saAnswers := answersFor(answers, selfAssessment.ID)
		if len(selfAssessment.CoreSkills) == 0 || len(saAnswers) == 0 {
			continue
		}

		if err := rs.addSaSummary(pdf, selfAssessment, saAnswers); err != nil {
			return nil, err
		}
		for j := range saAnswers {
			answer := &saAnswers[j]
			rs.Helper.TitleWithDescription(pdf, "Answer from", answer.BasicUser.FullName())
			if err := rs.addSurveyResult(pdf, answer, selfAssessment); err != nil {
				return nil, err
			}
		}
	}

	return output(pdf)
}

func newReportDocument() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 10, 18)
	pdf.AddPage()
	return pdf
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buffer bytes.Buffer
	if err := pdf.Output(&buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// addReportTitle writes the report heading with the date and the user's
// name and email.
func (rs *ReportService) addReportTitle(pdf *gofpdf.Fpdf, user *models.User) {
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "My Employability Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Date: %s", time.Now().Format("Monday, 2 January 2006")), "", 1, "L", false, 0, "")

	if user.Role == models.RoleBasic {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("Name: %s", user.FullName()), "", 1, "L", false, 0, "")
	}
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Email: %s", user.Email), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

// addSurveyResult writes the summary section and the per core skill answer
// listing for a single answer.
func (rs *ReportService) addSurveyResult(pdf *gofpdf.Fpdf, answer *models.Answer, selfAssessment *models.SelfAssessment) error {
	rs.Helper.SectionTitle(pdf, "1. Summary of your self assessment")
	err := rs.Helper.AddSummaryChart(pdf, answer.SimplifiedAnswers, selfAssessment.CoreSkills)
	if err != nil {
		return err
	}

	for i := range selfAssessment.CoreSkills {
		rs.addCoreSkillResult(pdf, &selfAssessment.CoreSkills[i], answer)
	}
	return nil
}

// addCoreSkillResult tabulates the answers recorded for one core skill.
func (rs *ReportService) addCoreSkillResult(pdf *gofpdf.Fpdf, coreSkill *models.CoreSkill, answer *models.Answer) {
	rs.Helper.TitleWithDescription(pdf, coreSkill.Name, coreSkill.Description)

	rs.Helper.AddSimplifiedAnswerRows(pdf, answer, coreSkill.SimplifiedElements)
	rs.Helper.AddTextAnswerRows(pdf, answer, coreSkill.TextElements)
	for i := range coreSkill.DetailedElements {
		rs.Helper.AddDetailedAnswerTable(pdf, answer, &coreSkill.DetailedElements[i])
	}
	pdf.Ln(4)
}

// addSaSummary writes the cross-answer summary chart for a self assessment,
// built from the simplified answers of every submission.
func (rs *ReportService) addSaSummary(pdf *gofpdf.Fpdf, selfAssessment *models.SelfAssessment, answers []models.Answer) error {
	rs.Helper.SectionTitle(pdf, "Summary")

	var simplifiedAnswers []models.SimplifiedAnswer
	for i := range answers {
		simplifiedAnswers = append(simplifiedAnswers, answers[i].SimplifiedAnswers...)
	}
	return rs.Helper.AddSummaryChart(pdf, simplifiedAnswers, selfAssessment.CoreSkills)
}

// answersFor filters the answers of one self assessment, oldest first.
func answersFor(answers []models.Answer, selfAssessmentID uint) []models.Answer {
	var matched []models.Answer
	for i := range answers {
		if answers[i].SelfAssessmentID == selfAssessmentID {
			matched = append(matched, answers[i])
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	return matched
}
