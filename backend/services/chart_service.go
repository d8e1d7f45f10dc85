package services

import (
	"bytes"

	"github.com/wcharczuk/go-chart/v2"
)

// ChartService renders the summary bar chart of a report as a PNG image.
type ChartService struct{}

// SummaryChart draws one bar per core skill with its average simplified
// score, on a fixed vertical scale of 0 to 10.
func (c *ChartService) SummaryChart(names []string, averages []float64) ([]byte, error) {
	bars := make([]chart.Value, 0, len(names))
	for i, name := range names {
		bars = append(bars, chart.Value{Label: name, Value: averages[i]})
	}

	barChart := chart.BarChart{
		Title:  "The Average Score of Each Core Skill",
		Width:  650,
		Height: 350,
		Bars:   bars,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 10},
		},
	}

	var buffer bytes.Buffer
	if err := barChart.Render(chart.PNG, &buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
