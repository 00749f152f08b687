package pdf

import (
	"encoding/base64"
	"fmt"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	maroto "github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
	"github.com/terraincognita07/healthlog/internal/services"
)

var (
	alternateRowBackground = color.Color{Red: 240, Green: 240, Blue: 240}
	legendColor            = color.Color{Red: 76, Green: 175, Blue: 80}
)

// Renderer lays a ReportDocument out as an A4 portrait PDF.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (renderer *Renderer) Render(document services.ReportDocument) ([]byte, error) {
	m := maroto.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 10, 20)

	for _, section := range document.Sections {
		switch section.Kind {
		case services.SectionHeading:
			writeHeading(m, section)
		case services.SectionSummary:
			writeSectionTitle(m, section.Title)
			writeSummary(m, section.Metrics)
		case services.SectionAdvice:
			writeSectionTitle(m, section.Title)
			writeAdvice(m, section.Metrics)
		case services.SectionTable:
			writeSectionTitle(m, section.Title)
			writeTable(m, section.Table)
		case services.SectionChart:
			writeSectionTitle(m, section.Title)
			if err := writeChart(m, section.Chart); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unsupported report section %q", section.Kind)
		}
	}

	m.Row(10, func() {
		m.Col(12, func() {
			m.Text("Generated "+document.GeneratedAt.Format("2006-01-02 15:04"), props.Text{
				Top:   5,
				Style: consts.Italic,
				Align: consts.Right,
				Size:  8,
			})
		})
	})

	buffer, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buffer.Bytes(), nil
}

func writeHeading(m maroto.Maroto, section services.ReportSection) {
	m.Row(12, func() {
		m.Col(12, func() {
			m.Text(section.Title, props.Text{
				Top:   3,
				Style: consts.Bold,
				Align: consts.Center,
				Size:  20,
			})
		})
	})
	if section.Subtitle != "" {
		m.Row(8, func() {
			m.Col(12, func() {
				m.Text(section.Subtitle, props.Text{
					Top:   1,
					Style: consts.Normal,
					Align: consts.Center,
					Size:  14,
				})
			})
		})
	}
	for _, line := range section.Lines {
		m.Row(8, func() {
			m.Col(12, func() {
				m.Text(line, props.Text{
					Top:   1,
					Style: consts.Normal,
					Align: consts.Center,
					Size:  12,
				})
			})
		})
	}
}

func writeSectionTitle(m maroto.Maroto, title string) {
	m.Row(14, func() {
		m.Col(12, func() {
			m.Text(title, props.Text{
				Top:   6,
				Style: consts.Bold,
				Size:  16,
			})
		})
	})
}

// writeSummary lays metrics out three per row, label above value.
func writeSummary(m maroto.Maroto, metrics []services.ReportMetric) {
	for start := 0; start < len(metrics); start += 3 {
		end := min(start+3, len(metrics))
		row := metrics[start:end]
		m.Row(16, func() {
			for _, metric := range row {
				m.Col(4, func() {
					m.Text(metric.Label, props.Text{
						Top:   1,
						Style: consts.Bold,
						Align: consts.Center,
						Size:  12,
					})
					m.Text(metric.Value, props.Text{
						Top:   8,
						Style: consts.Normal,
						Align: consts.Center,
						Size:  14,
					})
				})
			}
		})
	}
}

func writeAdvice(m maroto.Maroto, metrics []services.ReportMetric) {
	for _, metric := range metrics {
		m.Row(8, func() {
			m.Col(3, func() {
				m.Text(metric.Label, props.Text{Top: 1, Style: consts.Bold, Size: 10})
			})
			m.Col(9, func() {
				m.Text(metric.Value, props.Text{Top: 1, Style: consts.Normal, Size: 10})
			})
		})
	}
}

func writeTable(m maroto.Maroto, table *services.ReportTable) {
	if table == nil {
		return
	}

	if table.Placeholder {
		m.Row(8, func() {
			m.Col(12, func() {
				m.Text(table.Rows[0][0], props.Text{Top: 1, Style: consts.Italic, Size: 12})
			})
		})
		return
	}

	gridSizes := GridSizes(len(table.Headers))
	m.TableList(table.Headers, table.Rows, props.TableList{
		HeaderProp: props.TableListContent{
			Size:      10,
			Style:     consts.Bold,
			GridSizes: gridSizes,
		},
		ContentProp: props.TableListContent{
			Size:      9,
			GridSizes: gridSizes,
		},
		Align:                consts.Center,
		AlternatedBackground: &alternateRowBackground,
		HeaderContentSpace:   1,
		Line:                 false,
	})
}

// GridSizes spreads the 12-column grid over n columns, widest first.
func GridSizes(columns int) []uint {
	if columns <= 0 {
		return nil
	}
	sizes := make([]uint, columns)
	base := uint(12 / columns)
	remainder := 12 % columns
	for index := range sizes {
		sizes[index] = base
		if index < remainder {
			sizes[index]++
		}
	}
	return sizes
}

func writeChart(m maroto.Maroto, chart *services.ReportChart) error {
	if chart == nil {
		return nil
	}
	if len(chart.PNG) == 0 {
		message := chart.Failure
		if message == "" {
			message = "Chart unavailable"
		}
		m.Row(8, func() {
			m.Col(12, func() {
				m.Text(message, props.Text{Top: 1, Size: 10})
			})
		})
		return nil
	}

	var imageErr error
	encoded := base64.StdEncoding.EncodeToString(chart.PNG)
	m.Row(85, func() {
		m.Col(12, func() {
			imageErr = m.Base64Image(encoded, consts.Png, props.Rect{
				Center:  true,
				Percent: 95,
			})
		})
	})
	if imageErr != nil {
		return fmt.Errorf("embed chart: %w", imageErr)
	}

	legend := make([]string, 0, len(chart.Payload.Bars))
	for _, bar := range chart.Payload.Bars {
		legend = append(legend, fmt.Sprintf("%s: %.0f kcal", bar.Label, bar.Value))
	}
	if len(legend) > 0 {
		m.Row(6, func() {
			for _, entry := range legend {
				m.Col(uint(12/len(legend)), func() {
					m.Text(entry, props.Text{
						Size:  9,
						Align: consts.Center,
						Color: legendColor,
					})
				})
			}
		})
	}
	return nil
}
