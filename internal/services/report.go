package services

import (
	"fmt"
	"time"

	"github.com/terraincognita07/healthlog/internal/models"
)

const (
	reportDateLayout     = "2006-01-02"
	reportDateTimeLayout = "2006-01-02 15:04"
)

type SectionKind string

const (
	SectionHeading SectionKind = "heading"
	SectionSummary SectionKind = "summary"
	SectionAdvice  SectionKind = "advice"
	SectionTable   SectionKind = "table"
	SectionChart   SectionKind = "chart"
)

type ReportMetric struct {
	Label string
	Value string
}

// ReportTable always has at least one row. An empty record list yields a
// single placeholder row with the message in the first cell.
type ReportTable struct {
	Headers     []string
	Rows        [][]string
	Placeholder bool
}

type ReportChart struct {
	Payload ChartPayload
	PNG     []byte
	Failure string
}

type ReportSection struct {
	Kind     SectionKind
	Title    string
	Subtitle string
	Lines    []string
	Metrics  []ReportMetric
	Table    *ReportTable
	Chart    *ReportChart
}

// ReportDocument is the ordered, renderer-independent content of a report.
type ReportDocument struct {
	Title       string
	Period      string
	From        time.Time
	To          time.Time
	GeneratedAt time.Time
	Stats       ComprehensiveStats
	Sections    []ReportSection
}

func (document ReportDocument) Section(kind SectionKind) []ReportSection {
	sections := make([]ReportSection, 0, 1)
	for _, section := range document.Sections {
		if section.Kind == kind {
			sections = append(sections, section)
		}
	}
	return sections
}

type ReportAssembler struct {
	location *time.Location
	now      func() time.Time
}

func NewReportAssembler(location *time.Location) *ReportAssembler {
	if location == nil {
		location = time.UTC
	}
	return &ReportAssembler{location: location, now: time.Now}
}

// Assemble performs no I/O. Unformattable timestamps become empty cells.
func (assembler *ReportAssembler) Assemble(diet []models.DietRecord, exercise []models.ExerciseRecord, sleep []models.SleepRecord, start time.Time, end time.Time, period string) ReportDocument {
	stats := ComputeComprehensive(diet, exercise, sleep, start, end, period)

	document := ReportDocument{
		Title:       "Health Data Report",
		Period:      period,
		From:        start,
		To:          end,
		GeneratedAt: assembler.now().In(assembler.location),
		Stats:       stats,
	}

	document.Sections = append(document.Sections,
		assembler.headingSection(start, end, period),
		summarySection(stats),
		adviceSection(BuildAdvisory(stats)),
		ReportSection{Kind: SectionTable, Title: "Diet records", Table: assembler.dietTable(diet)},
		ReportSection{Kind: SectionTable, Title: "Exercise records", Table: assembler.exerciseTable(exercise)},
		ReportSection{Kind: SectionTable, Title: "Sleep records", Table: assembler.sleepTable(sleep)},
		chartSection(diet, exercise),
	)
	return document
}

func (assembler *ReportAssembler) headingSection(start time.Time, end time.Time, period string) ReportSection {
	return ReportSection{
		Kind:     SectionHeading,
		Title:    "Health Data Report",
		Subtitle: "(" + PeriodLabel(period) + ")",
		Lines: []string{
			fmt.Sprintf("Report period: %s to %s",
				assembler.formatTime(start, reportDateLayout),
				assembler.formatTime(end, reportDateLayout)),
		},
	}
}

func PeriodLabel(period string) string {
	switch period {
	case PeriodWeek:
		return "Weekly report"
	case PeriodMonth:
		return "Monthly report"
	case "", PeriodCustom:
		return "Custom report"
	default:
		return period + " report"
	}
}

func summarySection(stats ComprehensiveStats) ReportSection {
	return ReportSection{
		Kind:  SectionSummary,
		Title: "Overview",
		Metrics: []ReportMetric{
			{Label: "Diet records", Value: fmt.Sprintf("%d", stats.Diet.RecordCount)},
			{Label: "Exercise records", Value: fmt.Sprintf("%d", stats.Exercise.RecordCount)},
			{Label: "Sleep records", Value: fmt.Sprintf("%d", stats.Sleep.RecordCount)},
			{Label: "Total calories in", Value: fmt.Sprintf("%.0f kcal", stats.Diet.TotalCalories)},
			{Label: "Total calories burned", Value: fmt.Sprintf("%.0f kcal", stats.Exercise.TotalCaloriesBurned)},
			{Label: "Average sleep", Value: fmt.Sprintf("%.1f h", stats.Sleep.AvgDurationHours)},
		},
	}
}

func adviceSection(advisory Advisory) ReportSection {
	return ReportSection{
		Kind:  SectionAdvice,
		Title: "Suggestions",
		Metrics: []ReportMetric{
			{Label: "Sleep", Value: advisory.Sleep.Message},
			{Label: "Sleep quality", Value: advisory.SleepQuality},
			{Label: "Exercise", Value: advisory.Exercise.Message},
			{Label: "Diet", Value: advisory.Diet.Message},
		},
	}
}

func (assembler *ReportAssembler) dietTable(records []models.DietRecord) *ReportTable {
	table := &ReportTable{Headers: []string{"Food", "Meal", "Intake time", "Calories (kcal)"}}
	for _, record := range records {
		table.Rows = append(table.Rows, []string{
			record.FoodName,
			record.MealType.Label(),
			assembler.formatTimePointer(record.IntakeTime),
			fmt.Sprintf("%.0f", record.Calories),
		})
	}
	return withPlaceholder(table, "No diet records")
}

func (assembler *ReportAssembler) exerciseTable(records []models.ExerciseRecord) *ReportTable {
	table := &ReportTable{Headers: []string{"Type", "Intensity", "Start time", "Duration (min)", "Calories (kcal)"}}
	for _, record := range records {
		table.Rows = append(table.Rows, []string{
			record.TypeLabel(),
			record.Intensity.Label(),
			assembler.formatTimePointer(record.StartTime),
			fmt.Sprintf("%d", record.Duration()),
			fmt.Sprintf("%.0f", record.CaloriesBurned),
		})
	}
	return withPlaceholder(table, "No exercise records")
}

func (assembler *ReportAssembler) sleepTable(records []models.SleepRecord) *ReportTable {
	table := &ReportTable{Headers: []string{"Sleep time", "Wake time", "Duration", "Quality", "Wake-ups"}}
	for _, record := range records {
		table.Rows = append(table.Rows, []string{
			assembler.formatTimePointer(record.SleepTime),
			assembler.formatTimePointer(record.WakeTime),
			FormatSleepDuration(record.Duration()),
			record.Quality.Label(),
			fmt.Sprintf("%d", record.WakeUpCount),
		})
	}
	return withPlaceholder(table, "No sleep records")
}

func withPlaceholder(table *ReportTable, message string) *ReportTable {
	if len(table.Rows) > 0 {
		return table
	}
	row := make([]string, len(table.Headers))
	row[0] = message
	table.Rows = [][]string{row}
	table.Placeholder = true
	return table
}

func chartSection(diet []models.DietRecord, exercise []models.ExerciseRecord) ReportSection {
	payload := BuildChart(diet, exercise)
	chart := &ReportChart{Payload: payload}

	raster, err := RenderChartPNG(payload)
	if err != nil {
		chart.Failure = "Chart rendering failed: " + err.Error()
	} else {
		chart.PNG = raster
	}
	return ReportSection{Kind: SectionChart, Title: "Visualization", Chart: chart}
}

func FormatSleepDuration(minutes int64) string {
	if minutes < 0 {
		minutes = 0
	}
	hours := minutes / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes%60)
}

func (assembler *ReportAssembler) formatTimePointer(value *time.Time) string {
	if value == nil {
		return ""
	}
	return assembler.formatTime(*value, reportDateTimeLayout)
}

// formatTime returns "" for zero or out-of-range instants instead of a
// misleading rendering.
func (assembler *ReportAssembler) formatTime(value time.Time, layout string) string {
	return formatInstant(value, layout, assembler.location)
}

func formatInstant(value time.Time, layout string, location *time.Location) string {
	if value.IsZero() {
		return ""
	}
	localized := value.In(location)
	if year := localized.Year(); year < 1 || year > 9999 {
		return ""
	}
	return localized.Format(layout)
}
