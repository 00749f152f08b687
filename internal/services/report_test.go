package services

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/healthlog/internal/models"
)

func reportTime(t *testing.T, raw string) *time.Time {
	t.Helper()
	value, err := time.ParseInLocation("2006-01-02 15:04", raw, time.UTC)
	require.NoError(t, err)
	return &value
}

func newTestAssembler() *ReportAssembler {
	assembler := NewReportAssembler(time.UTC)
	assembler.now = func() time.Time {
		return time.Date(2026, time.February, 21, 9, 0, 0, 0, time.UTC)
	}
	return assembler
}

func TestAssembleEmptyInputsStillProducesEverySection(t *testing.T) {
	start := time.Date(2026, time.February, 14, 0, 0, 0, 0, time.UTC)
	end := EndOfDay(time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC), time.UTC)

	document := newTestAssembler().Assemble(nil, nil, nil, start, end, PeriodWeek)

	kinds := make([]SectionKind, 0, len(document.Sections))
	for _, section := range document.Sections {
		kinds = append(kinds, section.Kind)
	}
	require.Equal(t, []SectionKind{
		SectionHeading, SectionSummary, SectionAdvice,
		SectionTable, SectionTable, SectionTable, SectionChart,
	}, kinds)

	heading := document.Section(SectionHeading)[0]
	require.Equal(t, "(Weekly report)", heading.Subtitle)
	require.Equal(t, []string{"Report period: 2026-02-14 to 2026-02-20"}, heading.Lines)

	summary := document.Section(SectionSummary)[0]
	require.Len(t, summary.Metrics, 6)
	require.Equal(t, []string{"0", "0", "0", "0 kcal", "0 kcal", "0.0 h"}, metricValues(summary.Metrics))

	for _, section := range document.Section(SectionTable) {
		require.True(t, section.Table.Placeholder, section.Title)
		require.Len(t, section.Table.Rows, 1, section.Title)
		require.Len(t, section.Table.Rows[0], len(section.Table.Headers))
		require.Contains(t, section.Table.Rows[0][0], "No ")
	}

	chart := document.Section(SectionChart)[0].Chart
	require.Empty(t, chart.Payload.Bars)
	require.NotEmpty(t, chart.PNG)
	require.Empty(t, chart.Failure)
}

func TestAssembleBuildsRowsPerRecord(t *testing.T) {
	start := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	end := EndOfDay(time.Date(2026, time.February, 7, 0, 0, 0, 0, time.UTC), time.UTC)

	diet := []models.DietRecord{
		{FoodName: "Oatmeal", MealType: models.MealBreakfast, IntakeTime: reportTime(t, "2026-02-03 08:15"), Calories: 350.4},
		{FoodName: "Mystery", MealType: models.MealType("BRUNCH"), Calories: 120},
	}
	exercise := []models.ExerciseRecord{
		{
			ExerciseType:   models.ExerciseOther,
			CustomTypeName: "Climbing",
			Intensity:      models.IntensityHigh,
			StartTime:      reportTime(t, "2026-02-03 18:00"),
			EndTime:        reportTime(t, "2026-02-03 19:30"),
			CaloriesBurned: 640,
		},
	}
	sleep := []models.SleepRecord{
		{
			SleepTime:   reportTime(t, "2026-02-03 23:30"),
			WakeTime:    reportTime(t, "2026-02-04 06:00"),
			Quality:     models.SleepGood,
			WakeUpCount: 2,
		},
	}

	document := newTestAssembler().Assemble(diet, exercise, sleep, start, end, PeriodCustom)
	tables := document.Section(SectionTable)
	require.Len(t, tables, 3)

	dietTable := tables[0].Table
	require.False(t, dietTable.Placeholder)
	require.Equal(t, []string{"Food", "Meal", "Intake time", "Calories (kcal)"}, dietTable.Headers)
	require.Equal(t, []string{"Oatmeal", "Breakfast", "2026-02-03 08:15", "350"}, dietTable.Rows[0])
	require.Equal(t, []string{"Mystery", "", "", "120"}, dietTable.Rows[1], "unknown enum and missing time become empty cells")

	exerciseTable := tables[1].Table
	require.Equal(t, []string{"Climbing", "High", "2026-02-03 18:00", "90", "640"}, exerciseTable.Rows[0])

	sleepTable := tables[2].Table
	require.Equal(t, []string{"2026-02-03 23:30", "2026-02-04 06:00", "6h 30m", "Good", "2"}, sleepTable.Rows[0])

	summary := document.Section(SectionSummary)[0]
	require.Equal(t, []string{"2", "1", "1", "470 kcal", "640 kcal", "6.5 h"}, metricValues(summary.Metrics))

	heading := document.Section(SectionHeading)[0]
	require.Equal(t, "(Custom report)", heading.Subtitle)

	chart := document.Section(SectionChart)[0].Chart
	require.Len(t, chart.Payload.Bars, 2)
	require.Equal(t, 640.0, chart.Payload.Max)
}

func TestAssembleFormatsInConfiguredLocation(t *testing.T) {
	zone := time.FixedZone("UTC+8", 8*60*60)
	assembler := NewReportAssembler(zone)
	diet := []models.DietRecord{{FoodName: "Noodles", MealType: models.MealDinner, IntakeTime: reportTime(t, "2026-02-03 12:00")}}

	document := assembler.Assemble(diet, nil, nil, time.Time{}, time.Time{}, PeriodWeek)
	require.Equal(t, "2026-02-03 20:00", document.Section(SectionTable)[0].Table.Rows[0][2])
	require.Equal(t, []string{"Report period:  to "}, document.Section(SectionHeading)[0].Lines)
}

func TestFormatInstantRejectsOutOfRangeYears(t *testing.T) {
	require.Equal(t, "", formatInstant(time.Time{}, reportDateLayout, time.UTC))
	require.Equal(t, "", formatInstant(time.Date(12000, time.January, 1, 0, 0, 0, 0, time.UTC), reportDateLayout, time.UTC))
	require.Equal(t, "2026-01-01", formatInstant(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), reportDateLayout, time.UTC))
}

func TestFormatSleepDuration(t *testing.T) {
	require.Equal(t, "45m", FormatSleepDuration(45))
	require.Equal(t, "6h 30m", FormatSleepDuration(390))
	require.Equal(t, "8h 0m", FormatSleepDuration(480))
	require.Equal(t, "0m", FormatSleepDuration(-5))
}

func TestBuildChartScalesAgainstFloorAndMaximum(t *testing.T) {
	payload := BuildChart(
		[]models.DietRecord{{Calories: 200}, {Calories: 300}},
		[]models.ExerciseRecord{{CaloriesBurned: 100}},
	)
	require.Equal(t, chartMinimumMax, payload.Max)
	require.Len(t, payload.Bars, 2)
	require.Equal(t, "Intake", payload.Bars[0].Label)
	require.Equal(t, chartPadding+50, payload.Bars[0].X)
	require.Equal(t, 80, payload.Bars[0].Height, "200/500 of a 200px plot")
	require.Equal(t, "Burned", payload.Bars[1].Label)
	require.Equal(t, chartPadding+150, payload.Bars[1].X)
	require.Equal(t, 40, payload.Bars[1].Height)

	payload = BuildChart([]models.DietRecord{{Calories: 400}, {Calories: 2000}}, nil)
	require.Equal(t, 2000.0, payload.Max)
	require.Len(t, payload.Bars, 1)
	require.Equal(t, 40, payload.Bars[0].Height, "first record is charted against the largest value")
}

func TestRenderChartPNGProducesDecodableImage(t *testing.T) {
	payload := BuildChart([]models.DietRecord{{Calories: 500}}, []models.ExerciseRecord{{CaloriesBurned: 250}})
	raster, err := RenderChartPNG(payload)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(raster))
	require.NoError(t, err)
	require.Equal(t, chartWidth, decoded.Bounds().Dx())
	require.Equal(t, chartHeight, decoded.Bounds().Dy())

	red, green, blue, _ := decoded.At(chartPadding+50+chartBarWidth/2, chartHeight-chartPadding-10).RGBA()
	require.Equal(t, uint32(chartIntakeColor.R)*0x101, red)
	require.Equal(t, uint32(chartIntakeColor.G)*0x101, green)
	require.Equal(t, uint32(chartIntakeColor.B)*0x101, blue)

	_, err = RenderChartPNG(ChartPayload{})
	require.Error(t, err)
}

func metricValues(metrics []ReportMetric) []string {
	values := make([]string, 0, len(metrics))
	for _, metric := range metrics {
		values = append(values, metric.Value)
	}
	return values
}
