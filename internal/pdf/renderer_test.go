package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/healthlog/internal/models"
	"github.com/terraincognita07/healthlog/internal/services"
)

func TestRenderEmptyReportProducesPDF(t *testing.T) {
	start := time.Date(2026, time.February, 14, 0, 0, 0, 0, time.UTC)
	end := services.EndOfDay(start.AddDate(0, 0, 7), time.UTC)
	document := services.NewReportAssembler(time.UTC).Assemble(nil, nil, nil, start, end, services.PeriodWeek)

	rendered, err := NewRenderer().Render(document)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(rendered, []byte("%PDF-")), "expected a PDF header")
}

func TestRenderReportWithRecords(t *testing.T) {
	intake := time.Date(2026, time.February, 15, 8, 0, 0, 0, time.UTC)
	start := time.Date(2026, time.February, 15, 18, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	sleepAt := time.Date(2026, time.February, 15, 23, 0, 0, 0, time.UTC)
	wakeAt := time.Date(2026, time.February, 16, 7, 0, 0, 0, time.UTC)

	document := services.NewReportAssembler(time.UTC).Assemble(
		[]models.DietRecord{{FoodName: "Porridge", MealType: models.MealBreakfast, IntakeTime: &intake, Calories: 320}},
		[]models.ExerciseRecord{{ExerciseType: models.ExerciseSwimming, Intensity: models.IntensityHigh, StartTime: &start, EndTime: &end, CaloriesBurned: 550}},
		[]models.SleepRecord{{SleepTime: &sleepAt, WakeTime: &wakeAt, Quality: models.SleepExcellent}},
		time.Date(2026, time.February, 14, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.February, 21, 0, 0, 0, 0, time.UTC),
		services.PeriodMonth,
	)

	rendered, err := NewRenderer().Render(document)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(rendered, []byte("%PDF-")))
	require.Greater(t, len(rendered), 1000)
}

func TestRenderRejectsUnknownSections(t *testing.T) {
	_, err := NewRenderer().Render(services.ReportDocument{
		Sections: []services.ReportSection{{Kind: "footnote"}},
	})
	require.Error(t, err)
}

func TestGridSizesFillTwelveColumns(t *testing.T) {
	require.Equal(t, []uint{3, 3, 3, 3}, GridSizes(4))
	require.Equal(t, []uint{3, 3, 2, 2, 2}, GridSizes(5))
	require.Nil(t, GridSizes(0))

	for columns := 1; columns <= 12; columns++ {
		var total uint
		for _, size := range GridSizes(columns) {
			total += size
		}
		require.Equal(t, uint(12), total, "columns=%d", columns)
	}
}
