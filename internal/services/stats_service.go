package services

import (
	"context"
	"fmt"
)

type StatsOverview struct {
	Stats    ComprehensiveStats `json:"stats"`
	Advisory Advisory           `json:"advisory"`
}

type StatsService struct {
	records ExportRecordReader
}

func NewStatsService(records ExportRecordReader) *StatsService {
	return &StatsService{records: records}
}

// Overview loads every record in the range and derives the aggregates and
// their advisory labels.
func (service *StatsService) Overview(ctx context.Context, dateRange DateRange) (StatsOverview, error) {
	diet, err := service.records.QueryDiet(ctx, dateRange.From, dateRange.To)
	if err != nil {
		return StatsOverview{}, fmt.Errorf("query diet records: %w", err)
	}
	exercise, err := service.records.QueryExercise(ctx, dateRange.From, dateRange.To)
	if err != nil {
		return StatsOverview{}, fmt.Errorf("query exercise records: %w", err)
	}
	sleep, err := service.records.QuerySleep(ctx, dateRange.From, dateRange.To)
	if err != nil {
		return StatsOverview{}, fmt.Errorf("query sleep records: %w", err)
	}

	stats := ComputeComprehensive(diet, exercise, sleep, dateRange.From, dateRange.To, dateRange.Period)
	return StatsOverview{Stats: stats, Advisory: BuildAdvisory(stats)}, nil
}
