package services

const (
	AdviceAdequate = "adequate"

	SleepInsufficient = "insufficient"
	SleepExcessive    = "excessive"

	ExerciseTooLittle    = "too little"
	ExerciseLowIntensity = "low intensity"

	DietTooLow  = "too low"
	DietTooHigh = "too high"

	QualityExcellent = "excellent"
	QualityGood      = "good"
	QualityFair      = "fair"
	QualityPoor      = "poor"
	QualityVeryPoor  = "very poor"
)

var adviceMessages = map[string]map[string]string{
	"sleep": {
		SleepInsufficient: "Not enough sleep. Aim for 7-8 hours a night.",
		SleepExcessive:    "Sleeping too long. Keep a regular 7-8 hour schedule.",
		AdviceAdequate:    "Sleep duration is fine. Keep it up.",
	},
	"exercise": {
		ExerciseTooLittle:    "Too little exercise. Try to move at least 30 minutes a day.",
		ExerciseLowIntensity: "Exercise intensity is low. Consider harder sessions.",
		AdviceAdequate:       "Exercise level is fine. Keep it up.",
	},
	"diet": {
		DietTooLow:     "Daily calorie intake is low. Watch your nutrition balance.",
		DietTooHigh:    "Daily calorie intake is high. Consider eating less.",
		AdviceAdequate: "Calorie intake is fine. Keep it up.",
	},
}

func SleepAdvice(avgHours float64) string {
	switch {
	case avgHours < 6:
		return SleepInsufficient
	case avgHours > 9:
		return SleepExcessive
	default:
		return AdviceAdequate
	}
}

func ExerciseAdvice(avgMinutesPerDay float64, avgCaloriesPerDay float64) string {
	switch {
	case avgMinutesPerDay < 30:
		return ExerciseTooLittle
	case avgCaloriesPerDay < 200:
		return ExerciseLowIntensity
	default:
		return AdviceAdequate
	}
}

func DietAdvice(avgCaloriesPerDay float64) string {
	switch {
	case avgCaloriesPerDay < 1200:
		return DietTooLow
	case avgCaloriesPerDay > 2500:
		return DietTooHigh
	default:
		return AdviceAdequate
	}
}

// SleepQualityDescriptor bands are inclusive on their lower bound.
func SleepQualityDescriptor(avgScore float64) string {
	switch {
	case avgScore >= 4.5:
		return QualityExcellent
	case avgScore >= 3.5:
		return QualityGood
	case avgScore >= 2.5:
		return QualityFair
	case avgScore >= 1.5:
		return QualityPoor
	default:
		return QualityVeryPoor
	}
}

type AdviceItem struct {
	Label   string `json:"label"`
	Message string `json:"message"`
}

type Advisory struct {
	Sleep        AdviceItem `json:"sleep"`
	Exercise     AdviceItem `json:"exercise"`
	Diet         AdviceItem `json:"diet"`
	SleepQuality string     `json:"sleep_quality"`
}

func BuildAdvisory(stats ComprehensiveStats) Advisory {
	sleep := SleepAdvice(stats.Sleep.AvgDurationHours)
	exercise := ExerciseAdvice(stats.Exercise.AvgDurationPerDay, stats.Exercise.AvgCaloriesPerDay)
	diet := DietAdvice(stats.Diet.AvgCaloriesPerDay)

	return Advisory{
		Sleep:        AdviceItem{Label: sleep, Message: adviceMessages["sleep"][sleep]},
		Exercise:     AdviceItem{Label: exercise, Message: adviceMessages["exercise"][exercise]},
		Diet:         AdviceItem{Label: diet, Message: adviceMessages["diet"][diet]},
		SleepQuality: SleepQualityDescriptor(stats.Sleep.AvgQualityScore),
	}
}
