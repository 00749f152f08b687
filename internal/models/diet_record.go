package models

import (
	"time"

	"gorm.io/gorm"
)

type MealType string

const (
	MealBreakfast MealType = "BREAKFAST"
	MealLunch     MealType = "LUNCH"
	MealDinner    MealType = "DINNER"
	MealSnack     MealType = "SNACK"
)

var mealTypeLabels = map[MealType]string{
	MealBreakfast: "Breakfast",
	MealLunch:     "Lunch",
	MealDinner:    "Dinner",
	MealSnack:     "Snack",
}

func MealTypes() []MealType {
	return []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}
}

func (meal MealType) Valid() bool {
	_, ok := mealTypeLabels[meal]
	return ok
}

func (meal MealType) Label() string {
	return mealTypeLabels[meal]
}

type DietRecord struct {
	ID         uint       `gorm:"primaryKey"`
	FoodName   string     `gorm:"not null"`
	MealType   MealType   `gorm:"type:text;not null;default:''"`
	IntakeTime *time.Time `gorm:"index"`
	Calories   float64    `gorm:"not null;default:0"`
	Protein    float64    `gorm:"not null;default:0"`
	Carbs      float64    `gorm:"not null;default:0"`
	Fat        float64    `gorm:"not null;default:0"`
	Amount     float64    `gorm:"not null;default:0"`
	Unit       string
	Note       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (record *DietRecord) BeforeSave(*gorm.DB) error {
	record.IntakeTime = utcPointer(record.IntakeTime)
	return nil
}
