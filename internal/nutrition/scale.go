// Package nutrition holds the per-100g scaling shared by the add-meal
// preview and log rendering. Keeping one implementation means a log's
// displayed nutrition can never drift from what the preview promised.
package nutrition

import (
	"math"

	"github.com/jxhee99/HappyMeal/internal/model"
)

// Scaled carries one meal's nutrition for a given quantity in grams.
type Scaled struct {
	Calories float64
	Carbs    float64
	Sugar    float64
	Protein  float64
	Fat      float64
}

// Round1 rounds to one decimal, the precision every nutrition figure is
// shown at.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Scale computes nutrition for quantity grams of a food whose nutrient
// fields are per 100g.
func Scale(f model.Food, quantity float64) Scaled {
	factor := quantity / 100
	return Scaled{
		Calories: Round1(f.Calories * factor),
		Carbs:    Round1(f.Carbs * factor),
		Sugar:    Round1(f.Sugar * factor),
		Protein:  Round1(f.Protein * factor),
		Fat:      Round1(f.Fat * factor),
	}
}

// ScaleLog recomputes a fetched log's nutrition from its raw quantity
// and the referenced food's per-100g fields. The server may also return
// totals on the log itself, but those are treated as display hints: if
// the food record changed since the log was written they are stale, so
// the food record wins whenever it is available.
func ScaleLog(log model.MealLog, food *model.Food) Scaled {
	if food != nil {
		return Scale(*food, log.Quantity)
	}
	return Scaled{
		Calories: Round1(log.Calories),
		Carbs:    Round1(log.Carbs),
		Sugar:    Round1(log.Sugar),
		Protein:  Round1(log.Protein),
		Fat:      Round1(log.Fat),
	}
}

// Sum totals a day's scaled meals.
func Sum(items []Scaled) Scaled {
	var out Scaled
	for _, s := range items {
		out.Calories += s.Calories
		out.Carbs += s.Carbs
		out.Sugar += s.Sugar
		out.Protein += s.Protein
		out.Fat += s.Fat
	}
	out.Calories = Round1(out.Calories)
	out.Carbs = Round1(out.Carbs)
	out.Sugar = Round1(out.Sugar)
	out.Protein = Round1(out.Protein)
	out.Fat = Round1(out.Fat)
	return out
}
