package nutrition

import (
	"testing"

	"github.com/jxhee99/HappyMeal/internal/model"
)

func TestScaleMatchesQuantityOverHundred(t *testing.T) {
	food := model.Food{Calories: 200, Carbs: 30, Sugar: 10, Protein: 12, Fat: 5}
	got := Scale(food, 150)
	if got.Calories != 300 {
		t.Fatalf("expected 300kcal for 150g of a 200kcal/100g food, got %.1f", got.Calories)
	}
	if got.Carbs != 45 || got.Sugar != 15 || got.Protein != 18 || got.Fat != 7.5 {
		t.Fatalf("unexpected macros: %+v", got)
	}
}

func TestScaleRoundsToOneDecimal(t *testing.T) {
	food := model.Food{Calories: 333}
	got := Scale(food, 100.0/3)
	if got.Calories != 111 {
		t.Fatalf("expected 111.0, got %v", got.Calories)
	}
	odd := Scale(model.Food{Protein: 7}, 33)
	if odd.Protein != 2.3 {
		t.Fatalf("expected 2.3 (7*0.33 rounded), got %v", odd.Protein)
	}
}

func TestScaleLogPrefersCurrentFoodRecord(t *testing.T) {
	log := model.MealLog{Quantity: 150, Calories: 9999}
	food := model.Food{Calories: 200}
	got := ScaleLog(log, &food)
	if got.Calories != 300 {
		t.Fatalf("expected recomputed 300kcal, got %.1f (stale total must not win)", got.Calories)
	}
}

func TestScaleLogFallsBackWithoutFood(t *testing.T) {
	log := model.MealLog{Quantity: 150, Calories: 287.54}
	got := ScaleLog(log, nil)
	if got.Calories != 287.5 {
		t.Fatalf("expected 287.5, got %v", got.Calories)
	}
}

func TestSumTotalsDay(t *testing.T) {
	total := Sum([]Scaled{{Calories: 300.1, Protein: 10.2}, {Calories: 199.9, Protein: 4.8}})
	if total.Calories != 500 || total.Protein != 15 {
		t.Fatalf("unexpected totals: %+v", total)
	}
}
