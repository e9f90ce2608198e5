package bmi

// plans is the static recommendation text shown next to a BMI result.
var plans = map[Category][]string{
	Underweight: {
		"Focus on strength training 4-5 times per week",
		"Compound exercises: Squats, Deadlifts, Bench Press",
		"Progressive overload to build muscle mass",
		"8-12 reps for muscle growth",
		"Adequate rest between workouts (48-72 hours)",
		"Include protein-rich foods in your diet",
	},
	Normal: {
		"Balanced mix of cardio and strength training",
		"Strength training 3-4 times per week",
		"Cardio 2-3 times per week (30-45 minutes)",
		"Full body workouts or split routines",
		"6-12 reps for muscle maintenance",
		"Include variety in exercises to prevent plateau",
		"Maintain consistent healthy diet",
	},
	Overweight: {
		"Focus on cardio to burn calories (4-5 times per week)",
		"Include strength training 2-3 times per week",
		"Start with low-impact cardio: walking, swimming, cycling",
		"Gradually increase intensity and duration",
		"Bodyweight exercises: Push-ups, squats, planks",
		"12-15 reps for fat loss and muscle toning",
		"Create a caloric deficit through diet and exercise",
	},
	Obese: {
		"Start with low-impact cardio activities",
		"Walking program: Start with 15-20 minutes daily",
		"Gradually increase duration and intensity",
		"Light strength training 2 times per week",
		"Focus on mobility and flexibility exercises",
		"Consult with a healthcare provider before starting",
		"Set realistic goals for gradual weight loss",
		"Prioritize consistency over intensity initially",
	},
}

// Recommendation returns the workout plan bullets for a category. Unknown
// categories get nil.
func Recommendation(c Category) []string {
	p, ok := plans[c]
	if !ok {
		return nil
	}
	out := make([]string, len(p))
	copy(out, p)
	return out
}
