package catalog

import "github.com/nathoo/lifequest/types"

func rep(skill, name, difficulty string, xp, coin int, workoutType string) types.ExerciseDef {
	return types.ExerciseDef{
		Name:        name,
		Skill:       skill,
		Difficulty:  difficulty,
		BaseXP:      xp,
		BaseCoin:    coin,
		WorkoutType: workoutType,
	}
}

func timed(name, difficulty string, xp, coin, minutes int) types.ExerciseDef {
	return types.ExerciseDef{
		Name:           name,
		Skill:          SkillEndurance,
		Difficulty:     difficulty,
		BaseXP:         xp,
		BaseCoin:       coin,
		DurationTarget: minutes,
	}
}

func defaultExercises() map[string][]types.ExerciseDef {
	s := SkillStrength
	d := SkillDurability
	return map[string][]types.ExerciseDef{
		SkillStrength: {
			// Body weight.
			rep(s, "Decline Pushups", "Very Difficult", 3, 0, "Upper"),
			rep(s, "Elevated Pike Pushups", "Very Difficult", 3, 0, "Upper"),
			rep(s, "Single Leg Floor Touches", "Very Difficult", 3, 0, "Lower"),
			rep(s, "L-Sit", "Very Difficult", 3, 0, "Full"),
			rep(s, "Finger Pushups", "Very Difficult", 5, 0, "Upper"),
			rep(s, "Pushups", "Difficult", 1, 0, "Upper"),
			rep(s, "Pike Pushups", "Difficult", 1, 0, "Upper"),
			rep(s, "Russian Twists", "Difficult", 1, 0, "Core"),
			rep(s, "Leg Raises", "Difficult", 1, 0, "Core"),
			rep(s, "Lunges (Each side)", "Difficult", 1, 0, "Lower"),
			rep(s, "Pike Shrugs", "Difficult", 1, 0, "Upper"),
			rep(s, "Sit-ups", "Mediocre", 0, 1, "Core"),
			rep(s, "Jumps", "Mediocre", 0, 1, "Lower"),
			rep(s, "Squats", "Easy", 0, 1, "Lower"),
			rep(s, "Wall Curls", "Easy", 0, 1, "Upper"),
			rep(s, "Forward/Backward Arm Circles", "Easy", 0, 1, "Upper"),
			// Weights.
			rep(s, "Dragon Fly's", "Very Difficult", 3, 0, "Upper"),
			rep(s, "Skull Crushers", "Very Difficult", 3, 0, "Upper"),
			rep(s, "Weighted Leg Raises", "Very Difficult", 3, 0, "Core"),
			rep(s, "Elevated Weighted Lunges", "Very Difficult", 3, 0, "Lower"),
			rep(s, "Rows", "Difficult", 1, 0, "Upper"),
			rep(s, "Shoulder Press", "Difficult", 1, 0, "Upper"),
			rep(s, "40lbs Squats", "Difficult", 1, 0, "Lower"),
			rep(s, "Weighted Sit-ups", "Difficult", 1, 0, "Core"),
			rep(s, "Weighted Lunges", "Difficult", 1, 0, "Lower"),
			rep(s, "Weighted Russian Twists", "Difficult", 1, 0, "Core"),
			rep(s, "Lateral Raises", "Difficult", 1, 0, "Upper"),
			rep(s, "Bicep Curls", "Mediocre", 0, 1, "Upper"),
			rep(s, "Hammer Curls", "Mediocre", 0, 1, "Upper"),
			rep(s, "Trapezius", "Mediocre", 0, 1, "Upper"),
			rep(s, "Forearm curls (any)", "Mediocre", 0, 1, "Upper"),
		},
		SkillEndurance: {
			timed("Final Gear Cycling", "Very Difficult", 3, 0, 120),
			timed("10 km Run", "Very Difficult", 3, 0, 60),
			timed("Cycling", "Difficult", 1, 0, 45),
			timed("Shadow Boxing", "Difficult", 1, 0, 30),
			timed("Swim", "Difficult", 1, 0, 40),
			timed("Knee Raises", "Mediocre", 0, 1, 20),
			timed("Jumping Squats", "Mediocre", 0, 1, 25),
			timed("Butt Kicks", "Easy", 0, 1, 15),
			timed("Walk", "Easy", 0, 1, 60),
		},
		SkillDurability: {
			rep(d, "Tuck Jumps", "Very Difficult", 3, 0, "Core"),
			rep(d, "Plank", "Very Difficult", 3, 0, "Core"),
			rep(d, "Long Jumps", "Very Difficult", 3, 0, "Lower"),
			rep(d, "Crunches", "Difficult", 1, 0, "Core"),
			rep(d, "Jumping Lunges", "Difficult", 1, 0, "Lower"),
			rep(d, "Burpees", "Difficult", 1, 0, "Upper"),
			rep(d, "Twisting Mountain Climbers", "Difficult", 1, 0, "Core"),
		},
	}
}
