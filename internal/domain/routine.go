package domain

// ExerciseEntry is a weak reference into the exercises collection: the id
// carries no ownership and may dangle until the cleanup sweep catches it.
type ExerciseEntry struct {
	ExerciseID  string `json:"exerciseId" binding:"required"`
	Sets        int    `json:"sets" binding:"required,gt=0"`
	Reps        int    `json:"reps" binding:"required,gt=0"`
	RestSeconds int    `json:"restSeconds" binding:"gte=0"`
}

type Routine struct {
	Record

	Name            string          `json:"name"`
	Level           string          `json:"level"`
	Description     string          `json:"description,omitempty"`
	Exercises       []ExerciseEntry `json:"exercises"`
	DurationMinutes int             `json:"durationMinutes,omitempty"`
	ImageURL        string          `json:"imageUrl"`
	Featured        bool            `json:"featured"`
}

// RoutineDetail is a routine with each entry joined against its exercise
// document. Entries whose exercise no longer exists keep a nil Exercise.
type RoutineDetail struct {
	Routine

	Detailed []DetailedEntry `json:"detailedExercises"`
}

type DetailedEntry struct {
	ExerciseEntry

	Exercise *Exercise `json:"exercise,omitempty"`
}
