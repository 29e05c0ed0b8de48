package domain

// DefaultExerciseImageURL is used when a new exercise carries no image.
const DefaultExerciseImageURL = "https://storage.googleapis.com/gym-assets/exercise-placeholder.png"

type Exercise struct {
	Record

	Name         string   `json:"name"`
	MuscleGroups []string `json:"muscleGroups"`
	Difficulty   string   `json:"difficulty"`
	Instructions string   `json:"instructions"`
	Equipment    []string `json:"equipment"`
	ImageURL     string   `json:"imageUrl"`
	Featured     bool     `json:"featured"`
}
