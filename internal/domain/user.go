package domain

import "time"

// User is the profile document. Its id always equals the credential id the
// provider issued at registration; the two records are created and destroyed
// together except that soft delete touches only the profile.
type User struct {
	Record

	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`

	BirthDate *time.Time `json:"birthDate,omitempty"`
	WeightKg  *float64   `json:"weightKg,omitempty"`
	HeightCm  *float64   `json:"heightCm,omitempty"`
	Sex       string     `json:"sex,omitempty"`

	AccountVerified   bool   `json:"accountVerified"`
	ProfilePhotoURL   string `json:"profilePhotoUrl,omitempty"`
	PhenotypeComplete bool   `json:"phenotypeComplete"`

	RoutineIDs          []string `json:"routineIds"`
	FavoriteExerciseIDs []string `json:"favoriteExerciseIds"`
	FavoriteRoutineIDs  []string `json:"favoriteRoutineIds"`
}

// Credential is the provider-side identity record, mirrored here for lookups.
type Credential struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	DisplayName   string `json:"displayName"`
	PhotoURL      string `json:"photoUrl,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
	Disabled      bool   `json:"disabled"`
}
