package domain

// Exercise is one prescribed movement inside a workout.
// Sets and reps are always positive; weight and duration are optional and
// only present when the plan prescribes them.
type Exercise struct {
	Name     string   `bson:"name" json:"name"`
	Sets     int      `bson:"sets" json:"sets"`
	Reps     int      `bson:"reps" json:"reps"`
	Weight   *float64 `bson:"weight,omitempty" json:"weight,omitempty"`     // kg
	Duration *int     `bson:"duration,omitempty" json:"duration,omitempty"` // seconds
	Notes    string   `bson:"notes,omitempty" json:"notes,omitempty"`       // Form cues for the user
}
