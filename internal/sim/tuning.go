package sim

// Tuning holds the handling constants. Rates are per second so the model
// behaves the same at any frame rate.
type Tuning struct {
	MaxSpeed  float64 // px/s on the straight
	TurnSpeed float64 // px/s cap while a turn is held

	EaseIn        float64 // k in the ease-in factor 1 - e^(-k*t), 1/s
	Response      float64 // how fast speed closes on the cap at full ease-in, 1/s
	TurnBleedTime float64 // ease-in time forced when a turn starts above TurnSpeed, s

	BrakeRate     float64 // handbrake deceleration, px/s²
	Friction      float64 // fraction of speed shed per second while coasting
	StopThreshold float64 // coasting speeds below this snap to zero, px/s

	TurnMultiplier float64 // degrees per second per px/s of speed
}

// DefaultTuning mirrors the hand-tuned feel of the last iteration of the game.
func DefaultTuning() Tuning {
	return Tuning{
		MaxSpeed:       600,
		TurnSpeed:      450,
		EaseIn:         0.6,
		Response:       2.5,
		TurnBleedTime:  4,
		BrakeRate:      900,
		Friction:       0.5,
		StopThreshold:  1,
		TurnMultiplier: 0.48,
	}
}
