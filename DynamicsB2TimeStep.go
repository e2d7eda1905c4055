package b2rope

import (
	"math"
)

/// Converts variable frame times into whole fixed steps. The rope is tuned for
/// a constant dt, so hosts feed frame time here and call B2Rope.Step once per
/// returned step.
type B2FixedStep struct {
	Dt       float64 // fixed time step
	Inv_dt   float64 // inverse time step (0 if dt == 0).
	MaxSteps int     // cap per frame so a slow frame cannot snowball

	m_accumulator float64
}

func MakeB2FixedStep(dt float64, maxSteps int) B2FixedStep {
	B2Assert(dt > 0.0)
	B2Assert(maxSteps > 0)

	return B2FixedStep{
		Dt:       dt,
		Inv_dt:   1.0 / dt,
		MaxSteps: maxSteps,
	}
}

/// Add frame time and return how many fixed steps are due. Time beyond
/// MaxSteps steps is dropped.
func (step *B2FixedStep) Advance(frameTime float64) int {
	if frameTime > 0.0 {
		step.m_accumulator += frameTime
	}

	steps := int(math.Floor(step.m_accumulator * step.Inv_dt))
	if steps > step.MaxSteps {
		steps = step.MaxSteps
		step.m_accumulator = 0.0
		return steps
	}

	step.m_accumulator -= float64(steps) * step.Dt
	if step.m_accumulator < 0.0 {
		step.m_accumulator = 0.0
	}
	return steps
}

/// Fraction of a step left in the accumulator, for render interpolation.
func (step B2FixedStep) GetAlpha() float64 {
	return step.m_accumulator * step.Inv_dt
}

func (step *B2FixedStep) Reset() {
	step.m_accumulator = 0.0
}
