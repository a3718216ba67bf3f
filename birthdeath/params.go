package birthdeath

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrBadRate is returned for a negative, NaN or infinite rate.
	ErrBadRate = errors.New("birthdeath: invalid rate")

	// ErrZeroRate is returned when the birth and death rates are both zero,
	// in which case no waiting time can be drawn.
	ErrZeroRate = errors.New("birthdeath: total event rate is zero")

	// ErrNoBirth is returned when the birth rate is zero but the death rate
	// is not. Such a process never ends.
	ErrNoBirth = errors.New("birthdeath: birth rate is zero, the process " +
		"cannot end")

	// ErrExtant is returned when fewer than one extant lineage is requested.
	ErrExtant = errors.New("birthdeath: the number of extant lineages " +
		"must be positive")

	// ErrRunaway is returned when a simulation creates more nodes than
	// Params.MaxNodes allows.
	ErrRunaway = errors.New("birthdeath: node limit reached")
)

// Params describes one conditioned birth-death process.
type Params struct {
	// Speciation rate λ per lineage.
	BirthRate float64

	// Extinction rate μ per lineage.
	DeathRate float64

	// Number of lineages alive at the present, which is also the number of
	// extant leaves in the tree.
	Extant int

	// Upper bound on the number of nodes a simulation may create. When the
	// death rate exceeds the birth rate, the number of lineages tends to
	// grow backwards in time and a run may never end; this is the guard
	// against that. Zero means no limit.
	MaxNodes int
}

// Validate checks everything that can be checked without drawing any random
// numbers.
func (p Params) Validate() error {
	if err := checkRate("birth", p.BirthRate); err != nil {
		return err
	}
	if err := checkRate("death", p.DeathRate); err != nil {
		return err
	}
	if p.Extant < 1 {
		return fmt.Errorf("%w: got %d", ErrExtant, p.Extant)
	}
	if p.MaxNodes < 0 {
		return fmt.Errorf("birthdeath: negative node limit %d", p.MaxNodes)
	}
	if err := checkTotalRate(p.BirthRate + p.DeathRate); err != nil {
		return err
	}
	if p.BirthRate == 0 {
		return fmt.Errorf("%w (death rate %g)", ErrNoBirth, p.DeathRate)
	}
	return nil
}

func checkRate(name string, rate float64) error {
	if rate < 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("%w: %s rate %g", ErrBadRate, name, rate)
	}
	return nil
}

// pBirth returns the probability that an event is a birth.
func (p Params) pBirth() float64 {
	return p.BirthRate / (p.BirthRate + p.DeathRate)
}
