package birthdeath

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// NewRand returns a PCG generator. Two generators built from the same seed
// and stream produce the same numbers; different streams are independent.
func NewRand(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

// waitingTime draws the time until the next event when every lineage
// experiences events at the same total rate.
type waitingTime struct {
	exp distuv.Exponential
}

// checkTotalRate reports whether waiting times can be drawn at the given
// total rate. distuv does not validate its parameters.
func checkTotalRate(rate float64) error {
	switch {
	case math.IsNaN(rate) || math.IsInf(rate, 0):
		return fmt.Errorf("%w: total rate %g", ErrBadRate, rate)
	case rate <= 0:
		return fmt.Errorf("%w: cannot sample waiting times with rate %g",
			ErrZeroRate, rate)
	}
	return nil
}

func newWaitingTime(src rand.Source, rate float64) (waitingTime, error) {
	if err := checkTotalRate(rate); err != nil {
		return waitingTime{}, err
	}
	return waitingTime{exp: distuv.Exponential{Rate: rate, Src: src}}, nil
}

// sample returns the waiting time until the first event among n lineages,
// which is exponential with rate n times the per-lineage rate.
func (w waitingTime) sample(n int) float64 {
	return w.exp.Rand() / float64(n)
}

// newEvent returns the draw deciding whether an event is a birth (1) or a
// death (0).
func newEvent(src rand.Source, pBirth float64) distuv.Bernoulli {
	return distuv.Bernoulli{P: pBirth, Src: src}
}

// pair returns two distinct positions drawn uniformly from [0, n), n >= 2.
// Every unordered pair is equally likely.
func pair(rng *rand.Rand, n int) (int, int) {
	i1 := rng.IntN(n)
	i2 := rng.IntN(n - 1)
	if i2 >= i1 {
		i2++
	}
	return i1, i2
}
