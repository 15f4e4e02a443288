package launch

import (
	"fmt"
	"math"
	"strings"
)

// Outcome is the binary launch result stored in the class column.
type Outcome int

const (
	Failure Outcome = 0
	Success Outcome = 1
)

// String returns the display label for the outcome.
func (o Outcome) String() string {
	switch o {
	case Success:
		return "Success"
	case Failure:
		return "Failure"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Valid reports whether o is one of the two known outcomes.
func (o Outcome) Valid() bool {
	return o == Success || o == Failure
}

// Record is one historical launch.
type Record struct {
	Site                   string
	Class                  Outcome
	PayloadMassKG          float64
	BoosterVersionCategory string
}

// Succeeded reports whether the launch outcome is a success.
func (r Record) Succeeded() bool {
	return r.Class == Success
}

func (r Record) validate() error {
	if strings.TrimSpace(r.Site) == "" {
		return fmt.Errorf("launch site is required")
	}
	if !r.Class.Valid() {
		return fmt.Errorf("class %d must be 0 or 1", int(r.Class))
	}
	if math.IsNaN(r.PayloadMassKG) || math.IsInf(r.PayloadMassKG, 0) {
		return fmt.Errorf("payload mass must be a finite number")
	}
	if r.PayloadMassKG < 0 {
		return fmt.Errorf("payload mass %g must not be negative", r.PayloadMassKG)
	}
	return nil
}
