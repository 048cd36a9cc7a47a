package operator

import (
	"strings"

	"github.com/relq/relq/relerr"
	"github.com/relq/relq/value"
)

// accumulator is one running aggregate state (§4.4.5). Update folds in
// one input value; Result reads the current aggregate value; Merge
// commutatively combines two accumulators of the same kind, as if they
// had each processed a disjoint share of the same input — the hook the
// spec requires for a parallel collector, even though this implementation
// runs its pipeline single-threaded (§5).
type accumulator interface {
	Update(v value.Value) error
	Result() value.Value
	Merge(other accumulator) error
}

func newAccumulator(fn string) (accumulator, error) {
	switch strings.ToLower(fn) {
	case "count":
		return &countAcc{}, nil
	case "sum":
		return &sumAcc{}, nil
	case "avg":
		return &avgAcc{}, nil
	case "min":
		return &extremeAcc{pickMin: true}, nil
	case "max":
		return &extremeAcc{pickMin: false}, nil
	default:
		return nil, relerr.Parsing.New("unknown aggregate function " + fn)
	}
}

// countAcc counts updates regardless of the value's kind.
type countAcc struct{ n int64 }

func (c *countAcc) Update(value.Value) error { c.n++; return nil }
func (c *countAcc) Result() value.Value      { return value.NewInt(c.n) }
func (c *countAcc) Merge(other accumulator) error {
	o := other.(*countAcc)
	c.n += o.n
	return nil
}

// sumAcc starts "unset"; the first update adopts the operand's numeric
// type, subsequent updates add, promoting to floating when either side
// requires it. An unset sum (no updates ever applied) reports 0, the
// same convention as the empty mathematical sum.
type sumAcc struct {
	set   bool
	float bool
	i     int64
	f     float64
}

func (s *sumAcc) Update(v value.Value) error {
	n, err := v.AsNumber()
	if err != nil {
		return err
	}
	if !s.set {
		s.set = true
		if n.Kind() == value.Int {
			s.i = n.Int()
		} else {
			s.float = true
			s.f = n.Float()
		}
		return nil
	}
	if !s.float && n.Kind() == value.Int {
		s.i += n.Int()
		return nil
	}
	s.promote()
	s.f += n.AsFloat64()
	return nil
}

func (s *sumAcc) promote() {
	if !s.float {
		s.float = true
		s.f = float64(s.i)
	}
}

func (s *sumAcc) Result() value.Value {
	if !s.set {
		return value.Zero
	}
	if s.float {
		return value.NewFloat(s.f)
	}
	return value.NewInt(s.i)
}

func (s *sumAcc) Merge(other accumulator) error {
	o := other.(*sumAcc)
	if !o.set {
		return nil
	}
	return s.Update(o.Result())
}

// avgAcc maintains a running sum and count; the result is sum/count,
// integer division when the sum is integral, else floating.
type avgAcc struct {
	sum   sumAcc
	count int64
}

func (a *avgAcc) Update(v value.Value) error {
	if err := a.sum.Update(v); err != nil {
		return err
	}
	a.count++
	return nil
}

func (a *avgAcc) Result() value.Value {
	if a.count == 0 {
		return value.Zero
	}
	s := a.sum.Result()
	if s.Kind() == value.Int {
		return value.NewInt(s.Int() / a.count)
	}
	return value.NewFloat(s.Float() / float64(a.count))
}

func (a *avgAcc) Merge(other accumulator) error {
	o := other.(*avgAcc)
	if o.count == 0 {
		return nil
	}
	if err := a.sum.Merge(&o.sum); err != nil {
		return err
	}
	a.count += o.count
	return nil
}

// extremeAcc tracks min (pickMin true) or max (pickMin false) using the
// total order value.Less defines.
type extremeAcc struct {
	pickMin bool
	set     bool
	v       value.Value
}

func (e *extremeAcc) Update(v value.Value) error {
	if !e.set {
		e.set = true
		e.v = v
		return nil
	}
	if e.pickMin && value.Less(v, e.v) {
		e.v = v
	} else if !e.pickMin && value.Less(e.v, v) {
		e.v = v
	}
	return nil
}

func (e *extremeAcc) Result() value.Value {
	if !e.set {
		return value.Zero
	}
	return e.v
}

func (e *extremeAcc) Merge(other accumulator) error {
	o := other.(*extremeAcc)
	if !o.set {
		return nil
	}
	return e.Update(o.v)
}
