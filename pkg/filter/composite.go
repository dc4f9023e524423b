package filter

import "github.com/userdeck/userdeck/pkg/types"

// Op combines sub-strategy verdicts.
type Op int

const (
	// And matches when every sub-strategy matches; evaluation stops at
	// the first failure.
	And Op = iota
	// Or matches when any sub-strategy matches; evaluation stops at the
	// first success.
	Or
)

// Composite combines two or more strategies under a single operator.
type Composite struct {
	Op         Op
	Strategies []Strategy
}

// NewComposite builds a composite over the given strategies.
func NewComposite(op Op, strategies ...Strategy) Composite {
	return Composite{Op: op, Strategies: strategies}
}

func (s Composite) Name() string {
	name := "and("
	if s.Op == Or {
		name = "or("
	}
	for i, sub := range s.Strategies {
		if i > 0 {
			name += ","
		}
		name += sub.Name()
	}
	return name + ")"
}

func (s Composite) Match(u types.User, c Criteria) bool {
	if len(s.Strategies) == 0 {
		return true
	}
	if s.Op == Or {
		for _, sub := range s.Strategies {
			if sub.Match(u, c) {
				return true
			}
		}
		return false
	}
	for _, sub := range s.Strategies {
		if !sub.Match(u, c) {
			return false
		}
	}
	return true
}

func (s Composite) Apply(users []types.User, c Criteria) []types.User {
	return applyWith(users, c, s.Match)
}
