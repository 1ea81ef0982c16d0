package combination

import "fmt"

// Strategy names the rule that produced a candidate.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyIdle
	StrategyMainEfficient
	StrategyMainEfficientPlusOne
	StrategyMainUnderloaded
	StrategyMainUnderloadedPlusOne
	StrategyMainFallback
	StrategyMainFallbackPlusOne
	StrategyPortOnly
	StrategyAssisted

	strategyCount
)

var strategyCodes = [strategyCount]string{
	StrategyNone:                   "none",
	StrategyIdle:                   "idle",
	StrategyMainEfficient:          "main_eff",
	StrategyMainEfficientPlusOne:   "main_eff_plus_one",
	StrategyMainUnderloaded:        "main_ineff_low",
	StrategyMainUnderloadedPlusOne: "main_ineff_low_plus_one",
	StrategyMainFallback:           "main_fallback",
	StrategyMainFallbackPlusOne:    "main_fallback_plus_one",
	StrategyPortOnly:               "port_only",
	StrategyAssisted:               "assisted",
}

// Strategies returns every strategy in declaration order.
func Strategies() []Strategy {
	out := make([]Strategy, 0, strategyCount)
	for s := Strategy(0); s < strategyCount; s++ {
		out = append(out, s)
	}
	return out
}

func (s Strategy) String() string {
	if s < 0 || s >= strategyCount {
		return fmt.Sprintf("strategy(%d)", int(s))
	}
	return strategyCodes[s]
}

// Assisted reports whether the strategy runs port and main units together.
func (s Strategy) Assisted() bool { return s == StrategyAssisted }

// Underloaded reports whether the strategy is a main-only set below the efficient band.
func (s Strategy) Underloaded() bool {
	return s == StrategyMainUnderloaded || s == StrategyMainUnderloadedPlusOne
}

func (s Strategy) MarshalText() ([]byte, error) {
	if s < 0 || s >= strategyCount {
		return nil, fmt.Errorf("invalid strategy %d", int(s))
	}
	return []byte(strategyCodes[s]), nil
}

func (s *Strategy) UnmarshalText(b []byte) error {
	parsed, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func ParseStrategy(code string) (Strategy, error) {
	for i, c := range strategyCodes {
		if c == code {
			return Strategy(i), nil
		}
	}
	return StrategyNone, fmt.Errorf("unknown strategy %q", code)
}
