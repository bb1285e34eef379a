package selkt

import "fmt"

// Tier groups the listeners of a store. Within one notification pass every
// computation of a store runs before any of its subscriptions.
type Tier uint8

const (
	TierComputations Tier = iota
	TierSubscriptions
	tierCount
)

var tierNames = [tierCount]string{
	TierComputations:  "computations",
	TierSubscriptions: "subscriptions",
}

func (t Tier) String() string {
	if !t.valid() {
		return fmt.Sprintf("Tier(%d)", uint8(t))
	}
	return tierNames[t]
}

func (t Tier) valid() bool {
	return t < tierCount
}

func (t Tier) mustBeValid() {
	if !t.valid() {
		panic(fmt.Errorf("%w: %s", ErrUnknownTier, t))
	}
}

// ParseTier maps a tier name to its Tier.
func ParseTier(name string) (Tier, error) {
	for i, n := range tierNames {
		if n == name {
			return Tier(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTier, name)
}
