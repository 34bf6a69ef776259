package signup

import (
	"fmt"
	"strings"

	"github.com/akeren/sunday-signup/pkg/constants"
)

type PricingMode string

const (
	// PricingPerSlot charges the unit price once per selected time slot.
	PricingPerSlot PricingMode = "per_slot"
	// PricingPerPlayer charges the unit price once per player in the party.
	PricingPerPlayer PricingMode = "per_player"
)

func ParsePricingMode(v string) PricingMode {
	if PricingMode(strings.ToLower(strings.TrimSpace(v))) == PricingPerPlayer {
		return PricingPerPlayer
	}
	return PricingPerSlot
}

type Pricing struct {
	Mode      PricingMode
	UnitCents int64
}

func (p Pricing) units(slots int, playerCount int) int {
	if p.Mode == PricingPerPlayer {
		if playerCount <= 0 {
			return 1
		}
		return min(playerCount, constants.MaxPlayerCount)
	}
	return max(slots, 0)
}

// Quote returns the amount owed in cents along with the unit count it was
// computed from.
func (p Pricing) Quote(slots int, playerCount int) (amountCents int64, units int) {
	units = p.units(slots, playerCount)
	return int64(units) * p.UnitCents, units
}

// FormatAmount renders cents as dollars, e.g. 1250 -> "$12.50".
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
