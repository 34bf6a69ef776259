package players

import (
	"testing"

	"github.com/akeren/sunday-signup/internal/sheets"
	"github.com/stretchr/testify/assert"
)

func TestFromSheetPlayer_VIPRequiresCapitalisedYes(t *testing.T) {
	cases := map[string]bool{
		"Yes - VIP":                true,
		"yes please":               false,
		"No - eyes on Sunday only": false,
		"":                         false,
	}

	for choice, want := range cases {
		profile := FromSheetPlayer(&sheets.Player{Names: "Jordan Lee", VIPChoice: choice}, "5550001111")
		assert.Equal(t, want, profile.VIP, "choice %q", choice)
		assert.Equal(t, "(555) 000-1111", profile.Phone)
	}
}
