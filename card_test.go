package alsatlv_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gen2brain/alsatlv"
)

func TestEnumerateCards(t *testing.T) {
	if _, err := os.Stat("/proc/asound/cards"); err != nil {
		t.Skipf("Skipping test, /proc/asound is not available: %v", err)
	}

	cards, err := alsatlv.EnumerateCards()
	require.NoError(t, err)

	for _, card := range cards {
		assert.GreaterOrEqual(t, card.ID, 0)
		assert.NotEmpty(t, card.Name)
		assert.Contains(t, card.Path(), "/dev/snd/controlC")
		assert.NotEmpty(t, card.String())
	}

	if len(cards) > 0 {
		found, err := alsatlv.CardByName(cards[0].Name)
		require.NoError(t, err)
		assert.Equal(t, cards[0].ID, found.ID)
	}
}

func TestCardByNameNotFound(t *testing.T) {
	if _, err := os.Stat("/proc/asound/cards"); err != nil {
		t.Skipf("Skipping test, /proc/asound is not available: %v", err)
	}

	_, err := alsatlv.CardByName("No Such Card Exists")
	assert.Error(t, err)
}
