package alsatlv

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// SoundCard represents an enumerated sound card.
type SoundCard struct {
	ID          int
	Name        string
	Description string
}

// String returns a human-readable representation of the SoundCard.
func (c SoundCard) String() string {
	return fmt.Sprintf("Card %d: %s (%s)", c.ID, c.Name, c.Description)
}

// Path returns the control device node for the sound card.
func (c SoundCard) Path() string {
	return fmt.Sprintf("/dev/snd/controlC%d", c.ID)
}

// EnumerateCards scans /proc/asound to find all available sound cards.
func EnumerateCards() ([]SoundCard, error) {
	cardsFile := "/proc/asound/cards"
	cardsContent, err := os.ReadFile(cardsFile)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", cardsFile, err)
	}

	cardMap := make(map[int]SoundCard)
	cardRegex := regexp.MustCompile(`^\s*(\d+)\s+\[\s*([^]]*?)\s*\]:\s*(.*)`)
	lines := strings.Split(string(cardsContent), "\n")

	for _, line := range lines {
		matches := cardRegex.FindStringSubmatch(line)
		if len(matches) == 4 {
			id, err := strconv.Atoi(matches[1])
			if err != nil {
				continue
			}
			cardMap[id] = SoundCard{
				ID:          id,
				Name:        strings.TrimSpace(matches[2]),
				Description: strings.TrimSpace(matches[3]),
			}
		}
	}

	var cardIDs []int
	for id := range cardMap {
		cardIDs = append(cardIDs, id)
	}

	sort.Ints(cardIDs)

	result := make([]SoundCard, 0, len(cardIDs))
	for _, id := range cardIDs {
		result = append(result, cardMap[id])
	}

	return result, nil
}

// CardByName finds a sound card by its short name, as shown in /proc/asound/cards.
func CardByName(name string) (SoundCard, error) {
	cards, err := EnumerateCards()
	if err != nil {
		return SoundCard{}, err
	}

	for _, card := range cards {
		if card.Name == name {
			return card, nil
		}
	}

	return SoundCard{}, fmt.Errorf("sound card not found: %s", name)
}
