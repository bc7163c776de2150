package badwords

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joy095/booking/logger"
)

// badWordsMap is a set of prohibited words for fast lookups.
var badWordsMap map[string]struct{}

var mu sync.RWMutex

// LoadBadWords loads the word list from a text file, one word per line.
// Matching is case-insensitive.
func LoadBadWords(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read bad words file: %w", err)
	}

	newMap := make(map[string]struct{})
	for _, line := range strings.Split(string(data), "\n") {
		word := strings.ToLower(strings.TrimSpace(line))
		if word != "" {
			newMap[word] = struct{}{}
		}
	}

	mu.Lock()
	badWordsMap = newMap
	mu.Unlock()

	logger.InfoLogger.Infof("Loaded %d bad words", len(newMap))
	return nil
}

// ContainsBadWords reports whether any word of text is on the list. Used
// to screen host-supplied property text and customer cancellation reasons.
func ContainsBadWords(text string) bool {
	mu.RLock()
	defer mu.RUnlock()

	if len(badWordsMap) == 0 {
		return false
	}

	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:\"'()[]{}")
		if _, found := badWordsMap[word]; found {
			return true
		}
	}
	return false
}
