package content

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Blacklist holds operator-maintained phrases that must never appear in
// uploaded article text. It is backed by a plain text file, one phrase
// per line, so the operator can edit it by hand too.
type Blacklist struct {
	mu      sync.RWMutex
	path    string
	phrases []string
}

// LoadBlacklist reads the phrase file. A missing file yields an empty
// blacklist; it is created on the first AddPhrase call.
func LoadBlacklist(path string) (*Blacklist, error) {
	b := &Blacklist{path: path}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return b, nil
		}
		return nil, fmt.Errorf("failed to open blacklist file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		phrase := strings.TrimSpace(scanner.Text())
		if phrase == "" {
			continue
		}
		b.phrases = append(b.phrases, phrase)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read blacklist file: %w", err)
	}

	return b, nil
}

// AddPhrase appends a phrase to the file and the in-memory list.
// Adding a phrase that is already present is a no-op.
func (b *Blacklist) AddPhrase(phrase string) error {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return fmt.Errorf("blacklist phrase is empty")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, existing := range b.phrases {
		if existing == phrase {
			return nil
		}
	}

	f, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open blacklist file for append: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(phrase + "\n"); err != nil {
		return fmt.Errorf("failed to append blacklist phrase: %w", err)
	}

	b.phrases = append(b.phrases, phrase)

	return nil
}

// Phrases returns a snapshot of the current phrase list.
func (b *Blacklist) Phrases() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]string, len(b.phrases))
	copy(out, b.phrases)
	return out
}

// Strip removes every blacklisted phrase from the text.
func (b *Blacklist) Strip(text string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, phrase := range b.phrases {
		text = strings.ReplaceAll(text, phrase, "")
	}
	return text
}
