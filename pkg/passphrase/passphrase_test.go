package passphrase

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullWordlist maps every possible five-dice roll to a distinct word so
// Generate never misses a lookup.
func fullWordlist() map[string]string {
	words := make(map[string]string, 7776)
	digits := []byte{'1', '2', '3', '4', '5', '6'}
	for _, a := range digits {
		for _, b := range digits {
			for _, c := range digits {
				for _, d := range digits {
					for _, e := range digits {
						roll := string([]byte{a, b, c, d, e})
						words[roll] = "w" + roll
					}
				}
			}
		}
	}
	return words
}

func TestLoadWordlist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordlist.txt")
	content := "11111\tabacus\n11112\tabdomen\n\nmalformed-line\n11113 abdominal\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	words, err := LoadWordlist(path)
	require.NoError(t, err)
	require.Len(t, words, 3)
	assert.Equal(t, "abacus", words["11111"])
	assert.Equal(t, "abdominal", words["11113"], "space-separated lines load too")
}

func TestLoadWordlistEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := LoadWordlist(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no words loaded")
}

func TestLoadWordlistMissingFile(t *testing.T) {
	_, err := LoadWordlist(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}

func TestGenerate(t *testing.T) {
	words := fullWordlist()

	phrase, err := Generate(words, 4, "-")
	require.NoError(t, err)

	parts := strings.Split(phrase, "-")
	require.Len(t, parts, 4)
	for _, part := range parts {
		assert.True(t, strings.HasPrefix(part, "w"), "unexpected word %q", part)
	}
}

func TestGenerateRejectsNonPositiveLength(t *testing.T) {
	_, err := Generate(fullWordlist(), 0, " ")
	require.Error(t, err)
}

func TestGenerateN(t *testing.T) {
	phrases, err := GenerateN(fullWordlist(), 3, 5, " ")
	require.NoError(t, err)
	require.Len(t, phrases, 5)
	for _, phrase := range phrases {
		assert.Len(t, strings.Split(phrase, " "), 3)
	}
}

func TestGenerateNRejectsNonPositiveCount(t *testing.T) {
	_, err := GenerateN(fullWordlist(), 3, 0, " ")
	require.Error(t, err)
}

func TestGenerateMissingRoll(t *testing.T) {
	// A single-entry list will be missed almost immediately.
	words := map[string]string{"11111": "abacus"}
	for i := 0; i < 50; i++ {
		if _, err := Generate(words, 1, " "); err != nil {
			assert.Contains(t, err.Error(), "no entry for roll")
			return
		}
	}
	t.Log(fmt.Sprintf("all %d generations hit the only roll; statistically near impossible", 50))
	t.Fail()
}
