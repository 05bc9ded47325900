// Package passphrase generates diceware passphrases from an EFF-format
// wordlist (five dice digits, a tab or spaces, then the word per line).
package passphrase

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
)

// LoadWordlist parses an EFF wordlist file into roll -> word.
func LoadWordlist(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) >= 2 {
			words[parts[0]] = parts[1]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no words loaded from wordlist %s", path)
	}
	return words, nil
}

// Generate builds one passphrase of length words.
func Generate(words map[string]string, length int, separator string) (string, error) {
	if length < 1 {
		return "", errors.New("length must be a positive integer")
	}

	picked := make([]string, 0, length)
	for range length {
		roll, err := rollDice()
		if err != nil {
			return "", err
		}
		word, ok := words[roll]
		if !ok {
			return "", fmt.Errorf("wordlist has no entry for roll %s", roll)
		}
		picked = append(picked, word)
	}
	return strings.Join(picked, separator), nil
}

// GenerateN builds count passphrases.
func GenerateN(words map[string]string, length, count int, separator string) ([]string, error) {
	if count < 1 {
		return nil, errors.New("count must be a positive integer")
	}
	phrases := make([]string, 0, count)
	for range count {
		phrase, err := Generate(words, length, separator)
		if err != nil {
			return nil, err
		}
		phrases = append(phrases, phrase)
	}
	return phrases, nil
}

// rollDice returns five crypto-random dice as a string like "35126".
func rollDice() (string, error) {
	var sb strings.Builder
	for range 5 {
		n, err := rand.Int(rand.Reader, big.NewInt(6))
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte('1' + n.Int64()))
	}
	return sb.String(), nil
}
