//  Copyright 2024 Google LLC
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.


// Package random extends the standard pseudo-random generator with helpers to
// choose values, exclude values and generate strings, mostly useful to build
// test data.
//
// A Generator is not safe for concurrent use.
package random

import (
	"errors"
	"fmt"
	"iter"
	"math/rand/v2"
	"time"
)

// Character sets to generate random strings from.
const (
	// LowercaseLetters are the letters a..z.
	LowercaseLetters = "abcdefghijklmnopqrstuvwxyz"
	// CapitalLetters are the letters A..Z.
	CapitalLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	// Numbers are the digits 0..9.
	Numbers = "0123456789"
	// Letters are the letters a..z and A..Z.
	Letters = LowercaseLetters + CapitalLetters
	// LettersAndSpaces are the Letters plus spaces.
	LettersAndSpaces = Letters + "     "
	// NumbersAndLetters are the Numbers followed by the Letters.
	NumbersAndLetters = Numbers + Letters
	// NumbersLettersAndSpaces are the Numbers followed by LettersAndSpaces.
	NumbersLettersAndSpaces = Numbers + LettersAndSpaces
	// Hexadecimals are the hexadecimal digits 0..9 and A..F.
	Hexadecimals = Numbers + "ABCDEF"
)

// maxAttempts bounds the number of redraws in ValueExcept.
const maxAttempts = 100000

var (
	// ErrInvalidArgument is returned when there is nothing to choose from.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNoSuitableValue is returned by ValueExcept when no value outside the
	// exceptions was drawn within a reasonable amount of attempts.
	ErrNoSuitableValue = errors.New("no suitable random value generated in a reasonable amount of attempts")

	// charsets maps the configuration names of the character sets.
	charsets = map[string]string{
		"lowercase_letters":          LowercaseLetters,
		"capital_letters":            CapitalLetters,
		"numbers":                    Numbers,
		"letters":                    Letters,
		"letters_and_spaces":         LettersAndSpaces,
		"numbers_and_letters":        NumbersAndLetters,
		"numbers_letters_and_spaces": NumbersLettersAndSpaces,
		"hexadecimals":               Hexadecimals,
	}
)

// Charset returns the character set registered under name, and whether it
// exists.
func Charset(name string) (string, bool) {
	chars, ok := charsets[name]
	return chars, ok
}

// Generator is a pseudo-random generator, all methods of the embedded
// rand.Rand remain available.
type Generator struct {
	*rand.Rand
}

// New returns a Generator drawing from src.
func New(src rand.Source) *Generator {
	return &Generator{Rand: rand.New(src)}
}

// NewSeeded returns a deterministic Generator for the given seed. A zero seed
// is replaced by the current time.
func NewSeeded(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return New(rand.NewPCG(seed, seed>>1|1))
}

// ValueFrom returns one of values chosen uniformly.
func ValueFrom[T any](g *Generator, values ...T) (T, error) {
	if len(values) == 0 {
		var zero T
		return zero, fmt.Errorf("no values to randomly choose from: %w", ErrInvalidArgument)
	}
	return values[g.IntN(len(values))], nil
}

// ValueFromSeq returns one of the values of seq chosen uniformly. seq must be
// finite.
func ValueFromSeq[T any](g *Generator, seq iter.Seq[T]) (T, error) {
	var values []T
	for v := range seq {
		values = append(values, v)
	}
	return ValueFrom(g, values...)
}

// ValueExcept returns the first value produced by next that is not one of
// exceptions.
func ValueExcept[T comparable](next func() T, exceptions ...T) (T, error) {
	excluded := make(map[T]bool, len(exceptions))
	for _, e := range exceptions {
		excluded[e] = true
	}

	v := next()
	for remaining := maxAttempts; excluded[v]; remaining-- {
		if remaining <= 0 {
			var zero T
			return zero, ErrNoSuitableValue
		}
		v = next()
	}
	return v, nil
}

// Text returns a random string of minLen up to and including maxLen
// characters taken from chars. Swapped bounds are accepted and negative
// lengths count as zero.
func (g *Generator) Text(minLen, maxLen int, chars string) (string, error) {
	lo := max(0, min(minLen, maxLen))
	hi := max(lo, minLen, maxLen)
	length := lo + g.IntN(1+hi-lo)
	if length == 0 {
		return "", nil
	}

	runes := []rune(chars)
	if len(runes) == 0 {
		return "", fmt.Errorf("no characters to generate a string of length %d from: %w", length, ErrInvalidArgument)
	}

	res := make([]rune, length)
	for i := range res {
		res[i] = runes[g.IntN(len(runes))]
	}
	return string(res), nil
}

// FixedText returns a random string of exactly length characters taken from
// chars.
func (g *Generator) FixedText(length int, chars string) (string, error) {
	return g.Text(length, length, chars)
}

// RuneFrom returns a random character from chars.
func (g *Generator) RuneFrom(chars string) (rune, error) {
	runes := []rune(chars)
	if len(runes) == 0 {
		return 0, fmt.Errorf("no characters to choose from: %w", ErrInvalidArgument)
	}
	return runes[g.IntN(len(runes))], nil
}

// ShuffleString returns the characters of chars in random order.
func (g *Generator) ShuffleString(chars string) string {
	runes := []rune(chars)
	g.Shuffle(len(runes), func(i, j int) {
		runes[i], runes[j] = runes[j], runes[i]
	})
	return string(runes)
}
