// Package numerology reduces a name and birth date to the three classic
// numbers using the Pythagorean letter mapping. Reduction stops the moment a
// sum hits a master number (11, 22, 33); master numbers are never reduced
// further.
package numerology

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/astrosetu/astrosetu-backend/internal/platform/errs"
)

// Profile is a pure function of name + birth date.
type Profile struct {
	LifePath int `json:"life_path"`
	Destiny  int `json:"destiny"`
	Soul     int `json:"soul"`
}

// Calculate derives the numerology profile. The full name must contain at
// least one letter and the date must be set.
func Calculate(fullName string, birthDate time.Time) (Profile, error) {
	if birthDate.IsZero() {
		return Profile{}, fmt.Errorf("%w: birth date required", errs.ErrInvalidInput)
	}
	letters := 0
	for _, r := range fullName {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if letters == 0 {
		return Profile{}, fmt.Errorf("%w: name must contain letters", errs.ErrInvalidInput)
	}

	return Profile{
		LifePath: lifePath(birthDate),
		Destiny:  nameNumber(fullName, false),
		Soul:     nameNumber(fullName, true),
	}, nil
}

// lifePath sums every digit of the ISO date (day, month, full year) and
// reduces. 1990-05-15 → 1+9+9+0+0+5+1+5 = 30 → 3.
func lifePath(d time.Time) int {
	sum := digitSum(d.Year()) + digitSum(int(d.Month())) + digitSum(d.Day())
	return reduce(sum)
}

// nameNumber maps letters through the Pythagorean table (A=1..I=9, cycling).
// vowelsOnly selects the soul number; otherwise every letter counts.
func nameNumber(name string, vowelsOnly bool) int {
	sum := 0
	for _, r := range strings.ToUpper(name) {
		if r < 'A' || r > 'Z' {
			continue
		}
		if vowelsOnly && !isVowel(r) {
			continue
		}
		sum += int(r-'A')%9 + 1
	}
	if sum == 0 && vowelsOnly {
		// A vowel-less name falls back to the full-name sum so the soul
		// number is always defined.
		return nameNumber(name, false)
	}
	return reduce(sum)
}

func isVowel(r rune) bool {
	switch r {
	case 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

// reduce collapses n to a single digit, stopping at master numbers.
func reduce(n int) int {
	for n > 9 {
		if isMaster(n) {
			return n
		}
		n = digitSum(n)
	}
	return n
}

func isMaster(n int) bool {
	return n == 11 || n == 22 || n == 33
}

func digitSum(n int) int {
	if n < 0 {
		n = -n
	}
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}
