// Package quote issues quote numbers and validity dates.
package quote

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"winhouse-quote/internal/format"
)

// ValidityDays is how long a quote stays valid after it is issued.
const ValidityDays = 30

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var numberPattern = regexp.MustCompile(`^WH\d{4}-[0-9A-Z]{4}$`)

type Generator struct {
	now  func() time.Time
	intN func(n int) int
}

type GeneratorOption func(*Generator)

func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) { g.now = now }
}

// WithRand replaces the random source; intN must return a value in [0, n).
func WithRand(intN func(n int) int) GeneratorOption {
	return func(g *Generator) { g.intN = intN }
}

func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{now: time.Now, intN: rand.IntN}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Number returns WH{yy}{mm}-XXXX where the month is taken in Vietnam time
// and XXXX is four random base36 characters.
func (g *Generator) Number() string {
	t := g.now().In(format.Vietnam)

	var suffix strings.Builder
	for i := 0; i < 4; i++ {
		suffix.WriteByte(base36[g.intN(len(base36))])
	}
	return fmt.Sprintf("WH%02d%02d-%s", t.Year()%100, int(t.Month()), suffix.String())
}

// ValidUntil is the last day a quote issued now is honoured.
func (g *Generator) ValidUntil() time.Time {
	return ValidUntil(g.now())
}

func ValidUntil(issued time.Time) time.Time {
	return issued.AddDate(0, 0, ValidityDays)
}

// ValidNumber reports whether s has the quote number shape.
func ValidNumber(s string) bool {
	return numberPattern.MatchString(s)
}
