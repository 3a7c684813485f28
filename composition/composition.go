package composition

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hupe1980/matgo/element"
)

// ErrInvalidFormula is returned when a formula string cannot be parsed.
type ErrInvalidFormula struct {
	Formula string
	Pos     int
	Reason  string
}

func (e *ErrInvalidFormula) Error() string {
	return fmt.Sprintf("invalid formula %q at position %d: %s", e.Formula, e.Pos, e.Reason)
}

// Composition is an immutable mapping of element symbols to amounts. The
// element order is the order of first appearance in the source formula.
type Composition struct {
	order   []string
	amounts map[string]float64
	natoms  float64
}

// Parse converts a chemical formula such as "Fe2O3", "Li0.5CoO2" or
// "Ca3(PO4)2" into a Composition. Parenthesized groups may be nested and
// carry decimal multipliers; duplicate element mentions accumulate.
func Parse(formula string) (*Composition, error) {
	trimmed := strings.TrimSpace(formula)
	if trimmed == "" {
		return nil, &ErrInvalidFormula{Formula: formula, Reason: "empty formula"}
	}

	p := &parser{formula: trimmed}

	acc, err := p.group()
	if err != nil {
		return nil, err
	}

	if p.pos != len(p.formula) {
		return nil, p.errorf("unbalanced closing parenthesis")
	}

	return newComposition(trimmed, acc.order, acc.amounts)
}

// MustParse is like Parse but panics on error.
func MustParse(formula string) *Composition {
	c, err := Parse(formula)
	if err != nil {
		panic(err)
	}

	return c
}

// FromMap builds a Composition from explicit amounts. Elements are ordered
// by atomic number. Negative amounts and unknown symbols are rejected.
func FromMap(amounts map[string]float64) (*Composition, error) {
	src := element.Default()

	type withZ struct {
		symbol string
		z      int
	}

	elems := make([]withZ, 0, len(amounts))

	for symbol, amount := range amounts {
		z, err := src.AtomicNumber(symbol)
		if err != nil {
			return nil, err
		}

		if amount < 0 {
			return nil, &ErrInvalidFormula{Formula: symbol, Reason: "negative amount"}
		}

		elems = append(elems, withZ{symbol: symbol, z: z})
	}

	sort.Slice(elems, func(i, j int) bool { return elems[i].z < elems[j].z })

	order := make([]string, len(elems))
	copied := make(map[string]float64, len(elems))

	for i, e := range elems {
		order[i] = e.symbol
		copied[e.symbol] = amounts[e.symbol]
	}

	return newComposition("", order, copied)
}

func newComposition(formula string, order []string, amounts map[string]float64) (*Composition, error) {
	var total float64
	for _, a := range amounts {
		total += a
	}

	if !(total > 0) {
		return nil, &ErrInvalidFormula{Formula: formula, Reason: "formula contains no atoms"}
	}

	return &Composition{order: order, amounts: amounts, natoms: total}, nil
}

// Elements returns the element symbols in composition order.
func (c *Composition) Elements() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)

	return out
}

// Len returns the number of distinct elements.
func (c *Composition) Len() int {
	return len(c.order)
}

// Contains reports whether the composition carries the given element.
func (c *Composition) Contains(symbol string) bool {
	_, ok := c.amounts[symbol]
	return ok
}

// Amount returns the amount of the given element, or 0 if absent.
func (c *Composition) Amount(symbol string) float64 {
	return c.amounts[symbol]
}

// AtomicFraction returns the element amount divided by the total number of
// atoms, or 0 if the element is absent.
func (c *Composition) AtomicFraction(symbol string) float64 {
	return c.amounts[symbol] / c.natoms
}

// NumAtoms returns the total number of atoms per formula unit.
func (c *Composition) NumAtoms() float64 {
	return c.natoms
}

// Pairs returns all distinct unordered element pairs in composition order.
func (c *Composition) Pairs() [][2]string {
	var out [][2]string

	for i := 0; i < len(c.order); i++ {
		for j := i + 1; j < len(c.order); j++ {
			out = append(out, [2]string{c.order[i], c.order[j]})
		}
	}

	return out
}

// Formula renders the composition back into a formula string. Unit amounts
// are omitted, fractional amounts keep their shortest decimal form.
func (c *Composition) Formula() string {
	var b strings.Builder

	for _, symbol := range c.order {
		b.WriteString(symbol)

		if a := c.amounts[symbol]; a != 1 {
			b.WriteString(strconv.FormatFloat(a, 'g', -1, 64))
		}
	}

	return b.String()
}

// String implements fmt.Stringer.
func (c *Composition) String() string {
	return c.Formula()
}

type accumulator struct {
	order   []string
	amounts map[string]float64
}

func newAccumulator() *accumulator {
	return &accumulator{amounts: make(map[string]float64)}
}

func (a *accumulator) add(symbol string, amount float64) {
	if _, ok := a.amounts[symbol]; !ok {
		a.order = append(a.order, symbol)
	}

	a.amounts[symbol] += amount
}

type parser struct {
	formula string
	pos     int
}

func (p *parser) errorf(format string, args ...any) error {
	return &ErrInvalidFormula{Formula: p.formula, Pos: p.pos, Reason: fmt.Sprintf(format, args...)}
}

// group parses element and parenthesized terms until end of input or a
// closing parenthesis, which is left unconsumed for the caller.
func (p *parser) group() (*accumulator, error) {
	acc := newAccumulator()

	for p.pos < len(p.formula) {
		switch c := p.formula[p.pos]; {
		case c == '(':
			p.pos++

			inner, err := p.group()
			if err != nil {
				return nil, err
			}

			if p.pos >= len(p.formula) || p.formula[p.pos] != ')' {
				return nil, p.errorf("missing closing parenthesis")
			}
			p.pos++

			mult, err := p.amount()
			if err != nil {
				return nil, err
			}

			for _, symbol := range inner.order {
				acc.add(symbol, inner.amounts[symbol]*mult)
			}
		case c == ')':
			return acc, nil
		case c >= 'A' && c <= 'Z':
			start := p.pos
			symbol := p.symbol()

			if !element.IsValidSymbol(symbol) {
				return nil, &ErrInvalidFormula{Formula: p.formula, Pos: start, Reason: fmt.Sprintf("unknown element %q", symbol)}
			}

			amount, err := p.amount()
			if err != nil {
				return nil, err
			}

			acc.add(symbol, amount)
		case c == ' ':
			p.pos++
		default:
			return nil, p.errorf("unexpected character %q", c)
		}
	}

	return acc, nil
}

// symbol consumes an uppercase letter plus any trailing lowercase run.
func (p *parser) symbol() string {
	start := p.pos
	p.pos++

	for p.pos < len(p.formula) && p.formula[p.pos] >= 'a' && p.formula[p.pos] <= 'z' {
		p.pos++
	}

	return p.formula[start:p.pos]
}

// amount consumes an optional decimal amount, defaulting to 1.
func (p *parser) amount() (float64, error) {
	start := p.pos

	for p.pos < len(p.formula) {
		if c := p.formula[p.pos]; (c >= '0' && c <= '9') || c == '.' {
			p.pos++
			continue
		}

		break
	}

	if p.pos == start {
		return 1, nil
	}

	v, err := strconv.ParseFloat(p.formula[start:p.pos], 64)
	if err != nil {
		return 0, &ErrInvalidFormula{Formula: p.formula, Pos: start, Reason: "malformed amount"}
	}

	return v, nil
}
