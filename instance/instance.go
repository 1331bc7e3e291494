// Package instance reads and writes knapsack problem instances.
//
// Text format (one record per line, whitespace separated):
//
//	item_count capacity
//	value_0 weight_0
//	...
//	value_{n-1} weight_{n-1}
//
// Blank lines are ignored. Rows after the declared count are ignored.
// Solutions are rendered as
//
//	objective optimal_flag
//	taken_0 taken_1 ... taken_{n-1}
package instance

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvpack/knapsack"
)

// Sentinel errors for instance decoding.
// maxPrealloc caps the row slices sized from the header count.
const maxPrealloc = 1 << 16

var (
	// ErrMalformed indicates a line that does not hold the expected numbers.
	ErrMalformed = errors.New("instance: malformed input")

	// ErrItemCountMismatch indicates fewer item rows than the header declares.
	ErrItemCountMismatch = errors.New("instance: item count mismatch")
)

// Instance is one parsed problem.
type Instance struct {
	Name     string
	Capacity int
	Items    []knapsack.Item
}

// Validate checks the instance with the same rules the solvers apply.
func (in Instance) Validate() error {
	return knapsack.Validate(in.Items, in.Capacity)
}

// Parse decodes the text format.
func Parse(r io.Reader) (Instance, error) {
	var (
		inst     Instance
		sc       = bufio.NewScanner(r)
		lineNo   int
		count    = -1
		values   []float64
		weights  []int
		fields   []string
		line     string
		haveHead bool
	)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for sc.Scan() {
		lineNo++
		line = strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields = strings.Fields(line)
		if len(fields) < 2 {
			return Instance{}, fmt.Errorf("%w: line %d: want 2 fields, got %d", ErrMalformed, lineNo, len(fields))
		}

		if !haveHead {
			n, err := strconv.Atoi(fields[0])
			if err != nil || n < 0 {
				return Instance{}, fmt.Errorf("%w: line %d: item count %q", ErrMalformed, lineNo, fields[0])
			}
			c, err := strconv.Atoi(fields[1])
			if err != nil {
				return Instance{}, fmt.Errorf("%w: line %d: capacity %q", ErrMalformed, lineNo, fields[1])
			}
			if c < 0 {
				return Instance{}, fmt.Errorf("line %d: %w", lineNo, knapsack.ErrNegativeCapacity)
			}
			count, inst.Capacity, haveHead = n, c, true
			// The header is untrusted; append grows past the hint.
			values = make([]float64, 0, min(n, maxPrealloc))
			weights = make([]int, 0, min(n, maxPrealloc))
			continue
		}

		if len(values) == count {
			break
		}
		v, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return Instance{}, fmt.Errorf("%w: line %d: value %q", ErrMalformed, lineNo, fields[0])
		}
		w, err := strconv.Atoi(fields[1])
		if err != nil {
			return Instance{}, fmt.Errorf("%w: line %d: weight %q", ErrMalformed, lineNo, fields[1])
		}
		values = append(values, v)
		weights = append(weights, w)
	}
	if err := sc.Err(); err != nil {
		return Instance{}, fmt.Errorf("instance: read: %w", err)
	}

	if !haveHead {
		return Instance{}, fmt.Errorf("%w: missing header", ErrMalformed)
	}
	if len(values) < count {
		return Instance{}, fmt.Errorf("%w: header declares %d items, found %d", ErrItemCountMismatch, count, len(values))
	}

	items, err := knapsack.NewItems(values, weights)
	if err != nil {
		return Instance{}, err
	}
	inst.Items = items
	if err = inst.Validate(); err != nil {
		return Instance{}, err
	}

	return inst, nil
}

// Write encodes inst in the text format.
func Write(w io.Writer, inst Instance) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", len(inst.Items), inst.Capacity)
	var it knapsack.Item
	for _, it = range inst.Items {
		fmt.Fprintf(bw, "%s %d\n", formatValue(it.Value), it.Weight)
	}

	return bw.Flush()
}

// Format renders a solution: objective and optimality flag, then the taken
// vector.
func Format(w io.Writer, res knapsack.Result) error {
	var optimal int
	if res.Optimal {
		optimal = 1
	}
	parts := make([]string, len(res.Taken))
	var i int
	for i = range res.Taken {
		parts[i] = strconv.Itoa(res.Taken[i])
	}
	_, err := fmt.Fprintf(w, "%s %d\n%s\n", formatValue(res.Value), optimal, strings.Join(parts, " "))

	return err
}

// formatValue prints integral values without a fractional part.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
