package simplex

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ReadProblem parses the text format
//
//	description
//	numVars numConstrs
//	row col value      (1-based, repeated, ended by "0 0 0")
//	sense rhs          (one line per constraint, sense is <, > or =)
//	cost lower upper   (one line per variable, bounds accept inf and -inf)
//
// Blank lines and lines starting with '#' are skipped.
func ReadProblem(r io.Reader) (*Problem, error) {
	lr := &lineReader{scanner: bufio.NewScanner(r)}

	description, err := lr.next()
	if err != nil {
		return nil, errors.Wrap(err, "missing description")
	}

	fields, err := lr.fields(2)
	if err != nil {
		return nil, errors.Wrap(err, "missing size information")
	}
	numVars, err1 := strconv.Atoi(fields[0])
	numConstrs, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil || numVars < 0 || numConstrs < 0 {
		return nil, lr.syntax("invalid size line %q", strings.Join(fields, " "))
	}

	p, err := NewProblem(numVars)
	if err != nil {
		return nil, err
	}
	p.Name = description

	var entries []Nonzero
	for {
		fields, err := lr.fields(3)
		if err != nil {
			return nil, errors.Wrap(err, "matrix section not terminated by 0 0 0")
		}
		row, err1 := strconv.Atoi(fields[0])
		col, err2 := strconv.Atoi(fields[1])
		val, err3 := strconv.ParseFloat(fields[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, lr.syntax("invalid matrix entry %q", strings.Join(fields, " "))
		}
		if row == 0 && col == 0 {
			break
		}
		if row < 1 || row > numConstrs || col < 1 || col > numVars {
			return nil, lr.syntax("entry (%d,%d) outside %dx%d", row, col, numConstrs, numVars)
		}
		entries = append(entries, Nonzero{Row: row - 1, Col: col - 1, Val: val})
	}

	for i := 0; i < numConstrs; i++ {
		fields, err := lr.fields(2)
		if err != nil {
			return nil, errors.Wrapf(err, "constraint %d", i+1)
		}
		rhs, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || len(fields[0]) != 1 {
			return nil, lr.syntax("invalid constraint line %q", strings.Join(fields, " "))
		}
		if _, err := p.AddConstraint(nil, nil, Sense(fields[0][0]), rhs); err != nil {
			return nil, errors.Wrapf(err, "line %d", lr.line)
		}
	}
	if err := p.AddNonzeros(entries...); err != nil {
		return nil, err
	}

	for j := 0; j < numVars; j++ {
		fields, err := lr.fields(3)
		if err != nil {
			return nil, errors.Wrapf(err, "variable %d", j+1)
		}
		var v [3]float64
		for k := range v {
			if v[k], err = strconv.ParseFloat(fields[k], 64); err != nil {
				return nil, lr.syntax("invalid variable line %q", strings.Join(fields, " "))
			}
		}
		if err := p.SetObjective(j, v[0]); err != nil {
			return nil, err
		}
		if err := p.SetBounds(j, v[1], v[2]); err != nil {
			return nil, errors.Wrapf(err, "line %d", lr.line)
		}
	}

	if err := lr.scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading problem")
	}
	return p, nil
}

type lineReader struct {
	scanner *bufio.Scanner
	line    int
}

func (lr *lineReader) next() (string, error) {
	for lr.scanner.Scan() {
		lr.line++
		text := strings.TrimSpace(lr.scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		return text, nil
	}
	if err := lr.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.ErrUnexpectedEOF
}

// fields returns the first n fields of the next line.
func (lr *lineReader) fields(n int) ([]string, error) {
	text, err := lr.next()
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(text)
	if len(fields) < n {
		return nil, lr.syntax("expected %d fields, got %q", n, text)
	}
	return fields[:n], nil
}

func (lr *lineReader) syntax(format string, args ...any) error {
	return errors.Wrapf(newError(InvalidArgument, "ReadProblem", format, args...), "line %d", lr.line)
}
