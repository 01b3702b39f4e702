package simplex

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrorKind int

const (
	NullArgument ErrorKind = iota + 1
	InvalidArgument
	OutOfMemory
	Infeasible
	Unbounded
	IterationLimit
	SingularBasis
	NotSupported
)

var errorKindNames = map[ErrorKind]string{
	NullArgument:    "null argument",
	InvalidArgument: "invalid argument",
	OutOfMemory:     "out of memory",
	Infeasible:      "infeasible",
	Unbounded:       "unbounded",
	IterationLimit:  "iteration limit",
	SingularBasis:   "singular basis",
	NotSupported:    "not supported",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error carries the failing operation and its kind.
type Error struct {
	Kind ErrorKind
	Op   string
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("simplex: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("simplex: %s: %s: %s", e.Op, e.Kind, e.Msg)
}

func newError(kind ErrorKind, op string, format string, args ...any) error {
	return errors.WithStack(&Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)})
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
