package simplex

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	err := newError(SingularBasis, "OrderAndFactor", "no acceptable pivot at step %d", 3)
	assert.Equal(t, "simplex: OrderAndFactor: singular basis: no acceptable pivot at step 3", err.Error())
	assert.Equal(t, SingularBasis, KindOf(err))

	wrapped := errors.Wrapf(err, "refactor at iteration %d", 12)
	assert.True(t, IsKind(wrapped, SingularBasis))
	assert.Contains(t, fmt.Sprintf("%+v", wrapped), "newError")

	var e *Error
	assert.True(t, errors.As(wrapped, &e))
	assert.Equal(t, "OrderAndFactor", e.Op)

	assert.Equal(t, ErrorKind(0), KindOf(errors.New("plain")))
	assert.False(t, IsKind(nil, NullArgument))
	assert.Equal(t, "simplex: Solve: null argument", (&Error{Kind: NullArgument, Op: "Solve"}).Error())
	assert.Equal(t, "kind(42)", ErrorKind(42).String())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "Optimal", StatusOptimal.String())
	assert.Equal(t, "Interrupted", StatusInterrupted.String())
	assert.Equal(t, "Invalid", Status(99).String())
	assert.Equal(t, "recommended", RefactorRecommended.String())
}
