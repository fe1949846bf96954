package assert_test

import (
	"testing"

	"github.com/chaisql/docbridge/internal/testutil/assert"
	"github.com/cockroachdb/errors"
)

var errTarget = errors.New("target")

func TestAssertions(t *testing.T) {
	assert.NoError(t, nil)
	assert.Error(t, errTarget)
	assert.ErrorIs(t, errors.Wrap(errTarget, "wrapped"), errTarget)
}
