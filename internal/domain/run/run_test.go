package run

import (
	"testing"

	"github.com/google/uuid"
	"gotest.tools/v3/assert"
)

func TestNewRunHasUUID(t *testing.T) {
	r := New(KindUCC)

	_, err := uuid.Parse(r.ID)
	assert.NilError(t, err)
	assert.Assert(t, r.Active)
	assert.Equal(t, r.Kind, KindUCC)
	assert.Assert(t, r.ID != New(KindUCC).ID)
}

func TestCloseIsIdempotent(t *testing.T) {
	r := New(KindIND)
	r.Close()
	end := r.EndTime
	r.Close()

	assert.Assert(t, !r.Active)
	assert.Assert(t, r.EndTime.Equal(end))
	assert.Assert(t, r.Duration() >= 0)
}
