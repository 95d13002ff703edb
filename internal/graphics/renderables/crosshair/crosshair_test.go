package crosshair

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerticesFormPlusSign(t *testing.T) {
	v := Vertices(0.5)
	assert.Equal(t, []float32{-0.5, 0, 0.5, 0, 0, -0.5, 0, 0.5}, v)
}
