package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampQuantity(t *testing.T) {
	assert.Equal(t, 7, ClampQuantity(10, -3))
	assert.Equal(t, 13, ClampQuantity(10, 3))
	assert.Equal(t, 0, ClampQuantity(10, -10))
	assert.Equal(t, 0, ClampQuantity(2, -5), "decrement below zero clamps")
	assert.Equal(t, 0, ClampQuantity(0, -1), "zero stays zero")
}

func TestLinked(t *testing.T) {
	assert.False(t, (&Product{}).Linked())
	assert.True(t, (&Product{CloverItemID: "c1"}).Linked())
}
