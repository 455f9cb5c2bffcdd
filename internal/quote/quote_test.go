package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor_Deterministic(t *testing.T) {
	assert.Equal(t, For(3), For(3))
	assert.Equal(t, For(0), For(len(quotes)))
	assert.Equal(t, For(2), For(-2))
}

func TestFor_CoversEveryQuote(t *testing.T) {
	seen := make(map[string]bool)
	for id := range quotes {
		seen[For(id)] = true
	}
	assert.Len(t, seen, len(quotes))
}

func TestFor_FirstQuote(t *testing.T) {
	assert.Equal(t, "The secret of getting ahead is getting started.", For(0))
}
