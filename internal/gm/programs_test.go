package gm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgramsHas128Entries(t *testing.T) {
	assert.Len(t, Programs, 128)
	for i, e := range Programs {
		assert.NotEmpty(t, e.Name, "program %d", i+1)
		assert.NotEmpty(t, e.Identifier, "program %d", i+1)
	}
}

func TestByIdentifierMatchesProgramsTable(t *testing.T) {
	assert.Equal(t, 1, ByIdentifier["acoustic_grand_piano"])
	assert.Equal(t, 128, ByIdentifier["gunshot"])
	for i, e := range Programs {
		assert.Equal(t, i+1, ByIdentifier[e.Identifier])
	}
}
