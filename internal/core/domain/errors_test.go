package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	all := []error{
		ErrNotFound,
		ErrInvalidInput,
		ErrNoImageSources,
		ErrDocumentUnsaved,
		ErrSourceRead,
		ErrAssetWrite,
	}

	for i, a := range all {
		for j, b := range all {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}

func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("%w: /tmp/a.png: permission denied", ErrSourceRead)

	assert.ErrorIs(t, wrapped, ErrSourceRead)
	assert.NotErrorIs(t, wrapped, ErrAssetWrite)
	assert.Contains(t, wrapped.Error(), "reading image source")
}
