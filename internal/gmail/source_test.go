package gmail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPageRejectsNonSequentialOffset(t *testing.T) {
	s := testSource()

	_, err := s.FetchPage(context.Background(), "in:inbox", 50, 50)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-sequential offset")
}

func TestFetchPageAfterExhaustion(t *testing.T) {
	s := testSource()
	s.nextOffset = 100
	s.exhausted = true

	// Once exhausted the source keeps returning empty pages without
	// touching the API.
	page, err := s.FetchPage(context.Background(), "in:inbox", 100, 50)
	require.NoError(t, err)
	assert.Empty(t, page)
}
