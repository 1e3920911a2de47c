package utils

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unioncup/contestdesk/internal/client/models"
)

func TestDeepCopy(t *testing.T) {
	groupID := 3
	original := models.Participant{
		ID:           1,
		Name:         "Alice",
		Organization: "North",
		GroupID:      &groupID,
		IsCheckedIn:  true,
	}

	clone, err := DeepCopy(original)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(original, clone))

	// The clone owns its pointer fields.
	*clone.GroupID = 99
	assert.Equal(t, 3, *original.GroupID)
}

func TestDeepCopySlice(t *testing.T) {
	original := []models.Score{{ID: 1, Score: 8.5}, {ID: 2, Score: 9.1}}

	clone, err := DeepCopy(original)
	require.NoError(t, err)
	require.Len(t, clone, 2)

	clone[0].Score = 1.0
	assert.Equal(t, 8.5, original[0].Score)
}
