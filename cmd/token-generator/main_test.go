package main

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetUsers(t *testing.T) {
	t.Parallel()

	t.Run("explicit user", func(t *testing.T) {
		t.Parallel()
		id := uuid.New()

		ids, err := targetUsers(id.String(), 5)

		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{id}, ids)
	})

	t.Run("random users", func(t *testing.T) {
		t.Parallel()

		ids, err := targetUsers("", 3)

		require.NoError(t, err)
		require.Len(t, ids, 3)
		assert.NotEqual(t, ids[0], ids[1])
	})

	t.Run("invalid user", func(t *testing.T) {
		t.Parallel()

		_, err := targetUsers("not-a-uuid", 1)

		assert.ErrorContains(t, err, `invalid user ID "not-a-uuid"`)
	})

	t.Run("invalid count", func(t *testing.T) {
		t.Parallel()

		_, err := targetUsers("", 0)

		assert.ErrorContains(t, err, "-n must be at least 1")
	})
}
