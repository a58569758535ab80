package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/woogihooni/exmJo/internal/pkg/errors"
)

func TestKVStore_SetGetDelete(t *testing.T) {
	store := NewKVStore()

	_, err := store.Get("missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "Отсутствующий ключ должен давать ErrNotFound")

	require.NoError(t, store.Set("k", "v1"))
	require.NoError(t, store.Set("k", "v2"))

	value, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v2", value, "Побеждает последняя запись")

	require.NoError(t, store.Delete("k"))
	require.NoError(t, store.Delete("k"), "Повторное удаление не ошибка")

	_, err = store.Get("k")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, store.Close())
}
