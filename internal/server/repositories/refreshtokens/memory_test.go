package refreshtokens

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/schoolauth/internal/common"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_ConsumeOnce(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()
	exp := time.Now().Add(time.Hour)

	require.NoError(t, r.Create(ctx, "u1", "a", exp))
	require.NoError(t, r.Create(ctx, "u1", "b", exp))
	require.NoError(t, r.Create(ctx, "u2", "c", exp))
	require.ErrorIs(t, r.Create(ctx, "u2", "c", exp), common.ErrorAlreadyExists)

	rt, err := r.Consume(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "u1", rt.UserID)

	_, err = r.Consume(ctx, "a")
	require.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, r.DeleteByUser(ctx, "u1"))
	_, err = r.Consume(ctx, "b")
	require.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, r.Delete(ctx, "c"))
	_, err = r.Consume(ctx, "c")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
