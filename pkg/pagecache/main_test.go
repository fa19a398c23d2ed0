package pagecache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pagefarm/pagefarm/pkg/pagecache"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestMemory_SweeperStopsOnClose(t *testing.T) {
	t.Parallel()

	m := pagecache.NewMemory(pagecache.WithCleanupInterval(time.Millisecond), pagecache.WithDefaultTTL(time.Millisecond))
	require.NoError(t, m.Set(context.Background(), "k", page("x"), 0))

	require.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, 5*time.Millisecond)
	require.NoError(t, m.Close())
}
