package naming

import (
	"strings"
	"testing"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(unix int64) func() time.Time {
	return func() time.Time { return time.Unix(unix, 0) }
}

func TestGenerate(t *testing.T) {
	t.Run("DeterministicWithoutSuffix", func(t *testing.T) {
		g := NewGenerator("deltashare", WithClock(fixedClock(1700000000)), WithSuffix(false))

		names, err := g.Generate()
		require.NoError(t, err)
		assert.Equal(t, "deltashare1700000000", names.StorageAccount)
		assert.Equal(t, "deltashare-func-1700000000", names.FunctionApp)

		// Same inputs, same names.
		again, err := g.Generate()
		require.NoError(t, err)
		assert.Equal(t, names, again)
	})

	t.Run("SuffixPreventsSameSecondCollision", func(t *testing.T) {
		g := NewGenerator("deltashare", WithClock(fixedClock(1700000000)))

		first, err := g.Generate()
		require.NoError(t, err)
		second, err := g.Generate()
		require.NoError(t, err)

		assert.NotEqual(t, first.StorageAccount, second.StorageAccount)
		assert.NotEqual(t, first.FunctionApp, second.FunctionApp)
		assert.True(t, strings.HasPrefix(first.StorageAccount, "deltashare1700000000"))
	})

	t.Run("SuffixIsDeterministicGivenIDSource", func(t *testing.T) {
		id, err := ksuid.Parse("2QKg2XNhrkrkEKCnZQLCrumg2YV")
		require.NoError(t, err)

		g := NewGenerator("deltashare",
			WithClock(fixedClock(1700000000)),
			WithIDSource(func() ksuid.KSUID { return id }),
		)

		names, err := g.Generate()
		require.NoError(t, err)
		tail := strings.ToLower(id.String())
		tail = tail[len(tail)-4:]
		assert.Equal(t, "deltashare1700000000"+tail, names.StorageAccount)
		assert.Equal(t, "deltashare-func-1700000000"+tail, names.FunctionApp)
	})

	t.Run("PrefixIsLowercased", func(t *testing.T) {
		g := NewGenerator("DeltaShare", WithClock(fixedClock(1700000000)), WithSuffix(false))
		names, err := g.Generate()
		require.NoError(t, err)
		assert.Equal(t, "deltashare1700000000", names.StorageAccount)
	})

	t.Run("StorageNameTooLong", func(t *testing.T) {
		g := NewGenerator("averyverylongprefix", WithClock(fixedClock(1700000000)))
		_, err := g.Generate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "3-24 lowercase alphanumeric")
	})
}

func TestBaseURL(t *testing.T) {
	assert.Equal(t, "https://deltashare-func-1700000000.azurewebsites.net", BaseURL("deltashare-func-1700000000"))
}
