package listquery_test

import (
	"testing"

	"customer-registry/internal/shared/listquery"

	"github.com/stretchr/testify/assert"
)

func TestParams_Normalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p := listquery.Params{}.Normalize()
		assert.Equal(t, 0, p.Skip)
		assert.Equal(t, listquery.DefaultLimit, p.Limit)
	})

	t.Run("negative skip clamped to zero", func(t *testing.T) {
		p := listquery.Params{Skip: -5, Limit: 10}.Normalize()
		assert.Equal(t, 0, p.Skip)
		assert.Equal(t, 10, p.Limit)
	})

	t.Run("limit above max clamped", func(t *testing.T) {
		p := listquery.Params{Limit: 5000}.Normalize()
		assert.Equal(t, listquery.MaxLimit, p.Limit)
	})

	t.Run("zero limit falls back to default", func(t *testing.T) {
		p := listquery.Params{Limit: 0}.Normalize()
		assert.Equal(t, listquery.DefaultLimit, p.Limit)
	})
}

func TestParams_Page(t *testing.T) {
	t.Run("first page", func(t *testing.T) {
		assert.Equal(t, 1, listquery.Params{Skip: 0, Limit: 10}.Page())
	})

	t.Run("skip within second page", func(t *testing.T) {
		assert.Equal(t, 2, listquery.Params{Skip: 10, Limit: 10}.Page())
		assert.Equal(t, 2, listquery.Params{Skip: 15, Limit: 10}.Page())
	})

	t.Run("zero limit", func(t *testing.T) {
		assert.Equal(t, 1, listquery.Params{Skip: 50, Limit: 0}.Page())
	})
}
