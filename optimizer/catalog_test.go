package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	cat, err := DefaultCatalog()
	require.NoError(t, err)

	assert.Equal(t, 32, cat.IngredientCount())
	assert.Equal(t, "base_malt", cat.Name(0))
	assert.Equal(t, "Base Malt", cat.Label(0))
	assert.Equal(t, []int{0, 13}, cat.AlwaysAvailable())
	assert.Len(t, cat.UnlockOrder(), 32)

	assert.Equal(t, 0.4, cat.Coefficient(Taste, 0))
	assert.Equal(t, 0.3, cat.Coefficient(Color, 0))
	assert.Equal(t, 1.0, cat.Coefficient(Strength, 0))
	assert.Equal(t, 0.5, cat.Coefficient(Foam, 0))
	assert.Equal(t, -1.0, cat.Coefficient(Strength, 13))

	again, err := DefaultCatalog()
	require.NoError(t, err)
	assert.Same(t, cat, again)
}

func TestCatalog_IndexOf(t *testing.T) {
	cat := MustDefaultCatalog()

	tests := []struct {
		name    string
		want    int
		wantErr bool
	}{
		{name: "base_malt", want: 0},
		{name: "base_yeast", want: 13},
		{name: "wheat_flakes", want: 31},
		{name: "Base Malt", want: -1, wantErr: true},
		{name: "", want: -1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cat.IndexOf(tt.name)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotFound)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCatalog_UnlockedThrough(t *testing.T) {
	cat := MustDefaultCatalog()

	names := func(idxs []int) []string {
		out := make([]string, len(idxs))
		for i, idx := range idxs {
			out[i] = cat.Name(idx)
		}
		return out
	}

	assert.Empty(t, cat.UnlockedThrough(0))
	assert.Equal(t, []string{"gruit", "brown_malt", "amber_malt"}, names(cat.UnlockedThrough(3)))
	assert.Len(t, cat.UnlockedThrough(100), 30)
	for _, idx := range cat.UnlockedThrough(100) {
		assert.False(t, cat.IsAlwaysAvailable(idx), cat.Name(idx))
	}
}

func TestCatalog_Validate(t *testing.T) {
	cat := MustDefaultCatalog()

	assert.NoError(t, cat.Validate(nil))
	assert.NoError(t, cat.Validate([]int{0, 31}))
	assert.ErrorIs(t, cat.Validate([]int{32}), ErrUnknownIngredient)
	assert.ErrorIs(t, cat.Validate([]int{3, -1}), ErrUnknownIngredient)
}

func TestLoadCatalog(t *testing.T) {
	t.Run("minimal", func(t *testing.T) {
		cat, err := LoadCatalog([]byte(`{
			"ingredients": [
				{"name": "a", "taste": 1, "color": 0, "strength": -1, "foam": 2},
				{"name": "b", "label": "Bee", "taste": 0, "color": 1, "strength": 0, "foam": 0}
			],
			"alwaysAvailable": ["b"]
		}`))
		require.NoError(t, err)
		assert.Equal(t, 2, cat.IngredientCount())
		assert.Equal(t, "a", cat.Label(0))
		assert.Equal(t, "Bee", cat.Label(1))
		assert.Equal(t, []int{1}, cat.AlwaysAvailable())
		assert.Equal(t, []int{0, 1}, cat.UnlockOrder())
		assert.Equal(t, 2.0, cat.Coefficient(Foam, 0))
	})

	bad := map[string]string{
		"invalid json":        `{"ingredients": [`,
		"empty":               `{"ingredients": []}`,
		"missing coefficient": `{"ingredients": [{"name": "a", "taste": 1, "color": 0, "strength": 0}]}`,
		"unnamed":             `{"ingredients": [{"taste": 1, "color": 0, "strength": 0, "foam": 0}]}`,
		"duplicate": `{"ingredients": [
			{"name": "a", "taste": 1, "color": 0, "strength": 0, "foam": 0},
			{"name": "a", "taste": 1, "color": 0, "strength": 0, "foam": 0}]}`,
		"unknown always available": `{"ingredients": [
			{"name": "a", "taste": 1, "color": 0, "strength": 0, "foam": 0}],
			"alwaysAvailable": ["zzz"]}`,
	}
	for name, doc := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := LoadCatalog([]byte(doc))
			assert.Error(t, err)
		})
	}
}
