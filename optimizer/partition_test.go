package optimizer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanFirst(t *testing.T) {
	tasks := planTasks(PartitionFirst, 5, 10, 4, 0)
	require.Len(t, tasks, 4)

	want := [][2]int{{0, 2}, {2, 5}, {5, 7}, {7, 10}}
	for i, tk := range tasks {
		assert.Equal(t, i, tk.id)
		assert.Equal(t, 0, tk.depth)
		assert.Equal(t, want[i], [2]int{tk.firstLo, tk.firstHi})
	}
}

func TestPlanFirst_MoreWorkersThanValues(t *testing.T) {
	tasks := planTasks(PartitionFirst, 3, 4, 10, 0)
	covered := 0
	prev := 0
	for i, tk := range tasks {
		assert.Equal(t, i, tk.id)
		assert.Equal(t, prev, tk.firstLo, "spans must be contiguous")
		assert.Greater(t, tk.firstHi, tk.firstLo)
		covered += tk.firstHi - tk.firstLo
		prev = tk.firstHi
	}
	assert.Equal(t, 4, covered)
}

func TestPlanPrefix_CoversIndexSpace(t *testing.T) {
	tests := []struct {
		name            string
		nVar, radix     int
		workers, chunks int
		wantDepth       int
	}{
		{"single worker", 5, 10, 1, 1, 1},
		{"needs two digits", 5, 10, 4, 16, 2},
		{"depth capped by variables", 2, 10, 8, 64, 2},
		{"radix one", 4, 1, 4, 4, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := planTasks(PartitionPrefix, tt.nVar, tt.radix, tt.workers, tt.chunks)
			require.NotEmpty(t, tasks)

			space := uint64(math.Pow(float64(tt.radix), float64(tt.wantDepth)))
			next := uint64(0)
			for i, tk := range tasks {
				assert.Equal(t, i, tk.id)
				assert.Equal(t, tt.wantDepth, tk.depth)
				assert.Equal(t, next, tk.from)
				assert.Greater(t, tk.to, tk.from)
				next = tk.to
			}
			assert.Equal(t, space, next)
		})
	}
}

func TestPlanTasks_NoVariables(t *testing.T) {
	for _, s := range []PartitionStrategy{PartitionFirst, PartitionPrefix} {
		tasks := planTasks(s, 0, 10, 4, 16)
		require.Len(t, tasks, 1)
		assert.Equal(t, fullTask(10), tasks[0])
	}
}

func TestStrides(t *testing.T) {
	assert.Equal(t, []uint64{100, 10, 1}, strides(10, 3))
	assert.Equal(t, []uint64{1}, strides(7, 1))
}
