package optimizer

// maxPrefixDepth bounds the number of leading positions decoded from a
// prefix index.
const maxPrefixDepth = 6

// task is an immutable description of one slice of the enumeration tree.
//
// With depth == 0 the slice is the subtree whose first variable quantity
// lies in [firstLo, firstHi). With depth > 0 it is the contiguous run
// [from, to) of mixed-radix prefix indices over the first depth positions,
// position 0 being the most significant digit.
type task struct {
	id int

	firstLo, firstHi int

	depth    int
	from, to uint64
}

func fullTask(radix int) task {
	return task{firstLo: 0, firstHi: radix}
}

// planTasks splits the enumeration of nVar variable ingredients, each taking
// radix distinct quantities, into tasks. Tasks are returned in enumeration
// order, so merging their results in id order reproduces a sequential search.
func planTasks(strategy PartitionStrategy, nVar, radix, workers, chunksPerWorker int) []task {
	if nVar == 0 || (workers <= 1 && strategy == PartitionFirst) {
		return []task{fullTask(radix)}
	}
	switch strategy {
	case PartitionFirst:
		return planFirst(radix, workers)
	default:
		return planPrefix(nVar, radix, workers, chunksPerWorker)
	}
}

// planFirst gives worker w the first-ingredient span [w*radix/W, (w+1)*radix/W).
// Empty spans are dropped.
func planFirst(radix, workers int) []task {
	var tasks []task
	for w := 0; w < workers; w++ {
		lo := w * radix / workers
		hi := (w + 1) * radix / workers
		if lo == hi {
			continue
		}
		tasks = append(tasks, task{id: len(tasks), firstLo: lo, firstHi: hi})
	}
	return tasks
}

func planPrefix(nVar, radix, workers, chunksPerWorker int) []task {
	target := uint64(max(workers, 1) * max(chunksPerWorker, 1))
	depth := 1
	space := uint64(radix)
	for space < target && depth < nVar && depth < maxPrefixDepth {
		depth++
		space *= uint64(radix)
	}
	chunks := min(target, space)
	if chunks == 0 {
		return []task{fullTask(radix)}
	}
	tasks := make([]task, 0, chunks)
	for i := uint64(0); i < chunks; i++ {
		from := i * space / chunks
		to := (i + 1) * space / chunks
		if from == to {
			continue
		}
		tasks = append(tasks, task{id: len(tasks), depth: depth, from: from, to: to})
	}
	return tasks
}

// strides returns radix^(depth-1-j) for every prefix position j.
func strides(radix, depth int) []uint64 {
	s := make([]uint64, depth)
	acc := uint64(1)
	for j := depth - 1; j >= 0; j-- {
		s[j] = acc
		acc *= uint64(radix)
	}
	return s
}
