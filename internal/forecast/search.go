package forecast

import (
	"math"
	"math/rand"
	"sync"
)

// params is one hyperparameter combination for the SVR.
type params struct {
	C       float64
	Gamma   float64
	Epsilon float64
}

var (
	searchCs = []float64{1, 10, 100, 1000}
	// 5 log-spaced values across [0.01, 100].
	searchGammas   = []float64{0.01, 0.1, 1, 10, 100}
	searchEpsilons = []float64{0.01, 0.1, 0.5}
)

func fullGrid() []params {
	grid := make([]params, 0, len(searchCs)*len(searchGammas)*len(searchEpsilons))
	for _, c := range searchCs {
		for _, g := range searchGammas {
			for _, e := range searchEpsilons {
				grid = append(grid, params{C: c, Gamma: g, Epsilon: e})
			}
		}
	}
	return grid
}

// sampleParams draws up to iterations distinct combinations from the
// grid using the seeded source, so repeated searches over the same data
// visit the same candidates.
func sampleParams(rng *rand.Rand, iterations int) []params {
	grid := fullGrid()
	if iterations >= len(grid) {
		return grid
	}
	picked := make([]params, iterations)
	for i, idx := range rng.Perm(len(grid))[:iterations] {
		picked[i] = grid[idx]
	}
	return picked
}

// crossValidate scores one combination by k-fold negative mean squared
// error over contiguous splits. Splits are positional and deterministic.
func crossValidate(x [][]float64, y []float64, p params, folds int) float64 {
	n := len(x)
	if folds < 2 || n < folds {
		return math.Inf(-1)
	}

	var totalSE float64
	var totalCount int
	for f := 0; f < folds; f++ {
		lo := f * n / folds
		hi := (f + 1) * n / folds

		trainX := make([][]float64, 0, n-(hi-lo))
		trainY := make([]float64, 0, n-(hi-lo))
		for i := 0; i < n; i++ {
			if i < lo || i >= hi {
				trainX = append(trainX, x[i])
				trainY = append(trainY, y[i])
			}
		}

		m := newSVR(p.C, p.Gamma, p.Epsilon)
		m.fit(trainX, trainY)
		for i := lo; i < hi; i++ {
			diff := m.predict(x[i]) - y[i]
			totalSE += diff * diff
		}
		totalCount += hi - lo
	}
	if totalCount == 0 {
		return math.Inf(-1)
	}
	return -totalSE / float64(totalCount)
}

// searchBest evaluates the sampled combinations in parallel and returns
// the best-scoring one. Scores land in sample order, so the winner is
// independent of goroutine scheduling: highest score, earliest sample
// on ties.
func searchBest(x [][]float64, y []float64, candidates []params, folds, workers int) params {
	if workers < 1 {
		workers = 1
	}
	scores := make([]float64, len(candidates))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				scores[i] = crossValidate(x, y, candidates[i], folds)
			}
		}()
	}
	for i := range candidates {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	best := 0
	for i := 1; i < len(candidates); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return candidates[best]
}
