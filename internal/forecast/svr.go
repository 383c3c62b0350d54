package forecast

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// svr is an epsilon-insensitive support vector regression with an RBF
// kernel. The bias term is handled by centering the target on its mean,
// which removes the equality constraint from the dual and lets the
// model train by plain coordinate descent over the box [-C, C].
type svr struct {
	c       float64
	gamma   float64
	epsilon float64

	vectors [][]float64 // support vectors (scaled feature rows)
	coef    []float64   // dual coefficients for the support vectors
	yMean   float64
}

const (
	svrMaxSweeps = 200
	svrTolerance = 1e-8
)

func newSVR(c, gamma, epsilon float64) *svr {
	return &svr{c: c, gamma: gamma, epsilon: epsilon}
}

func rbf(gamma float64, a, b []float64) float64 {
	var d2 float64
	for i := range a {
		diff := a[i] - b[i]
		d2 += diff * diff
	}
	return math.Exp(-gamma * d2)
}

// fit trains on scaled features x and targets y. Each coordinate update
// soft-thresholds the residual at epsilon and clips the coefficient to
// the box; K[i][i] is 1 for the RBF kernel so the step is well defined.
func (m *svr) fit(x [][]float64, y []float64) {
	n := len(x)
	m.yMean = stat.Mean(y, nil)

	k := make([][]float64, n)
	for i := range k {
		k[i] = make([]float64, n)
		for j := 0; j <= i; j++ {
			v := rbf(m.gamma, x[i], x[j])
			k[i][j] = v
			k[j][i] = v
		}
	}

	beta := make([]float64, n)
	pred := make([]float64, n) // K * beta, kept incrementally
	for sweep := 0; sweep < svrMaxSweeps; sweep++ {
		maxDelta := 0.0
		for i := 0; i < n; i++ {
			g := (y[i] - m.yMean) - pred[i] + beta[i]*k[i][i]
			var next float64
			switch {
			case g > m.epsilon:
				next = (g - m.epsilon) / k[i][i]
			case g < -m.epsilon:
				next = (g + m.epsilon) / k[i][i]
			}
			next = math.Max(-m.c, math.Min(m.c, next))

			delta := next - beta[i]
			if delta == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				pred[j] += delta * k[j][i]
			}
			beta[i] = next
			if d := math.Abs(delta); d > maxDelta {
				maxDelta = d
			}
		}
		if maxDelta < svrTolerance {
			break
		}
	}

	m.vectors = m.vectors[:0]
	m.coef = m.coef[:0]
	for i, b := range beta {
		if b != 0 {
			m.vectors = append(m.vectors, x[i])
			m.coef = append(m.coef, b)
		}
	}
}

// predict evaluates the fitted model on one scaled feature row.
func (m *svr) predict(x []float64) float64 {
	sum := m.yMean
	for i, v := range m.vectors {
		sum += m.coef[i] * rbf(m.gamma, v, x)
	}
	return sum
}
