package forecast

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// numFeatures is the width of the calendar feature vector: day of year
// and year. The feature set deliberately encodes calendar position, not
// price momentum, so the regression learns a seasonal/trend curve.
const numFeatures = 2

func featureFor(date time.Time) []float64 {
	return []float64{float64(date.YearDay()), float64(date.Year())}
}

func featuresFor(dates []time.Time) [][]float64 {
	out := make([][]float64, len(dates))
	for i, d := range dates {
		out[i] = featureFor(d)
	}
	return out
}

// scaler standardizes features to zero mean and unit variance using
// statistics from the training history only. Refitting on future dates
// would leak information, so the fitted parameters are reused verbatim
// for prediction-time features.
type scaler struct {
	mean [numFeatures]float64
	std  [numFeatures]float64
}

func fitScaler(features [][]float64) scaler {
	var s scaler
	col := make([]float64, len(features))
	for j := 0; j < numFeatures; j++ {
		for i, f := range features {
			col[i] = f[j]
		}
		s.mean[j] = stat.Mean(col, nil)
		s.std[j] = stat.StdDev(col, nil)
		// A constant feature (e.g. a single-year history) has zero
		// spread; dividing by 1 leaves it centered and harmless.
		if s.std[j] == 0 {
			s.std[j] = 1
		}
	}
	return s
}

func (s scaler) transform(features [][]float64) [][]float64 {
	out := make([][]float64, len(features))
	for i, f := range features {
		row := make([]float64, numFeatures)
		for j := 0; j < numFeatures; j++ {
			row[j] = (f[j] - s.mean[j]) / s.std[j]
		}
		out[i] = row
	}
	return out
}
