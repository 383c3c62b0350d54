// Package advisor turns indicator state and a price forecast into a
// Buy/Sell/Hold call with a risk tier and a target price.
package advisor

import (
	"StockPilot/internal/model"

	"gonum.org/v1/gonum/stat"
)

// Volatility thresholds in percent. Fixed constants of the policy, not
// derived from data; the boundaries themselves land in the Medium tier.
const (
	lowRiskBelow  = 1.5
	highRiskAbove = 3.5
)

// Recommend derives a recommendation from an indicator frame and a
// forecast computed over the same series. Pure function; degenerate
// inputs (empty forecast, too-short history) yield a well-formed
// Hold/zero-target result rather than an error.
func Recommend(frame model.IndicatorFrame, fc model.Forecast) model.Recommendation {
	sma10 := frame.LatestSMA10()
	sma50 := frame.LatestSMA50()
	slope := fc.Slope()

	call := model.CallHold
	switch {
	case sma10 > sma50 && slope > 0:
		call = model.CallBuy
	case sma10 < sma50 && slope < 0:
		call = model.CallSell
	}

	vol := Volatility(frame.Series)

	return model.Recommendation{
		Call:        call,
		Risk:        riskTier(vol),
		TargetPrice: targetPrice(call, fc),
		Volatility:  vol,
	}
}

// Volatility returns the standard deviation of daily percentage returns
// over the full series, in percent. Fewer than two records read as 0,
// which lands in the Low tier; callers should not reinterpret that as a
// measured low risk without checking series length.
func Volatility(series model.PriceSeries) float64 {
	closes := series.Closes()
	if len(closes) < 2 {
		return 0
	}
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		returns = append(returns, (closes[i]-closes[i-1])/closes[i-1]*100)
	}
	if len(returns) < 2 {
		return 0
	}
	return stat.StdDev(returns, nil)
}

func riskTier(vol float64) model.Risk {
	switch {
	case vol < lowRiskBelow:
		return model.RiskLow
	case vol > highRiskAbove:
		return model.RiskHigh
	default:
		return model.RiskMedium
	}
}

// targetPrice picks the max predicted close for a Buy, the min for a
// Sell, and the mean for a Hold. An empty forecast targets 0.
func targetPrice(call model.Call, fc model.Forecast) float64 {
	if fc.Empty() {
		return 0
	}
	minP, maxP, sum := fc[0].PredictedClose, fc[0].PredictedClose, 0.0
	for _, p := range fc {
		if p.PredictedClose < minP {
			minP = p.PredictedClose
		}
		if p.PredictedClose > maxP {
			maxP = p.PredictedClose
		}
		sum += p.PredictedClose
	}
	switch call {
	case model.CallBuy:
		return maxP
	case model.CallSell:
		return minP
	default:
		return sum / float64(len(fc))
	}
}
