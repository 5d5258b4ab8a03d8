package monitoring

import (
	"github.com/jonathan/candidate-ranker/internal/types"
)

// classificationThreshold converts fractional outcomes and predicted
// probabilities into binary classes for metric computation.
const classificationThreshold = 0.5

// ComputeMetrics derives accuracy, precision, recall, and f1_score from
// parallel prediction/label slices. Predictions are probabilities in [0,1];
// labels are outcomes in [0,1]. Both are binarized at 0.5. Mismatched or
// empty inputs yield an empty metric map.
func ComputeMetrics(predictions, labels []float64) types.Metrics {
	if len(predictions) == 0 || len(predictions) != len(labels) {
		return types.Metrics{}
	}

	var tp, fp, tn, fn float64
	for i := range predictions {
		predicted := predictions[i] >= classificationThreshold
		actual := labels[i] >= classificationThreshold
		switch {
		case predicted && actual:
			tp++
		case predicted && !actual:
			fp++
		case !predicted && !actual:
			tn++
		default:
			fn++
		}
	}

	metrics := types.Metrics{
		types.MetricAccuracy: (tp + tn) / float64(len(predictions)),
	}

	if tp+fp > 0 {
		metrics[types.MetricPrecision] = tp / (tp + fp)
	}
	if tp+fn > 0 {
		metrics[types.MetricRecall] = tp / (tp + fn)
	}
	precision, hasP := metrics[types.MetricPrecision]
	recall, hasR := metrics[types.MetricRecall]
	if hasP && hasR && precision+recall > 0 {
		metrics[types.MetricF1] = 2 * precision * recall / (precision + recall)
	}

	return metrics
}
