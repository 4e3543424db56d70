package training

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// ModelResult is the held-out evaluation of one classifier. Confusion matrix
// rows are true classes and columns predictions, ordered negative, neutral,
// positive. ROCAUC is the macro one-vs-rest area, nil when no class has both
// positive and negative test rows.
type ModelResult struct {
	Accuracy        float64                     `json:"accuracy"`
	ConfusionMatrix [NumClasses][NumClasses]int `json:"confusion_matrix"`
	ROCAUC          *float64                    `json:"roc_auc"`
}

func Evaluate(c Classifier, X []SparseVector, y []int) ModelResult {
	var res ModelResult
	if len(X) == 0 {
		return res
	}

	scores := make([][]float64, len(X))
	correct := 0
	for i, x := range X {
		scores[i] = c.Scores(x)
		pred := argmax(scores[i])
		res.ConfusionMatrix[y[i]][pred]++
		if pred == y[i] {
			correct++
		}
	}

	res.Accuracy = float64(correct) / float64(len(X))
	res.ROCAUC = MacroAUC(scores, y)

	return res
}

// MacroAUC averages the one-vs-rest ROC AUC over the classes that have both
// positive and negative rows in y.
func MacroAUC(scores [][]float64, y []int) *float64 {
	var sum float64
	var n int

	for k := range NumClasses {
		auc, ok := binaryAUC(scores, y, k)
		if !ok {
			continue
		}
		sum += auc
		n++
	}

	if n == 0 {
		return nil
	}
	macro := sum / float64(n)
	return &macro
}

func binaryAUC(scores [][]float64, y []int, class int) (float64, bool) {
	values := make([]float64, len(y))
	classes := make([]bool, len(y))
	positives := 0

	for i := range y {
		s := scores[i][class]
		if math.IsInf(s, -1) || math.IsNaN(s) {
			s = -math.MaxFloat64
		}
		values[i] = s
		classes[i] = y[i] == class
		if classes[i] {
			positives++
		}
	}

	if positives == 0 || positives == len(y) {
		return 0, false
	}

	stat.SortWeightedLabeled(values, classes, nil)
	tpr, fpr, _ := stat.ROC(nil, values, classes, nil)

	if fpr[0] > fpr[len(fpr)-1] {
		slices.Reverse(fpr)
		slices.Reverse(tpr)
	}

	return integrate.Trapezoidal(fpr, tpr), true
}
