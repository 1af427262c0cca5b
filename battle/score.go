package battle

import (
	"encoding/json"
	"math"
	"strconv"
)

// OutcomeSuccess is the per-test outcome workers report for a passing
// test case.
const OutcomeSuccess = "Success"

// parseOutcomes decodes a worker status payload into per-test outcomes.
// Payloads that are not a JSON string array ("Queued", worker error
// strings) yield ok == false.
func parseOutcomes(statusPayload string) (outcomes []string, ok bool) {
	if err := json.Unmarshal([]byte(statusPayload), &outcomes); err != nil {
		return nil, false
	}
	return outcomes, true
}

// scoreOutcomes converts per-test outcomes into a score: the question's
// points split evenly over its test cases, rounded to two decimals.
func scoreOutcomes(outcomes []string, totalTestCases int, points float64) float64 {
	if totalTestCases == 0 {
		return 0
	}
	successes := 0
	for _, outcome := range outcomes {
		if outcome == OutcomeSuccess {
			successes++
		}
	}
	return roundScore(points / float64(totalTestCases) * float64(successes))
}

func roundScore(x float64) float64 {
	return math.Round(x*100) / 100
}

func formatScore(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func parseScore(s string) float64 {
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return x
}
