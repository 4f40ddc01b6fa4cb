package logic

import "math"

// suggestionMinDebt 负债低于该值时不给出还款建议。
const suggestionMinDebt = 50.0

// RedemptionSuggestion 是一条还清当前负债的运动建议。
type RedemptionSuggestion struct {
	ExerciseKey string
	Label       string
	Minutes     int
}

// redemptionCandidates 按强度从高到低的候选运动。
var redemptionCandidates = []string{"hiit", "running", "stepper", "walking"}

// SuggestRedemption 为当前负债挑选一条现实的运动建议：
// 优先 30 分钟内可还清的，其次 60 分钟内，否则给出耗时最短的候选。
// 负债过小（|debt| < 50kcal）时返回 nil。
func SuggestRedemption(debtKcal float64, p Profile) *RedemptionSuggestion {
	debt := math.Abs(debtKcal)
	if debt < suggestionMinDebt {
		return nil
	}

	suggestions := make([]RedemptionSuggestion, 0, len(redemptionCandidates))
	for _, key := range redemptionCandidates {
		spec := ExerciseByKey(key)
		rate := BurnRate(spec.METs, p)
		suggestions = append(suggestions, RedemptionSuggestion{
			ExerciseKey: key,
			Label:       spec.Label,
			Minutes:     int(math.Ceil(debt / rate)),
		})
	}

	for _, limit := range []int{30, 60} {
		for _, s := range suggestions {
			if s.Minutes <= limit {
				picked := s
				return &picked
			}
		}
	}

	picked := suggestions[0]
	return &picked
}
