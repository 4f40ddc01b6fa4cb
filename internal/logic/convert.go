package logic

import "math"

// KcalToMinutes 把热量换算为指定运动所需分钟数（四舍五入）。
func KcalToMinutes(kcal float64, exerciseKey string, p Profile) int {
	spec := ExerciseByKey(exerciseKey)
	rate := BurnRate(spec.METs, p)
	return int(math.Round(kcal / rate))
}

// MinutesToKcal 把运动分钟数换算为消耗热量。
func MinutesToKcal(minutes float64, exerciseKey string, p Profile) float64 {
	if minutes < 0 {
		minutes = 0
	}
	spec := ExerciseByKey(exerciseKey)
	return minutes * BurnRate(spec.METs, p)
}

// KcalToBeverageCount 把热量换算为指定单位热量的「杯数」，保留一位小数。
// unitKcal 非法时回退到 DefaultStyleKcal，保证结果有限。
func KcalToBeverageCount(kcal, unitKcal float64) float64 {
	if unitKcal <= 0 {
		unitKcal = DefaultStyleKcal
	}
	return math.Round(kcal/unitKcal*10) / 10
}

// ExerciseCredit 按连续日数倍率放大基础消耗，返回入账热量（恒为正）与所用倍率。
func ExerciseCredit(baseKcal float64, streak int) (float64, float64) {
	multiplier := StreakMultiplier(streak)
	return math.Abs(baseKcal * multiplier), multiplier
}
