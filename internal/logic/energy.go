package logic

import (
	"math"
	"strings"
)

// Profile 描述能量计算所需的身体参数。
// 字段缺失时 normalized 会回退到默认值，保证所有计算结果有限且非零。
type Profile struct {
	WeightKg float64
	HeightCm float64
	AgeYears int
	Gender   string
}

// 性别取值
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// 默认身体参数（未设置个人资料时使用）
const (
	DefaultWeightKg = 60.0
	DefaultHeightCm = 160.0
	DefaultAgeYears = 30
	DefaultGender   = GenderFemale
)

// 酒精热量常数
const (
	ethanolDensity     = 0.8  // 乙醇比重 g/ml
	kcalPerGramEthanol = 7.0  // 乙醇每克热量
	sugarKcalPerMl     = 0.15 // 含糖酒每 ml 附加热量
)

// minBurnRate 是每分钟消耗的下限，保证反向换算（kcal→分钟）永远有限。
const minBurnRate = 0.1

// CarbType 取值：sweet 表示含糖（酿造酒/鸡尾酒），dry 表示无糖（蒸馏酒等）。
const (
	CarbTypeSweet = "sweet"
	CarbTypeDry   = "dry"
)

func (p Profile) normalized() Profile {
	if p.WeightKg <= 0 {
		p.WeightKg = DefaultWeightKg
	}
	if p.HeightCm <= 0 {
		p.HeightCm = DefaultHeightCm
	}
	if p.AgeYears <= 0 {
		p.AgeYears = DefaultAgeYears
	}
	if strings.TrimSpace(p.Gender) == "" {
		p.Gender = DefaultGender
	}
	return p
}

// BMR 计算基础代谢率（kcal/日）。
// 采用按性别区分截距的线性回归，系数来自 Ganpule 式（MJ/日），乘 1000/4.186 换算为 kcal。
func BMR(p Profile) float64 {
	p = p.normalized()

	const k = 1000.0 / 4.186
	base := 0.0481*p.WeightKg + 0.0234*p.HeightCm - 0.0138*float64(p.AgeYears)

	if p.Gender == GenderMale {
		return (base - 0.4235) * k
	}
	return (base - 0.9708) * k
}

// BurnRate 计算指定 METs 强度下的每分钟净消耗（kcal/分）。
// 结果不会低于 minBurnRate，避免除零和无穷大的换算。
func BurnRate(mets float64, p Profile) float64 {
	bmr := BMR(p)
	netMets := math.Max(0, mets-1)
	rate := bmr / 24 * netMets / 60

	if rate <= minBurnRate || math.IsNaN(rate) {
		return minBurnRate
	}
	return rate
}

// AlcoholKcal 根据容量、度数和含糖类型计算一杯酒的热量。
// 乙醇克数 = ml * (abv/100) * 比重；含糖类型再按 ml 附加糖质热量。
func AlcoholKcal(volumeMl, abvPercent float64, carbType string) float64 {
	if volumeMl < 0 {
		volumeMl = 0
	}
	if abvPercent < 0 {
		abvPercent = 0
	}

	grams := volumeMl * (abvPercent / 100) * ethanolDensity
	kcal := grams * kcalPerGramEthanol

	if carbType == CarbTypeSweet {
		kcal += volumeMl * sugarKcalPerMl
	}
	return kcal
}

// AlcoholDebit 计算若干杯的饮酒负债，返回值保证为负数（记账符号约定）。
func AlcoholDebit(volumeMl, abvPercent float64, carbType string, count float64) float64 {
	if count <= 0 {
		count = 1
	}
	total := AlcoholKcal(volumeMl, abvPercent, carbType) * count
	return -math.Abs(total)
}
