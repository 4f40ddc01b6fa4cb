package logic

// ExerciseSpec 描述一种运动：显示名与 METs 强度。
type ExerciseSpec struct {
	Key   string
	Label string
	METs  float64
}

// DefaultExerciseKey 是运动种类缺失/未知时的回退（也用于旧数据补算）。
const DefaultExerciseKey = "stepper"

// exerciseCatalog 运动强度表
var exerciseCatalog = map[string]ExerciseSpec{
	"stepper":       {Key: "stepper", Label: "ステッパー", METs: 6.0},
	"walking":       {Key: "walking", Label: "ウォーキング (通勤等)", METs: 3.5},
	"brisk_walking": {Key: "brisk_walking", Label: "早歩き", METs: 4.5},
	"cycling":       {Key: "cycling", Label: "自転車 (ゆっくり)", METs: 4.0},
	"training":      {Key: "training", Label: "筋トレ (パーソナル等)", METs: 5.0},
	"running":       {Key: "running", Label: "ランニング", METs: 7.0},
	"hiit":          {Key: "hiit", Label: "HIIT (高強度)", METs: 8.0},
	"yoga":          {Key: "yoga", Label: "ヨガ (ストレッチ)", METs: 2.5},
	"cleaning":      {Key: "cleaning", Label: "部屋の掃除", METs: 3.0},
}

// ExerciseByKey 查找运动定义，未知 key 回退到 stepper。
func ExerciseByKey(key string) ExerciseSpec {
	if spec, ok := exerciseCatalog[key]; ok {
		return spec
	}
	return exerciseCatalog[DefaultExerciseKey]
}

// ExerciseCatalog 返回全部运动定义的拷贝，供设置接口展示。
func ExerciseCatalog() []ExerciseSpec {
	out := make([]ExerciseSpec, 0, len(exerciseCatalog))
	for _, spec := range exerciseCatalog {
		out = append(out, spec)
	}
	return out
}

// DefaultStyleKcal 是未知酒款时的单位热量回退值（350ml 换算）。
const DefaultStyleKcal = 140.0

// StyleSpec 描述一种酒款：350ml 基准热量、默认度数与含糖类型。
type StyleSpec struct {
	Name     string
	UnitKcal float64
	ABV      float64
	CarbType string
}

// styleCatalog 酒款表（350ml 基准 kcal）。
// 糖質オフ/新ジャンル与蒸留酒按 dry 处理，其余酿造酒默认含糖。
var styleCatalog = map[string]StyleSpec{
	"国産ピルスナー":       {Name: "国産ピルスナー", UnitKcal: 145, ABV: 5.0, CarbType: CarbTypeSweet},
	"糖質オフ/新ジャンル":  {Name: "糖質オフ/新ジャンル", UnitKcal: 110, ABV: 4.0, CarbType: CarbTypeDry},
	"ピルスナー":           {Name: "ピルスナー", UnitKcal: 140, ABV: 5.0, CarbType: CarbTypeSweet},
	"ドルトムンター":       {Name: "ドルトムンター", UnitKcal: 145, ABV: 5.5, CarbType: CarbTypeSweet},
	"シュバルツ":           {Name: "シュバルツ", UnitKcal: 155, ABV: 5.0, CarbType: CarbTypeSweet},
	"ゴールデンエール":     {Name: "ゴールデンエール", UnitKcal: 150, ABV: 5.0, CarbType: CarbTypeSweet},
	"ペールエール":         {Name: "ペールエール", UnitKcal: 160, ABV: 5.5, CarbType: CarbTypeSweet},
	"ジャパニーズエール":   {Name: "ジャパニーズエール", UnitKcal: 160, ABV: 5.5, CarbType: CarbTypeSweet},
	"ヴァイツェン":         {Name: "ヴァイツェン", UnitKcal: 180, ABV: 5.5, CarbType: CarbTypeSweet},
	"ベルジャンホワイト":   {Name: "ベルジャンホワイト", UnitKcal: 160, ABV: 5.0, CarbType: CarbTypeSweet},
	"セゾン":               {Name: "セゾン", UnitKcal: 165, ABV: 6.0, CarbType: CarbTypeSweet},
	"セッションIPA":        {Name: "セッションIPA", UnitKcal: 130, ABV: 4.5, CarbType: CarbTypeSweet},
	"IPA (West Coast)":     {Name: "IPA (West Coast)", UnitKcal: 190, ABV: 6.5, CarbType: CarbTypeSweet},
	"Hazy IPA":             {Name: "Hazy IPA", UnitKcal: 220, ABV: 6.5, CarbType: CarbTypeSweet},
	"Hazyペールエール":     {Name: "Hazyペールエール", UnitKcal: 170, ABV: 5.5, CarbType: CarbTypeSweet},
	"ダブルIPA (DIPA)":     {Name: "ダブルIPA (DIPA)", UnitKcal: 270, ABV: 8.5, CarbType: CarbTypeSweet},
	"アンバーエール":       {Name: "アンバーエール", UnitKcal: 165, ABV: 5.5, CarbType: CarbTypeSweet},
	"ポーター":             {Name: "ポーター", UnitKcal: 170, ABV: 5.5, CarbType: CarbTypeSweet},
	"スタウト":             {Name: "スタウト", UnitKcal: 200, ABV: 7.0, CarbType: CarbTypeSweet},
	"インペリアルスタウト": {Name: "インペリアルスタウト", UnitKcal: 280, ABV: 9.0, CarbType: CarbTypeSweet},
	"ベルジャン・トリペル": {Name: "ベルジャン・トリペル", UnitKcal: 250, ABV: 8.5, CarbType: CarbTypeSweet},
	"バーレイワイン":       {Name: "バーレイワイン", UnitKcal: 320, ABV: 10.0, CarbType: CarbTypeSweet},
	"サワーエール":         {Name: "サワーエール", UnitKcal: 140, ABV: 4.5, CarbType: CarbTypeSweet},
	"フルーツビール":       {Name: "フルーツビール", UnitKcal: 160, ABV: 4.5, CarbType: CarbTypeSweet},
	"ノンアル":             {Name: "ノンアル", UnitKcal: 50, ABV: 0.0, CarbType: CarbTypeSweet},
}

// StyleByName 查找酒款，未知名称返回 UnitKcal=DefaultStyleKcal 的占位定义。
func StyleByName(name string) StyleSpec {
	if spec, ok := styleCatalog[name]; ok {
		return spec
	}
	return StyleSpec{Name: name, UnitKcal: DefaultStyleKcal, ABV: 5.0, CarbType: CarbTypeSweet}
}

// StyleUnitKcal 返回酒款的单位热量（350ml 换算），未知酒款回退 140。
func StyleUnitKcal(name string) float64 {
	return StyleByName(name).UnitKcal
}

// ServingSize 描述常见容量选项。
type ServingSize struct {
	Ml    int
	Label string
}

// ServingSizes 常见容量选项（供前端选择用）。
var ServingSizes = []ServingSize{
	{Ml: 250, Label: "250ml (小グラス)"},
	{Ml: 350, Label: "350ml (缶)"},
	{Ml: 473, Label: "473ml (USパイント)"},
	{Ml: 500, Label: "500ml (ロング缶)"},
	{Ml: 568, Label: "568ml (UKパイント)"},
	{Ml: 1000, Label: "1L (マース)"},
}
