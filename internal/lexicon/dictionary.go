package lexicon

// Dictionary maps an authored phrase to whether it counts as a known phrase.
// Keys may use spaces or underscores and any case; the matcher normalizes
// them.
type Dictionary map[string]bool

// DefaultDictionary returns a fresh copy of the authored phrase table.
func DefaultDictionary() Dictionary {
	d := make(Dictionary, len(phrases))
	for _, p := range phrases {
		d[p] = true
	}
	return d
}

var phrases = []string{
	// places
	"缅因州", "缅因", "maine",
	"小银行", "small_bank", "smallbank", "bank", "银行",
	"俄亥俄州", "俄亥俄", "ohio",
	"莫哈维休息站", "莫哈维", "休息站", "mojave_rest_stop", "mojave", "rest_stop",
	"老自治领路", "自治领", "old_dominion_rd", "old_dominion_road", "old_dominion", "rd", "road", "路",
	"堪萨斯城", "堪萨斯", "kansas_city", "kansas",
	"汽车旅馆", "motel", "12号房", "room_12",
	"灯塔", "lighthouse",
	"医院", "疗养院", "hospital", "sanatorium", "病房", "ward",
	"加油站", "gas_station",
	"教堂", "church",
	"地下室", "basement",
	"沙漠", "desert",
	"公路", "highway",
	"海", "sea",

	// people
	"罗伯特·卡彭", "robert_capone", "卡彭", "capone", "罗伯特", "robert",
	"父亲", "爸爸", "father", "dad",
	"母亲", "妈妈", "mother", "mom",
	"雷吉医生", "雷吉", "dr_reggie", "dr._reggie", "reggie",
	"小德里克", "德里克", "little_derek", "derek",
	"瓦妮莎", "vanessa",
	"保姆", "babysitter",

	// events and objects
	"仪式", "祭祀", "ritual",
	"录音带", "磁带", "tape", "cassette",
	"火灾", "大火", "fire", "blaze",
	"账本", "ledger",
	"金库", "vault",
	"保险箱", "deposit_box", "safe_deposit_box",
	"钥匙", "key",
	"照片", "photograph", "photo",
	"信", "letter",
	"收音机", "radio",
	"霓虹灯", "neon",
	"雾", "fog",
	"雪", "snow",
	"药片", "pills",
	"船", "boat",
	"红外套", "red_coat",
	"记忆", "memory",
	"供述", "confession",
	"档案", "archive",

	// years
	"1971", "1971年", "year_1971",
	"1973", "1973年", "year_1973",
	"1976", "1976年", "year_1976",
	"1979", "1979年", "year_1979",
	"1984", "1984年", "year_1984",
}
