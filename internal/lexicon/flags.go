package lexicon

import "strings"

// Flag names one concept the story reacts to.
type Flag uint8

const (
	FlagMaine Flag = iota
	FlagSmallBank
	FlagOhio
	FlagRitual
	FlagMojave
	FlagTape
	FlagOldDominion
	FlagFire
	FlagDrReggie
	FlagHospital
	FlagLighthouse
	FlagFather
	FlagKansasCity
	FlagMotel
	FlagCapone
	FlagLittleDerek
	FlagVanessa
	FlagYear1971
	FlagYear1973
	FlagYear1976
	FlagYear1979
	FlagYear1984

	flagCount
)

type flagDef struct {
	name     string
	variants []string
}

// flagTable lists every known spelling per flag: Chinese full names,
// Chinese short forms, English and underscored English.
var flagTable = [flagCount]flagDef{
	FlagMaine:       {"maine", []string{"缅因州", "缅因", "maine"}},
	FlagSmallBank:   {"small_bank", []string{"小银行", "small bank", "small_bank", "smallbank"}},
	FlagOhio:        {"ohio", []string{"俄亥俄州", "俄亥俄", "ohio"}},
	FlagRitual:      {"ritual", []string{"仪式", "祭祀", "ritual"}},
	FlagMojave:      {"mojave", []string{"莫哈维休息站", "莫哈维", "休息站", "mojave", "rest stop", "rest_stop"}},
	FlagTape:        {"tape", []string{"录音带", "磁带", "tape", "cassette"}},
	FlagOldDominion: {"old_dominion", []string{"老自治领路", "自治领", "old dominion", "old_dominion"}},
	FlagFire:        {"fire", []string{"火灾", "大火", "fire", "blaze"}},
	FlagDrReggie:    {"dr_reggie", []string{"雷吉医生", "雷吉", "dr reggie", "dr_reggie", "dr. reggie", "reggie"}},
	FlagHospital:    {"hospital", []string{"医院", "疗养院", "hospital", "sanatorium"}},
	FlagLighthouse:  {"lighthouse", []string{"灯塔", "lighthouse"}},
	FlagFather:      {"father", []string{"父亲", "爸爸", "father", "dad"}},
	FlagKansasCity:  {"kansas_city", []string{"堪萨斯城", "堪萨斯", "kansas city", "kansas_city"}},
	FlagMotel:       {"motel", []string{"汽车旅馆", "motel"}},
	FlagCapone:      {"capone", []string{"罗伯特·卡彭", "卡彭", "罗伯特", "capone", "robert"}},
	FlagLittleDerek: {"little_derek", []string{"小德里克", "德里克", "little derek", "little_derek", "derek"}},
	FlagVanessa:     {"vanessa", []string{"瓦妮莎", "vanessa"}},
	FlagYear1971:    {"year_1971", []string{"1971"}},
	FlagYear1973:    {"year_1973", []string{"1973"}},
	FlagYear1976:    {"year_1976", []string{"1976"}},
	FlagYear1979:    {"year_1979", []string{"1979"}},
	FlagYear1984:    {"year_1984", []string{"1984"}},
}

func (f Flag) String() string {
	if f >= flagCount {
		return "unknown"
	}
	return flagTable[f].name
}

// Flags is the fixed-shape feature record computed for one query.
type Flags [flagCount]bool

// Has reports whether f is set.
func (fs Flags) Has(f Flag) bool {
	return f < flagCount && fs[f]
}

// Any reports whether at least one flag is set.
func (fs Flags) Any() bool {
	for _, v := range fs {
		if v {
			return true
		}
	}
	return false
}

// Names lists the set flags in declaration order.
func (fs Flags) Names() []string {
	var names []string
	for f, v := range fs {
		if v {
			names = append(names, Flag(f).String())
		}
	}
	return names
}

// Extract computes every flag by plain substring containment. It is more
// permissive than the phrase matcher: a flag can be set on a query that is
// not strictly valid.
func Extract(lower string) Flags {
	var fs Flags
	for f, def := range flagTable {
		for _, v := range def.variants {
			if strings.Contains(lower, v) {
				fs[f] = true
				break
			}
		}
	}
	return fs
}

// ParseFlag maps a flag name back to its Flag.
func ParseFlag(name string) (Flag, bool) {
	for f, def := range flagTable {
		if def.name == name {
			return Flag(f), true
		}
	}
	return 0, false
}
