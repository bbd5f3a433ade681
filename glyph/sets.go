package glyph

// namedSets holds the built-in palettes as plain strings, split into clusters on load
var namedSets = map[string]string{
	"alnum":    "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789",
	"matrix":   "ｦｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄﾅﾆﾇﾈﾉﾊﾋﾌﾍﾎﾏﾐﾑﾒﾓﾔﾕﾖﾗﾘﾙﾚﾛﾜﾝ012345789Z:.=*+-<>",
	"katakana": "アイウエオカキクケコサシスセソタチツテトナニヌネノハヒフヘホマミムメモヤユヨラリルレロワヲン",
	"kanji":    "日月火水木金土山川田人口目耳手足力刀王玉石竹米糸貝車雨書道本漢字文化侍忍者武士剣",
	"greek":    "αβγδεζηθικλμνξοπρστυφχψωΑΒΓΔΕΖΗΘΙΚΛΜΝΞΟΠΡΣΤΥΦΧΨΩ",
	"cyrillic": "абвгдежзийклмнопрстуфхцчшщъыьэюяАБВГДЕЖЗИЙКЛМНОПРСТУФХЦЧШЩЪЫЬЭЮЯ",
	"binary":   "01",
	"hex":      "0123456789ABCDEF",
	"dna":      "ATCG",
	"symbols":  "!@#$%^&*()_+-=[]{}|;':\",./<>?",
	"arrows":   "←↑→↓↖↗↘↙⇐⇑⇒⇓",
	"math":     "∀∁∂∃∄∅∆∇∈∉∊∋∌∍∎∏∐∑−∓∔∕∖∗∘∙√∛∜∝∞∟∠∡∢∣∤∥∦∧∨∩∪",
	"braille":  "⠁⠂⠃⠄⠅⠆⠇⠈⠉⠊⠋⠌⠍⠎⠏⠐⠑⠒⠓⠔⠕⠖⠗⠘⠙⠚⠛⠜⠝⠞⠟⠠⠡⠢⠣⠤⠥⠦⠧⠨⠩⠪⠫⠬⠭⠮⠯",
	"hearts":   "❤️🧡💛💚💙💜🤎🖤🤍",
	"emoji":    "😂😅😊🔥✨🚀🎉🌟🌈👻💀☠️👽👾",
}

// DefaultName is the palette used when none is configured
const DefaultName = "alnum"
