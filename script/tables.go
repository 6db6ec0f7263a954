package script

import "unicode"

// complexTable lists the code points which need a complex shaper.
var complexTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0300, Hi: 0x036F, Stride: 1}, // combining diacritical marks
		{Lo: 0x0483, Hi: 0x0489, Stride: 1}, // Cyrillic combining marks
		{Lo: 0x0590, Hi: 0x08FF, Stride: 1}, // Hebrew, Arabic, Syriac, Thaana, NKo, Samaritan, Mandaic
		{Lo: 0x0900, Hi: 0x0DFF, Stride: 1}, // Devanagari … Sinhala
		{Lo: 0x0E00, Hi: 0x0EFF, Stride: 1}, // Thai, Lao
		{Lo: 0x0F00, Hi: 0x0FFF, Stride: 1}, // Tibetan
		{Lo: 0x1000, Hi: 0x109F, Stride: 1}, // Myanmar
		{Lo: 0x1100, Hi: 0x11FF, Stride: 1}, // Hangul Jamo
		{Lo: 0x1700, Hi: 0x17FF, Stride: 1}, // Tagalog … Khmer
		{Lo: 0x1800, Hi: 0x18AF, Stride: 1}, // Mongolian
		{Lo: 0x1900, Hi: 0x1AFF, Stride: 1}, // Limbu … combining marks extended
		{Lo: 0x1B00, Hi: 0x1C4F, Stride: 1}, // Balinese … Lepcha
		{Lo: 0x1CD0, Hi: 0x1CFF, Stride: 1}, // Vedic extensions
		{Lo: 0x1DC0, Hi: 0x1DFF, Stride: 1}, // combining marks supplement
		{Lo: 0x200C, Hi: 0x200F, Stride: 1}, // ZWNJ, ZWJ, LRM, RLM
		{Lo: 0x202A, Hi: 0x202E, Stride: 1}, // bidi embeddings and overrides
		{Lo: 0x2066, Hi: 0x2069, Stride: 1}, // bidi isolates
		{Lo: 0x20D0, Hi: 0x20FF, Stride: 1}, // combining marks for symbols
		{Lo: 0xA800, Hi: 0xA82F, Stride: 1}, // Syloti Nagri
		{Lo: 0xA840, Hi: 0xA8FF, Stride: 1}, // Phags-pa, Saurashtra, Devanagari extended
		{Lo: 0xA900, Hi: 0xAADF, Stride: 1}, // Kayah Li … Tai Viet
		{Lo: 0xABC0, Hi: 0xABFF, Stride: 1}, // Meetei Mayek
		{Lo: 0xFB1D, Hi: 0xFDFF, Stride: 1}, // Hebrew and Arabic presentation forms
		{Lo: 0xFE00, Hi: 0xFE0F, Stride: 1}, // variation selectors
		{Lo: 0xFE20, Hi: 0xFE2F, Stride: 1}, // combining half marks
		{Lo: 0xFE70, Hi: 0xFEFF, Stride: 1}, // Arabic presentation forms B
	},
	R32: []unicode.Range32{
		{Lo: 0x10A00, Hi: 0x10A5F, Stride: 1}, // Kharoshthi
		{Lo: 0x11000, Hi: 0x111FF, Stride: 1}, // Brahmi … Sharada
		{Lo: 0x11200, Hi: 0x114FF, Stride: 1}, // Khojki … Tirhuta
		{Lo: 0x11580, Hi: 0x116CF, Stride: 1}, // Siddham … Takri
		{Lo: 0x1E900, Hi: 0x1E95F, Stride: 1}, // Adlam
		{Lo: 0xE0100, Hi: 0xE01EF, Stride: 1}, // variation selectors supplement
	},
}

// ideographTable lists CJK ideographs, kana and bopomofo.
var ideographTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2E80, Hi: 0x2FDF, Stride: 1}, // CJK radicals, Kangxi radicals
		{Lo: 0x3040, Hi: 0x30FF, Stride: 1}, // Hiragana, Katakana
		{Lo: 0x3100, Hi: 0x312F, Stride: 1}, // Bopomofo
		{Lo: 0x3190, Hi: 0x31FF, Stride: 1}, // Kanbun … Katakana phonetic extensions
		{Lo: 0x3400, Hi: 0x4DBF, Stride: 1}, // CJK extension A
		{Lo: 0x4E00, Hi: 0x9FFF, Stride: 1}, // CJK unified ideographs
		{Lo: 0xF900, Hi: 0xFAFF, Stride: 1}, // CJK compatibility ideographs
	},
	R32: []unicode.Range32{
		{Lo: 0x20000, Hi: 0x2FA1F, Stride: 1}, // extensions B … F, compatibility supplement
		{Lo: 0x30000, Hi: 0x323AF, Stride: 1}, // extensions G, H
	},
}
