package domain

// categories is the authoritative service vocabulary. The filter UI, the
// /categories endpoint and application validation all read this one list;
// it is never derived from existing records.
var categories = []string{
	"Badana & Boya",
	"Avukat",
	"Web Tasarımcı",
	"Tadilat & Tamirat",
	"Elektrikçi",
	"Tesisat",
	"Temizlik",
	"Nakliyat",
	"Bahçe Bakımı",
	"Emlak",
	"Fotoğrafçılık",
	"Danışmanlık",
	"Diğer Hizmetler",
}

// Categories returns the ordered category vocabulary.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// ValidCategory reports whether name is part of the vocabulary.
func ValidCategory(name string) bool {
	for _, c := range categories {
		if c == name {
			return true
		}
	}
	return false
}
