package forms

import (
	"regexp"
	"strings"

	"github.com/gosimple/slug"
)

// SlugMaxLength is the longest slug a note may carry.
const SlugMaxLength = 100

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// cyrillicTranslit is the Russian/Ukrainian transliteration applied before
// slug.Make, whose own unidecode tables spell я as "ia" and х as "kh".
// Hard and soft signs are dropped.
var cyrillicTranslit = map[rune]string{
	'А': "A", 'Б': "B", 'В': "V", 'Г': "G", 'Д': "D", 'Е': "E", 'Ё': "Yo",
	'Ж': "Zh", 'З': "Z", 'И': "I", 'Й': "J", 'К': "K", 'Л': "L", 'М': "M",
	'Н': "N", 'О': "O", 'П': "P", 'Р': "R", 'С': "S", 'Т': "T", 'У': "U",
	'Ф': "F", 'Х': "H", 'Ц': "Ts", 'Ч': "Ch", 'Ш': "Sh", 'Щ': "Sch", 'Ъ': "",
	'Ы': "Yi", 'Ь': "", 'Э': "E", 'Ю': "Yu", 'Я': "Ya",
	'Є': "Ye", 'І': "I", 'Ї': "Yi", 'Ґ': "G",

	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "j", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch", 'ъ': "",
	'ы': "yi", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
	'є': "ye", 'і': "i", 'ї': "yi", 'ґ': "g",
}

// Slugify derives a URL-safe slug from a title. Cyrillic is transliterated
// with cyrillicTranslit and other non-Latin text by slug.Make, the result is lowercased, runs of whitespace and
// punctuation become a single hyphen, and the slug is cut to
// SlugMaxLength characters.
func Slugify(title string) string {
	s := strings.ToLower(slug.Make(slug.SubstituteRune(title, cyrillicTranslit)))
	if len(s) > SlugMaxLength {
		s = s[:SlugMaxLength]
	}
	return strings.Trim(s, "-_")
}

// ValidSlug reports whether s only contains letters, digits, hyphens and underscores.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}
