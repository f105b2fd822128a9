package verse

import "strings"

// Locale selects the book-name language used for parsing and rendering.
type Locale string

// Supported locales.
const (
	English Locale = "en"
	German  Locale = "de"
	Spanish Locale = "es"
)

// book is one entry of the Protestant 66-book canon. The name is the
// canonical English form used in stored keys; abbrevs are the accepted
// English abbreviations, lowercase, with no whitespace after a leading
// ordinal digit.
type book struct {
	name    string
	abbrevs []string
}

var canon = []book{
	{"Genesis", []string{"gen"}},
	{"Exodus", []string{"exod", "exo", "ex"}},
	{"Leviticus", []string{"lev"}},
	{"Numbers", []string{"num"}},
	{"Deuteronomy", []string{"deut", "deu"}},
	{"Joshua", []string{"josh", "jos"}},
	{"Judges", []string{"judg", "jdg"}},
	{"Ruth", nil},
	{"1Samuel", []string{"1sam"}},
	{"2Samuel", []string{"2sam"}},
	{"1Kings", []string{"1kgs"}},
	{"2Kings", []string{"2kgs"}},
	{"1Chronicles", []string{"1chr"}},
	{"2Chronicles", []string{"2chr"}},
	{"Ezra", []string{"ezr"}},
	{"Nehemiah", []string{"neh"}},
	{"Esther", []string{"esth", "est"}},
	{"Job", nil},
	{"Psalms", []string{"ps", "psa", "psalm"}},
	{"Proverbs", []string{"prov", "pro"}},
	{"Ecclesiastes", []string{"eccl", "ecc"}},
	{"Song of Solomon", []string{"song", "song of songs", "sos", "canticles"}},
	{"Isaiah", []string{"isa"}},
	{"Jeremiah", []string{"jer"}},
	{"Lamentations", []string{"lam"}},
	{"Ezekiel", []string{"ezek", "eze"}},
	{"Daniel", []string{"dan"}},
	{"Hosea", []string{"hos"}},
	{"Joel", nil},
	{"Amos", nil},
	{"Obadiah", []string{"obad", "oba"}},
	{"Jonah", []string{"jon"}},
	{"Micah", []string{"mic"}},
	{"Nahum", []string{"nah"}},
	{"Habakkuk", []string{"hab"}},
	{"Zephaniah", []string{"zeph", "zep"}},
	{"Haggai", []string{"hag"}},
	{"Zechariah", []string{"zech", "zec"}},
	{"Malachi", []string{"mal"}},
	{"Matthew", []string{"matt", "mat", "mt"}},
	{"Mark", []string{"mrk", "mk"}},
	{"Luke", []string{"luk", "lk"}},
	{"John", []string{"joh", "jn"}},
	{"Acts", []string{"act"}},
	{"Romans", []string{"rom"}},
	{"1Corinthians", []string{"1cor"}},
	{"2Corinthians", []string{"2cor"}},
	{"Galatians", []string{"gal"}},
	{"Ephesians", []string{"eph"}},
	{"Philippians", []string{"phil"}},
	{"Colossians", []string{"col"}},
	{"1Thessalonians", []string{"1thess", "1thes"}},
	{"2Thessalonians", []string{"2thess", "2thes"}},
	{"1Timothy", []string{"1tim"}},
	{"2Timothy", []string{"2tim"}},
	{"Titus", []string{"tit"}},
	{"Philemon", []string{"phlm", "phm"}},
	{"Hebrews", []string{"heb"}},
	{"James", []string{"jas"}},
	{"1Peter", []string{"1pet"}},
	{"2Peter", []string{"2pet"}},
	{"1John", []string{"1jn"}},
	{"2John", []string{"2jn"}},
	{"3John", []string{"3jn"}},
	{"Jude", nil},
	{"Revelation", []string{"rev"}},
}

// localizedNames maps a locale to book names in canon order.
var localizedNames = map[Locale][]string{
	German: {
		"Genesis", "Exodus", "Levitikus", "Numeri", "Deuteronomium",
		"Josua", "Richter", "Rut", "1Samuel", "2Samuel",
		"1Könige", "2Könige", "1Chronik", "2Chronik", "Esra",
		"Nehemia", "Ester", "Hiob", "Psalmen", "Sprüche",
		"Prediger", "Hoheslied", "Jesaja", "Jeremia", "Klagelieder",
		"Hesekiel", "Daniel", "Hosea", "Joel", "Amos",
		"Obadja", "Jona", "Micha", "Nahum", "Habakuk",
		"Zefanja", "Haggai", "Sacharja", "Maleachi", "Matthäus",
		"Markus", "Lukas", "Johannes", "Apostelgeschichte", "Römer",
		"1Korinther", "2Korinther", "Galater", "Epheser", "Philipper",
		"Kolosser", "1Thessalonicher", "2Thessalonicher", "1Timotheus", "2Timotheus",
		"Titus", "Philemon", "Hebräer", "Jakobus", "1Petrus",
		"2Petrus", "1Johannes", "2Johannes", "3Johannes", "Judas",
		"Offenbarung",
	},
	Spanish: {
		"Génesis", "Éxodo", "Levítico", "Números", "Deuteronomio",
		"Josué", "Jueces", "Rut", "1Samuel", "2Samuel",
		"1Reyes", "2Reyes", "1Crónicas", "2Crónicas", "Esdras",
		"Nehemías", "Ester", "Job", "Salmos", "Proverbios",
		"Eclesiastés", "Cantares", "Isaías", "Jeremías", "Lamentaciones",
		"Ezequiel", "Daniel", "Oseas", "Joel", "Amós",
		"Abdías", "Jonás", "Miqueas", "Nahúm", "Habacuc",
		"Sofonías", "Hageo", "Zacarías", "Malaquías", "Mateo",
		"Marcos", "Lucas", "Juan", "Hechos", "Romanos",
		"1Corintios", "2Corintios", "Gálatas", "Efesios", "Filipenses",
		"Colosenses", "1Tesalonicenses", "2Tesalonicenses", "1Timoteo", "2Timoteo",
		"Tito", "Filemón", "Hebreos", "Santiago", "1Pedro",
		"2Pedro", "1Juan", "2Juan", "3Juan", "Judas",
		"Apocalipsis",
	},
}

// lookupTables is built once from canon and localizedNames:
// normalized book text -> canon ordinal, per locale.
var lookupTables = func() map[Locale]map[string]int {
	tables := make(map[Locale]map[string]int)

	en := make(map[string]int)
	for i, b := range canon {
		en[normalizeBookText(b.name)] = i
		for _, a := range b.abbrevs {
			en[a] = i
		}
	}
	tables[English] = en

	for loc, names := range localizedNames {
		t := make(map[string]int, len(names))
		for i, name := range names {
			t[normalizeBookText(name)] = i
		}
		tables[loc] = t
	}
	return tables
}()

// normalizeBookText lowercases book text, strips a trailing period, and
// removes whitespace after a leading ordinal digit ("1 John" == "1John").
func normalizeBookText(text string) string {
	text = strings.TrimSuffix(strings.TrimSpace(text), ".")
	text = strings.ToLower(text)
	if len(text) > 1 && text[0] >= '1' && text[0] <= '3' {
		rest := strings.TrimLeft(text[1:], " \t")
		text = text[:1] + rest
	}
	return text
}

// LookupBook resolves book text in the given locale to a canon ordinal.
// Canonical English names are accepted in any locale, so stored keys
// parse regardless of the display language.
func LookupBook(text string, loc Locale) (int, bool) {
	normalized := normalizeBookText(text)
	if t, ok := lookupTables[loc]; ok {
		if ord, ok := t[normalized]; ok {
			return ord, true
		}
	}
	if loc != English {
		if ord, ok := lookupTables[English][normalized]; ok {
			return ord, true
		}
	}
	return -1, false
}

// BookName returns the book name for a canon ordinal in the given
// locale, falling back to English for locales without a table.
func BookName(ord int, loc Locale) string {
	if ord < 0 || ord >= len(canon) {
		return ""
	}
	if names, ok := localizedNames[loc]; ok {
		return names[ord]
	}
	return canon[ord].name
}

// Books returns the canonical English book names in canon order.
func Books() []string {
	names := make([]string, len(canon))
	for i, b := range canon {
		names[i] = b.name
	}
	return names
}
