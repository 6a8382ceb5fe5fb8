package lemmatizer

// Turkish inflectional and common derivational suffixes, all vowel harmony variants.
func getDefaultSuffixes() []string {
	return []string{
		// plural
		"lar", "ler",
		// possessive
		"ım", "im", "um", "üm", "m",
		"ın", "in", "un", "ün", "n",
		"ı", "i", "u", "ü",
		"sı", "si", "su", "sü",
		"ımız", "imiz", "umuz", "ümüz",
		"ınız", "iniz", "unuz", "ünüz",
		"ları", "leri",
		// case
		"a", "e", "ya", "ye",
		"yı", "yi", "yu", "yü",
		"da", "de", "ta", "te",
		"dan", "den", "tan", "ten",
		"nın", "nin", "nun", "nün",
		"la", "le", "yla", "yle",
		"ca", "ce", "ça", "çe",
		"ki",
		// verbal
		"mak", "mek",
		"ma", "me", "mı", "mi", "mu", "mü",
		"yor", "ıyor", "iyor", "uyor", "üyor",
		"dı", "di", "du", "dü", "tı", "ti", "tu", "tü",
		"mış", "miş", "muş", "müş",
		"acak", "ecek", "yacak", "yecek",
		"ar", "er", "ır", "ir", "ur", "ür", "r",
		"sa", "se",
		"malı", "meli",
		"abil", "ebil", "yabil", "yebil",
		"ız", "iz", "uz", "üz", "k",
		"sın", "sin", "sun", "sün",
		"nız", "niz", "nuz", "nüz",
		"dır", "dir", "dur", "dür", "tır", "tir", "tur", "tür",
		"yım", "yim", "yum", "yüm",
		// copula after a vowel
		"ydı", "ydi", "ydu", "ydü",
		"ymış", "ymiş", "ymuş", "ymüş",
		"ysa", "yse",
		"yken", "ken",
		"yız", "yiz", "yuz", "yüz",
		// derivational
		"lık", "lik", "luk", "lük",
		"sız", "siz", "suz", "süz",
		"lı", "li", "lu", "lü",
		"cı", "ci", "cu", "cü", "çı", "çi", "çu", "çü",
	}
}
