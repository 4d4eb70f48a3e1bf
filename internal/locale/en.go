package locale

var english = Table{
	ID:   "en",
	Name: "English",
	Signs: [...]string{
		"Aries",
		"Taurus",
		"Gemini",
		"Cancer",
		"Leo",
		"Virgo",
		"Libra",
		"Scorpio",
		"Sagittarius",
		"Capricorn",
		"Aquarius",
		"Pisces",
	},
	Mansions: [...]string{
		"Ashwini",
		"Bharani",
		"Krittika",
		"Rohini",
		"Mrigashira",
		"Ardra",
		"Punarvasu",
		"Pushya",
		"Ashlesha",
		"Magha",
		"Purva Phalguni",
		"Uttara Phalguni",
		"Hasta",
		"Chitra",
		"Swati",
		"Vishakha",
		"Anuradha",
		"Jyeshtha",
		"Mula",
		"Purva Ashadha",
		"Uttara Ashadha",
		"Shravana",
		"Dhanishta",
		"Shatabhisha",
		"Purva Bhadrapada",
		"Uttara Bhadrapada",
		"Revati",
	},
	// One syllable per quarter (pada) of the mansion.
	Letters: [...][]string{
		{"Chu", "Che", "Cho", "La"},
		{"Li", "Lu", "Le", "Lo"},
		{"A", "I", "U", "E"},
		{"O", "Va", "Vi", "Vu"},
		{"Ve", "Vo", "Ka", "Ki"},
		{"Ku", "Gha", "Na", "Chha"},
		{"Ke", "Ko", "Ha", "Hi"},
		{"Hu", "He", "Ho", "Da"},
		{"Di", "Du", "De", "Do"},
		{"Ma", "Mi", "Mu", "Me"},
		{"Mo", "Ta", "Ti", "Tu"},
		{"Te", "To", "Pa", "Pi"},
		{"Pu", "Sha", "Na", "Tha"},
		{"Pe", "Po", "Ra", "Ri"},
		{"Ru", "Re", "Ro", "Taa"},
		{"Ti", "Tu", "Te", "To"},
		{"Na", "Ni", "Nu", "Ne"},
		{"No", "Ya", "Yi", "Yu"},
		{"Ye", "Yo", "Bha", "Bhi"},
		{"Bhu", "Dha", "Pha", "Dhha"},
		{"Be", "Bo", "Ja", "Ji"},
		{"Ju", "Je", "Jo", "Khi"},
		{"Ga", "Gi", "Gu", "Ge"},
		{"Go", "Sa", "Si", "Su"},
		{"Se", "So", "Daa", "Dii"},
		{"Du", "Tha", "Jha", "Na"},
		{"De", "Do", "Cha", "Chi"},
	},
}
