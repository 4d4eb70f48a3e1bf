package locale

var hindi = Table{
	ID:   "hi",
	Name: "हिन्दी",
	Signs: [...]string{
		"मेष",
		"वृषभ",
		"मिथुन",
		"कर्क",
		"सिंह",
		"कन्या",
		"तुला",
		"वृश्चिक",
		"धनु",
		"मकर",
		"कुंभ",
		"मीन",
	},
	Mansions: [...]string{
		"अश्विनी",
		"भरणी",
		"कृत्तिका",
		"रोहिणी",
		"मृगशिरा",
		"आर्द्रा",
		"पुनर्वसु",
		"पुष्य",
		"आश्लेषा",
		"मघा",
		"पूर्वा फाल्गुनी",
		"उत्तरा फाल्गुनी",
		"हस्त",
		"चित्रा",
		"स्वाती",
		"विशाखा",
		"अनुराधा",
		"ज्येष्ठा",
		"मूल",
		"पूर्वाषाढ़ा",
		"उत्तराषाढ़ा",
		"श्रवण",
		"धनिष्ठा",
		"शतभिषा",
		"पूर्वा भाद्रपद",
		"उत्तरा भाद्रपद",
		"रेवती",
	},
	Letters: [...][]string{
		{"चू", "चे", "चो", "ला"},
		{"ली", "लू", "ले", "लो"},
		{"अ", "इ", "उ", "ए"},
		{"ओ", "वा", "वी", "वू"},
		{"वे", "वो", "का", "की"},
		{"कू", "घ", "ङ", "छ"},
		{"के", "को", "हा", "ही"},
		{"हू", "हे", "हो", "डा"},
		{"डी", "डू", "डे", "डो"},
		{"मा", "मी", "मू", "मे"},
		{"मो", "टा", "टी", "टू"},
		{"टे", "टो", "पा", "पी"},
		{"पू", "ष", "ण", "ठ"},
		{"पे", "पो", "रा", "री"},
		{"रू", "रे", "रो", "ता"},
		{"ती", "तू", "ते", "तो"},
		{"ना", "नी", "नू", "ने"},
		{"नो", "या", "यी", "यू"},
		{"ये", "यो", "भा", "भी"},
		{"भू", "धा", "फा", "ढा"},
		{"भे", "भो", "जा", "जी"},
		{"खी", "खू", "खे", "खो"},
		{"गा", "गी", "गू", "गे"},
		{"गो", "सा", "सी", "सू"},
		{"से", "सो", "दा", "दी"},
		{"दू", "थ", "झ", "ञ"},
		{"दे", "दो", "चा", "ची"},
	},
}
