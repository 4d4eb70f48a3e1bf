package locale

var tamil = Table{
	ID:   "ta",
	Name: "தமிழ்",
	Signs: [...]string{
		"மேஷம்",
		"ரிஷபம்",
		"மிதுனம்",
		"கடகம்",
		"சிம்மம்",
		"கன்னி",
		"துலாம்",
		"விருச்சிகம்",
		"தனுசு",
		"மகரம்",
		"கும்பம்",
		"மீனம்",
	},
	Mansions: [...]string{
		"அசுவினி",
		"பரணி",
		"கார்த்திகை",
		"ரோகிணி",
		"மிருகசீரிடம்",
		"திருவாதிரை",
		"புனர்பூசம்",
		"பூசம்",
		"ஆயில்யம்",
		"மகம்",
		"பூரம்",
		"உத்திரம்",
		"அஸ்தம்",
		"சித்திரை",
		"சுவாதி",
		"விசாகம்",
		"அனுஷம்",
		"கேட்டை",
		"மூலம்",
		"பூராடம்",
		"உத்திராடம்",
		"திருவோணம்",
		"அவிட்டம்",
		"சதயம்",
		"பூரட்டாதி",
		"உத்திரட்டாதி",
		"ரேவதி",
	},
	Letters: [...][]string{
		{"சு", "சே", "சோ", "லா"},
		{"லி", "லு", "லே", "லோ"},
		{"அ", "இ", "உ", "எ"},
		{"ஒ", "வ", "வி", "வு"},
		{"வே", "வோ", "கா", "கி"},
		{"கு", "க", "ங", "ச"},
		{"கே", "கோ", "ஹ", "ஹி"},
		{"ஹு", "ஹே", "ஹோ", "டா"},
		{"டி", "டு", "டே", "டோ"},
		{"ம", "மி", "மு", "மெ"},
		{"மோ", "ட", "டி", "டு"},
		{"டே", "டோ", "ப", "பி"},
		{"பு", "ஷ", "ந", "ட"},
		{"பே", "போ", "ர", "ரி"},
		{"ரு", "ரே", "ரோ", "தா"},
		{"தி", "து", "தே", "தோ"},
		{"நா", "நி", "நு", "நே"},
		{"நோ", "ய", "யி", "யு"},
		{"யே", "யோ", "பா", "பீ"},
		{"பூ", "த", "ஃப", "டா"},
		{"பே", "போ", "ஜ", "ஜி"},
		{"ஜு", "ஜே", "ஜோ", "கீ"},
		{"க", "கி", "கு", "கெ"},
		{"கோ", "ஸ", "ஸி", "ஸு"},
		{"ஸே", "ஸோ", "தா", "தீ"},
		{"து", "ஞ", "ச", "த"},
		{"தே", "தோ", "சா", "சி"},
	},
}
