package styling

import "github.com/matthias/jobad-composer/internal/types"

// kitDefaults holds the pre-authored fallback content for one color.
type kitDefaults struct {
	DoAndDont  []string
	Adjectives []string
	Hooks      []string
	Syntax     []string
}

// defaultsEN is the built-in fallback table used when retrieval yields
// nothing. Working baseline before any style corpus has been ingested.
var defaultsEN = map[types.Color]kitDefaults{
	types.ColorRed: {
		DoAndDont: []string{
			"DO: Use direct, action-oriented language",
			"DO: Highlight impact, results, and growth potential",
			"DO: Emphasize speed, autonomy, and decision-making power",
			"DO: Show career acceleration and status markers",
			"DON'T: Use passive voice or hedging language",
			"DON'T: Overload with process descriptions or committee talk",
		},
		Adjectives: []string{
			"ambitious", "driven", "high-impact", "strategic",
			"results-oriented", "decisive", "competitive", "dynamic",
			"performance-focused", "autonomous",
		},
		Hooks: []string{
			"Lead. Build. Deliver.",
			"Ready to make an impact?",
			"Your next career move starts here.",
		},
		Syntax: []string{
			"Short declarative sentences — subject-verb-object",
			"Active voice throughout",
			"Imperative allowed for calls to action",
			"Avoid subordinate clauses and qualifiers",
		},
	},
	types.ColorYellow: {
		DoAndDont: []string{
			"DO: Emphasize creativity, freedom, and team spirit",
			"DO: Use energetic, approachable language",
			"DO: Highlight variety, innovation, and personal growth",
			"DO: Show the fun side of the work environment",
			"DON'T: Be overly formal or bureaucratic",
			"DON'T: Use rigid or controlling language",
		},
		Adjectives: []string{
			"creative", "flexible", "collaborative", "innovative",
			"dynamic", "inspiring", "open-minded", "energetic",
			"versatile", "enthusiastic",
		},
		Hooks: []string{
			"Shape the future with us!",
			"Your creativity. Our platform.",
			"Where ideas come to life.",
		},
		Syntax: []string{
			"Conversational tone, varied sentence length",
			"Questions and exclamations are welcome",
			"First and second person address ('you', 'we')",
			"Mix short punchy lines with flowing descriptions",
		},
	},
	types.ColorGreen: {
		DoAndDont: []string{
			"DO: Emphasize team, belonging, and work-life balance",
			"DO: Use warm, inclusive language",
			"DO: Highlight stability, trust, and mutual support",
			"DO: Show care for employee wellbeing",
			"DON'T: Use aggressive or competitive framing",
			"DON'T: Over-promise or use hype",
		},
		Adjectives: []string{
			"supportive", "reliable", "inclusive", "caring",
			"balanced", "trustworthy", "collaborative", "stable",
			"harmonious", "community-oriented",
		},
		Hooks: []string{
			"Become part of our team.",
			"A place where you belong.",
			"Growing together — at your pace.",
		},
		Syntax: []string{
			"Longer, connecting sentences with smooth flow",
			"Conditional and inclusive phrasing ('together', 'we support')",
			"Avoid pressure language or ultimatums",
			"Warm closings that invite rather than demand",
		},
	},
	types.ColorBlue: {
		DoAndDont: []string{
			"DO: Use facts, specifics, and evidence",
			"DO: Emphasize quality, structure, and expertise",
			"DO: Back claims with numbers or concrete examples",
			"DO: Show methodological rigor and clear processes",
			"DON'T: Use vague superlatives without backing",
			"DON'T: Use emotional manipulation or pressure",
		},
		Adjectives: []string{
			"analytical", "structured", "expert", "precise",
			"thorough", "systematic", "methodical", "evidence-based",
			"quality-driven", "detail-oriented",
		},
		Hooks: []string{
			"Excellence through expertise.",
			"Built on quality. Driven by data.",
			"Precision matters — and so do you.",
		},
		Syntax: []string{
			"Clear topic sentences followed by evidence",
			"Precise, factual language — no filler words",
			"Numbered or structured lists where appropriate",
			"Professional but not cold — factual warmth",
		},
	},
}

// defaultsDE carries the German equivalents for de runs.
var defaultsDE = map[types.Color]kitDefaults{
	types.ColorRed: {
		DoAndDont: []string{
			"TUN: Direkte, handlungsorientierte Sprache verwenden",
			"TUN: Wirkung, Ergebnisse und Wachstumspotenzial hervorheben",
			"TUN: Geschwindigkeit, Autonomie und Entscheidungskraft betonen",
			"NICHT: Passive Formulierungen oder abschwächende Sprache",
			"NICHT: Prozessbeschreibungen oder Gremien-Sprache überladen",
		},
		Adjectives: []string{
			"ambitioniert", "leistungsstark", "zielstrebig",
			"ergebnisorientiert", "strategisch", "entschlossen",
			"wettbewerbsfähig", "dynamisch", "eigenverantwortlich",
		},
		Hooks: []string{
			"Gestalten Sie Ihre Karriere – mit echtem Einfluss.",
			"Bereit für den nächsten Schritt?",
			"Führen. Umsetzen. Bewegen.",
		},
		Syntax: []string{
			"Kurze, direkte Sätze – Subjekt-Verb-Objekt",
			"Durchgehend aktive Formulierungen",
			"Imperativ für Handlungsaufforderungen erlaubt",
		},
	},
	types.ColorYellow: {
		DoAndDont: []string{
			"TUN: Kreativität, Freiheit und Teamgeist betonen",
			"TUN: Energische, nahbare Sprache verwenden",
			"TUN: Vielfalt, Innovation und persönliches Wachstum zeigen",
			"NICHT: Zu formell oder bürokratisch formulieren",
			"NICHT: Starre oder kontrollierende Sprache verwenden",
		},
		Adjectives: []string{
			"kreativ", "flexibel", "innovativ", "inspirierend",
			"offen", "vielseitig", "begeisternd", "dynamisch",
		},
		Hooks: []string{
			"Gestalte die Zukunft mit uns!",
			"Deine Kreativität. Unsere Plattform.",
			"Wo Ideen lebendig werden.",
		},
		Syntax: []string{
			"Lockerer Ton, abwechslungsreiche Satzlänge",
			"Fragen und Ausrufe willkommen",
			"Direkte Ansprache ('du', 'wir')",
		},
	},
	types.ColorGreen: {
		DoAndDont: []string{
			"TUN: Team, Zugehörigkeit und Work-Life-Balance betonen",
			"TUN: Warme, inklusive Sprache verwenden",
			"TUN: Stabilität, Vertrauen und gegenseitige Unterstützung zeigen",
			"NICHT: Aggressive oder wettbewerbsorientierte Formulierungen",
			"NICHT: Übertreiben oder Hype verwenden",
		},
		Adjectives: []string{
			"unterstützend", "verlässlich", "inklusiv", "fürsorglich",
			"ausgewogen", "vertrauenswürdig", "harmonisch", "stabil",
		},
		Hooks: []string{
			"Werden Sie Teil unseres Teams.",
			"Ein Ort, an dem Sie dazugehören.",
			"Gemeinsam wachsen – in Ihrem Tempo.",
		},
		Syntax: []string{
			"Längere, verbindende Sätze mit sanftem Fluss",
			"Konditionale und inklusive Formulierungen ('gemeinsam', 'wir unterstützen')",
			"Keine Druck-Sprache oder Ultimaten",
		},
	},
	types.ColorBlue: {
		DoAndDont: []string{
			"TUN: Fakten, Konkretisierungen und Belege verwenden",
			"TUN: Qualität, Struktur und Expertise betonen",
			"TUN: Aussagen mit Zahlen oder konkreten Beispielen untermauern",
			"NICHT: Unspezifische Superlative ohne Beleg verwenden",
			"NICHT: Emotionale Manipulation oder Drucksprache",
		},
		Adjectives: []string{
			"analytisch", "strukturiert", "fachkundig", "präzise",
			"gründlich", "systematisch", "methodisch", "qualitätsorientiert",
		},
		Hooks: []string{
			"Exzellenz durch Expertise.",
			"Aufgebaut auf Qualität. Angetrieben durch Daten.",
			"Präzision zählt – und Sie auch.",
		},
		Syntax: []string{
			"Klare Leitsätze gefolgt von Belegen",
			"Präzise, faktische Sprache – keine Füllwörter",
			"Nummerierte oder strukturierte Listen wo sinnvoll",
		},
	},
}

func defaultsFor(lang types.Language) map[types.Color]kitDefaults {
	if lang == types.LanguageGerman {
		return defaultsDE
	}
	return defaultsEN
}
