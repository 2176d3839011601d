package relevance

// allowKeywords mark an item as Formula 1 coverage.
var allowKeywords = []string{
	"f1", "formula 1", "formula one", "formula1", "formula-1",
	"grand prix", "gp", "fia",
	// teams
	"ferrari", "mercedes", "red bull", "mclaren", "alpine", "aston martin",
	"williams", "haas", "alphatauri", "rb", "sauber", "kick sauber",
	"stake f1", "racing bulls", "visa cash app",
	// drivers, current and recent
	"hamilton", "verstappen", "leclerc", "sainz", "norris", "piastri",
	"russell", "alonso", "stroll", "ocon", "gasly", "albon",
	"bottas", "zhou", "tsunoda", "ricciardo", "hulkenberg", "magnussen",
	"sargeant", "bearman", "lawson", "doohan",
	// circuits
	"monaco", "monza", "silverstone", "spa", "suzuka", "interlagos",
	"bahrain", "jeddah", "melbourne", "imola", "barcelona", "montreal",
	"red bull ring", "hungaroring", "zandvoort", "marina bay", "yas marina",
	// paddock vocabulary
	"qualifying", "pole position", "podium", "championship", "constructors",
	"drivers championship", "drs", "safety car", "virtual safety car",
	"race director", "stewards", "penalty", "grid penalty",
}

// denyKeywords identify competing disciplines the sources also cover.
// A deny match rejects the item even when an allow keyword is present.
var denyKeywords = []string{
	"motogp", "moto gp", "moto2", "moto3", "moto e",
	"wrc", "world rally", "rally championship",
	"wec", "world endurance", "le mans", "24 hours",
	"indycar", "indy car", "indianapolis", "indy 500",
	"nascar", "nascar cup", "nascar xfinity",
	"formula e", "formula-e", "fe championship", "formula electric",
	"super gt", "dtm", "gt3", "gt4",
	"superbike", "worldsbk", "wsbk",
	"motocross", "mxgp", "supercross",
	"dakar", "rally raid",
	"v8 supercars", "supercars championship",
	"btcc", "british touring car",
	"wtcr", "world touring car",
}

// topicalPathSegments are URL fragments that mark an article as F1 coverage
// when the text itself is inconclusive.
var topicalPathSegments = []string{"/f1/", "/formula-1/", "/formula1/"}
