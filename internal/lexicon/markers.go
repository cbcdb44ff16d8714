package lexicon

// Separation holds the separation-consciousness vocabulary
var Separation = MustNew("separation", []string{
	// core
	"fear", "lack", "impossible", "us versus them", "judgement",
	"crisis", "scarcity", "division", "conflict", "enemy",

	"zero-sum", "my way", "compete", "dominate", "control",
	"threat", "danger", "attack", "defend", "protect",
	"limited", "finite", "not enough", "mine", "yours",
	"separate", "isolated", "alone", "abandoned", "rejected",
	"failure", "loss", "defeat", "victim", "powerless",
	"hate", "anger", "resentment", "revenge", "punishment",
	"wrong", "bad", "evil", "sin", "guilt",
	"shame", "blame", "fault", "mistake", "error",
	"weak", "inferior", "less than", "unworthy", "inadequate",
	"can't", "won't", "never", "hopeless",
	"desperate", "anxious", "worried", "stressed", "overwhelmed",
	"chaos", "disorder", "destruction", "collapse", "end",
	"death", "dying", "terminal", "fatal", "doomed",
	"exclusive", "elite", "superior", "better than", "privilege",
	"hierarchy", "rank", "status", "class", "caste",
	"border", "boundary", "wall", "barrier", "fence",
	"restriction", "limitation", "constraint", "prohibition", "ban",
	"competition", "rivalry", "opponent", "adversary", "foe",
})

// Unity holds the unity-consciousness vocabulary
var Unity = MustNew("unity", []string{
	// core
	"love", "unity", "co-create", "abundance", "possibility",
	"solution", "harmony", "peace", "together", "collaboration",

	"shared source", "potential", "oneness", "wholeness", "integration",
	"connection", "relationship", "bond", "link", "bridge",
	"infinite", "unlimited", "boundless", "endless", "eternal",
	"collective", "community", "all beings", "everyone", "humanity",
	"united", "joined", "merged", "combined",
	"success", "victory", "triumph", "achievement", "accomplishment",
	"empowerment", "strength", "capability", "capacity", "ability",
	"compassion", "kindness", "care", "support", "help",
	"forgiveness", "acceptance", "understanding", "empathy", "sympathy",
	"right", "good", "virtue", "merit", "worth",
	"honor", "respect", "dignity", "value", "appreciation",
	"strong", "capable", "worthy", "deserving", "adequate",
	"possible", "can", "will", "always", "hopeful",
	"calm", "peaceful", "serene", "tranquil", "relaxed",
	"order", "balance", "equilibrium", "stability",
	"life", "living", "vital", "vibrant", "thriving",
	"inclusive", "open", "welcoming", "accepting", "embracing",
	"equality", "fairness", "justice", "equity",
	"opening", "gateway", "portal", "passage", "access",
	"freedom", "liberty", "autonomy", "independence", "sovereignty",
	"cooperation", "partnership", "alliance", "synergy", "symbiosis",
	"trust", "faith", "belief", "confidence", "assurance",
	"joy", "happiness", "delight", "pleasure", "bliss",
	"gratitude", "thankfulness", "acknowledgment", "recognition",
	"growth", "development", "evolution", "progress", "advancement",
	"creation", "generation", "manifestation", "emergence", "birth",
	"light", "illumination", "clarity", "insight", "wisdom",
	"truth", "authenticity", "genuineness", "sincerity", "honesty",
	"beauty", "grace", "elegance", "refinement", "excellence",
})
