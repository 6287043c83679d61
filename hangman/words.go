package hangman

// Words is a small built-in corpus, used when no dictionary or word list is
// configured.
var Words = []string{
	"able", "acid", "actor", "adult", "agent", "alarm", "album", "alien",
	"amber", "angle", "ankle", "apple", "arrow", "atlas", "attic", "award",
	"bacon", "badge", "baker", "banjo", "barge", "basil", "beach", "beard",
	"bhaskar", "bicycle", "blanket", "blizzard", "bottle", "bucket", "buffalo",
	"cabin", "cactus", "camel", "canyon", "carpet", "castle", "cherry",
	"chimney", "circus", "citrus", "cobweb", "comet", "copper", "cricket",
	"crystal", "dagger", "dolphin", "dragon", "drizzle", "eclipse", "elbow",
	"engine", "falcon", "feather", "fjord", "flannel", "fossil", "galaxy",
	"garlic", "giraffe", "glacier", "goblet", "gossip", "granite", "guitar",
	"hammer", "harbor", "hazard", "helmet", "honey", "horizon", "iceberg",
	"igloo", "jacket", "jigsaw", "jockey", "journey", "kayak", "kettle",
	"kiwi", "ladder", "lantern", "lemon", "lizard", "lobster", "magnet",
	"mammoth", "marble", "meadow", "mirror", "muffin", "napkin", "nectar",
	"noodle", "oasis", "octopus", "orbit", "orchid", "oxygen", "paddle",
	"pepper", "pickle", "pirate", "puzzle", "pyramid", "quartz", "quiver",
	"rabbit", "raven", "rhythm", "riddle", "rocket", "saddle", "salmon",
	"scarf", "shadow", "sphinx", "squid", "statue", "syrup", "thunder",
	"tomato", "trumpet", "tulip", "tunnel", "umbrella", "unicorn", "vacuum",
	"velvet", "violin", "volcano", "walnut", "walrus", "whistle", "wizard",
	"xylophone", "yacht", "yogurt", "zebra", "zephyr", "zigzag", "zombie",
}
