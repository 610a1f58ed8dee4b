package tracker

// motivationalMessages is the pool a break reminder picks from.
var motivationalMessages = []string{
	"Take a deep breath!",
	"Stretch your legs!",
	"You're doing great!",
	"Hydrate a bit!",
	"Time to refocus soon!",
}
