package domain

import "time"

// Sport selects which option lists drive the entry form. It is never persisted.
type Sport string

const (
	SportBaseball Sport = "baseball"
	SportFootball Sport = "football"
)

// MinCardYear is the earliest year accepted for a card.
const MinCardYear = 1950

// EntryOptions are the choices offered by the new-card form for one sport.
type EntryOptions struct {
	Sport             Sport    `json:"sport"`
	SetNames          []string `json:"setNames"`
	NumberedParallels []string `json:"numberedParallels"`
	Years             []int    `json:"years"`
}

var baseballSets = []string{
	"Topps Series 1", "Topps Heritage", "Topps Heritage Mini",
	"Topps Opening Day", "Topps Inception", "Bowman Inception",
	"Topps Big League", "Topps Dynasty", "Topps Gypsy Queen",
	"Bowman", "Topps Archive Signature Edition", "Topps Tier One",
	"Topps Finest", "Topps Series 2", "Topps Stadium Club",
	"Topps Museum Collection", "Topps Chrome", "Topps Chrome Update",
	"Topps Japan Edition", "Topps Allen & Ginter", "Bowman Chrome",
	"Topps Gold Label", "Topps Black Chrome", "Topps Pristine",
	"Topps Chrome Platinum Anniversary", "Topps Update Series",
	"Topps Heritage High Number", "Topps Five Star", "Bowman Draft",
	"Bowman's Best", "Topps Triple Threads", "Bowman Sapphire Edition",
	"Topps Pro Debut", "Topps Finest Flashbacks",
}

var baseballParallels = []string{
	DefaultNumberedParallel, "1/1", "Image Variation", "Case Hit",
	"/499", "/299", "/250", "/199", "/150", "/99", "/75", "/50", "/25", "/10", "/5",
	"Insert",
}

var footballSets = []string{
	"Panini Prizm", "Donruss", "Donruss Optic", "Panini Select",
	"Panini Mosaic", "Panini Contenders", "Panini National Treasures",
	"Panini Flawless", "Panini Immaculate", "Panini Spectra",
	"Panini Phoenix", "Panini Origins", "Panini Absolute", "Topps Chrome",
}

var footballParallels = []string{
	DefaultNumberedParallel, "Silver", "1/1", "Case Hit", "Downtown", "Kaboom",
	"/399", "/299", "/199", "/99", "/75", "/49", "/25", "/10", "/5",
	"Rated Rookie", "Insert",
}

// OptionsFor returns the form options for a sport, with years running from
// the current year back to MinCardYear. Unknown sports fall back to baseball.
func OptionsFor(sport Sport, now time.Time) EntryOptions {
	opts := EntryOptions{Sport: SportBaseball, SetNames: baseballSets, NumberedParallels: baseballParallels}
	if sport == SportFootball {
		opts = EntryOptions{Sport: SportFootball, SetNames: footballSets, NumberedParallels: footballParallels}
	}
	for y := now.Year(); y >= MinCardYear; y-- {
		opts.Years = append(opts.Years, y)
	}
	return opts
}
