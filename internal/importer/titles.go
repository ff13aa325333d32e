package importer

import "github.com/movieshub/movieshub/internal/metadata/tmdb"

// CuratedTitles returns the built-in bulk-import list of popular series.
func CuratedTitles() []WorkItem {
	return curatedTitles
}

var curatedTitles = []WorkItem{
	// Crime & drama series
	{Title: "Dexter", MediaType: tmdb.MediaTypeTV},
	{Title: "Luther", MediaType: tmdb.MediaTypeTV},
	{Title: "Broadchurch", MediaType: tmdb.MediaTypeTV},
	{Title: "The Night Of", MediaType: tmdb.MediaTypeTV},
	{Title: "Top of the Lake", MediaType: tmdb.MediaTypeTV},
	{Title: "The Fall", MediaType: tmdb.MediaTypeTV},

	// Fantasy, sci-fi & supernatural
	{Title: "Game of Thrones", MediaType: tmdb.MediaTypeTV},
	{Title: "The Mandalorian", MediaType: tmdb.MediaTypeTV},
	{Title: "Stranger Things", MediaType: tmdb.MediaTypeTV},
	{Title: "The Last of Us", MediaType: tmdb.MediaTypeTV},
	{Title: "Westworld", MediaType: tmdb.MediaTypeTV},
	{Title: "Dark", MediaType: tmdb.MediaTypeTV},
	{Title: "The Expanse", MediaType: tmdb.MediaTypeTV},
	{Title: "Black Mirror", MediaType: tmdb.MediaTypeTV},
	{Title: "The Witcher", MediaType: tmdb.MediaTypeTV},
	{Title: "Doctor Who", MediaType: tmdb.MediaTypeTV},

	// Animated & adult animation
	{Title: "Rick and Morty", MediaType: tmdb.MediaTypeTV},
	{Title: "BoJack Horseman", MediaType: tmdb.MediaTypeTV},
	{Title: "Avatar The Last Airbender", MediaType: tmdb.MediaTypeTV},
	{Title: "The Legend of Korra", MediaType: tmdb.MediaTypeTV},
	{Title: "Gravity Falls", MediaType: tmdb.MediaTypeTV},
	{Title: "Arcane", MediaType: tmdb.MediaTypeTV},
	{Title: "Invincible", MediaType: tmdb.MediaTypeTV},
	{Title: "Attack on Titan", MediaType: tmdb.MediaTypeTV},
	{Title: "Death Note", MediaType: tmdb.MediaTypeTV},
	{Title: "Fullmetal Alchemist Brotherhood", MediaType: tmdb.MediaTypeTV},

	// Comedy & sitcoms
	{Title: "Friends", MediaType: tmdb.MediaTypeTV},
	{Title: "The Office", MediaType: tmdb.MediaTypeTV},
	{Title: "The Big Bang Theory", MediaType: tmdb.MediaTypeTV},
	{Title: "How I Met Your Mother", MediaType: tmdb.MediaTypeTV},
	{Title: "Parks and Recreation", MediaType: tmdb.MediaTypeTV},
	{Title: "Brooklyn Nine-Nine", MediaType: tmdb.MediaTypeTV},
	{Title: "Seinfeld", MediaType: tmdb.MediaTypeTV},
	{Title: "Community", MediaType: tmdb.MediaTypeTV},
	{Title: "Modern Family", MediaType: tmdb.MediaTypeTV},
	{Title: "It's Always Sunny in Philadelphia", MediaType: tmdb.MediaTypeTV},

	// Miniseries & limited series
	{Title: "Chernobyl", MediaType: tmdb.MediaTypeTV},
	{Title: "Band of Brothers", MediaType: tmdb.MediaTypeTV},
	{Title: "When They See Us", MediaType: tmdb.MediaTypeTV},
	{Title: "The Queen's Gambit", MediaType: tmdb.MediaTypeTV},
	{Title: "Unbelievable", MediaType: tmdb.MediaTypeTV},
	{Title: "Mare of Easttown", MediaType: tmdb.MediaTypeTV},
	{Title: "The Night Manager", MediaType: tmdb.MediaTypeTV},
	{Title: "The Haunting of Hill House", MediaType: tmdb.MediaTypeTV},
	{Title: "Alias Grace", MediaType: tmdb.MediaTypeTV},
	{Title: "Godless", MediaType: tmdb.MediaTypeTV},

	// International hits
	{Title: "Money Heist", MediaType: tmdb.MediaTypeTV},
	{Title: "Squid Game", MediaType: tmdb.MediaTypeTV},
	{Title: "Sacred Games", MediaType: tmdb.MediaTypeTV},
	{Title: "Borgen", MediaType: tmdb.MediaTypeTV},
	{Title: "Fauda", MediaType: tmdb.MediaTypeTV},
	{Title: "Lupin", MediaType: tmdb.MediaTypeTV},
	{Title: "Giri Haji", MediaType: tmdb.MediaTypeTV},
	{Title: "My Brilliant Friend", MediaType: tmdb.MediaTypeTV},
	{Title: "The Bridge", MediaType: tmdb.MediaTypeTV},
	{Title: "Alice in Borderland", MediaType: tmdb.MediaTypeTV},

	// Teen, coming-of-age & YA
	{Title: "Euphoria", MediaType: tmdb.MediaTypeTV},
	{Title: "The OC", MediaType: tmdb.MediaTypeTV},
	{Title: "One Tree Hill", MediaType: tmdb.MediaTypeTV},
	{Title: "13 Reasons Why", MediaType: tmdb.MediaTypeTV},
	{Title: "Never Have I Ever", MediaType: tmdb.MediaTypeTV},
	{Title: "Sex Education", MediaType: tmdb.MediaTypeTV},
	{Title: "Heartstopper", MediaType: tmdb.MediaTypeTV},
	{Title: "Gossip Girl", MediaType: tmdb.MediaTypeTV},
	{Title: "The Vampire Diaries", MediaType: tmdb.MediaTypeTV},
	{Title: "Gilmore Girls", MediaType: tmdb.MediaTypeTV},

	// Documentary & reality
	{Title: "Planet Earth", MediaType: tmdb.MediaTypeTV},
	{Title: "Planet Earth II", MediaType: tmdb.MediaTypeTV},
	{Title: "Blue Planet", MediaType: tmdb.MediaTypeTV},
	{Title: "Making a Murderer", MediaType: tmdb.MediaTypeTV},
	{Title: "The Jinx", MediaType: tmdb.MediaTypeTV},
	{Title: "Tiger King", MediaType: tmdb.MediaTypeTV},

	// Recent breakouts & underrated gems
	{Title: "The Bear", MediaType: tmdb.MediaTypeTV},
	{Title: "Beef", MediaType: tmdb.MediaTypeTV},
	{Title: "The Boys", MediaType: tmdb.MediaTypeTV},
	{Title: "Severance", MediaType: tmdb.MediaTypeTV},
	{Title: "Yellowjackets", MediaType: tmdb.MediaTypeTV},
	{Title: "The Morning Show", MediaType: tmdb.MediaTypeTV},
	{Title: "The Leftovers", MediaType: tmdb.MediaTypeTV},
	{Title: "Station Eleven", MediaType: tmdb.MediaTypeTV},
	{Title: "Barry", MediaType: tmdb.MediaTypeTV},
	{Title: "Wild Wild Country", MediaType: tmdb.MediaTypeTV},
	{Title: "Last Chance U", MediaType: tmdb.MediaTypeTV},
	{Title: "Cheer", MediaType: tmdb.MediaTypeTV},
	{Title: "Drive to Survive", MediaType: tmdb.MediaTypeTV},
	{Title: "The Defiant Ones", MediaType: tmdb.MediaTypeTV},
}
