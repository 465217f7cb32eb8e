package bot

// Fixed user-facing texts, carried over from the original catalog bot.
const (
	msgGreeting = `✋ Welcome to Telegram Music Catalog! 🎧
We are a community of music fans who are eager to share what we love.
Just send your favourite tracks as audio files and they'll be available for everyone, on any device.
To search through the catalog, just type artist name or track title. Nothing found? Feel free to fix it!`

	msgHelp = `To search through the catalog, just type artist name or track title.
Inside a group chat you can use /music command, for example:
/music Summer of Haze

By default, the search is fuzzy but you can use double quotes to filter results:
"summer of haze"
"sad family"

To make an even stricter search, just quote both terms:
"aes dana" "haze"`

	msgNotFound = `We don't have anything matching your search yet :/
But you can fix it by sending us the tracks you love as audio files!`

	msgGoodbye = "Goodbye! We will miss you 😢"

	msgMissingTitle = "Sorry, but your track is missing title"

	msgSomethingWrong = "Something went wrong on our side, please try again later"

	msgRateLimited = "Easy there! Give the catalog a few seconds to catch up"
)
