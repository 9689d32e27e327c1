package render

// Template pools. One template is picked uniformly at random per
// render; placeholders are filled from the candidate plus flavor
// fragments, which inject variety without new information.

var unfollowTemplates = []string{
	"🚨 JUST IN: {athlete} just UNFOLLOWED {target}!\n\nWhat happened? 👀🍿",
	"⚡ DRAMA ALERT: {athlete} has unfollowed {target} ({handle})\n\nTrouble in paradise? 🤔",
	"👀 {athlete} quietly unfollowed {target}\n\nThe plot thickens... 🍿",
	"🔥 BREAKING: {athlete} is no longer following {target}\n\nSomething went down! 👀",
	"💥 {athlete} unfollowed {target}!\n\nWho else noticed this? 🕵️",
	"🚨 {athlete} just hit the unfollow button on {target}\n\nDrama incoming! 🍿👀",
}

var unfollowMegaTemplates = []string{
	"🚨🚨🚨 MAJOR DRAMA: {athlete} UNFOLLOWED {target}!\n\nThis is HUGE! 🔥👀🍿",
	"💣 BOMBSHELL: {athlete} just unfollowed {target} ({handle})\n\nFootball Twitter is NOT ready for this! 🤯",
}

var followTemplates = []string{
	"⚡ {athlete} just followed {target}!\n\nInteresting... 👀",
	"👀 {athlete} started following {target} ({handle})\n\nNew bromance incoming? 🤝",
	"🔔 {athlete} is now following {target}\n\nTransfer hint? 🤔",
	"✨ {athlete} followed {target}!\n\nWhat does this mean? 👀",
	"📱 {athlete} just hit that follow button on {target}\n\nSomething brewing? ☕",
}

var followHighTemplates = []string{
	"🚨 {athlete} just followed {target}!\n\nThe GOATs recognizing GOATs 🐐🤝🐐",
	"⚡ HUGE: {athlete} started following {target} ({handle})\n\nFootball fans, pay attention! 👀",
}

var breakingTemplates = []string{
	"🚨 BREAKING NEWS!\n\n{title}\n\n{context}\n\n{hook}",
	"⚡ JUST IN: {title}\n\n{detail}\n\n{reaction}",
	"🔥 HUGE DEVELOPMENT!\n\n{title}\n\n{context}\n\n{hook}",
	"👀 You won't believe this...\n\n{title}\n\n{detail}\n\n{question}",
	"💥 MASSIVE: {title}\n\n{context}\n\n{hook}",
	"📰 LATEST: {title}\n\n{detail}\n\n{hook}",
}

var transferTemplates = []string{
	"🚨 TRANSFER ALERT!\n\n{title}\n\n{context}\n\n{question}",
	"💰 BIG MONEY MOVE?\n\n{title}\n\n{detail}\n\n{question}",
	"✈️ HERE WE GO? {title}\n\n{context}\n\n{reaction}",
	"📝 CONTRACT TALK: {title}\n\n{detail}\n\n{question}",
}

var matchTemplates = []string{
	"⚽ MATCH REPORT!\n\n{title}\n\n{detail}\n\n{reaction}",
	"🏆 WHAT A GAME!\n\n{title}\n\n{context}\n\n{reaction}",
	"😱 UNBELIEVABLE!\n\n{title}\n\n{context}\n\n{hook}",
	"🎯 FINAL SCORE: {title}\n\n{detail}\n\n{reaction}",
}

var hooks = []string{
	"This is absolutely massive! 🔥",
	"Football Twitter is going to explode! 🤯",
	"Nobody saw this coming! 😱",
	"What a turn of events! 🌪️",
	"The drama never stops in football! 🍿",
	"This could change everything! ⚡",
	"Incredible scenes! 🎭",
}

var reactions = []string{
	"What are your thoughts on this? 🤔",
	"Drop your reaction below! 👇",
	"Who predicted this? 🙋‍♂️",
	"This changes the whole landscape! ⚡",
	"Absolute scenes! 🔥",
	"Is this really happening? 😮",
	"Game changer alert! 🚨",
}

var questions = []string{
	"What do you make of this? 💭",
	"Good move or disaster? 🤔",
	"Will this actually happen? 👀",
	"Your predictions below! 🔮",
	"Who's involved next? 👇",
	"Rate this on a scale of 1-10! 📊",
}

var contexts = []string{
	"Sources close to the club confirm this developing story.",
	"This comes as a major surprise to fans and pundits alike.",
	"Breaking developments in the last hour suggest this is real.",
	"Multiple reliable sources are now reporting this.",
	"This has been rumored for weeks, now it's confirmed!",
}

var details = []string{
	"According to reports from reliable insiders.",
	"This could reshape the entire season.",
	"Fans are already reacting massively online.",
	"The announcement has sent shockwaves through the sport.",
}

const historyTemplate = "{emoji} {year} yılında bugün:\n\n{text}"

const historyHashtags = "#TarihteBugün #Tarih"

// Emoji rules for historical events: first matching rule wins, the
// last rule is the default.
type emojiRule struct {
	keywords []string
	emoji    string
}

var historyEmojiRules = []emojiRule{
	{[]string{"savaş", "war", "battle", "çarpışma", "muharebe"}, "⚔️"},
	{[]string{"öldü", "died", "death", "ölüm", "öldürüldü", "idam", "infaz"}, "🕯️"},
	{[]string{"deprem", "yangın", "patlama", "felaket", "katliam", "disaster"}, "⚠️"},
	{[]string{"devrim", "isyan", "ayaklanma", "darbe"}, "✊"},
	{[]string{"kral", "sultan", "padişah", "imparator", "meclis", "başkan"}, "🏛️"},
	{[]string{"uzay", "space", "moon", "mars", "roket"}, "🚀"},
	{[]string{"keşif", "buluş", "discovery", "bilim"}, "🔬"},
	{[]string{"bomba", "explosion"}, "💥"},
}

const historyDefaultEmoji = "📅"

// Star players eligible for a name hashtag on news posts.
var starPlayerTags = []string{"Ronaldo", "Messi", "Haaland", "Mbappe", "Neymar", "Salah", "Kane"}

// Athlete-specific hashtags for social posts.
var athleteTags = map[string]string{
	"Cristiano Ronaldo": "#CR7",
	"Lionel Messi":      "#Messi",
	"Kylian Mbappé":     "#Mbappe",
	"Erling Haaland":    "#Haaland",
	"Neymar":            "#NeymarJr",
	"Mohamed Salah":     "#Salah",
}

// Teams recognized for a team hashtag.
var knownTeams = []string{
	"Manchester United", "Manchester City", "Liverpool", "Chelsea",
	"Arsenal", "Tottenham", "Real Madrid", "Barcelona", "Bayern Munich",
	"PSG", "Juventus", "AC Milan", "Inter Milan", "Atletico Madrid",
}
