package cfg

type Cfg struct {
	// Database configuration
	DBPath string

	// Application configuration
	TablesDir        string
	Port             string
	APIAccessKey     string
	CheckInterval    int
	MinScore         int
	MaxPostsPerDay   int
	ActiveHoursStart string
	ActiveHoursEnd   string
	AutoPublish      bool
	TopK             int
	DedupWindowHours int
	MaxArticles      int
	HistoryLanguage  string

	// Platform credentials
	BearerToken string
	AccessToken string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
