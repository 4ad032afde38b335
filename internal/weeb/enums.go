package weeb

// Sort selects the search result ordering criterion.
type Sort string

const (
	SortBestMatch     Sort = "Best Match"
	SortAlphabet      Sort = "Alphabet"
	SortPopularity    Sort = "Popularity"
	SortSubscribers   Sort = "Subscribers"
	SortRecentlyAdded Sort = "Recently Added"
	SortLatestUpdates Sort = "Latest Updates"
)

// Order selects ascending or descending search results.
type Order string

const (
	OrderAscending  Order = "Ascending"
	OrderDescending Order = "Descending"
)

// Tri is the tri-state filter used for the official-translation,
// anime-adaptation and adult-content search options.
type Tri string

const (
	TriAny   Tri = "Any"
	TriTrue  Tri = "True"
	TriFalse Tri = "False"
)

// Status filters search results by publication status.
type Status string

const (
	StatusOngoing  Status = "Ongoing"
	StatusComplete Status = "Complete"
	StatusHiatus   Status = "Hiatus"
	StatusCanceled Status = "Canceled"
)

// SeriesType filters search results by the kind of comic.
type SeriesType string

const (
	TypeManga  SeriesType = "Manga"
	TypeManhwa SeriesType = "Manhwa"
	TypeManhua SeriesType = "Manhua"
	TypeOEL    SeriesType = "OEL"
)

// Genre filters search results by tag.
type Genre string

const (
	GenreAction        Genre = "Action"
	GenreAdult         Genre = "Adult"
	GenreAdventure     Genre = "Adventure"
	GenreComedy        Genre = "Comedy"
	GenreDoujinshi     Genre = "Doujinshi"
	GenreDrama         Genre = "Drama"
	GenreEcchi         Genre = "Ecchi"
	GenreFantasy       Genre = "Fantasy"
	GenreGenderBender  Genre = "Gender Bender"
	GenreHarem         Genre = "Harem"
	GenreHentai        Genre = "Hentai"
	GenreHistorical    Genre = "Historical"
	GenreHorror        Genre = "Horror"
	GenreIsekai        Genre = "Isekai"
	GenreJosei         Genre = "Josei"
	GenreLolicon       Genre = "Lolicon"
	GenreMartialArts   Genre = "Martial Arts"
	GenreMature        Genre = "Mature"
	GenreMecha         Genre = "Mecha"
	GenreMystery       Genre = "Mystery"
	GenrePsychological Genre = "Psychological"
	GenreRomance       Genre = "Romance"
	GenreSchoolLife    Genre = "School Life"
	GenreSciFi         Genre = "Sci-fi"
	GenreSeinen        Genre = "Seinen"
	GenreShotacon      Genre = "Shotacon"
	GenreShoujo        Genre = "Shoujo"
	GenreShoujoAi      Genre = "Shoujo Ai"
	GenreShounen       Genre = "Shounen"
	GenreShounenAi     Genre = "Shounen Ai"
	GenreSliceOfLife   Genre = "Slice of Life"
	GenreSmut          Genre = "Smut"
	GenreSports        Genre = "Sports"
	GenreSupernatural  Genre = "Supernatural"
	GenreTragedy       Genre = "Tragedy"
	GenreYaoi          Genre = "Yaoi"
	GenreYuri          Genre = "Yuri"
	GenreOther         Genre = "Other"
)

// HotPeriod selects the view-count window for the hot-series listing.
type HotPeriod string

const (
	HotWeekly  HotPeriod = "weekly_views"
	HotMonthly HotPeriod = "monthly_views"
	HotAllTime HotPeriod = "total_views"
)
