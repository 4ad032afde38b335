package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sorade/weebdl/internal/weeb"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var (
	flagSearchSort     string
	flagSearchOrder    string
	flagSearchOfficial string
	flagSearchAnime    string
	flagSearchAdult    string
	flagSearchStatus   []string
	flagSearchTypes    []string
	flagSearchGenres   []string
	flagSearchLimit    int
	flagSearchPick     bool
)

func init() {
	searchCmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the catalog and print matching series",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSearch,
	}

	searchCmd.Flags().StringVar(&flagSearchSort, "sort", "", "ordering: best-match, alphabet, popularity, subscribers, recently-added, latest-updates")
	searchCmd.Flags().StringVar(&flagSearchOrder, "order", "", "direction: asc or desc")
	searchCmd.Flags().StringVar(&flagSearchOfficial, "official", "", "official translation only: true or false")
	searchCmd.Flags().StringVar(&flagSearchAnime, "anime", "", "has anime adaptation: true or false")
	searchCmd.Flags().StringVar(&flagSearchAdult, "adult", "", "adult content: true or false")
	searchCmd.Flags().StringSliceVar(&flagSearchStatus, "status", nil, "publication status (repeatable): ongoing, complete, hiatus, canceled")
	searchCmd.Flags().StringSliceVar(&flagSearchTypes, "type", nil, "series type (repeatable): manga, manhwa, manhua, oel")
	searchCmd.Flags().StringSliceVar(&flagSearchGenres, "genre", nil, "genre tag (repeatable), e.g. action, sci-fi, slice-of-life")
	searchCmd.Flags().IntVar(&flagSearchLimit, "limit", 0, "print at most this many results")
	searchCmd.Flags().BoolVar(&flagSearchPick, "pick", false, "pick one result interactively and show its details")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := weeb.SearchQuery{}
	if len(args) > 0 {
		query.Text = args[0]
	}

	var err error
	if query.Sort, err = parseSort(flagSearchSort); err != nil {
		return err
	}
	if query.Order, err = parseOrder(flagSearchOrder); err != nil {
		return err
	}
	if query.Official, err = parseTri("official", flagSearchOfficial); err != nil {
		return err
	}
	if query.Anime, err = parseTri("anime", flagSearchAnime); err != nil {
		return err
	}
	if query.Adult, err = parseTri("adult", flagSearchAdult); err != nil {
		return err
	}
	for _, s := range flagSearchStatus {
		status, err := parseStatus(s)
		if err != nil {
			return err
		}
		query.Status = append(query.Status, status)
	}
	for _, t := range flagSearchTypes {
		seriesType, err := parseSeriesType(t)
		if err != nil {
			return err
		}
		query.Types = append(query.Types, seriesType)
	}
	for _, g := range flagSearchGenres {
		genre, err := parseGenre(g)
		if err != nil {
			return err
		}
		query.Genres = append(query.Genres, genre)
	}

	client, err := loadClient()
	if err != nil {
		return err
	}

	ctx := context.Background()
	results, err := client.Search(ctx, query)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}

	if flagSearchLimit > 0 && len(results) > flagSearchLimit {
		results = results[:flagSearchLimit]
	}

	if flagSearchPick {
		return pickAndDescribe(ctx, results)
	}

	for i, m := range results {
		fmt.Printf("%3d) %s\n     %s\n", i+1, m.Title, m.URL)
	}
	fmt.Printf("\n%d results.\n", len(results))

	return nil
}

func pickAndDescribe(ctx context.Context, results []*weeb.Manga) error {
	items := make([]string, len(results))
	for i, m := range results {
		items[i] = m.Title
	}

	prompt := promptui.Select{
		Label: "Select series",
		Items: items,
		Size:  10,
	}
	idx, _, err := prompt.Run()
	if err != nil {
		return fmt.Errorf("selection cancelled")
	}

	m := results[idx]
	if err := m.FetchDetails(ctx); err != nil {
		return err
	}

	fmt.Printf("\n%s\n%s\n\n", m.Title, m.URL)
	keys := make([]string, 0, len(m.Details))
	for k := range m.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%-16s %s\n", k, m.Details[k])
	}
	if m.Description != "" {
		fmt.Printf("\n%s\n", m.Description)
	}
	if len(m.Aliases) > 0 {
		fmt.Printf("\nAlso known as: %s\n", strings.Join(m.Aliases, "; "))
	}
	for _, rel := range m.RelatedSeries {
		fmt.Printf("Related: %s (%s)\n", rel.Title, rel.URL)
	}

	chapters, err := m.Chapters(ctx, false)
	if err != nil {
		return err
	}
	fmt.Printf("\n%d chapters available.\n", len(chapters))

	return nil
}

func parseSort(s string) (weeb.Sort, error) {
	switch strings.ToLower(s) {
	case "":
		return "", nil
	case "best-match":
		return weeb.SortBestMatch, nil
	case "alphabet":
		return weeb.SortAlphabet, nil
	case "popularity":
		return weeb.SortPopularity, nil
	case "subscribers":
		return weeb.SortSubscribers, nil
	case "recently-added":
		return weeb.SortRecentlyAdded, nil
	case "latest-updates":
		return weeb.SortLatestUpdates, nil
	}
	return "", fmt.Errorf("unknown sort %q", s)
}

func parseOrder(s string) (weeb.Order, error) {
	switch strings.ToLower(s) {
	case "":
		return "", nil
	case "asc", "ascending":
		return weeb.OrderAscending, nil
	case "desc", "descending":
		return weeb.OrderDescending, nil
	}
	return "", fmt.Errorf("unknown order %q", s)
}

func parseTri(name, s string) (weeb.Tri, error) {
	switch strings.ToLower(s) {
	case "":
		return "", nil
	case "any":
		return weeb.TriAny, nil
	case "true", "yes":
		return weeb.TriTrue, nil
	case "false", "no":
		return weeb.TriFalse, nil
	}
	return "", fmt.Errorf("--%s accepts true, false or any, got %q", name, s)
}

func parseStatus(s string) (weeb.Status, error) {
	switch strings.ToLower(s) {
	case "ongoing":
		return weeb.StatusOngoing, nil
	case "complete":
		return weeb.StatusComplete, nil
	case "hiatus":
		return weeb.StatusHiatus, nil
	case "canceled":
		return weeb.StatusCanceled, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

func parseSeriesType(s string) (weeb.SeriesType, error) {
	switch strings.ToLower(s) {
	case "manga":
		return weeb.TypeManga, nil
	case "manhwa":
		return weeb.TypeManhwa, nil
	case "manhua":
		return weeb.TypeManhua, nil
	case "oel":
		return weeb.TypeOEL, nil
	}
	return "", fmt.Errorf("unknown series type %q", s)
}

// parseGenre maps a lowercase slug like "slice-of-life" or "sci-fi" back
// to the site's display form.
func parseGenre(s string) (weeb.Genre, error) {
	words := strings.Split(strings.ToLower(s), "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	candidate := strings.Join(words, " ")

	for _, g := range allGenres {
		if strings.EqualFold(string(g), candidate) || strings.EqualFold(string(g), s) {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown genre %q", s)
}

var allGenres = []weeb.Genre{
	weeb.GenreAction, weeb.GenreAdult, weeb.GenreAdventure, weeb.GenreComedy,
	weeb.GenreDoujinshi, weeb.GenreDrama, weeb.GenreEcchi, weeb.GenreFantasy,
	weeb.GenreGenderBender, weeb.GenreHarem, weeb.GenreHentai, weeb.GenreHistorical,
	weeb.GenreHorror, weeb.GenreIsekai, weeb.GenreJosei, weeb.GenreLolicon,
	weeb.GenreMartialArts, weeb.GenreMature, weeb.GenreMecha, weeb.GenreMystery,
	weeb.GenrePsychological, weeb.GenreRomance, weeb.GenreSchoolLife, weeb.GenreSciFi,
	weeb.GenreSeinen, weeb.GenreShotacon, weeb.GenreShoujo, weeb.GenreShoujoAi,
	weeb.GenreShounen, weeb.GenreShounenAi, weeb.GenreSliceOfLife, weeb.GenreSmut,
	weeb.GenreSports, weeb.GenreSupernatural, weeb.GenreTragedy, weeb.GenreYaoi,
	weeb.GenreYuri, weeb.GenreOther,
}
