package model

// Movie describes a film in the catalog document.  Titles are unique
// and compared case-insensitively when matched against free text.
// Showtimes keep the order in which they appear in the document.
//
// Fields:
//  ID          – catalog identifier.
//  Title       – display title and match key.
//  Genre       – free-form genre label (e.g. "Sci-Fi", "Romance/Drama").
//  Duration    – human readable running time ("2h 15m").
//  Rating      – content rating (PG, PG-13, R).
//  Description – one line synopsis.
//  Director    – optional director name.
//  Cast        – optional cast list.
//  Score       – optional review score out of ten.
//  Popularity  – optional popularity used for recommendations.
//  Showtimes   – ordered showtime labels ("6:30 PM").
type Movie struct {
    ID          int      `json:"id"`
    Title       string   `json:"title"`
    Genre       string   `json:"genre"`
    Duration    string   `json:"duration"`
    Rating      string   `json:"rating"`
    Description string   `json:"description"`
    Director    string   `json:"director,omitempty"`
    Cast        []string `json:"cast,omitempty"`
    Score       float64  `json:"imdb,omitempty"`
    Popularity  int      `json:"popularity,omitempty"`
    Showtimes   []string `json:"showtimes,omitempty"`
}

// Theater is a venue that screens catalog movies.
//
// Fields:
//  ID         – catalog identifier.
//  Name       – display name and match key.
//  Location   – area or mall the theater is in.
//  VIP        – whether premium seating is offered.
//  Popularity – optional popularity score.
type Theater struct {
    ID         int    `json:"id"`
    Name       string `json:"name"`
    Location   string `json:"location"`
    VIP        bool   `json:"vip,omitempty"`
    Popularity int    `json:"popularity,omitempty"`
}

// Catalog is the whole catalog document.  Showtimes is an optional flat
// list shared by every movie that does not carry its own.
type Catalog struct {
    Movies    []Movie   `json:"movies"`
    Theaters  []Theater `json:"theaters"`
    Showtimes []string  `json:"showtimes,omitempty"`
}

// MovieTitles returns the titles in catalog order.
func (c Catalog) MovieTitles() []string {
    out := make([]string, 0, len(c.Movies))
    for _, m := range c.Movies {
        out = append(out, m.Title)
    }
    return out
}

// TheaterNames returns the theater names in catalog order.
func (c Catalog) TheaterNames() []string {
    out := make([]string, 0, len(c.Theaters))
    for _, t := range c.Theaters {
        out = append(out, t.Name)
    }
    return out
}

// ShowtimesFor returns the showtimes of a movie, falling back to the
// shared list when the movie has none of its own.
func (c Catalog) ShowtimesFor(m Movie) []string {
    if len(m.Showtimes) > 0 {
        return m.Showtimes
    }
    return c.Showtimes
}
