package lastfm

// Tag is a Last.fm tag with its popularity count.
type Tag struct {
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"` // absent in artist.getTopTags
}

// Source tells which lookup produced a set of tags.
type Source string

const (
	SourceTrack  Source = "track"
	SourceArtist Source = "artist"
	SourceNone   Source = "none"
)

// topTagsResponse is the JSON response for both track.getTopTags and
// artist.getTopTags.
type topTagsResponse struct {
	TopTags struct {
		Tag []Tag `json:"tag"`
	} `json:"toptags"`
}

// apiError represents a Last.fm API error response.
type apiError struct {
	Error   int    `json:"error"`
	Message string `json:"message"`
}
