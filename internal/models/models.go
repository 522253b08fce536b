package models

import "fmt"

// MediaKind identifies which media field a [Location] carries.
type MediaKind int

const (
	MediaNone MediaKind = iota
	MediaYouTube
	MediaVideo
	MediaImage
)

func (k MediaKind) String() string {
	switch k {
	case MediaYouTube:
		return "youtube"
	case MediaVideo:
		return "video"
	case MediaImage:
		return "image"
	default:
		return "none"
	}
}

// User represents the authenticated hei!local user.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// Location represents a restaurant entry in the feed. The sequence order
// returned by the backend is significant: it defines feed scroll order and
// the index correspondence with the map.
type Location struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	PriceRange     string  `json:"priceRange"`
	Rating         float64 `json:"rating"`
	ReviewCount    int     `json:"reviewCount"`
	OpeningTime    string  `json:"openingTime"`
	Likes          int     `json:"likes"`
	Comments       int     `json:"comments"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	VideoURL       string  `json:"videoUrl,omitempty"`
	ImageURL       string  `json:"imageUrl,omitempty"`
	YouTubeVideoID string  `json:"youtubeVideoId,omitempty"`
	Description    string  `json:"description,omitempty"`
}

// Media returns the kind of media this location plays and its reference.
// YouTube embeds take precedence over raw video, video over a still image.
func (l Location) Media() (MediaKind, string) {
	switch {
	case l.YouTubeVideoID != "":
		return MediaYouTube, l.YouTubeVideoID
	case l.VideoURL != "":
		return MediaVideo, l.VideoURL
	case l.ImageURL != "":
		return MediaImage, l.ImageURL
	default:
		return MediaNone, ""
	}
}

// Validate checks the invariants the feed relies on.
func (l Location) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("location id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("location name is required")
	}
	if l.Rating < 0 || l.Rating > 5 {
		return fmt.Errorf("rating %.2f out of range [0, 5]", l.Rating)
	}
	if l.ReviewCount < 0 {
		return fmt.Errorf("review count must be non-negative")
	}
	if l.Likes < 0 {
		return fmt.Errorf("likes must be non-negative")
	}
	if l.Comments < 0 {
		return fmt.Errorf("comments must be non-negative")
	}
	return nil
}
