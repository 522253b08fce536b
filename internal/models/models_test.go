package models

import (
	"testing"
)

func TestLocation(t *testing.T) {
	t.Run("Media", func(t *testing.T) {
		t.Run("YouTube Wins Over Video And Image", func(t *testing.T) {
			loc := Location{YouTubeVideoID: "abc123", VideoURL: "v.mp4", ImageURL: "i.jpg"}

			kind, src := loc.Media()
			if kind != MediaYouTube || src != "abc123" {
				t.Errorf("expected youtube media, got %s %q", kind, src)
			}
		})

		t.Run("Video Wins Over Image", func(t *testing.T) {
			loc := Location{VideoURL: "v.mp4", ImageURL: "i.jpg"}

			kind, src := loc.Media()
			if kind != MediaVideo || src != "v.mp4" {
				t.Errorf("expected video media, got %s %q", kind, src)
			}
		})

		t.Run("Image Alone", func(t *testing.T) {
			loc := Location{ImageURL: "i.jpg"}

			kind, src := loc.Media()
			if kind != MediaImage || src != "i.jpg" {
				t.Errorf("expected image media, got %s %q", kind, src)
			}
		})

		t.Run("No Media", func(t *testing.T) {
			kind, src := Location{}.Media()
			if kind != MediaNone || src != "" {
				t.Errorf("expected no media, got %s %q", kind, src)
			}
		})
	})

	t.Run("Validate", func(t *testing.T) {
		valid := Location{ID: "1", Name: "Oodi", Rating: 4.6}

		t.Run("Valid Location", func(t *testing.T) {
			if err := valid.Validate(); err != nil {
				t.Errorf("expected valid location, got %v", err)
			}
		})

		t.Run("Missing Id", func(t *testing.T) {
			loc := valid
			loc.ID = ""
			if err := loc.Validate(); err == nil {
				t.Error("expected error for missing id")
			}
		})

		t.Run("Missing Name", func(t *testing.T) {
			loc := valid
			loc.Name = ""
			if err := loc.Validate(); err == nil {
				t.Error("expected error for missing name")
			}
		})

		t.Run("Rating Out Of Range", func(t *testing.T) {
			loc := valid
			loc.Rating = 5.5
			if err := loc.Validate(); err == nil {
				t.Error("expected error for rating above 5")
			}
		})

		t.Run("Negative Counter", func(t *testing.T) {
			loc := valid
			loc.Likes = -1
			if err := loc.Validate(); err == nil {
				t.Error("expected error for negative likes")
			}
		})
	})
}

func TestMediaKindString(t *testing.T) {
	cases := map[MediaKind]string{
		MediaNone:    "none",
		MediaYouTube: "youtube",
		MediaVideo:   "video",
		MediaImage:   "image",
	}

	for kind, want := range cases {
		if kind.String() != want {
			t.Errorf("expected %q, got %q", want, kind.String())
		}
	}
}
