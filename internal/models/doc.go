// Package models defines the domain entities shared by every layer of the
// hei!local client.
//
// The package contains plain data transfer objects mirroring the backend's
// JSON wire format:
//   - [User] : the authenticated account returned by the auth endpoints
//   - [Location] : a restaurant entry in the feed, with engagement
//     counters, coordinates, and optional media references
//
// Location sequences are order-sensitive: the backend's ordering defines
// the feed scroll order and the feed/map index correspondence, so nothing
// in the client re-sorts them.
//
// [Location.Media] resolves which of the three media fields an entry
// plays, with YouTube embeds taking precedence over raw video and video
// over a still image.
package models
