// Package listener collects what the personality core needs from a
// listener's Spotify account: a ranked genre list and recent track titles.
package listener

import (
	"context"
	"errors"
	"fmt"

	"github.com/mager/moodscale/genre"
	"github.com/mager/moodscale/spotify"
	spot "github.com/zmb3/spotify/v2"
	"go.uber.org/zap"
)

// ErrNoListeningData means the account has neither top artists nor recent
// plays to work with.
var ErrNoListeningData = errors.New("no listening data")

// Catalog is the subset of the Spotify API the fetcher uses.
// *spot.Client satisfies it.
type Catalog interface {
	CurrentUser(ctx context.Context) (*spot.PrivateUser, error)
	CurrentUsersTopArtists(ctx context.Context, opts ...spot.RequestOption) (*spot.FullArtistPage, error)
	CurrentUsersTopTracks(ctx context.Context, opts ...spot.RequestOption) (*spot.FullTrackPage, error)
	PlayerRecentlyPlayedOpt(ctx context.Context, opt *spot.RecentlyPlayedOptions) ([]spot.RecentlyPlayedItem, error)
}

// GenreLookup finds genres for recordings by ISRC.
type GenreLookup interface {
	GenresByISRC(ctx context.Context, isrcs []string) (map[string][]string, error)
}

// Snapshot is one listener's data at one point in time.
type Snapshot struct {
	DisplayName string   `json:"display_name"`
	Genres      []string `json:"genres"`
	Tracks      []string `json:"tracks"`
	// GenreSource is "spotify", "musicbrainz", or "" when no genres were found.
	GenreSource string `json:"genre_source"`
}

// Options sizes the snapshot.
type Options struct {
	TopArtists   int
	TopGenres    int
	RecentTracks int
}

// DefaultOptions samples 20 artists, keeps 10 genres and 50 tracks.
func DefaultOptions() Options {
	return Options{TopArtists: 20, TopGenres: 10, RecentTracks: 50}
}

// Fetcher builds snapshots. Fallback may be nil.
type Fetcher struct {
	log      *zap.SugaredLogger
	opts     Options
	fallback GenreLookup
}

// maxPage is the largest limit Spotify accepts on the top items and recently
// played endpoints.
const maxPage = 50

func clampPage(n int) int {
	if n <= 0 || n > maxPage {
		return maxPage
	}
	return n
}

// NewFetcher clamps the artist and track limits to what Spotify accepts.
func NewFetcher(log *zap.SugaredLogger, opts Options, fallback GenreLookup) *Fetcher {
	opts.TopArtists = clampPage(opts.TopArtists)
	opts.RecentTracks = clampPage(opts.RecentTracks)
	return &Fetcher{log: log, opts: opts, fallback: fallback}
}

// Fetch reads the listener's profile, top artists and recent plays.
func (f *Fetcher) Fetch(ctx context.Context, c Catalog) (*Snapshot, error) {
	var snap Snapshot

	user, err := c.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching current user: %w", err)
	}
	snap.DisplayName = user.DisplayName
	if snap.DisplayName == "" {
		snap.DisplayName = "there"
	}

	artists, err := c.CurrentUsersTopArtists(ctx,
		spot.Limit(f.opts.TopArtists),
		spot.Timerange(spot.MediumTermRange),
	)
	if err != nil {
		return nil, fmt.Errorf("error fetching top artists: %w", err)
	}
	snap.Genres = genre.Rank(spotify.ArtistGenres(artists.Artists), f.opts.TopGenres)
	if len(snap.Genres) > 0 {
		snap.GenreSource = "spotify"
	}

	if len(snap.Genres) == 0 && f.fallback != nil {
		snap.Genres = f.fallbackGenres(ctx, c)
		if len(snap.Genres) > 0 {
			snap.GenreSource = "musicbrainz"
		}
	}

	played, err := c.PlayerRecentlyPlayedOpt(ctx, &spot.RecentlyPlayedOptions{
		Limit: spot.Numeric(f.opts.RecentTracks),
	})
	if err != nil {
		return nil, fmt.Errorf("error fetching recently played: %w", err)
	}
	snap.Tracks = make([]string, 0, len(played))
	for _, item := range played {
		snap.Tracks = append(snap.Tracks, spotify.FormatTrack(item.Track))
	}

	if len(artists.Artists) == 0 && len(snap.Tracks) == 0 {
		return nil, ErrNoListeningData
	}

	f.log.Infow("fetched listener snapshot",
		"genres", len(snap.Genres),
		"genre_source", snap.GenreSource,
		"tracks", len(snap.Tracks),
	)

	return &snap, nil
}

// fallbackGenres ranks MusicBrainz genres of the listener's top tracks.
// Failures are logged and yield no genres; the core handles that.
func (f *Fetcher) fallbackGenres(ctx context.Context, c Catalog) []string {
	tracks, err := c.CurrentUsersTopTracks(ctx,
		spot.Limit(f.opts.TopArtists),
		spot.Timerange(spot.MediumTermRange),
	)
	if err != nil {
		f.log.Warnw("top tracks for genre fallback failed", "error", err)
		return nil
	}

	isrcs := spotify.ISRCs(tracks.Tracks)
	if len(isrcs) == 0 {
		return nil
	}

	byISRC, err := f.fallback.GenresByISRC(ctx, isrcs)
	if err != nil {
		f.log.Warnw("musicbrainz genre fallback failed", "error", err, "isrcs", len(isrcs))
		return nil
	}

	lists := make([][]string, 0, len(byISRC))
	for _, isrc := range isrcs {
		if genres, ok := byISRC[isrc]; ok {
			lists = append(lists, genres)
		}
	}
	return genre.Rank(lists, f.opts.TopGenres)
}
