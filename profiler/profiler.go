// Package profiler builds a listener's profile end to end: token, Spotify
// snapshot, scores, narrative.
package profiler

import (
	"context"
	"errors"
	"fmt"

	"github.com/mager/moodscale/config"
	"github.com/mager/moodscale/insight"
	"github.com/mager/moodscale/listener"
	"github.com/mager/moodscale/moodscale"
	"github.com/mager/moodscale/musicbrainz"
	"github.com/mager/moodscale/personality"
	"github.com/mager/moodscale/spotify"
	"github.com/mager/moodscale/token"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// ErrUpstream wraps failures of the Spotify API.
var ErrUpstream = errors.New("upstream error")

// Connector returns a catalog client acting with the given token, and the
// token source it draws from. The source may be nil.
type Connector func(ctx context.Context, tok *oauth2.Token) (listener.Catalog, oauth2.TokenSource)

type Snapshotter interface {
	Fetch(ctx context.Context, c listener.Catalog) (*listener.Snapshot, error)
}

type Narrator interface {
	Generate(ctx context.Context, p personality.Profile, tracks []string) (string, error)
}

// ProgressFunc is told when each stage starts. It may be nil.
type ProgressFunc func(moodscale.Stage)

type Service struct {
	log      *zap.SugaredLogger
	tokens   token.Store
	connect  Connector
	fetcher  Snapshotter
	narrator Narrator
}

func New(log *zap.SugaredLogger, tokens token.Store, connect Connector, fetcher Snapshotter, narrator Narrator) *Service {
	return &Service{
		log:      log,
		tokens:   tokens,
		connect:  connect,
		fetcher:  fetcher,
		narrator: narrator,
	}
}

// Build profiles userID. A failed narrative is reported in the profile, not
// as an error.
func (s *Service) Build(ctx context.Context, userID string, withInsight bool, progress ProgressFunc) (*moodscale.Profile, error) {
	report := func(st moodscale.Stage) {
		if progress != nil {
			progress(st)
		}
	}

	tok, err := s.tokens.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	report(moodscale.StageFetching)
	catalog, ts := s.connect(ctx, tok)
	snap, err := s.fetcher.Fetch(ctx, catalog)
	if err == nil || errors.Is(err, listener.ErrNoListeningData) {
		s.saveRefreshed(ctx, userID, tok, ts)
	}
	if errors.Is(err, listener.ErrNoListeningData) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	report(moodscale.StageScoring)
	core := personality.Analyze(snap.Genres)

	profile := moodscale.FromPersonality(core)
	profile.DisplayName = snap.DisplayName
	profile.GenreSource = snap.GenreSource
	profile.Tracks = snap.Tracks

	s.log.Infow("scored listener",
		"user_id", userID,
		"mbti", core.MBTI.String(),
		"ocean_status", core.Ocean.Status.String(),
		"genres", len(core.Genres),
	)

	if withInsight {
		report(moodscale.StageInsight)
		text, err := s.narrator.Generate(ctx, core, snap.Tracks)
		switch {
		case errors.Is(err, insight.ErrInsufficientData):
			profile.InsightError = "Not enough genre data to write an insight."
		case err != nil:
			s.log.Errorw("insight generation failed", "user_id", userID, "error", err)
			profile.InsightError = "Could not generate an insight right now. Please try again."
		default:
			profile.Insight = text
		}
	}

	report(moodscale.StageDone)
	return &profile, nil
}

// saveRefreshed stores the token ts ended up with if it differs from the one
// read from the store. A failure only costs a refresh on the next request.
func (s *Service) saveRefreshed(ctx context.Context, userID string, old *oauth2.Token, ts oauth2.TokenSource) {
	if ts == nil {
		return
	}
	cur, err := ts.Token()
	if err != nil {
		s.log.Warnw("reading refreshed token failed", "user_id", userID, "error", err)
		return
	}
	if cur.AccessToken == old.AccessToken {
		return
	}
	if err := s.tokens.Put(ctx, userID, cur); err != nil {
		s.log.Errorw("storing refreshed token failed", "user_id", userID, "error", err)
		return
	}
	s.log.Infow("stored refreshed spotify token", "user_id", userID)
}

// ProvideService wires the Spotify, MusicBrainz and OpenAI collaborators.
func ProvideService(
	cfg config.Config,
	log *zap.SugaredLogger,
	tokens token.Store,
	spotifyClient *spotify.SpotifyClient,
	musicbrainzClient *musicbrainz.MusicbrainzClient,
	generator *insight.Generator,
) *Service {
	var fallback listener.GenreLookup
	if cfg.MusicbrainzFallback {
		fallback = musicbrainzClient
	}

	fetcher := listener.NewFetcher(log, listener.Options{
		TopArtists:   cfg.TopArtists,
		TopGenres:    cfg.TopGenres,
		RecentTracks: cfg.RecentTracks,
	}, fallback)

	connect := func(ctx context.Context, tok *oauth2.Token) (listener.Catalog, oauth2.TokenSource) {
		return spotifyClient.ForToken(ctx, tok)
	}

	return New(log, tokens, connect, fetcher, generator)
}

var Options = ProvideService
