package musicbrainz

import (
	"context"
	"fmt"
	"time"

	"github.com/mager/musicbrainz-go/musicbrainz"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// maxLookups bounds the ISRCs resolved per call. Each costs two requests
// and MusicBrainz allows about one request per second.
const maxLookups = 10

// recordings is the part of the MusicBrainz API the client uses.
type recordings interface {
	SearchRecordingsByISRC(req musicbrainz.SearchRecordingsByISRCRequest) (musicbrainz.SearchRecordingsByISRCResponse, error)
	GetRecording(req musicbrainz.GetRecordingRequest) (musicbrainz.GetRecordingResponse, error)
}

type MusicbrainzClient struct {
	Client recordings

	limiter *rate.Limiter
}

func ProvideMusicbrainz(log *zap.SugaredLogger) *MusicbrainzClient {
	c := musicbrainz.NewMusicbrainzClient()
	c.Log = log

	return &MusicbrainzClient{
		Client:  c,
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// GenresByISRC returns the genre names MusicBrainz has for each ISRC, looking
// up at most maxLookups of them. ISRCs without a match are left out. Lookup
// failures are skipped; an error is returned only when nothing was found.
func (c *MusicbrainzClient) GenresByISRC(ctx context.Context, isrcs []string) (map[string][]string, error) {
	out := make(map[string][]string)
	if len(isrcs) > maxLookups {
		isrcs = isrcs[:maxLookups]
	}

	var lastErr error
	for _, isrc := range isrcs {
		genres, err := c.genres(ctx, isrc)
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		if err != nil {
			lastErr = err
			continue
		}
		if len(genres) > 0 {
			out[isrc] = genres
		}
	}

	if len(out) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return out, nil
}

func (c *MusicbrainzClient) genres(ctx context.Context, isrc string) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	found, err := c.Client.SearchRecordingsByISRC(musicbrainz.SearchRecordingsByISRCRequest{ISRC: isrc})
	if err != nil {
		return nil, fmt.Errorf("musicbrainz isrc search %s: %w", isrc, err)
	}
	if len(found.Recordings) == 0 {
		return nil, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	rec, err := c.Client.GetRecording(musicbrainz.GetRecordingRequest{
		ID:       found.Recordings[0].ID,
		Includes: musicbrainz.Includes{"genres"},
	})
	if err != nil {
		return nil, fmt.Errorf("musicbrainz recording %s: %w", found.Recordings[0].ID, err)
	}
	if rec.Genres == nil {
		return nil, nil
	}

	names := make([]string, 0, len(*rec.Genres))
	for _, g := range *rec.Genres {
		names = append(names, g.Name)
	}
	return names, nil
}

var Options = ProvideMusicbrainz
