package player

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dhowden/tag"
)

// TrackInfo holds tag metadata for an audio source.
type TrackInfo struct {
	Path        string
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Year        int
	Track       int
	Genre       string
	Duration    time.Duration
}

// ReadTrackInfo reads tag metadata from the file at path. The title falls
// back to the file name when the tags carry none.
func ReadTrackInfo(path string) (*TrackInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, err
	}

	title := m.Title()
	if title == "" {
		title = filepath.Base(path)
	}

	track, _ := m.Track()

	albumArtist := m.AlbumArtist()
	if albumArtist == "" {
		albumArtist = m.Artist()
	}

	return &TrackInfo{
		Path:        path,
		Title:       title,
		Artist:      m.Artist(),
		AlbumArtist: albumArtist,
		Album:       m.Album(),
		Year:        m.Year(),
		Track:       track,
		Genre:       m.Genre(),
	}, nil
}
