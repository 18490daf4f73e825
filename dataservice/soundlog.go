package dataservice

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"
)

// soundLog captures uploaded audio to disk. Write never fails so a broken log
// cannot abort an upload; the first write error is kept and reported once.
type soundLog struct {
	file *renameio.PendingFile
	path string
	err  error
	log  zerolog.Logger
}

// openSoundLog prepares a pending file in the sound log directory. It returns
// nil if the file cannot be created.
func (s *Service) openSoundLog() *soundLog {
	dir := s.config.SoundLogDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		s.log.Warn().Err(err).Str("dir", dir).Msg("can't create sound log directory")
		return nil
	}

	name := "voice-" + s.context.SessionID() + "-" + time.Now().UTC().Format("20060102T150405.000000000") + ".wav"
	path := filepath.Join(dir, name)

	f, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o600))
	if err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("can't open sound log")
		return nil
	}
	return &soundLog{file: f, path: path, log: s.log}
}

func (l *soundLog) Write(p []byte) (int, error) {
	if l.err == nil {
		_, l.err = l.file.Write(p)
	}
	return len(p), nil
}

// finish publishes the captured audio when the upload was written completely
// and discards it otherwise. It is safe to call on a nil log.
func (l *soundLog) finish(complete bool) {
	if l == nil {
		return
	}
	if !complete || l.err != nil {
		if l.err != nil {
			l.log.Warn().Err(l.err).Str("path", l.path).Msg("sound log write failed")
		}
		_ = l.file.Cleanup()
		return
	}
	if err := l.file.CloseAtomicallyReplace(); err != nil {
		l.log.Warn().Err(err).Str("path", l.path).Msg("can't save sound log")
		_ = l.file.Cleanup()
		return
	}
	l.log.Debug().Str("path", l.path).Msg("sound log written")
}
