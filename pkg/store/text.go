package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"tableflip.dev/jrnl/pkg/crypt"
)

// textJournal is a single flat file, optionally sealed by crypt.
type textJournal struct {
	journal
}

func loadText(ctx context.Context, o Options) (Journal, error) {
	j := &textJournal{journal: journal{opts: o}}

	data, err := touchAndRead(o)
	if err != nil {
		return nil, err
	}

	if o.Encrypt {
		j.mode = crypt.Encrypted
		if o.Password == nil {
			return nil, ErrPasswordRequired
		}
		if j.password, err = o.Password(); err != nil {
			return nil, err
		}
		if len(data) > 0 {
			if data, err = crypt.Decrypt(data, j.password); err != nil {
				return nil, err
			}
		}
	} else if crypt.IsSealed(data) && len(data) > 4 && data[4] == crypt.Version {
		return nil, fmt.Errorf("store: %s is encrypted but encryption is disabled in the configuration", o.Path)
	}

	j.entries = Parse(data, ParseOptions{
		TimeFormat: o.timeFormat(),
		TagSymbols: o.TagSymbols,
		Location:   o.location(),
		Now:        o.now,
	})
	log.Debug().Str("journal", o.Name).Str("path", o.Path).Int("entries", len(j.entries)).Str("mode", j.mode.String()).Msg("journal loaded")
	return j, nil
}

func touchAndRead(o Options) ([]byte, error) {
	data, err := os.ReadFile(o.Path)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("store: read journal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(o.Path), 0o755); err != nil {
		return nil, fmt.Errorf("store: create journal directory: %w", err)
	}
	f, err := os.OpenFile(o.Path, os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("store: create journal: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	o.notify("[Journal created at %s]", o.Path)
	return nil, nil
}

func (j *textJournal) Write(ctx context.Context, path string) error {
	if path == "" {
		path = j.opts.Path
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data := Serialize(j.entries, j.opts.timeFormat())
	if j.mode == crypt.Encrypted {
		var err error
		if data, err = crypt.EncryptWithParams(data, j.password, j.kdf()); err != nil {
			return err
		}
	}
	if err := writeFileAtomic(path, data, 0o600); err != nil {
		return err
	}
	log.Debug().Str("path", path).Int("entries", len(j.entries)).Str("mode", j.mode.String()).Msg("journal written")
	return nil
}
