package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"
	"github.com/rs/zerolog/log"
	"howett.net/plist"

	"tableflip.dev/jrnl/pkg/entry"
)

const (
	dayOneEntriesDir = "entries"
	dayOneExt        = ".doentry"
)

// doEntry is the plist document DayOne keeps per entry.
type doEntry struct {
	CreationDate time.Time `plist:"Creation Date"`
	EntryText    string    `plist:"Entry Text"`
	Starred      bool      `plist:"Starred"`
	UUID         string    `plist:"UUID"`
	Tags         []string  `plist:"Tags,omitempty"`
	TimeZone     string    `plist:"Time Zone,omitempty"`
}

// dayOneJournal keeps one plist file per entry under <bundle>/entries.
type dayOneJournal struct {
	journal
	onDisk map[string]struct{}
}

func newDiskv(base string) *diskv.Diskv {
	return diskv.New(diskv.Options{
		BasePath:          base,
		AdvancedTransform: dayOneKeyToPath,
		InverseTransform:  dayOnePathToKey,
		TempDir:           base,
		FilePerm:          0o644,
		PathPerm:          0o755,
	})
}

func dayOneKeyToPath(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{dayOneEntriesDir},
		FileName: key + dayOneExt,
	}
}

// dayOnePathToKey returns "" for anything that is not an entry file.
func dayOnePathToKey(pk *diskv.PathKey) string {
	if len(pk.Path) != 1 || pk.Path[0] != dayOneEntriesDir || !strings.HasSuffix(pk.FileName, dayOneExt) {
		return ""
	}
	return strings.TrimSuffix(pk.FileName, dayOneExt)
}

func loadDayOne(ctx context.Context, o Options) (Journal, error) {
	d := newDiskv(o.Path)
	j := &dayOneJournal{
		journal: journal{opts: o},
		onDisk:  make(map[string]struct{}),
	}

	for key := range d.Keys(ctx.Done()) {
		if key == "" {
			continue
		}
		raw, err := d.Read(key)
		if err != nil {
			log.Warn().Err(err).Str("entry", key).Msg("skipping unreadable DayOne entry")
			continue
		}
		var doc doEntry
		if _, err := plist.Unmarshal(raw, &doc); err != nil {
			log.Warn().Err(err).Str("entry", key).Msg("skipping malformed DayOne entry")
			continue
		}
		date := doc.CreationDate
		if loc, err := time.LoadLocation(doc.TimeZone); doc.TimeZone != "" && err == nil {
			date = date.In(loc)
		} else {
			date = date.In(o.location())
		}
		title, body := entry.Split(doc.EntryText)
		e := entry.New(date, title, body, o.TagSymbols)
		e.Starred = doc.Starred
		e.ID = key
		j.entries = append(j.entries, e)
		j.onDisk[key] = struct{}{}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sortEntries(j.entries)
	log.Debug().Str("journal", o.Name).Str("path", o.Path).Int("entries", len(j.entries)).Msg("DayOne journal loaded")
	return j, nil
}

func (j *dayOneJournal) NewEntry(text, date string, starred bool) (*entry.Entry, error) {
	e, err := j.journal.NewEntry(text, date, starred)
	if err != nil {
		return nil, err
	}
	e.ID = newDayOneID()
	return e, nil
}

func (j *dayOneJournal) EnableEncryption(string) error {
	return ErrDayOneEncryption
}

// Write stores every entry file and erases the files of removed entries. Each
// file is replaced atomically.
func (j *dayOneJournal) Write(ctx context.Context, path string) error {
	inPlace := path == "" || path == j.opts.Path
	if path == "" {
		path = j.opts.Path
	}
	d := newDiskv(path)

	keep := make(map[string]struct{}, len(j.entries))
	for _, e := range j.entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.ID == "" {
			e.ID = newDayOneID()
		}
		data, err := marshalDayOne(e)
		if err != nil {
			return fmt.Errorf("store: encode entry %s: %w", e.ID, err)
		}
		if err := d.Write(e.ID, data); err != nil {
			return fmt.Errorf("store: write entry %s: %w", e.ID, err)
		}
		keep[e.ID] = struct{}{}
	}

	if inPlace {
		for id := range j.onDisk {
			if _, ok := keep[id]; ok {
				continue
			}
			if err := d.Erase(id); err != nil {
				return fmt.Errorf("store: remove entry %s: %w", id, err)
			}
		}
		j.onDisk = keep
	}
	log.Debug().Str("path", path).Int("entries", len(j.entries)).Msg("DayOne journal written")
	return nil
}

func marshalDayOne(e *entry.Entry) ([]byte, error) {
	doc := doEntry{
		CreationDate: e.Date.UTC(),
		EntryText:    e.Text(),
		Starred:      e.Starred,
		UUID:         e.ID,
		TimeZone:     e.Date.Location().String(),
	}
	symbols := e.TagSymbols()
	for _, tag := range e.Tags() {
		doc.Tags = append(doc.Tags, strings.TrimLeft(tag, symbols))
	}
	if doc.TimeZone == "Local" {
		doc.TimeZone = ""
	}
	return plist.MarshalIndent(doc, plist.XMLFormat, "\t")
}

// newDayOneID matches DayOne's upper case, dash free UUIDs.
func newDayOneID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}
