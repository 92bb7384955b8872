// Package store loads and writes journals.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"tableflip.dev/jrnl/pkg/crypt"
	"tableflip.dev/jrnl/pkg/entry"
	"tableflip.dev/jrnl/pkg/timeutil"
)

var (
	// ErrEmptyJournal is returned by DeleteLast on a journal without entries.
	ErrEmptyJournal = errors.New("store: journal has no entries")
	// ErrDayOneEncryption is returned when encryption is requested for a
	// DayOne journal.
	ErrDayOneEncryption = errors.New("store: DayOne journals can not be encrypted")
	// ErrPasswordRequired is returned when an encrypted journal has no
	// password source.
	ErrPasswordRequired = errors.New("store: journal is encrypted and no password was given")
)

// DefaultTimeFormat is the header date layout of flat journals.
const DefaultTimeFormat = "2006-01-02 15:04"

// Journal is an ordered, date ascending sequence of entries backed by disk.
// The in-memory entries are the single source of truth until Write.
type Journal interface {
	Name() string
	Path() string
	Mode() crypt.Mode
	Entries() []*entry.Entry
	// NewEntry creates an entry from text, resolving date when non-empty,
	// and appends it.
	NewEntry(text, date string, starred bool) (*entry.Entry, error)
	// DeleteLast removes and returns the chronologically last entry.
	DeleteLast() (*entry.Entry, error)
	// EnableEncryption makes subsequent writes seal the journal with password.
	EnableEncryption(password string) error
	// DisableEncryption makes subsequent writes store plain text.
	DisableEncryption() error
	// Write persists every entry to path, or to Path() when path is empty.
	Write(ctx context.Context, path string) error
}

// PasswordFunc supplies the journal password when it is first needed.
type PasswordFunc func() (string, error)

// Options configure Load.
type Options struct {
	Name       string
	Path       string
	TagSymbols string
	// TimeFormat is a fixed width Go layout; DefaultTimeFormat when empty.
	TimeFormat string
	Encrypt    bool
	Password   PasswordFunc
	// Notify receives user facing messages such as journal creation.
	Notify   func(msg string)
	Resolver *timeutil.Resolver
	Now      func() time.Time
	// Location is used for header dates, time.Local when nil.
	Location *time.Location
	// KDF overrides crypt.DefaultParams when sealing.
	KDF *crypt.Params
}

func (o Options) timeFormat() string {
	if o.TimeFormat == "" {
		return DefaultTimeFormat
	}
	return o.TimeFormat
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) notify(format string, args ...any) {
	if o.Notify != nil {
		o.Notify(fmt.Sprintf(format, args...))
	}
}

// IsDayOne reports whether path names a DayOne journal bundle.
func IsDayOne(path string) bool {
	if !strings.HasSuffix(strings.TrimRight(path, "/"), ".dayone") {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Load opens the journal at o.Path. A missing flat journal is created empty.
func Load(ctx context.Context, o Options) (Journal, error) {
	if o.Path == "" {
		return nil, errors.New("store: journal path required")
	}
	if o.Encrypt && !crypt.Available {
		return nil, crypt.ErrUnavailable
	}
	if IsDayOne(o.Path) {
		if o.Encrypt {
			return nil, ErrDayOneEncryption
		}
		return loadDayOne(ctx, o)
	}
	return loadText(ctx, o)
}

// journal carries the state shared by every backing format.
type journal struct {
	opts     Options
	entries  []*entry.Entry
	mode     crypt.Mode
	password string
}

func (j *journal) Name() string            { return j.opts.Name }
func (j *journal) Path() string            { return j.opts.Path }
func (j *journal) Mode() crypt.Mode        { return j.mode }
func (j *journal) Entries() []*entry.Entry { return j.entries }

func (j *journal) NewEntry(text, date string, starred bool) (*entry.Entry, error) {
	e, err := entry.Create(text, entry.CreateOptions{
		Date:       date,
		Resolver:   j.opts.Resolver,
		Now:        j.opts.Now,
		TagSymbols: j.opts.TagSymbols,
	})
	if err != nil {
		return nil, err
	}
	e.Starred = starred
	n := len(j.entries)
	j.entries = append(j.entries, e)
	if n > 0 && e.Date.Before(j.entries[n-1].Date) {
		sortEntries(j.entries)
	}
	log.Debug().Str("journal", j.opts.Name).Time("date", e.Date).Msg("entry added")
	return e, nil
}

func (j *journal) DeleteLast() (*entry.Entry, error) {
	n := len(j.entries)
	if n == 0 {
		return nil, ErrEmptyJournal
	}
	last := j.entries[n-1]
	j.entries[n-1] = nil
	j.entries = j.entries[:n-1]
	return last, nil
}

func (j *journal) EnableEncryption(password string) error {
	if !crypt.Available {
		return crypt.ErrUnavailable
	}
	if password == "" {
		return crypt.ErrEmptyPassword
	}
	j.mode = crypt.Encrypted
	j.password = password
	return nil
}

func (j *journal) DisableEncryption() error {
	j.mode = crypt.Plaintext
	j.password = ""
	return nil
}

func (j *journal) kdf() crypt.Params {
	if j.opts.KDF != nil {
		return *j.opts.KDF
	}
	return crypt.DefaultParams
}

func sortEntries(entries []*entry.Entry) {
	sort.SliceStable(entries, func(i, k int) bool {
		return entries[i].Date.Before(entries[k].Date)
	})
}
