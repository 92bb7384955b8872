package entry

import (
	"encoding/json"
	"fmt"
	"time"
)

func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

type Timestamp struct {
	time.Time
}

func (t Timestamp) SameDay(then time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := then.In(t.Location()).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if timestamp == "" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	t.Time, err = ParseTime(timestamp)
	return err
}

func (t Timestamp) String() string {
	return t.Format(time.RFC3339)
}

// Export is the transport projection of an entry used by the JSON exporter
// and the MCP server.
type Export struct {
	ID      string    `json:"id,omitempty"`
	Date    Timestamp `json:"date"`
	Title   string    `json:"title"`
	Body    string    `json:"body"`
	Tags    []string  `json:"tags"`
	Starred bool      `json:"starred"`
}

// Export projects the entry for serialization.
func (e *Entry) Export() Export {
	t := e.Tags()
	if t == nil {
		t = []string{}
	}
	return Export{
		ID:      e.ID,
		Date:    Timestamp{Time: e.Date},
		Title:   e.Title,
		Body:    e.Body,
		Tags:    t,
		Starred: e.Starred,
	}
}
