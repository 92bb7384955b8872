package tags

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	got := Extract("Went @running with @Jane @running", "@")
	want := []string{"@running", "@Jane"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractCaseSensitiveAndPunctuation(t *testing.T) {
	got := Extract("Met @jane, then @Jane.\nLater #work and @ alone", "@#")
	want := []string{"@jane", "@Jane", "#work"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractNoTags(t *testing.T) {
	if got := Extract("nothing to see here", "@"); len(got) != 0 {
		t.Fatalf("expected no tags, got %v", got)
	}
}

func TestReportSuppressesSingles(t *testing.T) {
	r := NewReport([][]string{
		{"@work", "@gym"},
		{"@work"},
		{"@work", "@work"},
	})
	if !r.Suppressed {
		t.Fatalf("expected suppression")
	}
	want := []Count{{Tag: "@work", Count: 3}}
	if !reflect.DeepEqual(r.Counts, want) {
		t.Fatalf("expected %v, got %v", want, r.Counts)
	}
	if r.Notice() != "[Removed tags that appear only once.]" {
		t.Fatalf("unexpected notice %q", r.Notice())
	}
}

func TestReportKeepsSinglesWhenAllSingle(t *testing.T) {
	r := NewReport([][]string{{"@a"}, {"@b"}})
	if r.Suppressed {
		t.Fatalf("did not expect suppression")
	}
	want := map[string]int{"@a": 1, "@b": 1}
	if !reflect.DeepEqual(r.Map(), want) {
		t.Fatalf("expected %v, got %v", want, r.Map())
	}
}

func TestReportEmpty(t *testing.T) {
	r := NewReport([][]string{nil, {}})
	if !r.Empty {
		t.Fatalf("expected empty report")
	}
	if r.Notice() != "[No tags found in journal.]" {
		t.Fatalf("unexpected notice %q", r.Notice())
	}
}

func TestReportOrder(t *testing.T) {
	r := NewReport([][]string{{"@b", "@a", "@c"}, {"@b", "@a"}, {"@b"}})
	want := []Count{{"@a", 2}, {"@b", 3}}
	if !reflect.DeepEqual(r.Counts, want) {
		t.Fatalf("expected %v, got %v", want, r.Counts)
	}
}
