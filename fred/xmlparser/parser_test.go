package xmlparser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/derickschaefer/fredkit/fred"
	"github.com/derickschaefer/fredkit/fred/fredtest"
	"github.com/derickschaefer/fredkit/fred/xmlparser"
)

func parse(t *testing.T, doc string) (fred.Response, error) {
	t.Helper()
	var resp fred.Response
	err := xmlparser.New().Parse(strings.NewReader(doc), &resp)
	return resp, err
}

// ─── Documents ────────────────────────────────────────────────────────────────

func TestParseSeries(t *testing.T) {
	resp, err := parse(t, fredtest.SeriesXML)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Result.Name != "seriess" {
		t.Errorf("root = %q, want seriess", resp.Result.Name)
	}
	if resp.Result.Attribute("realtime_start") != "2013-08-14" {
		t.Errorf("root attributes = %v", resp.Result.Attributes)
	}
	if len(resp.Entities) != 1 {
		t.Fatalf("got %d entities, want 1", len(resp.Entities))
	}
	s := resp.Entities[0]
	if s.Name != "series" || s.Attribute("id") != "DEXUSEU" || s.Attribute("frequency_short") != "D" {
		t.Errorf("entity = %v", s)
	}
}

func TestParseKeepsDocumentOrder(t *testing.T) {
	resp, err := parse(t, fredtest.ObservationsXML)
	if err != nil {
		t.Fatal(err)
	}
	var dates []string
	for _, e := range resp.Entities {
		dates = append(dates, e.Attribute("date"))
	}
	want := []string{"1929-01-01", "1930-01-01", "1931-01-01"}
	if diff := cmp.Diff(want, dates); diff != "" {
		t.Errorf("dates mismatch (-want +got):\n%s", diff)
	}
	if v := resp.Entities[2].Attribute("value"); v != "." {
		t.Errorf("missing value marker = %q, want .", v)
	}
}

func TestParseDecodesEntities(t *testing.T) {
	resp, err := parse(t, fredtest.CategoryChildrenXML)
	if err != nil {
		t.Fatal(err)
	}
	if got := resp.Entities[0].Attribute("name"); got != "Money, Banking, & Finance" {
		t.Errorf("name = %q", got)
	}
}

func TestParseErrorDocument(t *testing.T) {
	resp, err := parse(t, fredtest.ErrorXML)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Result.Name != "error" || resp.Result.Attribute("code") != "400" {
		t.Errorf("result = %v", resp.Result)
	}
	if len(resp.Entities) != 0 {
		t.Errorf("error document has entities: %v", resp.Entities)
	}
}

func TestParseElementValues(t *testing.T) {
	doc := `<vintage_dates count="2">
  <vintage_date>2013-07-31</vintage_date>
  <vintage_date><![CDATA[2013-08-14]]></vintage_date>
  <note>
    <!-- comment -->
    text
  </note>
  <empty/>
</vintage_dates>`
	resp, err := parse(t, doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Entities) != 4 {
		t.Fatalf("got %d entities, want 4", len(resp.Entities))
	}
	if resp.Entities[0].Value != "2013-07-31" {
		t.Errorf("text value = %q", resp.Entities[0].Value)
	}
	if resp.Entities[1].Value != "2013-08-14" {
		t.Errorf("cdata value = %q", resp.Entities[1].Value)
	}
	if strings.TrimSpace(resp.Entities[2].Value) != "text" {
		t.Errorf("value after comment = %q", resp.Entities[2].Value)
	}
	if resp.Entities[3].Value != "" || resp.Entities[3].Attributes != nil {
		t.Errorf("empty element = %v", resp.Entities[3])
	}
	if resp.Result.Value != "" {
		t.Errorf("root value should ignore whitespace, got %q", resp.Result.Value)
	}
}

// ─── Failures ─────────────────────────────────────────────────────────────────

func TestParseFailureLeavesResponse(t *testing.T) {
	for name, doc := range map[string]string{
		"truncated":  "<seriess><series",
		"mismatched": "<seriess><series></seriess>",
	} {
		t.Run(name, func(t *testing.T) {
			resp := fred.Response{Result: fred.Entity{Name: "keep"}}
			err := xmlparser.New().Parse(strings.NewReader(doc), &resp)
			if err == nil {
				t.Fatal("expected a parse error")
			}
			if resp.Result.Name != "keep" {
				t.Error("response modified on failure")
			}
		})
	}
}

func TestParseNoRoot(t *testing.T) {
	for _, doc := range []string{"", "   ", `<?xml version="1.0"?>`, "<?xml version=\"1.0\"?>\n<!-- none -->\n"} {
		_, err := parse(t, doc)
		if !errors.Is(err, xmlparser.ErrNoRoot) {
			t.Errorf("Parse(%q) err = %v, want ErrNoRoot", doc, err)
		}
	}
}
