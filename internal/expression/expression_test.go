package expression

import (
	"strings"
	"testing"
)

func TestValidateDomain(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "plain domain", input: "example.com"},
		{name: "wildcard", input: "*.example.com"},
		{name: "encoded", input: "ex%20ample.com", wantErr: ""},
		{name: "empty", input: "", wantErr: msgEmpty},
		{name: "space", input: "bad url", wantErr: msgSpace},
		{name: "comma", input: "a.com,b.com", wantErr: msgComma},
		{name: "path", input: "https://example.com", wantErr: msgSlash},
		{name: "regexp", input: "/^.*\\.example\\.com$/"},
		{name: "broken regexp", input: "/ex(ample/", wantErr: msgBadRegexp},
		{name: "lone slash", input: "/", wantErr: msgSlash},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateDomain(tt.input)
			if tt.wantErr == "" {
				if got != "" {
					t.Fatalf("ValidateDomain(%q) = %q, want valid", tt.input, got)
				}
				return
			}
			if !strings.HasPrefix(got, tt.wantErr) {
				t.Fatalf("ValidateDomain(%q) = %q, want prefix %q", tt.input, got, tt.wantErr)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	if got := Decode("ex%2Ecom"); got != "ex.com" {
		t.Fatalf("Decode = %q", got)
	}
	if got := Decode("100%"); got != "100%" {
		t.Fatalf("malformed escape should pass through, got %q", got)
	}
}

func TestListTypeToggle(t *testing.T) {
	if ListGrey.Toggle() != ListWhite || ListWhite.Toggle() != ListGrey {
		t.Fatal("toggle should swap list types")
	}
	if ParseListType(" white ") != ListWhite {
		t.Fatal("expected white")
	}
	if ParseListType("bogus") != ListGrey {
		t.Fatal("unknown list type should fall back to grey")
	}
}

func TestOptionsSummary(t *testing.T) {
	if got := (Options{}).Summary(); got != "-" {
		t.Fatalf("empty summary = %q", got)
	}
	o := Options{
		CleanAllCookies: true,
		CookieNames:     []string{"sid"},
		CleanSiteData:   []SiteDataType{SiteDataCache, SiteDataLocalStorage},
	}
	want := "all cookies; keep sid; clean Cache, LocalStorage"
	if got := o.Summary(); got != want {
		t.Fatalf("summary = %q, want %q", got, want)
	}
}

func TestSimilar(t *testing.T) {
	list := []Expression{
		{ID: "1", Expression: "example.com"},
		{ID: "2", Expression: "exampel.com"},
		{ID: "3", Expression: "github.com"},
		{ID: "4", Expression: "EXAMPLE.org"},
	}
	got := Similar(list, "1", "example.org")
	if len(got) != 1 || got[0] != "EXAMPLE.org" {
		t.Fatalf("Similar exact = %v", got)
	}
	got = Similar(list, "", "exampl.com")
	if len(got) != 2 || got[0] != "example.com" || got[1] != "exampel.com" {
		t.Fatalf("Similar near = %v", got)
	}
	if got := Similar(list, "3", "github.com"); len(got) != 0 {
		t.Fatalf("self match should be skipped, got %v", got)
	}
	if got := Similar(list, "", "  "); got != nil {
		t.Fatalf("blank text should have no matches, got %v", got)
	}
}

func TestFind(t *testing.T) {
	list := []Expression{{ID: "a"}, {ID: "b", Expression: "b.com"}}
	e, ok := Find(list, "b")
	if !ok || e.Expression != "b.com" {
		t.Fatalf("Find = %+v, %v", e, ok)
	}
	if _, ok := Find(list, "z"); ok {
		t.Fatal("expected miss")
	}
}
