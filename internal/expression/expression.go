package expression

import (
	"net/url"
	"strings"
)

// ListType decides what happens to a matched site's data.
type ListType string

const (
	ListWhite ListType = "WHITE"
	ListGrey  ListType = "GREY"
)

// Toggle returns the other list type.
func (l ListType) Toggle() ListType {
	if l == ListGrey {
		return ListWhite
	}
	return ListGrey
}

// ParseListType accepts either list name in any case and falls back to grey.
func ParseListType(s string) ListType {
	if strings.EqualFold(strings.TrimSpace(s), string(ListWhite)) {
		return ListWhite
	}
	return ListGrey
}

// SiteDataType names a browsing-data bucket that can be cleaned alongside cookies.
type SiteDataType string

const (
	SiteDataCache          SiteDataType = "Cache"
	SiteDataIndexedDB      SiteDataType = "IndexedDB"
	SiteDataLocalStorage   SiteDataType = "LocalStorage"
	SiteDataPluginData     SiteDataType = "PluginData"
	SiteDataServiceWorkers SiteDataType = "ServiceWorkers"
)

// Options are the per-expression cleanup settings shown in the options column.
type Options struct {
	CleanAllCookies bool           `json:"clean_all_cookies,omitempty"`
	CleanSiteData   []SiteDataType `json:"clean_site_data,omitempty"`
	CookieNames     []string       `json:"cookie_names,omitempty"`
}

// Expression is one domain-matching rule.
type Expression struct {
	ID         string
	StoreID    string
	Expression string
	ListType   ListType
	Options    Options
}

// Decode returns the percent-decoded form of a stored expression for display.
// Malformed escapes are shown as stored.
func Decode(s string) string {
	out, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return out
}

// Find returns the expression with the given id.
func Find(list []Expression, id string) (Expression, bool) {
	for _, e := range list {
		if e.ID == id {
			return e, true
		}
	}
	return Expression{}, false
}

// Summary renders the options column text.
func (o Options) Summary() string {
	var parts []string
	if o.CleanAllCookies {
		parts = append(parts, "all cookies")
	}
	if len(o.CookieNames) > 0 {
		parts = append(parts, "keep "+strings.Join(o.CookieNames, ", "))
	}
	if len(o.CleanSiteData) > 0 {
		names := make([]string, 0, len(o.CleanSiteData))
		for _, d := range o.CleanSiteData {
			names = append(names, string(d))
		}
		parts = append(parts, "clean "+strings.Join(names, ", "))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "; ")
}
