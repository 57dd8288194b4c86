// Package views holds the HTML components of the comparison page.
//
// Components are written in page.templ and compiled with templ generate.
// Handlers render either the full page or a single fragment, such as an error
// alert, from the same components.
package views

//go:generate templ generate

import (
	"fmt"

	"github.com/JonMunkholm/PromptCompare/internal/core"
	"github.com/a-h/templ"
)

// PageData is everything the page needs for one render.
type PageData struct {
	Snapshot    core.Snapshot
	Alert       *core.UserMessage
	MaxUploadMB int64
}

const exampleRow = `"# Old prompt...","# New prompt..."`

func viewModeURL(mode core.ViewMode) templ.SafeURL {
	return templ.SafeURL("/view/" + string(mode))
}

func selectURL(idx int) templ.SafeURL {
	return templ.SafeURL(fmt.Sprintf("/select/%d", idx))
}

func panelBodyClass(mode core.ViewMode) string {
	if mode == core.ViewRendered {
		return "panel-body markdown-content"
	}
	return "panel-body raw-body"
}

// currentText returns one side of the selected record, or "" when nothing is
// selected.
func currentText(snap core.Snapshot, role core.Role) string {
	if snap.Current == nil {
		return ""
	}
	if role == core.RoleAfter {
		return snap.Current.After
	}
	return snap.Current.Before
}
