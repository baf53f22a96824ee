package presenter

import (
	"clientreg/internal/flow"
	"clientreg/internal/types"
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTmpl = template.Must(template.New("page.html").ParseFS(templatesFS, "templates/*.html"))

// PageData feeds the page template.
type PageData struct {
	Screen  Screen
	Menu    []MenuItem
	Records []types.ClientRecord
	Notices []PostedNotice
	// Form and FormID echo what the user typed when a form is shown again after an error.
	Form   types.ClientFields
	FormID string
	Empty  string
}

// NewPageData builds the page for screen with the board's live notices.
func NewPageData(screen Screen, notices *Notices) PageData {
	d := PageData{Screen: screen, Menu: Menu, Empty: flow.MsgNoClients}
	if notices != nil {
		d.Notices = notices.Active()
	}
	return d
}

// WithResult fills the parts of the page that depend on a dispatcher result.
func (d PageData) WithResult(res flow.Result, form types.ClientFields, formID string) PageData {
	d.Records = res.Records
	if res.Status == flow.Listed && len(res.Records) == 0 {
		d.Empty = flow.MsgNoMatches
	}
	if res.Status == flow.NotFound {
		d.Form = form
		d.FormID = formID
	}
	return d
}

// RenderPage writes the full HTML page.
func RenderPage(w io.Writer, d PageData) error {
	return pageTmpl.Execute(w, d)
}

// Kind helpers for the template.
func (s Screen) IsRegister() bool   { return s.Kind == ScreenRegisterForm }
func (s Screen) IsList() bool       { return s.Kind == ScreenClientList }
func (s Screen) IsUpdate() bool     { return s.Kind == ScreenUpdateForm }
func (s Screen) IsDeactivate() bool { return s.Kind == ScreenDeactivateForm }
func (s Screen) IsInvalid() bool    { return s.Kind == ScreenInvalidOption }
