package notification

import (
	"bytes"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var _ ports.NotificationRenderer = (*TemplateRenderer)(nil)

// TemplateRenderer renders notifications from the embedded templates.
// Every kind has a subject, a text body and an HTML body.
type TemplateRenderer struct {
	storeName string
	subjects  *texttemplate.Template
	texts     *texttemplate.Template
	htmls     *htmltemplate.Template
}

// renderData is what every template sees.
type renderData struct {
	StoreName    string
	Snapshot     order.Snapshot
	Lines        []order.LineSnapshot
	BrandName    string
	TargetStatus string
}

// NewTemplateRenderer parses the templates. storeName appears in subjects and footers.
func NewTemplateRenderer(storeName string) (*TemplateRenderer, error) {
	funcs := map[string]any{
		"money": formatMoney,
		"title": titleCase,
	}

	subjects, err := texttemplate.New("subjects").Funcs(funcs).Parse(subjectTemplates)
	if err != nil {
		return nil, errors.Wrap(err, "parse subject templates")
	}
	texts, err := texttemplate.New("texts").Funcs(funcs).Parse(textTemplates)
	if err != nil {
		return nil, errors.Wrap(err, "parse text templates")
	}
	htmls, err := htmltemplate.New("htmls").Funcs(funcs).Parse(htmlTemplates)
	if err != nil {
		return nil, errors.Wrap(err, "parse html templates")
	}

	return &TemplateRenderer{
		storeName: storeName,
		subjects:  subjects,
		texts:     texts,
		htmls:     htmls,
	}, nil
}

// Render builds the message for n. Brand notifications only list the brand's lines.
func (r *TemplateRenderer) Render(n ports.Notification) (ports.Message, error) {
	if n.To == "" {
		return ports.Message{}, errors.New("notification has no recipient")
	}

	name := string(n.Kind)
	if r.subjects.Lookup(name) == nil {
		return ports.Message{}, errors.Errorf("unknown notification kind %q", n.Kind)
	}

	data := renderData{
		StoreName:    r.storeName,
		Snapshot:     n.Snapshot,
		Lines:        n.Snapshot.Lines,
		BrandName:    n.BrandName,
		TargetStatus: n.TargetStatus,
	}
	if n.Kind == ports.BrandOrderPlaced {
		data.Lines = n.Snapshot.LinesOf(n.BrandID)
	}

	var subject, text, html bytes.Buffer
	if err := r.subjects.ExecuteTemplate(&subject, name, data); err != nil {
		return ports.Message{}, errors.Wrapf(err, "render %s subject", name)
	}
	if err := r.texts.ExecuteTemplate(&text, name, data); err != nil {
		return ports.Message{}, errors.Wrapf(err, "render %s text", name)
	}
	if err := r.htmls.ExecuteTemplate(&html, name, data); err != nil {
		return ports.Message{}, errors.Wrapf(err, "render %s html", name)
	}

	return ports.Message{
		To:      []string{n.To},
		Subject: strings.TrimSpace(subject.String()),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
