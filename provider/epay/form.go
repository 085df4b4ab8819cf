package epay

import (
	"bytes"
	"html/template"
	"io"
)

// Gateway form field names.
const (
	FieldURL       = "URL"
	FieldPage      = "PAGE"
	FieldLang      = "LANG"
	FieldEncoded   = "ENCODED"
	FieldChecksum  = "CHECKSUM"
	FieldURLOK     = "URL_OK"
	FieldURLCancel = "URL_CANCEL"
)

var formFieldOrder = []string{FieldPage, FieldLang, FieldEncoded, FieldChecksum, FieldURLOK, FieldURLCancel}

type hiddenField struct {
	Name  string
	Value string
}

var hiddenFieldsTemplate = template.Must(template.New("epay-fields").Parse(
	`{{range .}}<input type="hidden" name="{{.Name}}" value="{{.Value}}">
{{end}}`))

// RenderPaymentFields writes the hidden inputs for fields in gateway order.
// Keys outside the form set (such as URL) are ignored. Values are HTML escaped.
func RenderPaymentFields(w io.Writer, fields map[string]string) error {
	hidden := make([]hiddenField, 0, len(formFieldOrder))
	for _, name := range formFieldOrder {
		if value, ok := fields[name]; ok {
			hidden = append(hidden, hiddenField{Name: name, Value: value})
		}
	}
	return hiddenFieldsTemplate.Execute(w, hidden)
}

// PaymentFieldsHTML renders PaymentFields as hidden inputs, ready to be
// placed inside a form posting to TargetURL.
func (s *Session) PaymentFieldsHTML(urlOK, urlCancel string) (template.HTML, error) {
	fields, err := s.PaymentFields(urlOK, urlCancel)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := RenderPaymentFields(&buf, fields); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
