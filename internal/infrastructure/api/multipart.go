package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
)

type formPart struct {
	name        string
	value       string
	fileName    string
	contentType string
	content     []byte
	isFile      bool
}

// Form cuerpo multipart cuyas partes se emiten en el orden en que se agregan.
// El backend empareja documentos y tipos por posición, así que el orden importa.
type Form struct {
	parts []formPart
}

// NewForm crea un formulario vacío.
func NewForm() *Form { return &Form{} }

// Field agrega un campo de texto.
func (f *Form) Field(name, value string) *Form {
	f.parts = append(f.parts, formPart{name: name, value: value})
	return f
}

// File agrega un archivo. Sin contentType se usa application/octet-stream.
func (f *Form) File(name, fileName, contentType string, content []byte) *Form {
	f.parts = append(f.parts, formPart{
		name: name, fileName: fileName, contentType: contentType, content: content, isFile: true,
	})
	return f
}

// encode devuelve el cuerpo y el Content-Type con el boundary generado.
func (f *Form) encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range f.parts {
		if !p.isFile {
			if err := w.WriteField(p.name, p.value); err != nil {
				return nil, "", err
			}
			continue
		}
		ct := p.contentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(p.name), escapeQuotes(p.fileName)))
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(p.content); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }
