package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ProviderProfileIn datos de empresa que acompañan la solicitud de proveedor (parte "perfil_in").
type ProviderProfileIn struct {
	CompanyName string `json:"nombre_empresa"`
	LegalName   string `json:"razon_social,omitempty"`
	TaxID       string `json:"ruc"`
	Description string `json:"descripcion,omitempty"`
	Phone       string `json:"telefono,omitempty"`
	Address     string `json:"direccion,omitempty"`
	City        string `json:"ciudad,omitempty"`
	Website     string `json:"sitio_web,omitempty"`
}

// DocumentFile documento a subir con su nombre de tipo del backend ("RUC", "Cédula de Identidad"...).
type DocumentFile struct {
	TypeName    string
	FileName    string
	ContentType string
	Content     []byte
}

// ProviderApplicationPayload cuerpo de /providers/apply y /providers/resubmit-documents.
type ProviderApplicationPayload struct {
	Profile   ProviderProfileIn
	Documents []DocumentFile
	Comment   string
}

// VerificationDocument documento tal como lo reporta el backend.
type VerificationDocument struct {
	TypeName string `json:"tipo_documento"`
	FileName string `json:"nombre_archivo"`
	URL      string `json:"url_archivo"`
}

// VerificationStatus respuesta de /providers/verification-status.
type VerificationStatus struct {
	Status          string                 `json:"estado"`
	SubmittedAt     string                 `json:"fecha_solicitud"`
	ReviewedAt      string                 `json:"fecha_revision"`
	AdminComment    string                 `json:"comentario_admin"`
	RejectionReason string                 `json:"motivo_rechazo"`
	Documents       []VerificationDocument `json:"documentos"`
}

// ApplicationReceipt respuesta al enviar o reenviar la solicitud.
type ApplicationReceipt struct {
	ID          FlexID `json:"id_solicitud"`
	Status      string `json:"estado"`
	SubmittedAt string `json:"fecha_solicitud"`
	Message     string `json:"message"`
}

// GetVerificationStatus GET /providers/verification-status.
func (c *Client) GetVerificationStatus(ctx context.Context) (*VerificationStatus, error) {
	var out VerificationStatus
	err := c.call(ctx, Request{Method: http.MethodGet, Path: "/providers/verification-status"}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitProviderApplication POST /providers/apply (multipart).
func (c *Client) SubmitProviderApplication(ctx context.Context, p ProviderApplicationPayload) (*ApplicationReceipt, error) {
	return c.sendApplication(ctx, "/providers/apply", p)
}

// ResubmitDocuments POST /providers/resubmit-documents (multipart).
func (c *Client) ResubmitDocuments(ctx context.Context, p ProviderApplicationPayload) (*ApplicationReceipt, error) {
	return c.sendApplication(ctx, "/providers/resubmit-documents", p)
}

func (c *Client) sendApplication(ctx context.Context, path string, p ProviderApplicationPayload) (*ApplicationReceipt, error) {
	form, err := applicationForm(p)
	if err != nil {
		return nil, err
	}
	var out ApplicationReceipt
	if err := c.call(ctx, Request{Method: http.MethodPost, Path: path, Form: form}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// applicationForm arma el multipart: perfil_in, luego cada documento seguido de su
// nombre de tipo, y al final el comentario opcional.
func applicationForm(p ProviderApplicationPayload) (*Form, error) {
	profile, err := json.Marshal(p.Profile)
	if err != nil {
		return nil, fmt.Errorf("codificar perfil_in: %w", err)
	}
	form := NewForm().Field("perfil_in", string(profile))
	for _, d := range p.Documents {
		form.File("documentos", d.FileName, d.ContentType, d.Content)
		form.Field("nombres_tip_documento", d.TypeName)
	}
	if p.Comment != "" {
		form.Field("comentario_solicitud", p.Comment)
	}
	return form, nil
}
