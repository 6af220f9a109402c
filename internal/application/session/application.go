package session

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/seva-empresas/seva-admin/internal/application/dto"
	"github.com/seva-empresas/seva-admin/internal/domain"
	"github.com/seva-empresas/seva-admin/internal/domain/entity"
	"github.com/seva-empresas/seva-admin/internal/infrastructure/api"
)

// MaxUploadSize tamaño máximo por archivo.
const MaxUploadSize = 10 << 20

// documentTypes claves internas de documento -> nombre de tipo del backend, en el orden de envío.
var documentTypes = []struct {
	key      string
	typeName string
	required bool
}{
	{"ruc", "RUC", true},
	{"cedula", "Cédula de Identidad", true},
	{"certificado_bancario", "Certificado Bancario", false},
	{"permiso_funcionamiento", "Permiso de Funcionamiento", false},
	{"otros", "Otros", false},
}

// DocumentKeys claves internas de documento en el orden de envío.
func DocumentKeys() []string {
	keys := make([]string, len(documentTypes))
	for i, d := range documentTypes {
		keys[i] = d.key
	}
	return keys
}

// DocumentTypeName devuelve el nombre de tipo del backend para una clave interna.
func DocumentTypeName(key string) (string, bool) {
	for _, d := range documentTypes {
		if d.key == key {
			return d.typeName, true
		}
	}
	return "", false
}

var allowedExtensions = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// SubmitProviderApplication envía la solicitud de proveedor. Solo un cliente puede hacerlo;
// RUC y cédula son obligatorios.
func (c *Coordinator) SubmitProviderApplication(ctx context.Context, in dto.ProviderApplicationRequest) (entity.ProviderApplication, error) {
	return c.sendApplication(ctx, in, false)
}

// ResubmitProviderApplication reenvía documentos tras un rechazo. Siempre transmite al
// menos un documento: sin archivos nuevos se agrega uno vacío de tipo "Otros".
func (c *Coordinator) ResubmitProviderApplication(ctx context.Context, in dto.ProviderApplicationRequest) (entity.ProviderApplication, error) {
	return c.sendApplication(ctx, in, true)
}

func (c *Coordinator) sendApplication(ctx context.Context, in dto.ProviderApplicationRequest, resubmit bool) (entity.ProviderApplication, error) {
	snap := c.Snapshot()
	if snap.User == nil {
		return entity.ProviderApplication{}, domain.ErrNotAuthenticated
	}
	if snap.User.Role != entity.RoleClient {
		return entity.ProviderApplication{}, domain.ErrNotClient
	}
	if err := dto.Validate(in.Profile); err != nil {
		return entity.ProviderApplication{}, err
	}
	docs, err := buildDocuments(in.Documents, !resubmit)
	if err != nil {
		return entity.ProviderApplication{}, err
	}
	if resubmit && len(docs) == 0 {
		docs = append(docs, api.DocumentFile{
			TypeName:    "Otros",
			FileName:    "placeholder-" + uuid.NewString() + ".pdf",
			ContentType: "application/pdf",
			Content:     []byte{},
		})
	}

	payload := api.ProviderApplicationPayload{
		Profile: api.ProviderProfileIn{
			CompanyName: strings.TrimSpace(in.Profile.CompanyName),
			LegalName:   strings.TrimSpace(in.Profile.LegalName),
			TaxID:       strings.TrimSpace(in.Profile.TaxID),
			Description: in.Profile.Description,
			Phone:       in.Profile.Phone,
			Address:     in.Profile.Address,
			City:        in.Profile.City,
			Website:     in.Profile.Website,
		},
		Documents: docs,
		Comment:   in.Profile.Comment,
	}

	gen := c.begin()
	client := c.api.WithToken(snap.User.AccessToken)
	var receipt *api.ApplicationReceipt
	if resubmit {
		receipt, err = client.ResubmitDocuments(ctx, payload)
	} else {
		receipt, err = client.SubmitProviderApplication(ctx, payload)
	}
	if err != nil {
		c.fail(gen, domain.DetailOf(err))
		return entity.ProviderApplication{}, err
	}

	submitted := c.now()
	if t := parseTime(receipt.SubmittedAt); !t.IsZero() {
		submitted = t
	}
	app := entity.ProviderApplication{
		Status:      entity.ProviderStatusPending,
		SubmittedAt: &submitted,
		Documents:   make(map[string]entity.DocumentUpload, len(docs)),
	}
	if resubmit {
		// Los documentos no reenviados siguen siendo los de la solicitud anterior.
		for k, v := range snap.ProviderApplication.Documents {
			app.Documents[k] = v
		}
	}
	for _, d := range docs {
		app.Documents[d.TypeName] = entity.DocumentUpload{
			FileName:     d.FileName,
			DocumentType: d.TypeName,
			ContentType:  d.ContentType,
			Size:         int64(len(d.Content)),
		}
	}

	c.mu.Lock()
	if c.user != nil {
		c.setSessionLocked(c.user, app)
	}
	c.loading = false
	c.mu.Unlock()
	c.writeMirror(ctx, snap.User.Email, app)
	c.publish()
	c.log.Info().Str("email", snap.User.Email).Bool("resubmit", resubmit).Int("documents", len(docs)).
		Msg("solicitud de proveedor enviada")
	return app.Clone(), nil
}

// buildDocuments valida y ordena los archivos según la tabla de tipos, antes de cualquier llamada de red.
func buildDocuments(inputs []dto.DocumentInput, requireMandatory bool) ([]api.DocumentFile, error) {
	byKey := make(map[string]dto.DocumentInput, len(inputs))
	for _, in := range inputs {
		if _, ok := DocumentTypeName(in.Key); !ok {
			return nil, &domain.ValidationError{Field: in.Key, Detail: "Tipo de documento desconocido"}
		}
		if len(in.Content) == 0 && in.FileName == "" {
			continue
		}
		byKey[in.Key] = in
	}

	docs := make([]api.DocumentFile, 0, len(byKey))
	for _, t := range documentTypes {
		in, ok := byKey[t.key]
		if !ok {
			if requireMandatory && t.required {
				return nil, &domain.ValidationError{Field: t.key, Detail: "El documento " + t.typeName + " es obligatorio"}
			}
			continue
		}
		contentType, err := checkFile(t.key, in.FileName, len(in.Content))
		if err != nil {
			return nil, err
		}
		docs = append(docs, api.DocumentFile{
			TypeName:    t.typeName,
			FileName:    in.FileName,
			ContentType: contentType,
			Content:     in.Content,
		})
	}
	return docs, nil
}

// checkFile aplica tamaño y extensión; devuelve el content type canónico.
func checkFile(field, fileName string, size int) (string, error) {
	if size > MaxUploadSize {
		return "", &domain.ValidationError{Field: field, Detail: "El archivo excede el tamaño máximo de 10 MB"}
	}
	ct, ok := allowedExtensions[strings.ToLower(filepath.Ext(fileName))]
	if !ok {
		return "", &domain.ValidationError{Field: field, Detail: "Tipo de archivo no permitido (PDF, JPG, JPEG o PNG)"}
	}
	return ct, nil
}

// UploadProfilePhoto sube la foto de perfil del usuario en sesión (JPG, JPEG o PNG).
func (c *Coordinator) UploadProfilePhoto(ctx context.Context, photo dto.DocumentInput) (*entity.SessionUser, error) {
	snap := c.Snapshot()
	if snap.User == nil {
		return nil, domain.ErrNotAuthenticated
	}
	contentType, err := checkFile("photo", photo.FileName, len(photo.Content))
	if err != nil {
		return nil, err
	}
	if contentType == "application/pdf" {
		return nil, &domain.ValidationError{Field: "photo", Detail: "La foto debe ser JPG, JPEG o PNG"}
	}
	if len(photo.Content) == 0 {
		return nil, &domain.ValidationError{Field: "photo", Detail: "El archivo está vacío"}
	}

	profile, err := c.api.WithToken(snap.User.AccessToken).UploadProfilePhoto(ctx, api.PhotoUpload{
		FileName:    photo.FileName,
		ContentType: contentType,
		Content:     photo.Content,
	})
	if err != nil {
		return nil, err
	}
	path := firstNonBlank(profile.PhotoPath, profile.AvatarURL)

	c.mu.Lock()
	if c.user != nil && path != "" {
		c.user.ProfilePhotoPath = path
	}
	c.mu.Unlock()
	c.publish()
	return c.Snapshot().User, nil
}
