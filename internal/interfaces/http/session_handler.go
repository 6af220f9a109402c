package http

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/seva-empresas/seva-admin/internal/application/dto"
	"github.com/seva-empresas/seva-admin/internal/application/session"
	"github.com/seva-empresas/seva-admin/internal/domain"
)

// SessionHandler expone el coordinador de sesión de la consola.
type SessionHandler struct {
	coord *session.Coordinator
}

// NewSessionHandler construye el handler.
func NewSessionHandler(coord *session.Coordinator) *SessionHandler {
	return &SessionHandler{coord: coord}
}

func toSessionResponse(s session.Snapshot) dto.SessionResponse {
	return dto.SessionResponse{
		Authenticated:       s.Authenticated(),
		User:                s.User,
		ProviderStatus:      s.ProviderStatus,
		ProviderApplication: s.ProviderApplication,
		IsLoading:           s.IsLoading,
		Error:               s.Error,
	}
}

// Get godoc
// @Summary      Estado de la sesión
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/session [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	return c.JSON(toSessionResponse(h.coord.Snapshot()))
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/session/login [post]
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if _, err := h.coord.Login(c.UserContext(), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSessionResponse(h.coord.Snapshot()))
}

// Register godoc
// @Summary      Crear cuenta
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Datos de la cuenta"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/session/register [post]
func (h *SessionHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.coord.Register(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	resp := dto.RegisterResponse{ConfirmationRequired: out.ConfirmationRequired}
	if !out.ConfirmationRequired {
		s := toSessionResponse(h.coord.Snapshot())
		resp.Session = &s
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         session
// @Success      204
// @Router       /api/session/logout [post]
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	h.coord.Logout(c.UserContext())
	return c.SendStatus(fiber.StatusNoContent)
}

// Reload godoc
// @Summary      Recargar perfil
// @Description  Un timeout o fallo de red conserva la sesión anterior y responde con stale=true.
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/session/reload [post]
func (h *SessionHandler) Reload(c *fiber.Ctx) error {
	err := h.coord.ReloadUserProfile(c.UserContext())
	if err != nil && !domain.IsTransient(err) {
		return respondError(c, err)
	}
	resp := toSessionResponse(h.coord.Snapshot())
	resp.Stale = err != nil
	return c.JSON(resp)
}

// ResetPassword godoc
// @Summary      Solicitar correo de recuperación
// @Tags         session
// @Accept       json
// @Param        body  body  dto.PasswordResetRequest  true  "Correo"
// @Success      202   {object}  dto.MessageResponse
// @Router       /api/session/reset-password [post]
func (h *SessionHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.PasswordResetRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := h.coord.RequestPasswordReset(c.UserContext(), in); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(dto.MessageResponse{Message: "Si el correo existe recibirás instrucciones"})
}

// SubmitApplication godoc
// @Summary      Solicitar ser proveedor
// @Description  multipart/form-data: datos de empresa + un archivo por clave (ruc, cedula, certificado_bancario, permiso_funcionamiento, otros).
// @Tags         provider-application
// @Accept       mpfd
// @Produce      json
// @Success      201  {object}  entity.ProviderApplication
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/session/provider-application [post]
func (h *SessionHandler) SubmitApplication(c *fiber.Ctx) error {
	in, err := parseApplication(c)
	if err != nil {
		return respondError(c, err)
	}
	app, err := h.coord.SubmitProviderApplication(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

// ResubmitApplication godoc
// @Summary      Reenviar documentos tras un rechazo
// @Tags         provider-application
// @Accept       mpfd
// @Produce      json
// @Success      200  {object}  entity.ProviderApplication
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/session/provider-application/resubmit [post]
func (h *SessionHandler) ResubmitApplication(c *fiber.Ctx) error {
	in, err := parseApplication(c)
	if err != nil {
		return respondError(c, err)
	}
	app, err := h.coord.ResubmitProviderApplication(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(app)
}

// UploadPhoto godoc
// @Summary      Subir foto de perfil
// @Tags         session
// @Accept       mpfd
// @Produce      json
// @Param        photo  formData  file  true  "Imagen"
// @Success      200    {object}  entity.SessionUser
// @Router       /api/session/photo [post]
func (h *SessionHandler) UploadPhoto(c *fiber.Ctx) error {
	fh, err := c.FormFile("photo")
	if err != nil {
		return respondError(c, &domain.ValidationError{Field: "photo", Detail: "Este campo es obligatorio"})
	}
	doc, err := readDocument("photo", fh)
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.coord.UploadProfilePhoto(c.UserContext(), doc)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// parseApplication lee los campos de empresa y un archivo por clave de documento.
func parseApplication(c *fiber.Ctx) (dto.ProviderApplicationRequest, error) {
	var out dto.ProviderApplicationRequest
	if err := c.BodyParser(&out.Profile); err != nil {
		return out, &domain.ValidationError{Field: "body", Detail: "cuerpo inválido"}
	}
	form, err := c.MultipartForm()
	if err != nil {
		// Sin multipart no hay archivos; la validación posterior decide si faltan.
		return out, nil
	}
	for _, key := range session.DocumentKeys() {
		files := form.File[key]
		if len(files) == 0 {
			continue
		}
		doc, err := readDocument(key, files[0])
		if err != nil {
			return out, err
		}
		out.Documents = append(out.Documents, doc)
	}
	return out, nil
}

func readDocument(key string, fh *multipart.FileHeader) (dto.DocumentInput, error) {
	if fh.Size > session.MaxUploadSize {
		return dto.DocumentInput{}, &domain.ValidationError{Field: key, Detail: "El archivo excede el tamaño máximo de 10 MB"}
	}
	f, err := fh.Open()
	if err != nil {
		return dto.DocumentInput{}, err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return dto.DocumentInput{}, err
	}
	return dto.DocumentInput{
		Key:         key,
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}
