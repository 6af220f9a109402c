package repository

import "context"

// Claves persistidas por la consola.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
)

// ProviderStatusKey clave del espejo local del estado de verificación de una cuenta.
func ProviderStatusKey(email string) string { return "providerStatus_" + email }

// ProviderApplicationKey clave del espejo local de la última solicitud de proveedor.
func ProviderApplicationKey(email string) string { return "providerApplication_" + email }

// ClientStorage es el almacenamiento clave/valor "del lado cliente" (DIP).
// Get devuelve ok=false cuando la clave no existe. Delete sobre una clave ausente no es error.
type ClientStorage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// TxStorage almacenamiento capaz de aplicar varias escrituras de forma atómica.
type TxStorage interface {
	ClientStorage
	WithinTx(ctx context.Context, fn func(ClientStorage) error) error
}
