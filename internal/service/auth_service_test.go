package service

import (
	"context"
	"testing"

	"github.com/wontivero/POS-2025-sub000/internal/config"
	"github.com/wontivero/POS-2025-sub000/internal/dto"
	"github.com/wontivero/POS-2025-sub000/internal/model"
	"github.com/wontivero/POS-2025-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Email == email && u.Activo {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) List(_ context.Context, incluirInactivos bool) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.Activo || incluirInactivos {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = false
	return nil
}

func (r *stubUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = true
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

func newAuthEnv() (AuthService, *stubUsuarioRepo) {
	repo := newStubUsuarioRepo()
	cfg := &config.Config{
		JWTSecret:          "secreto-de-test",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
	return NewAuthService(repo, cfg), repo
}

func TestCrearUsuarioYLogin(t *testing.T) {
	svc, repo := newAuthEnv()

	usuario, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Email:    "cajero@puntopos.local",
		Nombre:   "Cajero Uno",
		Password: "clave-segura",
		Rol:      "cajero",
	})
	require.NoError(t, err)
	assert.Equal(t, "cajero", usuario.Rol)
	assert.True(t, usuario.Activo)

	// El hash nunca es la contraseña en claro.
	stored := repo.usuarios[uuid.MustParse(usuario.ID)]
	assert.NotEqual(t, "clave-segura", stored.PasswordHash)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "cajero@puntopos.local",
		Password: "clave-segura",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, usuario.ID, resp.User.ID)
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	svc, _ := newAuthEnv()
	_, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Email: "cajero@puntopos.local", Nombre: "Cajero Uno", Password: "clave-segura", Rol: "cajero",
	})
	require.NoError(t, err)

	// Misma respuesta para contraseña incorrecta y usuario inexistente.
	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "cajero@puntopos.local", Password: "otra-clave"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credenciales invalidas")

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "nadie@puntopos.local", Password: "clave-segura"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credenciales invalidas")
}

func TestLoginUsuarioDesactivado(t *testing.T) {
	svc, _ := newAuthEnv()
	usuario, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Email: "cajero@puntopos.local", Nombre: "Cajero Uno", Password: "clave-segura", Rol: "cajero",
	})
	require.NoError(t, err)
	require.NoError(t, svc.DesactivarUsuario(context.Background(), uuid.MustParse(usuario.ID)))

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "cajero@puntopos.local", Password: "clave-segura"})
	require.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	svc, _ := newAuthEnv()
	usuario, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Email: "cajero@puntopos.local", Nombre: "Cajero Uno", Password: "clave-segura", Rol: "cajero",
	})
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Email: "cajero@puntopos.local", Password: "clave-segura"})
	require.NoError(t, err)

	resp, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, usuario.ID, resp.User.ID)

	_, err = svc.Refresh(context.Background(), "token-basura")
	require.Error(t, err)

	// Un usuario desactivado no puede refrescar.
	require.NoError(t, svc.DesactivarUsuario(context.Background(), uuid.MustParse(usuario.ID)))
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	require.Error(t, err)
}

func TestActualizarUsuario(t *testing.T) {
	svc, repo := newAuthEnv()
	usuario, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Email: "cajero@puntopos.local", Nombre: "Cajero Uno", Password: "clave-segura", Rol: "cajero",
	})
	require.NoError(t, err)
	id := uuid.MustParse(usuario.ID)
	hashAnterior := repo.usuarios[id].PasswordHash

	// Sin password nuevo el hash no cambia.
	resp, err := svc.ActualizarUsuario(context.Background(), id, dto.ActualizarUsuarioRequest{
		Nombre: "Cajero Renombrado", Rol: "supervisor",
	})
	require.NoError(t, err)
	assert.Equal(t, "Cajero Renombrado", resp.Nombre)
	assert.Equal(t, "supervisor", resp.Rol)
	assert.Equal(t, hashAnterior, repo.usuarios[id].PasswordHash)

	nueva := "clave-nueva-123"
	_, err = svc.ActualizarUsuario(context.Background(), id, dto.ActualizarUsuarioRequest{
		Nombre: "Cajero Renombrado", Rol: "supervisor", Password: &nueva,
	})
	require.NoError(t, err)
	assert.NotEqual(t, hashAnterior, repo.usuarios[id].PasswordHash)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "cajero@puntopos.local", Password: nueva})
	require.NoError(t, err)
}
