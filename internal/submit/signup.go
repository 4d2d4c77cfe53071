package submit

import (
	"context"

	"go.uber.org/zap"

	"github.com/iaejotape/overflow-client/internal/form"
	"github.com/iaejotape/overflow-client/internal/gateway"
	"github.com/iaejotape/overflow-client/internal/model"
)

// Defaults the backend contract requires but the signup screen never asks for.
const (
	defaultDataNascimento = "2000-01-01"
	defaultSexo           = "outro"
)

// BannerSignupOK is the success banner shown before redirecting to login.
const BannerSignupOK = "Cadastro realizado com sucesso! Redirecionando..."

// SignupFlow drives the registration screen.
type SignupFlow struct {
	form *form.Form
	ctrl *Controller
	api  *gateway.Client
	nav  Navigator
}

func NewSignupFlow(api *gateway.Client, nav Navigator, log *zap.Logger) *SignupFlow {
	frm := form.Signup()
	return &SignupFlow{
		form: frm,
		ctrl: NewController(frm, log),
		api:  api,
		nav:  nav,
	}
}

func (f *SignupFlow) Form() *form.Form { return f.form }

// Submit validates and registers the account. Success sets the banner and
// navigates back to the login screen; no session is established here.
func (f *SignupFlow) Submit(ctx context.Context) error {
	return f.ctrl.Submit(ctx, func(ctx context.Context) error {
		req := model.SignupRequest{
			Username:       f.form.Value(form.KeyUsername),
			Email:          f.form.Value(form.KeyEmail),
			Password:       f.form.Value(form.KeySenha),
			ConfirmarSenha: f.form.Value(form.KeyConfirmarSenha),
			Nome:           f.form.Value(form.KeyNome),
			DataNascimento: defaultDataNascimento,
			Sexo:           defaultSexo,
			TipoUsuario:    f.form.Value(form.KeyTipoUsuario),
			AceitouTermos:  f.form.Checked(form.KeyAceitaTermos),
		}
		if _, err := f.api.Signup(ctx, req); err != nil {
			return err
		}
		f.form.BannerSuccess = BannerSignupOK
		f.nav.NavigateTo(RouteLogin)
		return nil
	})
}
