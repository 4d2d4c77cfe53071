package submit

import (
	"context"

	"go.uber.org/zap"

	"github.com/iaejotape/overflow-client/internal/form"
	"github.com/iaejotape/overflow-client/internal/gateway"
	"github.com/iaejotape/overflow-client/internal/session"
)

// LoginFlow drives the login screen: credentials form, session commit, and
// navigation to the dashboard.
type LoginFlow struct {
	form *form.Form
	ctrl *Controller
	api  *gateway.Client
	sess *session.Manager
	nav  Navigator
}

func NewLoginFlow(api *gateway.Client, sess *session.Manager, nav Navigator, log *zap.Logger) *LoginFlow {
	frm := form.Login()
	return &LoginFlow{
		form: frm,
		ctrl: NewController(frm, log),
		api:  api,
		sess: sess,
		nav:  nav,
	}
}

// Form exposes the field state for the surrounding UI.
func (f *LoginFlow) Form() *form.Form { return f.form }

// Submit validates and logs in. The session (tokens and user record) is
// persisted before navigation so the destination screen can assume a valid
// session on entry.
func (f *LoginFlow) Submit(ctx context.Context) error {
	return f.ctrl.Submit(ctx, func(ctx context.Context) error {
		res, err := f.api.Login(ctx, f.form.Value(form.KeyUsername), f.form.Value(form.KeyPassword))
		if err != nil {
			return err
		}
		if err := f.sess.SetSession(res.Access, res.Refresh); err != nil {
			return err
		}
		if err := f.sess.SetCurrentUser(res.User); err != nil {
			return err
		}
		f.nav.NavigateTo(RouteDashboard)
		return nil
	})
}

// Logout clears the stored session and returns to the login screen.
func Logout(sess *session.Manager, nav Navigator) error {
	if err := sess.Clear(); err != nil {
		return err
	}
	nav.NavigateTo(RouteLogin)
	return nil
}
