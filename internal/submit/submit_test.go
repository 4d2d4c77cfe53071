package submit

import (
	"context"
	"errors"
	"testing"

	"github.com/iaejotape/overflow-client/internal/errs"
	"github.com/iaejotape/overflow-client/internal/form"
	"github.com/iaejotape/overflow-client/internal/gateway"
)

func TestController_InvalidFormNeverCallsAction(t *testing.T) {
	t.Parallel()

	frm := form.Login()
	frm.SetValue(form.KeyUsername, "ab") // below min length
	frm.SetValue(form.KeyPassword, "secret1")
	ctrl := NewController(frm, nil)

	calls := 0
	err := ctrl.Submit(context.Background(), func(context.Context) error {
		calls++
		return nil
	})
	if !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("action called %d times for invalid form", calls)
	}
	if frm.BannerError != BannerInvalid {
		t.Fatalf("banner=%q", frm.BannerError)
	}
	if frm.Submitting {
		t.Fatalf("submitting flag stuck after validation failure")
	}
	if frm.Field(form.KeyUsername).Error == "" || !frm.Field(form.KeyPassword).Touched {
		t.Fatalf("fields not marked touched and validated")
	}
}

func TestController_SubmittingFlagWrapsAction(t *testing.T) {
	t.Parallel()

	frm := form.Login()
	frm.SetValue(form.KeyUsername, "alice")
	frm.SetValue(form.KeyPassword, "secret1")
	ctrl := NewController(frm, nil)

	sawSubmitting := false
	err := ctrl.Submit(context.Background(), func(context.Context) error {
		sawSubmitting = frm.Submitting
		return nil
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !sawSubmitting {
		t.Fatalf("submitting flag not set during action")
	}
	if frm.Submitting {
		t.Fatalf("submitting flag not cleared after resolution")
	}
	if frm.BannerError != "" {
		t.Fatalf("banner=%q after success", frm.BannerError)
	}
}

func TestController_SecondSubmitWhileInFlightIgnored(t *testing.T) {
	t.Parallel()

	frm := form.Login()
	frm.SetValue(form.KeyUsername, "alice")
	frm.SetValue(form.KeyPassword, "secret1")
	ctrl := NewController(frm, nil)

	inner := 0
	err := ctrl.Submit(context.Background(), func(ctx context.Context) error {
		// Re-entrant submit while the first is awaiting its response.
		if err := ctrl.Submit(ctx, func(context.Context) error {
			inner++
			return nil
		}); !errors.Is(err, errs.ErrSubmitting) {
			t.Fatalf("want ErrSubmitting for re-entrant submit, got %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if inner != 0 {
		t.Fatalf("re-entrant action ran %d times", inner)
	}
}

func TestController_APIErrorFeedsBannerAndFields(t *testing.T) {
	t.Parallel()

	frm := form.Signup()
	frm.SetValue(form.KeyNome, "Alice Silva")
	frm.SetValue(form.KeyUsername, "alice")
	frm.SetValue(form.KeyEmail, "alice@example.com")
	frm.SetValue(form.KeySenha, "Senha123")
	frm.SetValue(form.KeyConfirmarSenha, "Senha123")
	frm.SetValue(form.KeyTipoUsuario, "estudante")
	frm.SetChecked(form.KeyAceitaTermos, true)
	ctrl := NewController(frm, nil)

	apiErr := &gateway.APIError{
		Kind:    gateway.KindBadRequest,
		Status:  400,
		Message: "já existe",
		FieldErrors: map[string]string{
			"username":     "já existe",
			"undeclarable": "dropped",
		},
	}
	err := ctrl.Submit(context.Background(), func(context.Context) error { return apiErr })
	if !errors.Is(err, error(apiErr)) {
		t.Fatalf("want the APIError back, got %v", err)
	}
	if frm.BannerError != "já existe" {
		t.Fatalf("banner=%q", frm.BannerError)
	}
	if got := frm.Field(form.KeyUsername).Error; got != "já existe" {
		t.Fatalf("field error=%q", got)
	}
	if frm.Submitting {
		t.Fatalf("submitting flag stuck after failure")
	}
}

func TestController_UnclassifiedErrorGetsGenericBanner(t *testing.T) {
	t.Parallel()

	frm := form.Login()
	frm.SetValue(form.KeyUsername, "alice")
	frm.SetValue(form.KeyPassword, "secret1")
	ctrl := NewController(frm, nil)

	boom := errors.New("boom")
	if err := ctrl.Submit(context.Background(), func(context.Context) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("want boom back, got %v", err)
	}
	if frm.BannerError != gateway.MsgUnknown {
		t.Fatalf("banner=%q", frm.BannerError)
	}
}

func TestController_BannersClearedOnResubmit(t *testing.T) {
	t.Parallel()

	frm := form.Login()
	ctrl := NewController(frm, nil)

	_ = ctrl.Submit(context.Background(), nil)
	if frm.BannerError == "" {
		t.Fatalf("want banner on invalid submit")
	}

	frm.SetValue(form.KeyUsername, "alice")
	frm.SetValue(form.KeyPassword, "secret1")
	frm.BannerSuccess = "stale"
	if err := ctrl.Submit(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if frm.BannerError != "" || frm.BannerSuccess != "" {
		t.Fatalf("stale banners survived: error=%q success=%q", frm.BannerError, frm.BannerSuccess)
	}
}
