// Package submit sequences form submission: mark all fields touched,
// validate, run the gateway action, and feed failures back into the form's
// banner and field-error slots.
package submit

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/iaejotape/overflow-client/internal/errs"
	"github.com/iaejotape/overflow-client/internal/form"
	"github.com/iaejotape/overflow-client/internal/gateway"
)

// Navigation routes used by the flows.
const (
	RouteLogin     = "/entrar"
	RouteDashboard = "/dashboard"
	RouteQuestions = "/questoes"
)

// BannerInvalid is the form-level message shown when local validation blocks
// a submit.
const BannerInvalid = "Corrija os erros nos campos acima."

// Navigator receives the destination route after a successful submission.
type Navigator interface {
	NavigateTo(route string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(route string)

func (f NavigatorFunc) NavigateTo(route string) { f(route) }

// Action performs the network side of a submission once validation passed.
type Action func(ctx context.Context) error

// Controller runs the submission state machine for one form instance. A
// second submit while one is in flight is ignored.
type Controller struct {
	form *form.Form
	log  *zap.Logger
}

func NewController(frm *form.Form, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{form: frm, log: log}
}

// Submit validates the whole form and, if it passes, runs action under the
// submitting flag. Validation failures set the banner and return
// errs.ErrValidation without any network call. Action failures are
// classified into the banner and field errors. Either way the form resolves
// back to an interactive idle state.
func (c *Controller) Submit(ctx context.Context, action Action) error {
	frm := c.form
	if frm.Submitting {
		c.log.Warn("submit ignored: already in flight")
		return errs.ErrSubmitting
	}

	frm.ClearBanners()
	frm.MarkAllTouched()
	if !frm.Validate() {
		frm.BannerError = BannerInvalid
		return errs.ErrValidation
	}

	frm.Submitting = true
	defer func() { frm.Submitting = false }()

	if err := action(ctx); err != nil {
		c.fail(err)
		return err
	}
	return nil
}

// fail surfaces a gateway failure: banner message always, field errors for
// the keys this form declares. Server-side field errors land in the same
// slots as local validation so the two are indistinguishable to the user.
func (c *Controller) fail(err error) {
	var apiErr *gateway.APIError
	if !errors.As(err, &apiErr) {
		c.form.BannerError = gateway.MsgUnknown
		c.log.Warn("submit failed", zap.Error(err))
		return
	}

	c.form.BannerError = apiErr.Message
	for key, msg := range apiErr.FieldErrors {
		if !c.form.SetError(key, msg) {
			c.log.Debug("server field error for undeclared field", zap.String("field", key))
		}
	}
	c.log.Warn("submit failed",
		zap.String("kind", apiErr.Kind.String()),
		zap.Int("status", apiErr.Status),
	)
}
