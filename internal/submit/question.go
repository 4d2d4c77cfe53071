package submit

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/iaejotape/overflow-client/internal/form"
	"github.com/iaejotape/overflow-client/internal/gateway"
	"github.com/iaejotape/overflow-client/internal/model"
)

// Pontuacao bounds; out-of-range or unparsable scores fall back to the
// default instead of blocking the submit.
const (
	pontuacaoMin     = 1
	pontuacaoMax     = 100
	pontuacaoDefault = 10
)

// QuestionFlow drives the create/edit question screen. A zero question id
// means create; Load switches the flow to edit mode.
type QuestionFlow struct {
	form       *form.Form
	ctrl       *Controller
	api        *gateway.Client
	nav        Navigator
	questionID int64
}

func NewQuestionFlow(api *gateway.Client, nav Navigator, log *zap.Logger) *QuestionFlow {
	frm := form.Question()
	frm.SetValue(form.KeyPontuacao, strconv.Itoa(pontuacaoDefault))
	return &QuestionFlow{
		form: frm,
		ctrl: NewController(frm, log),
		api:  api,
		nav:  nav,
	}
}

func (f *QuestionFlow) Form() *form.Form { return f.form }

// EditMode reports whether the flow patches an existing question.
func (f *QuestionFlow) EditMode() bool { return f.questionID != 0 }

// Load fetches an existing question and prefills the form for editing.
// Prefill does not touch fields, so no errors surface before interaction.
func (f *QuestionFlow) Load(ctx context.Context, id int64) error {
	q, err := f.api.GetQuestion(ctx, id)
	if err != nil {
		return err
	}
	f.questionID = id
	f.form.SetValue(form.KeyTitulo, q.Titulo)
	f.form.SetValue(form.KeyEnunciado, q.Enunciado)
	f.form.SetValue(form.KeyCategoria, q.Categoria)
	f.form.SetValue(form.KeyNivel, q.Nivel)
	f.form.SetValue(form.KeyPontuacao, strconv.Itoa(q.Pontuacao))
	f.form.SetValue(form.KeyResultadoEsperado, q.ResultadoEsperado)
	return nil
}

// Submit validates and creates or patches the question, then returns to the
// question list.
func (f *QuestionFlow) Submit(ctx context.Context) error {
	return f.ctrl.Submit(ctx, func(ctx context.Context) error {
		in := model.QuestionInput{
			Titulo:            f.form.Value(form.KeyTitulo),
			Enunciado:         f.form.Value(form.KeyEnunciado),
			Categoria:         f.form.Value(form.KeyCategoria),
			Nivel:             f.form.Value(form.KeyNivel),
			Pontuacao:         pontuacao(f.form.Value(form.KeyPontuacao)),
			ResultadoEsperado: f.form.Value(form.KeyResultadoEsperado),
		}

		var err error
		if f.EditMode() {
			_, err = f.api.UpdateQuestion(ctx, f.questionID, in)
		} else {
			_, err = f.api.CreateQuestion(ctx, in)
		}
		if err != nil {
			return err
		}
		f.nav.NavigateTo(RouteQuestions)
		return nil
	})
}

func pontuacao(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < pontuacaoMin || n > pontuacaoMax {
		return pontuacaoDefault
	}
	return n
}
