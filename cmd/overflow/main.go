// Command overflow is a CLI client for the Overflow question bank.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/iaejotape/overflow-client/internal/config"
	"github.com/iaejotape/overflow-client/internal/errs"
	"github.com/iaejotape/overflow-client/internal/form"
	"github.com/iaejotape/overflow-client/internal/gateway"
	"github.com/iaejotape/overflow-client/internal/logging"
	"github.com/iaejotape/overflow-client/internal/model"
	"github.com/iaejotape/overflow-client/internal/session"
	"github.com/iaejotape/overflow-client/internal/submit"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func usage() {
	fmt.Fprintf(os.Stderr, `overflow CLI
Usage:
  overflow <cmd> [args]

Commands:
  version
  login      -u <username> -p <password>            (saves session)
  cadastro   -u <user> -email <email> -p <password> -nome <name> -tipo <estudante|professor> -termos
  logout
  whoami
  listar     [-categoria <cat>]
  get        -id <id>
  criar      -titulo T -enunciado E -categoria C -nivel N -resultado R [-pontuacao 10]
  editar     -id <id> [same flags as criar]
  rm         -id <id>

Config: %s/config.yaml, env OVERFLOW_API_BASE etc.
`, session.CfgDir())
	os.Exit(2)
}

// main wires config, logging, session storage, and the gateway, then
// dispatches subcommands.
func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	cfg, err := config.Load(session.CfgDir())
	if err != nil {
		fail(err)
	}

	log := logging.New(cfg.LogFile, cfg.Debug)
	defer func() { _ = log.Sync() }()
	log.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("cmd", cmd),
	)

	store, err := session.OpenFileStore(cfg.SessionFile)
	if err != nil {
		fail(err)
	}
	sess := session.NewManager(store)
	api := gateway.NewClient(cfg.APIBase, &http.Client{Timeout: cfg.Timeout}, sess, log)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout+5*time.Second)
	defer cancel()

	switch cmd {

	case "version":
		fmt.Printf("overflow %s (%s)\n", version, buildDate)

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		u := fs.String("u", "", "username or email")
		p := fs.String("p", "", "password")
		_ = fs.Parse(args)

		flow := submit.NewLoginFlow(api, sess, noNav(), log)
		flow.Form().SetValue(form.KeyUsername, *u)
		flow.Form().SetValue(form.KeyPassword, *p)
		submitOrFail(ctx, flow.Form(), flow.Submit)

		user, _ := sess.CurrentUser()
		fmt.Printf("ok: %s\n", user.DisplayName())

	case "cadastro":
		fs := flag.NewFlagSet("cadastro", flag.ExitOnError)
		u := fs.String("u", "", "username")
		email := fs.String("email", "", "email")
		p := fs.String("p", "", "password")
		confirmar := fs.String("confirmar", "", "password confirmation (defaults to -p)")
		nome := fs.String("nome", "", "full name")
		tipo := fs.String("tipo", "", "estudante|professor")
		termos := fs.Bool("termos", false, "accept the terms")
		_ = fs.Parse(args)
		if *confirmar == "" {
			*confirmar = *p
		}

		flow := submit.NewSignupFlow(api, noNav(), log)
		frm := flow.Form()
		frm.SetValue(form.KeyNome, *nome)
		frm.SetValue(form.KeyUsername, *u)
		frm.SetValue(form.KeyEmail, *email)
		frm.SetValue(form.KeySenha, *p)
		frm.SetValue(form.KeyConfirmarSenha, *confirmar)
		frm.SetValue(form.KeyTipoUsuario, *tipo)
		frm.SetChecked(form.KeyAceitaTermos, *termos)
		submitOrFail(ctx, frm, flow.Submit)

		fmt.Println(frm.BannerSuccess)

	case "logout":
		if err := submit.Logout(sess, noNav()); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "whoami":
		user, err := sess.CurrentUser()
		if errors.Is(err, errs.ErrNoSession) {
			fmt.Fprintln(os.Stderr, "not logged in")
			os.Exit(1)
		}
		if err != nil {
			fail(err)
		}
		printJSON(user)
		if exp, ok := sess.ExpiresAt(); ok {
			fmt.Printf("token expires %s\n", exp.UTC().Format(time.RFC3339))
		}

	case "listar":
		fs := flag.NewFlagSet("listar", flag.ExitOnError)
		cat := fs.String("categoria", "", "filter by category")
		_ = fs.Parse(args)

		qs, err := api.ListQuestions(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(filterByCategoria(qs, *cat))

	case "get":
		fs := flag.NewFlagSet("get", flag.ExitOnError)
		id := fs.Int64("id", 0, "question id")
		_ = fs.Parse(args)
		if *id == 0 {
			fmt.Fprintln(os.Stderr, "need -id")
			os.Exit(1)
		}
		q, err := api.GetQuestion(ctx, *id)
		if err != nil {
			fail(err)
		}
		printJSON(q)

	case "criar":
		flow := submit.NewQuestionFlow(api, noNav(), log)
		parseQuestionFlags("criar", args, flow.Form())
		submitOrFail(ctx, flow.Form(), flow.Submit)
		fmt.Println("ok")

	case "editar":
		fs := flag.NewFlagSet("editar", flag.ExitOnError)
		id := fs.Int64("id", 0, "question id")
		rest := questionFlags(fs)
		_ = fs.Parse(args)
		if *id == 0 {
			fmt.Fprintln(os.Stderr, "need -id")
			os.Exit(1)
		}

		flow := submit.NewQuestionFlow(api, noNav(), log)
		if err := flow.Load(ctx, *id); err != nil {
			fail(err)
		}
		rest.apply(flow.Form())
		submitOrFail(ctx, flow.Form(), flow.Submit)
		fmt.Println("ok")

	case "rm":
		fs := flag.NewFlagSet("rm", flag.ExitOnError)
		id := fs.Int64("id", 0, "question id")
		_ = fs.Parse(args)
		if *id == 0 {
			fmt.Fprintln(os.Stderr, "need -id")
			os.Exit(1)
		}
		if err := api.DeleteQuestion(ctx, *id); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	default:
		usage()
	}
}

// ---- question flag plumbing ----

type questionArgs struct {
	titulo, enunciado, categoria, nivel, resultado *string
	pontuacao                                      *string
}

func questionFlags(fs *flag.FlagSet) *questionArgs {
	return &questionArgs{
		titulo:    fs.String("titulo", "", "title"),
		enunciado: fs.String("enunciado", "", "statement"),
		categoria: fs.String("categoria", "", "category"),
		nivel:     fs.String("nivel", "", "facil|medio|dificil"),
		pontuacao: fs.String("pontuacao", "", "score 1-100"),
		resultado: fs.String("resultado", "", "expected result"),
	}
}

// apply writes only the flags the user actually set, so edit mode keeps the
// loaded values for everything else.
func (a *questionArgs) apply(frm *form.Form) {
	set := func(key, v string) {
		if v != "" {
			frm.SetValue(key, v)
		}
	}
	set(form.KeyTitulo, *a.titulo)
	set(form.KeyEnunciado, *a.enunciado)
	set(form.KeyCategoria, *a.categoria)
	set(form.KeyNivel, *a.nivel)
	set(form.KeyPontuacao, *a.pontuacao)
	set(form.KeyResultadoEsperado, *a.resultado)
}

func parseQuestionFlags(name string, args []string, frm *form.Form) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	qa := questionFlags(fs)
	_ = fs.Parse(args)
	qa.apply(frm)
}

// ---- helpers ----

// noNav returns a navigator for the CLI, where there is nothing to route.
func noNav() submit.Navigator {
	return submit.NavigatorFunc(func(string) {})
}

func filterByCategoria(qs []model.Question, categoria string) []model.Question {
	if categoria == "" {
		return qs
	}
	out := make([]model.Question, 0, len(qs))
	for _, q := range qs {
		if q.Categoria == categoria {
			out = append(out, q)
		}
	}
	return out
}

// fieldErrorLines renders the form's field errors in stable order.
func fieldErrorLines(frm *form.Form) []string {
	errsByKey := frm.Errors()
	keys := make([]string, 0, len(errsByKey))
	for k := range errsByKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("  %s: %s", k, errsByKey[k]))
	}
	return lines
}

func submitOrFail(ctx context.Context, frm *form.Form, doSubmit func(context.Context) error) {
	if err := doSubmit(ctx); err != nil {
		fmt.Fprintln(os.Stderr, frm.BannerError)
		for _, line := range fieldErrorLines(frm) {
			fmt.Fprintln(os.Stderr, line)
		}
		os.Exit(1)
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func fail(err error) {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintln(os.Stderr, apiErr.Message)
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
