package form

import "regexp"

// Field keys shared with the submission flows and the gateway's server-error
// mapping.
const (
	KeyNome           = "nome"
	KeyUsername       = "username"
	KeyEmail          = "email"
	KeyPassword       = "password"
	KeySenha          = "senha"
	KeyConfirmarSenha = "confirmarSenha"
	KeyTipoUsuario    = "tipoUsuario"
	KeyAceitaTermos   = "aceitaTermos"

	KeyTitulo            = "titulo"
	KeyEnunciado         = "enunciado"
	KeyCategoria         = "categoria"
	KeyNivel             = "nivel"
	KeyPontuacao         = "pontuacao"
	KeyResultadoEsperado = "resultadoEsperado"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Login declares the login form: username (or email) plus password.
func Login() *Form {
	return New(
		TextField(KeyUsername,
			Required("Usuário ou email é obrigatório."),
			MinLen(3, "Usuário deve ter pelo menos 3 caracteres."),
		),
		TextField(KeyPassword,
			RequiredRaw("Senha é obrigatória."),
			MinLenRaw(6, "Senha deve ter pelo menos 6 caracteres."),
		),
	)
}

// Signup declares the registration form. The password field is declared
// before its confirmation so cross-field validation never reads stale state.
func Signup() *Form {
	return New(
		TextField(KeyNome,
			Required("Nome é obrigatório."),
			MinLen(3, "Nome deve ter pelo menos 3 caracteres."),
			MaxLen(100, "Nome deve ter no máximo 100 caracteres."),
		),
		TextField(KeyUsername,
			Required("Nome de usuário é obrigatório."),
			MinLen(3, "Nome de usuário deve ter pelo menos 3 caracteres."),
			MaxLen(30, "Nome de usuário deve ter no máximo 30 caracteres."),
			Pattern(usernameRe, "Use apenas letras, números e underscore (_)."),
		),
		TextField(KeyEmail,
			Required("Email é obrigatório."),
			Pattern(emailRe, "Digite um email válido."),
		),
		TextField(KeySenha,
			RequiredRaw("Senha é obrigatória."),
			MinLenRaw(8, "Senha deve ter pelo menos 8 caracteres."),
			MaxLenRaw(128, "Senha deve ter no máximo 128 caracteres."),
			Complexity("Senha deve conter maiúscula, minúscula e número."),
		),
		ConfirmField(KeyConfirmarSenha, KeySenha,
			"Confirmação de senha é obrigatória.",
			"As senhas não coincidem.",
		),
		TextField(KeyTipoUsuario,
			Required("Selecione um tipo de usuário."),
		),
		BoolField(KeyAceitaTermos,
			Accepted("Você precisa aceitar os termos para continuar."),
		),
	)
}

// Question declares the create/edit question form. Pontuacao carries no rule:
// out-of-range scores fall back to a default at submit time instead of
// blocking.
func Question() *Form {
	return New(
		TextField(KeyTitulo,
			Required("Título é obrigatório."),
		),
		TextField(KeyEnunciado,
			Required("Enunciado é obrigatório."),
		),
		TextField(KeyCategoria,
			Required("Selecione uma categoria."),
		),
		TextField(KeyNivel,
			Required("Selecione uma dificuldade."),
		),
		TextField(KeyPontuacao),
		TextField(KeyResultadoEsperado,
			Required("Resultado esperado é obrigatório."),
		),
	)
}
