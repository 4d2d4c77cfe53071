// Package model defines domain entities exchanged with the Overflow backend.
package model

// Session collects the token pair issued on login (refresh optional on the wire).
type Session struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// Profile is the extended user profile returned inside the user payload.
type Profile struct {
	Nome           string `json:"nome"`
	DataNascimento string `json:"data_nascimento"`
	Sexo           string `json:"sexo"`         // masculino | feminino | outro
	TipoUsuario    string `json:"tipo_usuario"` // estudante | professor
	AceitouTermos  bool   `json:"aceitou_termos"`
}

// User represents an account as the backend reports it. Profile may be absent.
type User struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Profile  *Profile `json:"profile,omitempty"`
}

// DisplayName prefers the profile name over the username.
func (u User) DisplayName() string {
	if u.Profile != nil && u.Profile.Nome != "" {
		return u.Profile.Nome
	}
	return u.Username
}

// LoginRequest is the credentials payload for POST /auth/login/.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the session payload returned on successful login.
type LoginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    User   `json:"user"`
}

// SignupRequest is the registration payload for POST /auth/cadastro/.
type SignupRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	ConfirmarSenha string `json:"confirmar_senha"`
	Nome           string `json:"nome"`
	DataNascimento string `json:"data_nascimento"`
	Sexo           string `json:"sexo"`
	TipoUsuario    string `json:"tipo_usuario"`
	AceitouTermos  bool   `json:"aceitou_termos"`
}

// Question is a single question-bank entry.
type Question struct {
	ID                int64  `json:"id"`
	Titulo            string `json:"titulo"`
	Enunciado         string `json:"enunciado"`
	Categoria         string `json:"categoria"`
	Nivel             string `json:"nivel"` // facil | medio | dificil
	Pontuacao         int    `json:"pontuacao"`
	ResultadoEsperado string `json:"resultado_esperado"`
	Autor             string `json:"autor"`
	CriadaEm          string `json:"criada_em"`
}

// QuestionInput is the client change intent for create/update calls.
type QuestionInput struct {
	Titulo            string `json:"titulo"`
	Enunciado         string `json:"enunciado"`
	Categoria         string `json:"categoria"`
	Nivel             string `json:"nivel"`
	Pontuacao         int    `json:"pontuacao"`
	ResultadoEsperado string `json:"resultado_esperado"`
}
