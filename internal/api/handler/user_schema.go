package handler

// ── Request types ─────────────────────────────────────────────────────────────

type loginRequest struct {
	Email    string `json:"email" example:"john@example.com"`
	Password string `json:"password" example:"Password123"`
}

// accountRequest is the body of both POST /api/auth/register and POST /api/users.
type accountRequest struct {
	Name     string `json:"name" example:"John Doe"`
	Email    string `json:"email" example:"john@example.com"`
	Password string `json:"password" example:"Password123"`
}

type listUsersQuery struct {
	Name string `query:"name"`
}

// ── Success messages ──────────────────────────────────────────────────────────

const (
	msgLoggedIn   = "Login realizado com sucesso."
	msgRegistered = "Usuário registrado com sucesso."
	msgCreated    = "Usuário criado com sucesso."
	msgListed     = "Usuários listados com sucesso."
	msgDeleted    = "Usuário removido com sucesso."

	msgUserNotFound   = "Usuário não encontrado."
	msgInvalidPayload = "Requisição inválida."
)

// MsgUnauthenticated is returned for a missing, malformed or rejected token.
const MsgUnauthenticated = "Não autenticado."
