package ports

// PasswordHasher abstrai a capacidade hash(secret)->digest /
// verify(secret, digest)->bool. A primitiva concreta é detalhe de
// infraestrutura.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// TokenManager emite e valida tokens de sessão assinados.
// O token carrega apenas o subject (User.ID) e a expiração; a identidade
// é sempre resolvida de novo contra o Credential Store a cada uso.
type TokenManager interface {
	Issue(userID string) (string, error)
	// Verify retorna o subject do token ou
	// errors.ErrTokenExpired / errors.ErrTokenInvalid.
	Verify(token string) (string, error)
}
