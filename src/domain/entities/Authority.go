package entities

import "fmt"

// Authority é o papel de um usuário. Não tem identidade própria, apenas o valor.
type Authority string

const (
	AuthorityUser  Authority = "USER"
	AuthorityAdmin Authority = "ADMIN"
)

var authorityByName = map[string]Authority{
	"USER":  AuthorityUser,
	"ADMIN": AuthorityAdmin,
}

func (a Authority) String() string { return string(a) }

// ParseAuthority converte o texto armazenado em Authority.
func ParseAuthority(value string) (Authority, error) {
	authority, ok := authorityByName[value]
	if !ok {
		return "", fmt.Errorf("unknown authority %q", value)
	}
	return authority, nil
}
