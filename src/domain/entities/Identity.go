package entities

// ID é a identidade numérica de uma entidade persistida.
type ID int64

// Unassigned marca uma entidade que ainda não foi persistida, ou uma linha
// de left join sem correspondência.
const Unassigned ID = 0

func (id ID) IsAssigned() bool {
	return id != Unassigned
}

func (id ID) Int64() int64 {
	return int64(id)
}
