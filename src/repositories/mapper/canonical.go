package mapper

import "activitytracker/src/domain/entities"

// Identifiable é implementado pelos ponteiros das entidades deduplicáveis.
type Identifiable interface {
	comparable
	Identity() entities.ID
}

// CanonicalMap guarda a única instância viva por ID dentro de uma montagem,
// preservando a ordem em que cada ID apareceu pela primeira vez.
type CanonicalMap[T Identifiable] struct {
	index map[entities.ID]T
	order []entities.ID
}

func NewCanonicalMap[T Identifiable]() *CanonicalMap[T] {
	return &CanonicalMap[T]{index: make(map[entities.ID]T)}
}

// Reconcile devolve a instância canônica para o ID do candidato, registrando
// o candidato na primeira vez. Candidatos sem ID (placeholder de left join)
// voltam intactos e nunca entram no mapa.
func (m *CanonicalMap[T]) Reconcile(candidate T) T {
	id := candidate.Identity()
	if !id.IsAssigned() {
		return candidate
	}

	if existing, ok := m.index[id]; ok {
		return existing
	}

	m.index[id] = candidate
	m.order = append(m.order, id)
	return candidate
}

func (m *CanonicalMap[T]) Get(id entities.ID) (T, bool) {
	v, ok := m.index[id]
	return v, ok
}

func (m *CanonicalMap[T]) Len() int {
	return len(m.order)
}

// Values devolve as instâncias na ordem de primeira aparição.
func (m *CanonicalMap[T]) Values() []T {
	values := make([]T, 0, len(m.order))
	for _, id := range m.order {
		values = append(values, m.index[id])
	}
	return values
}
