package entities

// RankByPriority reordena o conjunto colocando as ordens URGENTE na
// frente, mantendo a ordem relativa de entrada dentro de cada partição.
// A priorização é aplicada a cada resposta de listagem/exportação e
// nunca é persistida.
func RankByPriority(orders []*ServiceOrder) []*ServiceOrder {
	ranked := make([]*ServiceOrder, 0, len(orders))

	for _, o := range orders {
		if o.IsUrgent() {
			ranked = append(ranked, o)
		}
	}
	for _, o := range orders {
		if !o.IsUrgent() {
			ranked = append(ranked, o)
		}
	}

	return ranked
}
