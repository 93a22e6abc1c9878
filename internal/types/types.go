// internal/types/types.go
package types

// EntityID — уникальный идентификатор сущности в ECS.
type EntityID uint64

// FireType задаёт силу огня. Порядок значений важен: более сильный огонь
// всегда имеет большее значение, поэтому сравнение типов — это сравнение чисел.
type FireType int

const (
	FireNone FireType = iota
	FireCinder
	FireFlame
	FireBlaze
	FireFirestorm
	FireInferno
	FireCataclysm
)

// FireTypeCount — количество реальных типов огня (без FireNone).
const FireTypeCount = 6

func (t FireType) String() string {
	switch t {
	case FireCinder:
		return "cinder"
	case FireFlame:
		return "flame"
	case FireBlaze:
		return "blaze"
	case FireFirestorm:
		return "firestorm"
	case FireInferno:
		return "inferno"
	case FireCataclysm:
		return "cataclysm"
	}
	return "none"
}

// Next возвращает следующий (более сильный) тип огня.
// Cataclysm эволюционировать некуда.
func (t FireType) Next() FireType {
	if t >= FireCataclysm {
		return FireCataclysm
	}
	return t + 1
}
