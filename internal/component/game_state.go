// component/game_state.go
package component

// GamePhase — фаза игрового цикла.
type GamePhase int

const (
	PlacementPhase GamePhase = iota // расстановка башен
	ActivePhase                     // волна идёт
)

type GameState struct {
	Phase GamePhase
}
