// component/fire_spawner.go
package component

import "hex-fire-defense/pkg/hexmap"

// FireSpawner — неразрушимый источник огня. Сама клетка спавнера
// не горит никогда; вокруг него огонь распространяется с кольцевым
// затуханием.
type FireSpawner struct {
	Hex hexmap.Hex
}
