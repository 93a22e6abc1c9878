// component/item.go
package component

import "hex-fire-defense/pkg/hexmap"

// Item — предмет, лежащий на клетке. Горит вместе с клеткой и принимает
// воду башен как урон; сам ни на что не влияет, пока цел.
type Item struct {
	Hex       hexmap.Hex
	Health    float64
	MaxHealth float64
}
