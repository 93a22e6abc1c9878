// component/wave.go
package component

// Wave хранит состояние текущей волновой сессии.
// Инвариант: пока сессия жива, фаза ровно одна из двух.
type Wave struct {
	Number        int // абсолютный номер волны
	Group         int // номер группы волн, с 1
	WaveInGroup   int // 1..WavesPerGroup
	TimeRemaining float64
}
