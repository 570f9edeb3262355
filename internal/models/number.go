package models

// NumberKind 表示數字的產生方式
type NumberKind string

const (
	NumberKindEven   NumberKind = "even"   // 偶數
	NumberKindRandom NumberKind = "random" // 隨機數
)

// Number 是數字端點的回應內容
type Number struct {
	Kind  NumberKind `json:"kind"`
	Value int        `json:"number"`
}
