package util

type Equaler interface {
	Equal(Equaler) bool
}
