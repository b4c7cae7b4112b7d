package cbg

import (
	"github.com/alainesp/cbg/aob"
	"github.com/alainesp/cbg/aos"
	"github.com/alainesp/cbg/soa"
)

func newSoAStorage[K comparable, V any]() Storage[K, V] {
	return soa.New[K, V]()
}

func newAoSStorage[K comparable, V any]() Storage[K, V] {
	return aos.New[K, V]()
}

func newAoBStorage[K comparable, V any]() Storage[K, V] {
	return aob.New[K, V]()
}
