package shared

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/cespare/xxhash/v2"
)

// HashFn is a function that returns the 64-bit hash of 't'. CBG derives
// both anchors of an element from a single call to this function, so it
// must behave like a good general-purpose hash: avalanching and free of
// low-bit correlation with the high bits, since the secondary anchor is
// a rotation of the primary one (see anchor.go).
type HashFn[T any] func(t T) uint64

// GetHasher returns a hasher for the golang default types, dispatched
// by reflection once at table-construction time.
func GetHasher[Key any]() HashFn[Key] {
	var key Key
	kind := reflect.ValueOf(&key).Elem().Type().Kind()

	switch kind {
	case reflect.Int, reflect.Uint, reflect.Uintptr:
		switch unsafe.Sizeof(key) {
		case 2:
			return *(*func(Key) uint64)(unsafe.Pointer(&hashWord))
		case 4:
			return *(*func(Key) uint64)(unsafe.Pointer(&hashDword))
		case 8:
			return *(*func(Key) uint64)(unsafe.Pointer(&hashQword))
		default:
			panic("unsupported integer byte size")
		}

	case reflect.Int8, reflect.Uint8:
		return *(*func(Key) uint64)(unsafe.Pointer(&hashByte))
	case reflect.Int16, reflect.Uint16:
		return *(*func(Key) uint64)(unsafe.Pointer(&hashWord))
	case reflect.Int32, reflect.Uint32:
		return *(*func(Key) uint64)(unsafe.Pointer(&hashDword))
	case reflect.Int64, reflect.Uint64:
		return *(*func(Key) uint64)(unsafe.Pointer(&hashQword))
	case reflect.Float32:
		return *(*func(Key) uint64)(unsafe.Pointer(&hashFloat32))
	case reflect.Float64:
		return *(*func(Key) uint64)(unsafe.Pointer(&hashFloat64))
	case reflect.String:
		return *(*func(Key) uint64)(unsafe.Pointer(&hashString))

	default:
		panic(fmt.Sprintf("unsupported key type %T of kind %v", key, kind))
	}
}

var hashByte = func(in uint8) uint64 {
	key := uint32(in)
	key *= 0xcc9e2d51
	key = (key << 15) | (key >> 17)
	key *= 0x1b873593
	return uint64(key)
}

var hashWord = func(in uint16) uint64 {
	key := uint32(in)
	key *= 0xcc9e2d51
	key = (key << 15) | (key >> 17)
	key *= 0x1b873593
	return uint64(key)
}

var hashDword = func(key uint32) uint64 {
	key *= 0xcc9e2d51
	key = (key << 15) | (key >> 17)
	key *= 0x1b873593
	return uint64(key)
}

var hashFloat32 = func(in float32) uint64 {
	p := unsafe.Pointer(&in)
	key := *(*uint32)(p)

	key *= 0xcc9e2d51
	key = (key << 15) | (key >> 17)
	key *= 0x1b873593
	return uint64(key)
}

var hashFloat64 = func(in float64) uint64 {
	p := unsafe.Pointer(&in)
	key := *(*uint64)(p)

	key ^= key >> 33
	key *= 0xff51afd7ed558ccd
	key ^= key >> 33
	key *= 0xc4ceb9fe1a85ec53
	key ^= key >> 33
	return key
}

// hashQword implements MurmurHash3's 64-bit finalizer.
var hashQword = func(key uint64) uint64 {
	key ^= key >> 33
	key *= 0xff51afd7ed558ccd
	key ^= key >> 33
	key *= 0xc4ceb9fe1a85ec53
	key ^= key >> 33
	return key
}

// hashString hashes the bytes of a string with xxhash, which avoids
// writing and maintaining another string-hashing variant by hand.
var hashString = func(s string) uint64 {
	return xxhash.Sum64(unsafe.Slice(unsafe.StringData(s), len(s)))
}

// HashBytes hashes a byte slice with the same algorithm used for string
// keys, for callers that build their own hasher for []byte keys.
func HashBytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}
