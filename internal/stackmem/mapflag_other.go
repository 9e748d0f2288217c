//go:build unix && !linux

package stackmem

// MAP_STACK is not portable: FreeBSD and DragonFly BSD are known to
// misbehave with it (it implies MAP_FIXED there and the mapping call
// fails outright), and Darwin doesn't define it at all. Omit it outside
// Linux rather than special-case every BSD variant.
const mapStackFlag = 0
