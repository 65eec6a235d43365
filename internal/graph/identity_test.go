package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The two digests below are the bit-exact identity surfaces other stores
// depend on; the expected values were computed independently of this
// implementation.
func TestNodeIDKnownValue(t *testing.T) {
	got := NodeID("src/math.ts", KindFunction, "src/math.ts::add", 1)
	assert.Equal(t, "5005702338cf8cd3e52f74b138a87377cb68ec46845298d90d00a245a1865d86", got)
}

func TestNodeIDIsDeterministic(t *testing.T) {
	a := NodeID("src/user.ts", KindClass, "src/user.ts::UserService", 3)
	b := NodeID("src/user.ts", KindClass, "src/user.ts::UserService", 3)
	assert.Equal(t, a, b)

	differentLine := NodeID("src/user.ts", KindClass, "src/user.ts::UserService", 4)
	assert.NotEqual(t, a, differentLine)

	differentKind := NodeID("src/user.ts", KindStruct, "src/user.ts::UserService", 3)
	assert.NotEqual(t, a, differentKind)
}

func TestContentHashKnownValues(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", ContentHash(nil))
	assert.Equal(t, "536e506bb90914c243a12b397b9a998f85ae2cbd9ba02dfd03a9e155ca5ca0f4", ContentHash([]byte("fn main() {}\n")))
}
