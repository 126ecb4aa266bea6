package tnetstring

import (
	"math/big"
	"math/rand"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var valueOpts = cmp.Options{
	cmp.Comparer(func(a, b Integer) bool { return a.Cmp(b) == 0 }),
	cmpopts.EquateEmpty(),
}

func requireValue(t *testing.T, want, got Value) {
	t.Helper()
	if diff := cmp.Diff(want, got, valueOpts); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

// nested wraps v in depth single-item lists.
func nested(v Value, depth int) Value {
	for range depth {
		v = List{v}
	}
	return v
}

// nestedWire is the encoding of depth empty lists nested in each other.
func nestedWire(depth int) string {
	wire := "0:]"
	for range depth - 1 {
		wire = strconv.Itoa(len(wire)) + ":" + wire + "]"
	}
	return wire
}

// randomValue builds a random tree. Containers get rarer with depth so
// the tree bottoms out.
func randomValue(r *rand.Rand, depth int) Value {
	if depth <= 10 && depth+r.Intn(11-depth) <= 4 {
		n := r.Intn(11)
		if r.Intn(2) == 0 {
			l := List{}
			for range n {
				l = append(l, randomValue(r, depth+1))
			}
			return l
		}
		d := Dict{}
		for range n {
			var key Value = randomString(r)
			if r.Intn(8) == 0 {
				key = randomScalar(r)
			}
			d = append(d, Entry{Key: key, Value: randomValue(r, depth+1)})
		}
		return d
	}
	return randomScalar(r)
}

func randomScalar(r *rand.Rand) Value {
	switch r.Intn(7) {
	case 0:
		return Null{}
	case 1:
		return Bool(r.Intn(2) == 0)
	case 2:
		n := r.Int63()
		if r.Intn(2) == 0 {
			n = -n
		}
		return Int(n)
	case 3:
		n := new(big.Int).Lsh(big.NewInt(r.Int63()), uint(64+r.Intn(64)))
		if r.Intn(2) == 0 {
			n.Neg(n)
		}
		return BigInt(n)
	case 4:
		return Float(r.NormFloat64() * 1e6)
	}
	return randomString(r)
}

func randomString(r *rand.Rand) String {
	var b strings.Builder
	for range r.Intn(101) {
		b.WriteByte(byte(r.Intn(256)))
	}
	return String(b.String())
}

// tree is a quick.Generator for random Values.
type tree struct {
	Value Value
}

func (tree) Generate(r *rand.Rand, size int) reflect.Value {
	return reflect.ValueOf(tree{Value: randomValue(r, 0)})
}
