package primitives

// Amount is a 128-bit unsigned integer balance or value. All amounts are
// exact integers; no floating point appears on any consensus path.
type Amount = Uint128

// GenesisAmount is the entire supply, 2^128 - 1.
var GenesisAmount = MaxUint128
