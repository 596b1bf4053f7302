// Package chain implements the segment-chaining kinematics of an undulating arm.
//
// A Chain is a pure function of its phase accumulator and root position: every
// Update advances the phase and rebuilds all segments from scratch, root first,
// each segment placed relative to the one built before it. Segments draw
// themselves through a Context with balanced Save/Restore, so a Surface can be
// shared by many chains without transform leakage.
package chain
