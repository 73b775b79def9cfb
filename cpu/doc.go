// Package cpu implements the CHIP-8 interpreter core and its assembler.
//
// The machine state is 4K of memory with the hexadecimal font at 0x050 and
// programs loaded at 0x200, sixteen 8-bit registers V0-VF, the 12-bit index
// register I, the program counter, a 16-deep call stack and the delay and
// sound timers. VF doubles as the carry, not-borrow, shift-out and sprite
// collision flag.
//
// The decoder maps every 16-bit word onto one of the 35 opcodes (or
// OP_UNKNOWN) through a table keyed by the top nibble. The three quirk modes
// select between COSMAC VIP (legacy) and CHIP-48 (modern) behavior of the
// shift, jump-with-offset and register block transfer opcodes.
//
// The assembler accepts a lowercase mnemonic syntax matching the
// disassembly produced by Code.String, with labels, equates, macros and
// compile-time Starlark expressions.
package cpu
