// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":      "0",
	"MEMORY_SIZE": fmt.Sprintf("%#x", MEMORY_SIZE),
	"ROM_START":   fmt.Sprintf("%#x", ROM_START),
	"FONT_START":  fmt.Sprintf("%#x", FONT_START),
	"FONT_SIZE":   fmt.Sprintf("%v", FONT_SIZE),
}

// Assembler is a single pass macro assembler for CHIP-8 programs.
// Jump and call targets may be forward references to labels, which
// are linked once the whole source has been read.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]uint16   // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	expansions int // Count of macro expansions, for '@' local labels.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	v64, err := strconv.ParseInt(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)
	return
}

// immediate returns the value of a word, masked to limit.
// Negative values down to half the range are accepted.
func (asm *Assembler) immediate(word string, limit int) (value uint16, err error) {
	v, err := asm.valueOf(word)
	if err != nil {
		return
	}

	if v > limit || v < -(limit+1)/2 {
		err = ErrValueRange
		return
	}

	value = uint16(v) & uint16(limit)
	return
}

var reLabel = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// address returns a 12-bit address, or the label to link it to.
func (asm *Assembler) address(word string) (nnn uint16, label string, err error) {
	if reLabel.MatchString(word) {
		label = word
		return
	}

	nnn, err = asm.immediate(word, ADDRESS_MASK)
	return
}

// register returns the index of a V register name.
func (asm *Assembler) register(word string) (reg int, err error) {
	if len(word) == 2 && (word[0] == 'v' || word[0] == 'V') {
		n, perr := strconv.ParseUint(word[1:], 16, 4)
		if perr == nil {
			reg = int(n)
			return
		}
	}

	err = ErrRegisterInvalid
	return
}

// isRegister returns true if the word names a V register.
func (asm *Assembler) isRegister(word string) bool {
	_, err := asm.register(word)
	return err == nil
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v int
		v, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt(v)
	}
	err = nil
	// Labels already seen are usable in expressions.
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(int(addr))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// parseLine parses a single line as an opcode.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#x", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(strings.ReplaceAll(line, ",", " "))

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]uint16, 16)
		}
		asm.Label[label] = asm.currentAddr()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		asm.expansions++
		local := fmt.Sprintf("%v_%v_", name, asm.expansions)
		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", local)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentAddr gets the address of the next opcode.
func (asm *Assembler) currentAddr() uint16 {
	if len(asm.Opcode) == 0 {
		return ROM_START
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Addr + last.Size()
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.expansions = 0
	asm.Opcode = asm.Opcode[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	if int(asm.currentAddr()) > MEMORY_SIZE {
		err = ErrProgramSize
		return
	}

	// Final linking of jump labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		label := op.LinkLabel
		addr, ok := asm.Label[label]
		if !ok {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")
			err = ErrLabelMissing(label)
			return
		}
		if len(op.Codes) < 1 {
			log.Fatalf("Unable to link label '%s' to line %d: %v", label, op.LineNo, op.Words)
		}
		linked := &op.Codes[len(op.Codes)-1]
		*linked |= Code(addr & ADDRESS_MASK)
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// argCount checks the number of arguments of an instruction.
func argCount(args []string, count int) (err error) {
	switch {
	case len(args) < count:
		err = ErrOpcodeValueMissing
	case len(args) > count:
		err = ErrOpcodeExtraArgs
	}
	return
}

// aluMap maps the register-register ALU opcode names to their low nibble.
var aluMap = map[string]Code{
	"or":   0x1,
	"and":  0x2,
	"xor":  0x3,
	"sub":  0x5,
	"shr":  0x6,
	"subn": 0x7,
	"shl":  0xe,
}

// vxStore maps the 'ld dst vx' forms to their opcodes.
var vxStore = map[string]Code{
	"dt":  0xf015,
	"st":  0xf018,
	"f":   0xf029,
	"b":   0xf033,
	"[i]": 0xf055,
}

// vxLoad maps the 'ld vx src' forms to their opcodes.
var vxLoad = map[string]Code{
	"dt":  0xf007,
	"k":   0xf00a,
	"[i]": 0xf065,
}

// withX returns the code with the X register set.
func withX(code Code, x int) Code {
	return code | Code(x)<<8
}

// withXY returns the code with the X and Y registers set.
func withXY(code Code, x, y int) Code {
	return code | Code(x)<<8 | Code(y)<<4
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var codes []Code
	var data []uint8
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if err != nil || (len(codes) == 0 && len(data) == 0) {
			return
		}
		opcode := Opcode{LineNo: lineno, Addr: asm.currentAddr(), Words: initial_words, Codes: codes, Bytes: data, LinkLabel: label}
		asm.Opcode = append(asm.Opcode, opcode)
	}()

	op := strings.ToLower(words[0])
	args := slices.Clone(words[1:])

	// Alternate syntax substitutions
	switch {
	case op == "shr" && len(args) == 1:
		// shr vx => shr vx vx
		args = append(args, args[0])
	case op == "shl" && len(args) == 1:
		// shl vx => shl vx vx
		args = append(args, args[0])
	default:
		// unchanged
	}

	var x, y int
	var nn uint16

	switch op {
	case "cls":
		err = argCount(args, 0)
		codes = append(codes, 0x00e0)
	case "ret":
		err = argCount(args, 0)
		codes = append(codes, 0x00ee)
	case "sys":
		if err = argCount(args, 1); err != nil {
			return
		}
		nn, label, err = asm.address(args[0])
		codes = append(codes, Code(nn))
	case "jp":
		base := Code(0x1000)
		if len(args) == 2 {
			x, err = asm.register(args[0])
			if err != nil || x != 0 {
				err = ErrRegisterInvalid
				return
			}
			base = 0xb000
			args = args[1:]
		}
		if err = argCount(args, 1); err != nil {
			return
		}
		nn, label, err = asm.address(args[0])
		codes = append(codes, base|Code(nn))
	case "call":
		if err = argCount(args, 1); err != nil {
			return
		}
		nn, label, err = asm.address(args[0])
		codes = append(codes, 0x2000|Code(nn))
	case "se", "sne":
		if err = argCount(args, 2); err != nil {
			return
		}
		if x, err = asm.register(args[0]); err != nil {
			return
		}
		imm, reg := Code(0x3000), Code(0x5000)
		if op == "sne" {
			imm, reg = 0x4000, 0x9000
		}
		if asm.isRegister(args[1]) {
			y, _ = asm.register(args[1])
			codes = append(codes, withXY(reg, x, y))
			return
		}
		nn, err = asm.immediate(args[1], 0xff)
		codes = append(codes, withX(imm, x)|Code(nn))
	case "ld":
		if err = argCount(args, 2); err != nil {
			return
		}
		dst, src := args[0], args[1]
		if dst == "i" {
			nn, label, err = asm.address(src)
			codes = append(codes, 0xa000|Code(nn))
			return
		}
		if code, ok := vxStore[dst]; ok {
			if x, err = asm.register(src); err != nil {
				return
			}
			codes = append(codes, withX(code, x))
			return
		}
		if x, err = asm.register(dst); err != nil {
			return
		}
		if code, ok := vxLoad[src]; ok {
			codes = append(codes, withX(code, x))
			return
		}
		if asm.isRegister(src) {
			y, _ = asm.register(src)
			codes = append(codes, withXY(0x8000, x, y))
			return
		}
		nn, err = asm.immediate(src, 0xff)
		codes = append(codes, withX(0x6000, x)|Code(nn))
	case "add":
		if err = argCount(args, 2); err != nil {
			return
		}
		if args[0] == "i" {
			if x, err = asm.register(args[1]); err != nil {
				return
			}
			codes = append(codes, withX(0xf01e, x))
			return
		}
		if x, err = asm.register(args[0]); err != nil {
			return
		}
		if asm.isRegister(args[1]) {
			y, _ = asm.register(args[1])
			codes = append(codes, withXY(0x8004, x, y))
			return
		}
		nn, err = asm.immediate(args[1], 0xff)
		codes = append(codes, withX(0x7000, x)|Code(nn))
	case "or", "and", "xor", "sub", "shr", "subn", "shl":
		if err = argCount(args, 2); err != nil {
			return
		}
		if x, err = asm.register(args[0]); err != nil {
			return
		}
		if y, err = asm.register(args[1]); err != nil {
			return
		}
		codes = append(codes, withXY(0x8000|aluMap[op], x, y))
	case "rnd":
		if err = argCount(args, 2); err != nil {
			return
		}
		if x, err = asm.register(args[0]); err != nil {
			return
		}
		nn, err = asm.immediate(args[1], 0xff)
		codes = append(codes, withX(0xc000, x)|Code(nn))
	case "drw":
		if err = argCount(args, 3); err != nil {
			return
		}
		if x, err = asm.register(args[0]); err != nil {
			return
		}
		if y, err = asm.register(args[1]); err != nil {
			return
		}
		nn, err = asm.immediate(args[2], 0xf)
		if err == nil && strings.HasPrefix(args[2], "-") {
			err = ErrValueRange
		}
		codes = append(codes, withXY(0xd000, x, y)|Code(nn))
	case "skp", "sknp":
		if err = argCount(args, 1); err != nil {
			return
		}
		if x, err = asm.register(args[0]); err != nil {
			return
		}
		code := Code(0xe09e)
		if op == "sknp" {
			code = 0xe0a1
		}
		codes = append(codes, withX(code, x))
	case ".word":
		if len(args) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		for _, arg := range args {
			var word uint16
			word, err = asm.immediate(arg, 0xffff)
			if err != nil {
				return
			}
			codes = append(codes, Code(word))
		}
	case ".byte":
		if len(args) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		for _, arg := range args {
			var value uint16
			value, err = asm.immediate(arg, 0xff)
			if err != nil {
				return
			}
			data = append(data, uint8(value))
		}
	default:
		err = ErrInstructionInvalid
		return
	}

	return
}
