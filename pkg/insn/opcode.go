// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package insn

import "fmt"

// Opcode is a JVM opcode.  Pseudo instructions (labels and line markers) have
// the opcode NONE.
type Opcode int16

// NONE is the opcode of pseudo instructions.
const NONE Opcode = -1

// The JVM opcodes which can appear in a method body, excluding the compact
// forms (e.g. ILOAD_0) and WIDE which are normalised away when decoding.
const (
	NOP             Opcode = 0
	ACONST_NULL     Opcode = 1
	ICONST_M1       Opcode = 2
	ICONST_0        Opcode = 3
	ICONST_1        Opcode = 4
	ICONST_2        Opcode = 5
	ICONST_3        Opcode = 6
	ICONST_4        Opcode = 7
	ICONST_5        Opcode = 8
	LCONST_0        Opcode = 9
	LCONST_1        Opcode = 10
	FCONST_0        Opcode = 11
	FCONST_1        Opcode = 12
	FCONST_2        Opcode = 13
	DCONST_0        Opcode = 14
	DCONST_1        Opcode = 15
	BIPUSH          Opcode = 16
	SIPUSH          Opcode = 17
	LDC             Opcode = 18
	ILOAD           Opcode = 21
	LLOAD           Opcode = 22
	FLOAD           Opcode = 23
	DLOAD           Opcode = 24
	ALOAD           Opcode = 25
	IALOAD          Opcode = 46
	LALOAD          Opcode = 47
	FALOAD          Opcode = 48
	DALOAD          Opcode = 49
	AALOAD          Opcode = 50
	BALOAD          Opcode = 51
	CALOAD          Opcode = 52
	SALOAD          Opcode = 53
	ISTORE          Opcode = 54
	LSTORE          Opcode = 55
	FSTORE          Opcode = 56
	DSTORE          Opcode = 57
	ASTORE          Opcode = 58
	IASTORE         Opcode = 79
	LASTORE         Opcode = 80
	FASTORE         Opcode = 81
	DASTORE         Opcode = 82
	AASTORE         Opcode = 83
	BASTORE         Opcode = 84
	CASTORE         Opcode = 85
	SASTORE         Opcode = 86
	POP             Opcode = 87
	POP2            Opcode = 88
	DUP             Opcode = 89
	DUP_X1          Opcode = 90
	DUP_X2          Opcode = 91
	DUP2            Opcode = 92
	DUP2_X1         Opcode = 93
	DUP2_X2         Opcode = 94
	SWAP            Opcode = 95
	IADD            Opcode = 96
	LADD            Opcode = 97
	FADD            Opcode = 98
	DADD            Opcode = 99
	ISUB            Opcode = 100
	LSUB            Opcode = 101
	FSUB            Opcode = 102
	DSUB            Opcode = 103
	IMUL            Opcode = 104
	LMUL            Opcode = 105
	FMUL            Opcode = 106
	DMUL            Opcode = 107
	IDIV            Opcode = 108
	LDIV            Opcode = 109
	FDIV            Opcode = 110
	DDIV            Opcode = 111
	IREM            Opcode = 112
	LREM            Opcode = 113
	FREM            Opcode = 114
	DREM            Opcode = 115
	INEG            Opcode = 116
	LNEG            Opcode = 117
	FNEG            Opcode = 118
	DNEG            Opcode = 119
	ISHL            Opcode = 120
	LSHL            Opcode = 121
	ISHR            Opcode = 122
	LSHR            Opcode = 123
	IUSHR           Opcode = 124
	LUSHR           Opcode = 125
	IAND            Opcode = 126
	LAND            Opcode = 127
	IOR             Opcode = 128
	LOR             Opcode = 129
	IXOR            Opcode = 130
	LXOR            Opcode = 131
	IINC_OP         Opcode = 132
	I2L             Opcode = 133
	I2F             Opcode = 134
	I2D             Opcode = 135
	L2I             Opcode = 136
	L2F             Opcode = 137
	L2D             Opcode = 138
	F2I             Opcode = 139
	F2L             Opcode = 140
	F2D             Opcode = 141
	D2I             Opcode = 142
	D2L             Opcode = 143
	D2F             Opcode = 144
	I2B             Opcode = 145
	I2C             Opcode = 146
	I2S             Opcode = 147
	LCMP            Opcode = 148
	FCMPL           Opcode = 149
	FCMPG           Opcode = 150
	DCMPL           Opcode = 151
	DCMPG           Opcode = 152
	IFEQ            Opcode = 153
	IFNE            Opcode = 154
	IFLT            Opcode = 155
	IFGE            Opcode = 156
	IFGT            Opcode = 157
	IFLE            Opcode = 158
	IF_ICMPEQ       Opcode = 159
	IF_ICMPNE       Opcode = 160
	IF_ICMPLT       Opcode = 161
	IF_ICMPGE       Opcode = 162
	IF_ICMPGT       Opcode = 163
	IF_ICMPLE       Opcode = 164
	IF_ACMPEQ       Opcode = 165
	IF_ACMPNE       Opcode = 166
	GOTO            Opcode = 167
	JSR             Opcode = 168
	RET             Opcode = 169
	TABLESWITCH     Opcode = 170
	LOOKUPSWITCH    Opcode = 171
	IRETURN         Opcode = 172
	LRETURN         Opcode = 173
	FRETURN         Opcode = 174
	DRETURN         Opcode = 175
	ARETURN         Opcode = 176
	RETURN          Opcode = 177
	GETSTATIC       Opcode = 178
	PUTSTATIC       Opcode = 179
	GETFIELD        Opcode = 180
	PUTFIELD        Opcode = 181
	INVOKEVIRTUAL   Opcode = 182
	INVOKESPECIAL   Opcode = 183
	INVOKESTATIC    Opcode = 184
	INVOKEINTERFACE Opcode = 185
	INVOKEDYNAMIC   Opcode = 186
	NEW             Opcode = 187
	NEWARRAY        Opcode = 188
	ANEWARRAY       Opcode = 189
	ARRAYLENGTH     Opcode = 190
	ATHROW          Opcode = 191
	CHECKCAST       Opcode = 192
	INSTANCEOF      Opcode = 193
	MONITORENTER    Opcode = 194
	MONITOREXIT     Opcode = 195
	MULTIANEWARRAY  Opcode = 197
	IFNULL          Opcode = 198
	IFNONNULL       Opcode = 199
)

var mnemonics = map[Opcode]string{
	NOP: "NOP", ACONST_NULL: "ACONST_NULL", ICONST_M1: "ICONST_M1", ICONST_0: "ICONST_0", ICONST_1: "ICONST_1",
	ICONST_2: "ICONST_2", ICONST_3: "ICONST_3", ICONST_4: "ICONST_4", ICONST_5: "ICONST_5", LCONST_0: "LCONST_0",
	LCONST_1: "LCONST_1", FCONST_0: "FCONST_0", FCONST_1: "FCONST_1", FCONST_2: "FCONST_2", DCONST_0: "DCONST_0",
	DCONST_1: "DCONST_1", BIPUSH: "BIPUSH", SIPUSH: "SIPUSH", LDC: "LDC", ILOAD: "ILOAD", LLOAD: "LLOAD",
	FLOAD: "FLOAD", DLOAD: "DLOAD", ALOAD: "ALOAD", IALOAD: "IALOAD", LALOAD: "LALOAD", FALOAD: "FALOAD",
	DALOAD: "DALOAD", AALOAD: "AALOAD", BALOAD: "BALOAD", CALOAD: "CALOAD", SALOAD: "SALOAD", ISTORE: "ISTORE",
	LSTORE: "LSTORE", FSTORE: "FSTORE", DSTORE: "DSTORE", ASTORE: "ASTORE", IASTORE: "IASTORE",
	LASTORE: "LASTORE", FASTORE: "FASTORE", DASTORE: "DASTORE", AASTORE: "AASTORE", BASTORE: "BASTORE",
	CASTORE: "CASTORE", SASTORE: "SASTORE", POP: "POP", POP2: "POP2", DUP: "DUP", DUP_X1: "DUP_X1",
	DUP_X2: "DUP_X2", DUP2: "DUP2", DUP2_X1: "DUP2_X1", DUP2_X2: "DUP2_X2", SWAP: "SWAP", IADD: "IADD",
	LADD: "LADD", FADD: "FADD", DADD: "DADD", ISUB: "ISUB", LSUB: "LSUB", FSUB: "FSUB", DSUB: "DSUB",
	IMUL: "IMUL", LMUL: "LMUL", FMUL: "FMUL", DMUL: "DMUL", IDIV: "IDIV", LDIV: "LDIV", FDIV: "FDIV",
	DDIV: "DDIV", IREM: "IREM", LREM: "LREM", FREM: "FREM", DREM: "DREM", INEG: "INEG", LNEG: "LNEG",
	FNEG: "FNEG", DNEG: "DNEG", ISHL: "ISHL", LSHL: "LSHL", ISHR: "ISHR", LSHR: "LSHR", IUSHR: "IUSHR",
	LUSHR: "LUSHR", IAND: "IAND", LAND: "LAND", IOR: "IOR", LOR: "LOR", IXOR: "IXOR", LXOR: "LXOR",
	IINC_OP: "IINC", I2L: "I2L", I2F: "I2F", I2D: "I2D", L2I: "L2I", L2F: "L2F", L2D: "L2D", F2I: "F2I",
	F2L: "F2L", F2D: "F2D", D2I: "D2I", D2L: "D2L", D2F: "D2F", I2B: "I2B", I2C: "I2C", I2S: "I2S",
	LCMP: "LCMP", FCMPL: "FCMPL", FCMPG: "FCMPG", DCMPL: "DCMPL", DCMPG: "DCMPG", IFEQ: "IFEQ", IFNE: "IFNE",
	IFLT: "IFLT", IFGE: "IFGE", IFGT: "IFGT", IFLE: "IFLE", IF_ICMPEQ: "IF_ICMPEQ", IF_ICMPNE: "IF_ICMPNE",
	IF_ICMPLT: "IF_ICMPLT", IF_ICMPGE: "IF_ICMPGE", IF_ICMPGT: "IF_ICMPGT", IF_ICMPLE: "IF_ICMPLE",
	IF_ACMPEQ: "IF_ACMPEQ", IF_ACMPNE: "IF_ACMPNE", GOTO: "GOTO", JSR: "JSR", RET: "RET",
	TABLESWITCH: "TABLESWITCH", LOOKUPSWITCH: "LOOKUPSWITCH", IRETURN: "IRETURN", LRETURN: "LRETURN",
	FRETURN: "FRETURN", DRETURN: "DRETURN", ARETURN: "ARETURN", RETURN: "RETURN", GETSTATIC: "GETSTATIC",
	PUTSTATIC: "PUTSTATIC", GETFIELD: "GETFIELD", PUTFIELD: "PUTFIELD", INVOKEVIRTUAL: "INVOKEVIRTUAL",
	INVOKESPECIAL: "INVOKESPECIAL", INVOKESTATIC: "INVOKESTATIC", INVOKEINTERFACE: "INVOKEINTERFACE",
	INVOKEDYNAMIC: "INVOKEDYNAMIC", NEW: "NEW", NEWARRAY: "NEWARRAY", ANEWARRAY: "ANEWARRAY",
	ARRAYLENGTH: "ARRAYLENGTH", ATHROW: "ATHROW", CHECKCAST: "CHECKCAST", INSTANCEOF: "INSTANCEOF",
	MONITORENTER: "MONITORENTER", MONITOREXIT: "MONITOREXIT", MULTIANEWARRAY: "MULTIANEWARRAY",
	IFNULL: "IFNULL", IFNONNULL: "IFNONNULL",
}

var opcodes map[string]Opcode

func init() {
	opcodes = make(map[string]Opcode, len(mnemonics))
	//
	for op, name := range mnemonics {
		opcodes[name] = op
	}
}

func (op Opcode) String() string {
	if op == NONE {
		return ""
	} else if name, ok := mnemonics[op]; ok {
		return name
	}
	//
	return fmt.Sprintf("op(%d)", int(op))
}

// Valid checks whether this is a known opcode.
func (op Opcode) Valid() bool {
	_, ok := mnemonics[op]
	return ok
}

// ParseOpcode converts a mnemonic (e.g. "ILOAD") into its opcode.
func ParseOpcode(name string) (Opcode, error) {
	if op, ok := opcodes[name]; ok {
		return op, nil
	}
	//
	return NONE, fmt.Errorf("unknown opcode \"%s\"", name)
}

// KindOf returns the shape of instructions carrying the given opcode.
func KindOf(op Opcode) Kind {
	switch {
	case op == BIPUSH || op == SIPUSH || op == LDC || op == NEWARRAY || op == MULTIANEWARRAY:
		return IMMEDIATE
	case op == NEW || op == ANEWARRAY || op == CHECKCAST || op == INSTANCEOF:
		return IMMEDIATE
	case (op >= ILOAD && op <= ALOAD) || (op >= ISTORE && op <= ASTORE) || op == RET:
		return VAR
	case op == IINC_OP:
		return IINC
	case op >= GETSTATIC && op <= PUTFIELD:
		return FIELD
	case op >= INVOKEVIRTUAL && op <= INVOKEINTERFACE:
		return METHOD
	case op == INVOKEDYNAMIC:
		return DYNAMIC
	case (op >= IFEQ && op <= JSR) || op == IFNULL || op == IFNONNULL:
		return JUMP
	case op == TABLESWITCH:
		return TABLE_SWITCH
	case op == LOOKUPSWITCH:
		return LOOKUP_SWITCH
	default:
		return PLAIN
	}
}

// IsTerminal checks whether control never falls through this opcode to the
// next instruction.
func (op Opcode) IsTerminal() bool {
	switch op {
	case GOTO, RET, TABLESWITCH, LOOKUPSWITCH, ATHROW:
		return true
	}
	//
	return op >= IRETURN && op <= RETURN
}

// IsStore checks whether this opcode writes a local variable.
func (op Opcode) IsStore() bool {
	return op >= ISTORE && op <= ASTORE
}

// SlotKind returns the kind of value a local variable opcode reads or writes.
func (op Opcode) SlotKind() SlotKind {
	switch op {
	case ILOAD, ISTORE, IINC_OP:
		return INT_SLOT
	case LLOAD, LSTORE:
		return LONG_SLOT
	case FLOAD, FSTORE:
		return FLOAT_SLOT
	case DLOAD, DSTORE:
		return DOUBLE_SLOT
	case ALOAD, ASTORE:
		return REFERENCE_SLOT
	default:
		return UNKNOWN_SLOT
	}
}
