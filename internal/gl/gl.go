// SPDX-License-Identifier: Unlicense OR MIT

package gl

type (
	Attrib uint
	Enum   uint
)

const (
	ALPHA                         = 0x1906
	ALWAYS                        = 0x207
	ARRAY_BUFFER                  = 0x8892
	BACK                          = 0x0405
	BLEND                         = 0xbe2
	CCW                           = 0x901
	CLAMP_TO_EDGE                 = 0x812f
	COLOR_ATTACHMENT0             = 0x8ce0
	COLOR_BUFFER_BIT              = 0x4000
	COMPILE_STATUS                = 0x8b81
	CONTEXT_LOST                  = 0x0507
	CULL_FACE                     = 0xb44
	CW                            = 0x900
	DECR                          = 0x1e03
	DECR_WRAP                     = 0x8508
	DEPTH_ATTACHMENT              = 0x8d00
	DEPTH_BUFFER_BIT              = 0x100
	DEPTH_COMPONENT               = 0x1902
	DEPTH_COMPONENT16             = 0x81a5
	DEPTH_TEST                    = 0xb71
	DST_ALPHA                     = 0x304
	DST_COLOR                     = 0x306
	DYNAMIC_DRAW                  = 0x88e8
	ELEMENT_ARRAY_BUFFER          = 0x8893
	EQUAL                         = 0x202
	EXTENSIONS                    = 0x1f03
	FALSE                         = 0
	FLOAT                         = 0x1406
	FRAGMENT_SHADER               = 0x8b30
	FRAMEBUFFER                   = 0x8d40
	FRAMEBUFFER_BINDING           = 0x8ca6
	FRAMEBUFFER_COMPLETE          = 0x8cd5
	FRONT                         = 0x0404
	FRONT_AND_BACK                = 0x0408
	FUNC_ADD                      = 0x8006
	FUNC_REVERSE_SUBTRACT         = 0x800b
	FUNC_SUBTRACT                 = 0x800a
	GEQUAL                        = 0x206
	GREATER                       = 0x204
	INCR                          = 0x1e02
	INCR_WRAP                     = 0x8507
	INFO_LOG_LENGTH               = 0x8b84
	INVALID_ENUM                  = 0x500
	INVALID_FRAMEBUFFER_OPERATION = 0x506
	INVALID_OPERATION             = 0x502
	INVALID_VALUE                 = 0x501
	INVERT                        = 0x150a
	KEEP                          = 0x1e00
	LEQUAL                        = 0x203
	LESS                          = 0x201
	LINEAR                        = 0x2601
	LINES                         = 0x1
	LINE_STRIP                    = 0x3
	LINK_STATUS                   = 0x8b82
	MAX_TEXTURE_SIZE              = 0xd33
	MIRRORED_REPEAT               = 0x8370
	NEAREST                       = 0x2600
	NEVER                         = 0x200
	NOTEQUAL                      = 0x205
	NO_ERROR                      = 0x0
	ONE                           = 0x1
	ONE_MINUS_DST_ALPHA           = 0x305
	ONE_MINUS_DST_COLOR           = 0x307
	ONE_MINUS_SRC_ALPHA           = 0x303
	ONE_MINUS_SRC_COLOR           = 0x301
	OUT_OF_MEMORY                 = 0x505
	PACK_ALIGNMENT                = 0xd05
	POINTS                        = 0x0
	R8                            = 0x8229
	RED                           = 0x1903
	RENDERER                      = 0x1f01
	REPEAT                        = 0x2901
	REPLACE                       = 0x1e01
	RGB                           = 0x1907
	RGB8                          = 0x8051
	RGBA                          = 0x1908
	RGBA8                         = 0x8058
	SCISSOR_TEST                  = 0xc11
	SHORT                         = 0x1402
	SRC_ALPHA                     = 0x302
	SRC_ALPHA_SATURATE            = 0x308
	SRC_COLOR                     = 0x300
	STATIC_DRAW                   = 0x88e4
	STENCIL_BUFFER_BIT            = 0x00000400
	STENCIL_TEST                  = 0xb90
	STREAM_DRAW                   = 0x88e0
	TEXTURE_2D                    = 0xde1
	TEXTURE_MAG_FILTER            = 0x2800
	TEXTURE_MIN_FILTER            = 0x2801
	TEXTURE_SWIZZLE_A             = 0x8e45
	TEXTURE_WRAP_S                = 0x2802
	TEXTURE_WRAP_T                = 0x2803
	TEXTURE0                      = 0x84c0
	TRIANGLE_STRIP                = 0x5
	TRIANGLES                     = 0x4
	TRUE                          = 1
	UNPACK_ALIGNMENT              = 0xcf5
	UNSIGNED_BYTE                 = 0x1401
	UNSIGNED_INT                  = 0x1405
	UNSIGNED_SHORT                = 0x1403
	VENDOR                        = 0x1f00
	VERSION                       = 0x1f02
	VERTEX_SHADER                 = 0x8b31
	ZERO                          = 0x0
)
