package model

import "slices"

var primitiveTokens = []string{
	"string",
	"int",
	"double",
	"float",
	"long",
	"boolean",
	"char",
	"datetime",
}

func IsPrimitive(token string) bool {
	return slices.Contains(primitiveTokens, token)
}

// PrimitiveTokens returns the schema type tokens that are always valid.
func PrimitiveTokens() []string {
	return slices.Clone(primitiveTokens)
}
