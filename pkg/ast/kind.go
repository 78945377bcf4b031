package ast

import "fmt"

// Kind identifies the variant of a Node.
type Kind uint8

const (
	KindName Kind = iota + 1
	KindDocument
	KindOperationDefinition
	KindVariableDefinition
	KindVariable
	KindSelectionSet
	KindField
	KindArgument
	KindFragmentSpread
	KindInlineFragment
	KindFragmentDefinition
	KindIntValue
	KindFloatValue
	KindStringValue
	KindBooleanValue
	KindNullValue
	KindEnumValue
	KindListValue
	KindObjectValue
	KindObjectField
	KindDirective
	KindNamedType
	KindListType
	KindNonNullType
	KindDirectiveDefinition
	KindInputValueDefinition

	kindCount
)

var kindNames = [...]string{
	KindName:                 "Name",
	KindDocument:             "Document",
	KindOperationDefinition:  "OperationDefinition",
	KindVariableDefinition:   "VariableDefinition",
	KindVariable:             "Variable",
	KindSelectionSet:         "SelectionSet",
	KindField:                "Field",
	KindArgument:             "Argument",
	KindFragmentSpread:       "FragmentSpread",
	KindInlineFragment:       "InlineFragment",
	KindFragmentDefinition:   "FragmentDefinition",
	KindIntValue:             "IntValue",
	KindFloatValue:           "FloatValue",
	KindStringValue:          "StringValue",
	KindBooleanValue:         "BooleanValue",
	KindNullValue:            "NullValue",
	KindEnumValue:            "EnumValue",
	KindListValue:            "ListValue",
	KindObjectValue:          "ObjectValue",
	KindObjectField:          "ObjectField",
	KindDirective:            "Directive",
	KindNamedType:            "NamedType",
	KindListType:             "ListType",
	KindNonNullType:          "NonNullType",
	KindDirectiveDefinition:  "DirectiveDefinition",
	KindInputValueDefinition: "InputValueDefinition",
}

// KindCount is the number of node kinds plus one. Kinds can index arrays of
// this length directly.
const KindCount = int(kindCount)

func (k Kind) String() string {
	if k > 0 && k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool { return k > 0 && k < kindCount }
