package codegraph

import "fmt"

// Kind identifies the concrete variant of a Node.
type Kind int

const (
	KindInvalid Kind = iota
	KindComment
	KindCodeSnippet
	KindBasicType
	KindNamedType
	KindTemplateParameter
	KindNontypeTemplateParameter
	KindTypedTemplateParameter
	KindTemplateTemplateParameter
	KindTypedefinition
	KindTypedefinedType
	KindEnumeration
	KindUnion
	KindUserDefinedType
	KindBaseType
	KindFunctionPointerType
	KindMemberFunctionPointerType
	KindPointerToMemberType
	KindDeclarator
	KindVariableDeclaration
	KindVariableDeclarationList
	KindPrefix
	KindPostfix
	KindBinary
	KindCast
	KindCall
	KindMemberCall
	KindNew
	KindDelete
	KindThrow
	KindConditional
	KindPrimitive
	KindVariableRef
	KindArgumentRef
	KindMethodRef
	KindScopeResolution
	KindParenthesized
	KindLambda
	KindExpressionStatement
	KindUsing
	KindJump
	KindLabel
	KindBlock
	KindIf
	KindSwitch
	KindCase
	KindFor
	KindWhile
	KindDoWhile
	KindTryCatch
	KindCatchClause
	KindFunction
	KindMemberFunction
	KindOperator
	KindMemberOperator
	KindConstructor
	KindMemberInitializer
	KindDestructor
	KindPreprocessorDirective
	KindMacroTest
	KindNamespace
	KindCompilationUnit
)

var kindNames = [...]string{
	KindInvalid:                   "Invalid",
	KindComment:                   "Comment",
	KindCodeSnippet:               "CodeSnippet",
	KindBasicType:                 "BasicType",
	KindNamedType:                 "NamedType",
	KindTemplateParameter:         "TemplateParameter",
	KindNontypeTemplateParameter:  "NontypeTemplateParameter",
	KindTypedTemplateParameter:    "TypedTemplateParameter",
	KindTemplateTemplateParameter: "TemplateTemplateParameter",
	KindTypedefinition:            "Typedefinition",
	KindTypedefinedType:           "TypedefinedType",
	KindEnumeration:               "Enumeration",
	KindUnion:                     "Union",
	KindUserDefinedType:           "UserDefinedType",
	KindBaseType:                  "BaseType",
	KindFunctionPointerType:       "FunctionPointerType",
	KindMemberFunctionPointerType: "MemberFunctionPointerType",
	KindPointerToMemberType:       "PointerToMemberType",
	KindDeclarator:                "Declarator",
	KindVariableDeclaration:       "VariableDeclaration",
	KindVariableDeclarationList:   "VariableDeclarationList",
	KindPrefix:                    "Prefix",
	KindPostfix:                   "Postfix",
	KindBinary:                    "Binary",
	KindCast:                      "Cast",
	KindCall:                      "Call",
	KindMemberCall:                "MemberCall",
	KindNew:                       "New",
	KindDelete:                    "Delete",
	KindThrow:                     "Throw",
	KindConditional:               "Conditional",
	KindPrimitive:                 "Primitive",
	KindVariableRef:               "VariableRef",
	KindArgumentRef:               "ArgumentRef",
	KindMethodRef:                 "MethodRef",
	KindScopeResolution:           "ScopeResolution",
	KindParenthesized:             "Parenthesized",
	KindLambda:                    "Lambda",
	KindExpressionStatement:       "ExpressionStatement",
	KindUsing:                     "Using",
	KindJump:                      "Jump",
	KindLabel:                     "Label",
	KindBlock:                     "Block",
	KindIf:                        "If",
	KindSwitch:                    "Switch",
	KindCase:                      "Case",
	KindFor:                       "For",
	KindWhile:                     "While",
	KindDoWhile:                   "DoWhile",
	KindTryCatch:                  "TryCatch",
	KindCatchClause:               "CatchClause",
	KindFunction:                  "Function",
	KindMemberFunction:            "MemberFunction",
	KindOperator:                  "Operator",
	KindMemberOperator:            "MemberOperator",
	KindConstructor:               "Constructor",
	KindMemberInitializer:         "MemberInitializer",
	KindDestructor:                "Destructor",
	KindPreprocessorDirective:     "PreprocessorDirective",
	KindMacroTest:                 "MacroTest",
	KindNamespace:                 "Namespace",
	KindCompilationUnit:           "CompilationUnit",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}
