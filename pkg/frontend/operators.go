package frontend

type Operator uint64

const (
	OperatorEqual              Operator = iota // '='
	OperatorGreaterThan                        // '>'
	OperatorLessThan                           // '<'
	OperatorPlus                               // '+'
	OperatorMinus                              // '-'
	OperatorAsterisk                           // '*'
	OperatorSlash                              // '/'
	OperatorPercent                            // '%'
	OperatorNot                                // "NOT" / '!'
	OperatorNotEqual                           // "<>" / "!="
	OperatorLessThanEqualTo                    // "<="
	OperatorGreaterThanEqualTo                 // ">="
	OperatorAnd                                // "AND"
	OperatorOr                                 // "OR"
)

func (op Operator) String() string {
	switch op {
	case OperatorEqual:
		return "="
	case OperatorGreaterThan:
		return ">"
	case OperatorLessThan:
		return "<"
	case OperatorPlus:
		return "+"
	case OperatorMinus:
		return "-"
	case OperatorAsterisk:
		return "*"
	case OperatorSlash:
		return "/"
	case OperatorPercent:
		return "%"
	case OperatorNot:
		return "NOT"
	case OperatorNotEqual:
		return "<>"
	case OperatorLessThanEqualTo:
		return "<="
	case OperatorGreaterThanEqualTo:
		return ">="
	case OperatorAnd:
		return "AND"
	case OperatorOr:
		return "OR"
	}

	panic("programming error: unexpected operator in String() of Operator")
}

// itemTypeToOperator maps operator tokens to their Operator.
var itemTypeToOperator = map[itemType]Operator{
	itemEqual:              OperatorEqual,
	itemGreaterThan:        OperatorGreaterThan,
	itemLessThan:           OperatorLessThan,
	itemPlus:               OperatorPlus,
	itemMinus:              OperatorMinus,
	itemAsterisk:           OperatorAsterisk,
	itemSlash:              OperatorSlash,
	itemPercent:            OperatorPercent,
	itemExclamation:        OperatorNot,
	itemNotEqual:           OperatorNotEqual,
	itemLessThanEqualTo:    OperatorLessThanEqualTo,
	itemGreaterThanEqualTo: OperatorGreaterThanEqualTo,
}
