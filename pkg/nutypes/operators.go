package nutypes

// Operator is a binary arithmetic operator.
type Operator int

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
)

// LookupOperator maps source text to an operator.
func LookupOperator(text string) (Operator, bool) {
	switch text {
	case "+":
		return OpAdd, true
	case "-":
		return OpSub, true
	case "*":
		return OpMul, true
	case "/":
		return OpDiv, true
	default:
		return 0, false
	}
}

// Precedence orders operators for the expression parser; higher binds tighter.
func (op Operator) Precedence() int {
	switch op {
	case OpMul, OpDiv:
		return 2
	default:
		return 1
	}
}

func (op Operator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "?"
	}
}
