package parser

// ErrorKind tags the grammar failure classes. Every kind is terminal for
// the parse attempt; there is no partial-result recovery.
type ErrorKind int

const (
	UnexpectedInput ErrorKind = iota
	UnexpectedEOF
	InvalidNumber
	InvalidString
	InvalidType
	UnmatchedParen
	ParseFailure
)

type Error struct {
	Kind   ErrorKind
	Detail string
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnexpectedInput:
		return "Unexpected input: " + e.Detail
	case UnexpectedEOF:
		return "Unexpected end of input"
	case InvalidNumber:
		return "Invalid number: " + e.Detail
	case InvalidString:
		return "Invalid string: " + e.Detail
	case InvalidType:
		return "Invalid type: " + e.Detail
	case UnmatchedParen:
		return "Unmatched parenthesis"
	}
	return "Parse error: " + e.Detail
}
