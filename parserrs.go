package texpr

import "strconv"

// InputError is an error with position information. Every error resulting
// from invalid input implements InputError.
type InputError interface {
	error
	// Offset returns the byte offset of the token that caused the error.
	Offset() int
}

// UnexpectedTokenError indicates a token that cannot appear at its position:
// no prefix production starts with it, or a required delimiter was something
// else. It implements InputError.
type UnexpectedTokenError struct {
	// Pos is the byte offset of the token.
	Pos int
	// Got is the text of the offending token, or "" at end of input.
	Got string
	// Want describes the expected token, if one specific token was required.
	Want string
}

func (err *UnexpectedTokenError) Error() string {
	got := strconv.Quote(err.Got)
	if err.Got == "" {
		got = "end of input"
	}
	if err.Want == "" {
		return errpos(err.Pos, "unexpected "+got)
	}
	return errpos(err.Pos, "expected "+strconv.Quote(err.Want)+", got "+got)
}

func (err *UnexpectedTokenError) Offset() int {
	return err.Pos
}

// UnknownCommandError indicates a backslash command, or an \operatorname
// target, that is not in the fixed vocabulary. It implements InputError.
type UnknownCommandError struct {
	// Pos is the byte offset of the command.
	Pos int
	// Name is the command name, without the backslash.
	Name string
	// OperatorName is true when Name was an \operatorname target rather
	// than a command.
	OperatorName bool
}

func (err *UnknownCommandError) Error() string {
	if err.OperatorName {
		return errpos(err.Pos, "unknown operatorname: "+strconv.Quote(err.Name))
	}
	return errpos(err.Pos, "unknown command: \\"+err.Name)
}

func (err *UnknownCommandError) Offset() int {
	return err.Pos
}

// TrailingTokenError indicates input left over after one complete expression
// was parsed. It implements InputError.
type TrailingTokenError struct {
	// Pos is the byte offset of the first unconsumed token.
	Pos int
	// Got is the text of the first unconsumed token.
	Got string
}

func (err *TrailingTokenError) Error() string {
	return errpos(err.Pos, "trailing input after expression: "+strconv.Quote(err.Got))
}

func (err *TrailingTokenError) Offset() int {
	return err.Pos
}

// DepthError indicates input nested more deeply than the parser permits.
// It implements InputError.
type DepthError struct {
	// Pos is the byte offset at which the limit was exceeded.
	Pos int
}

func (err *DepthError) Error() string {
	return errpos(err.Pos, "expression nested too deeply")
}

func (err *DepthError) Offset() int {
	return err.Pos
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*UnexpectedTokenError)(nil)
	_ InputError = (*UnknownCommandError)(nil)
	_ InputError = (*TrailingTokenError)(nil)
	_ InputError = (*DepthError)(nil)
)
