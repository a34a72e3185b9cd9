package feature

import "fmt"

type CodecError struct {
	Message string
}

func (errorValue CodecError) Error() string {
	return errorValue.Message
}

type EncodingError struct {
	CodecError
}

func NewEncodingError(format string, args ...any) error {
	return EncodingError{
		CodecError: CodecError{Message: fmt.Sprintf(format, args...)},
	}
}

type DecodingError struct {
	CodecError
}

func NewDecodingError(format string, args ...any) error {
	return DecodingError{
		CodecError: CodecError{Message: fmt.Sprintf(format, args...)},
	}
}

type SchemaError struct {
	CodecError
	Field string
}

func NewSchemaError(field string, format string, args ...any) error {
	return SchemaError{
		CodecError: CodecError{Message: fmt.Sprintf(format, args...)},
		Field:      field,
	}
}
