package segopt

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrNoStages indicates a Pipeline was configured without any stage.
	ErrNoStages = errors.New("segopt: no optimizer stages")

	// ErrNilStage indicates one of the configured stages is nil.
	ErrNilStage = errors.New("segopt: nil optimizer stage")

	// ErrInvalidInput indicates a token sequence violates the tokenizer
	// contract, for example a token with empty text.
	ErrInvalidInput = errors.New("segopt: invalid token sequence")
)
