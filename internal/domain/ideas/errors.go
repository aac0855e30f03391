package ideas

import "errors"

// BlankInputMessage is what entry points show for ErrBlankInput.
const BlankInputMessage = "Startup idea cannot be empty."

// ErrBlankInput is returned when the trimmed idea text is empty.
var ErrBlankInput = errors.New("startup idea cannot be empty")

// ErrStoreCorrupted indicates the persisted collection exists but cannot be decoded.
// Stores wrap the underlying decode error with it and never rewrite the collection.
var ErrStoreCorrupted = errors.New("result store corrupted")
