package deskpet

import "fmt"

// AssetDecodeError reports that one frame of a clip could not be fetched or
// decoded. The clip is not registered when this error is returned.
type AssetDecodeError struct {
	Clip string // clip being loaded
	Path string // logical key of the failing frame
	Err  error
}

func (e *AssetDecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("deskpet: load clip %q: %v", e.Clip, e.Err)
	}
	return fmt.Sprintf("deskpet: load clip %q: frame %q: %v", e.Clip, e.Path, e.Err)
}

func (e *AssetDecodeError) Unwrap() error { return e.Err }

// UnknownAnimationError reports a reference to a clip name that is not
// registered.
type UnknownAnimationError struct {
	Name string
}

func (e *UnknownAnimationError) Error() string {
	return fmt.Sprintf("deskpet: unknown animation %q", e.Name)
}
